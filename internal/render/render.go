// Package render draws boards for terminals and logs.
package render

import (
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/bitmato-studio/bitmato-chess/internal/chess"
)

// Text returns a plain dump of the board: a column header, then one line
// per row with its index and the cell glyphs ('1' for empty).
func Text(b *chess.Board) string {
	var sb strings.Builder
	sb.WriteString("-")
	for x := 0; x < chess.BoardSize; x++ {
		sb.WriteString(" " + strconv.Itoa(x))
	}
	sb.WriteString("\n")

	for y, row := range b.Glyphs() {
		sb.WriteString(strconv.Itoa(y))
		for _, g := range row {
			sb.WriteString(" " + string(g))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Theme picks the colours of a rendered board.
type Theme struct {
	Light     color.Attribute
	Dark      color.Attribute
	Highlight color.Attribute
	White     color.Attribute
	Black     color.Attribute
}

// DefaultTheme is used by Color.
var DefaultTheme = Theme{
	Light:     color.BgYellow,
	Dark:      color.BgGreen,
	Highlight: color.BgCyan,
	White:     color.FgHiWhite,
	Black:     color.FgBlack,
}

// Color renders the board with DefaultTheme, honouring color.NoColor.
// Squares in marks are highlighted.
func Color(b *chess.Board, marks ...chess.Pos) string {
	return DefaultTheme.Render(b, !color.NoColor, marks...)
}

// Render draws the board as a grid of three-character squares with
// row and column labels. With enabled false no escape codes are written.
func (th Theme) Render(b *chess.Board, enabled bool, marks ...chess.Pos) string {
	marked := make(map[chess.Pos]bool, len(marks))
	for _, p := range marks {
		marked[p] = true
	}

	var sb strings.Builder
	sb.WriteString(" ")
	for x := 0; x < chess.BoardSize; x++ {
		sb.WriteString(" " + strconv.Itoa(x) + " ")
	}
	sb.WriteString("\n")

	for y := 0; y < chess.BoardSize; y++ {
		sb.WriteString(strconv.Itoa(y))
		for x := 0; x < chess.BoardSize; x++ {
			pos := chess.Pos{X: x, Y: y}
			sb.WriteString(th.square(b.At(pos), th.background(pos, marked[pos]), enabled))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (th Theme) background(p chess.Pos, marked bool) color.Attribute {
	switch {
	case marked:
		return th.Highlight
	case (p.X+p.Y)%2 == 0:
		return th.Light
	default:
		return th.Dark
	}
}

func (th Theme) square(c *chess.Cell, bg color.Attribute, enabled bool) string {
	text := "   "
	attrs := []color.Attribute{bg}

	if p, ok := c.Piece(); ok {
		text = " " + string(p.Glyph()) + " "
		fg := th.White
		if p.Team == chess.Black {
			fg = th.Black
		}
		attrs = append(attrs, fg, color.Bold)
	}

	col := color.New(attrs...)
	if enabled {
		col.EnableColor()
	} else {
		col.DisableColor()
	}
	return col.Sprint(text)
}
