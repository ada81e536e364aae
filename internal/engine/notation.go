// Package engine provides move validation and board manipulation for the
// bitmato rule set, plus the position notation codec.
package engine

import (
	"fmt"
	"strings"

	"github.com/bitmato-studio/bitmato-chess/internal/chess"
	"github.com/bitmato-studio/bitmato-chess/internal/errors"
)

// DefaultNotation is the starting position used for new matches.
const DefaultNotation = "rnbkqbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w"

// Notation separators and turn characters.
const (
	rowSeparator  = '/'
	fieldSep      = " "
	whiteTurnChar = 'w'
	blackTurnChar = 'b'
)

// Decode builds a board from notation: eight '/'-separated rows, top row
// first, then a single space and the side to move.
// Every decoded piece starts with HasMoved false.
func Decode(notation string) (*chess.Board, error) {
	fields := strings.Split(notation, fieldSep)
	if len(fields) != 2 {
		return nil, &errors.ParseError{
			Err:      errors.ErrInvalidNotation,
			Expected: "placement and turn separated by one space",
			Got:      fmt.Sprintf("%d fields", len(fields)),
		}
	}

	board := chess.NewBoard()

	if err := parsePlacement(board, fields[0]); err != nil {
		return nil, err
	}
	if err := parseTurn(board, fields[1]); err != nil {
		return nil, err
	}

	return board, nil
}

// MustDecode is like Decode but panics on malformed notation.
// It is meant for compile-time constants such as DefaultNotation.
func MustDecode(notation string) *chess.Board {
	b, err := Decode(notation)
	if err != nil {
		panic(fmt.Sprintf("engine: MustDecode(%q): %v", notation, err))
	}
	return b
}

// NewDefaultBoard returns a fresh board in the starting position.
func NewDefaultBoard() *chess.Board {
	return MustDecode(DefaultNotation)
}

// parsePlacement fills the board from the row groups of a notation.
func parsePlacement(board *chess.Board, placement string) error {
	rows := strings.Split(placement, string(rowSeparator))
	if len(rows) != chess.BoardSize {
		return &errors.ParseError{
			Err:      errors.ErrInvalidNotation,
			Expected: fmt.Sprintf("%d rows", chess.BoardSize),
			Got:      fmt.Sprintf("%d", len(rows)),
		}
	}

	for y, row := range rows {
		if err := parseRow(board, y, row); err != nil {
			return err
		}
	}
	return nil
}

// parseRow decodes one row group into row y.
func parseRow(board *chess.Board, y int, row string) error {
	x := 0
	for i := 0; i < len(row); i++ {
		c := row[i]
		rowErr := func(expected, got string) error {
			return &errors.ParseError{
				Err:      errors.ErrInvalidNotation,
				Row:      y + 1,
				Column:   i + 1,
				Expected: expected,
				Got:      got,
			}
		}

		switch {
		case c >= '1' && c <= '8':
			x += int(c - '0')
			if x > chess.BoardSize {
				return rowErr(fmt.Sprintf("at most %d columns", chess.BoardSize), fmt.Sprintf("%d", x))
			}
		case chess.KindFromLetter(c) != chess.NotSet:
			if x >= chess.BoardSize {
				return rowErr(fmt.Sprintf("at most %d columns", chess.BoardSize), fmt.Sprintf("%d", x+1))
			}
			team := chess.Black
			if c >= 'A' && c <= 'Z' {
				team = chess.White
			}
			board.Place(chess.Pos{X: x, Y: y}, chess.NewPiece(chess.KindFromLetter(c), team))
			x++
		default:
			return rowErr("piece letter or digit 1-8", fmt.Sprintf("%q", c))
		}
	}

	if x != chess.BoardSize {
		return &errors.ParseError{
			Err:      errors.ErrInvalidNotation,
			Row:      y + 1,
			Expected: fmt.Sprintf("%d columns", chess.BoardSize),
			Got:      fmt.Sprintf("%d", x),
		}
	}
	return nil
}

// parseTurn sets the side to move from the turn field.
func parseTurn(board *chess.Board, field string) error {
	if len(field) != 1 || (field[0] != whiteTurnChar && field[0] != blackTurnChar) {
		return &errors.ParseError{
			Err:      errors.ErrInvalidNotation,
			Expected: "turn 'w' or 'b'",
			Got:      fmt.Sprintf("%q", field),
		}
	}
	if field[0] == whiteTurnChar {
		board.Turn = chess.White
	} else {
		board.Turn = chess.Black
	}
	return nil
}

// Encode returns the notation of a board.
func Encode(board *chess.Board) string {
	var sb strings.Builder

	for y := 0; y < chess.BoardSize; y++ {
		if y > 0 {
			sb.WriteByte(rowSeparator)
		}
		writeRow(&sb, board, y)
	}

	sb.WriteString(fieldSep)
	if board.Turn == chess.Black {
		sb.WriteByte(blackTurnChar)
	} else {
		sb.WriteByte(whiteTurnChar)
	}

	return sb.String()
}

// writeRow run-length encodes the empty squares of row y.
func writeRow(sb *strings.Builder, board *chess.Board, y int) {
	empty := 0
	for x := 0; x < chess.BoardSize; x++ {
		cell := board.At(chess.Pos{X: x, Y: y})
		if !cell.Occupied() {
			empty++
			continue
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
			empty = 0
		}
		sb.WriteByte(cell.Glyph())
	}
	if empty > 0 {
		sb.WriteByte(byte('0' + empty))
	}
}
