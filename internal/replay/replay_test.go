package replay

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bitmato-studio/bitmato-chess/internal/chess"
	"github.com/bitmato-studio/bitmato-chess/internal/engine"
	"github.com/bitmato-studio/bitmato-chess/internal/errors"
	"github.com/bitmato-studio/bitmato-chess/internal/testutil"
)

const sampleRecord = `# match 7f3a
# white alice, black bob

0:6:0:4
0:1:0:3
1:7:2:5
`

func TestParse(t *testing.T) {
	rec, err := Parse(strings.NewReader(sampleRecord), "sample.rec")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	testutil.AssertEqual(t, rec.Name, "sample.rec")
	testutil.AssertEqual(t, rec.Start, "")
	testutil.AssertEqual(t, rec.Comments, []string{"match 7f3a", "white alice, black bob"})
	testutil.AssertEqual(t, rec.Plies(), 3)
	testutil.AssertEqual(t, rec.Moves[2], testutil.MustParseMove(t, "1:7:2:5"))
}

func TestParse_StartLine(t *testing.T) {
	in := "start: 8/8/8/8/8/8/8/R6k b\n0:7:0:0\n"
	rec, err := Parse(strings.NewReader(in), "s")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, rec.Start, "8/8/8/8/8/8/8/R6k b")
	testutil.AssertEqual(t, rec.Plies(), 1)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line int
	}{
		{"bad move", "0:6:0:4\nnot-a-move\n", 2},
		{"start after moves", "0:6:0:4\nstart: 8/8/8/8/8/8/8/8 w\n", 2},
		{"two starts", "start: 8/8/8/8/8/8/8/8 w\nstart: 8/8/8/8/8/8/8/8 b\n", 2},
		{"bad start notation", "# c\nstart: 8/8 w\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in), "bad.rec")
			testutil.AssertErrorIs(t, err, errors.ErrInvalidRecord)

			var pe *errors.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %v is not a *ParseError", err)
			}
			testutil.AssertEqual(t, pe.Line, tt.line)
			testutil.AssertEqual(t, pe.File, "bad.rec")
		})
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	rec := chess.NewGameRecord("m1", "8/8/8/8/8/8/8/R6k w")
	rec.Comments = []string{"white u1", "black u2"}
	rec.Add(testutil.MustParseMove(t, "0:7:0:1"))
	rec.Add(testutil.MustParseMove(t, "7:7:6:7"))

	var buf bytes.Buffer
	testutil.AssertNoError(t, Write(&buf, rec))
	testutil.AssertEqual(t, buf.String(), "# white u1\n# black u2\nstart: 8/8/8/8/8/8/8/R6k w\n0:7:0:1\n7:7:6:7\n")

	back, err := Parse(&buf, "m1")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, back, rec)
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "records")
	rec := chess.NewGameRecord("abc", "")
	rec.Add(testutil.MustParseMove(t, "0:6:0:4"))

	path, err := WriteFile(dir, rec)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, path, filepath.Join(dir, "abc.rec"))

	back, err := ParseFile(path)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, back.Name, "abc.rec")
	testutil.AssertEqual(t, back.Moves, rec.Moves)
}

func TestReplay(t *testing.T) {
	rec, err := Parse(strings.NewReader(sampleRecord), "sample")
	testutil.AssertNoError(t, err)

	res, err := Replay(rec, engine.DefaultRules())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, res.Applied, 3)
	testutil.AssertEqual(t, len(res.Rejections), 0)
	testutil.AssertEqual(t, engine.Encode(res.Board), "rnbkqbnr/1ppppppp/8/p7/P7/2N5/1PPPPPPP/R1BQKBNR b")
}

func TestReplay_CollectsRejections(t *testing.T) {
	rec := chess.NewGameRecord("r", "")
	rec.Add(testutil.MustParseMove(t, "0:6:0:4"))
	rec.Add(testutil.MustParseMove(t, "0:1:0:6")) // five-rank jump
	rec.Add(testutil.MustParseMove(t, "4:4:4:3")) // empty square
	rec.Add(testutil.MustParseMove(t, "0:1:0:3"))

	res, err := Replay(rec, engine.DefaultRules())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, res.Applied, 2)
	if len(res.Rejections) != 2 {
		t.Fatalf("rejections = %d, want 2", len(res.Rejections))
	}

	var me *errors.MoveError
	if !errors.As(res.Rejections[0], &me) {
		t.Fatalf("rejection %v is not a *MoveError", res.Rejections[0])
	}
	testutil.AssertEqual(t, me.Ply, 2)
	testutil.AssertErrorIs(t, res.Rejections[1], errors.ErrEmptySquare)
}

func TestReplay_KingRule(t *testing.T) {
	rec := chess.NewGameRecord("k", "8/8/8/8/8/8/8/4K3 w")
	rec.Add(testutil.MustParseMove(t, "4:7:6:6"))

	bounded, err := Replay(rec, engine.DefaultRules())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, bounded.Applied, 0)

	legacy, err := Replay(rec, engine.Rules{King: engine.KingLegacy})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, legacy.Applied, 1)
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}
	paths := []string{
		write("a.rec", sampleRecord),
		write("b.rec", "0:6:0:4\n0:1:0:6\n"),
		write("c.rec", "garbage\n"),
		filepath.Join(dir, "missing.rec"),
	}

	results := Files(context.Background(), paths, engine.DefaultRules(), 3)
	if len(results) != 4 {
		t.Fatalf("results = %d, want 4", len(results))
	}

	testutil.AssertTrue(t, results[0].OK(), "a.rec")
	testutil.AssertEqual(t, results[0].Applied, 3)
	testutil.AssertEqual(t, results[0].Name, "a.rec")

	testutil.AssertEqual(t, results[1].Applied, 1)
	testutil.AssertEqual(t, len(results[1].Rejections), 1)

	testutil.AssertErrorIs(t, results[2].Error, errors.ErrInvalidRecord)
	testutil.AssertError(t, results[3].Error)
	testutil.AssertEqual(t, results[3].Name, "missing.rec")
}
