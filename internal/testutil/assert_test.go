package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bitmato-studio/bitmato-chess/internal/chess"
)

// Only success paths are exercised; a failing assertion would fail this test.

func TestAssertions_Success(t *testing.T) {
	AssertEqual(t, "hello", "hello")
	AssertEqual(t, []int{1, 2, 3}, []int{1, 2, 3}, "slice %d", 1)
	AssertNoError(t, nil)
	AssertError(t, errors.New("boom"))
	AssertContains(t, "hello world", "world")
	AssertTrue(t, true)
	AssertFalse(t, false)
	AssertNil(t, nil)
	AssertNil(t, (*int)(nil))
	AssertNotNil(t, 1)
	AssertPanics(t, func() { panic("x") })
}

func TestAssertErrorIs_Success(t *testing.T) {
	base := errors.New("base")
	AssertErrorIs(t, fmt.Errorf("wrapped: %w", base), base)
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want string
	}{
		{"empty", nil, ""},
		{"plain", []any{"msg"}, "msg"},
		{"format", []any{"value %d", 42}, "value 42"},
		{"non-string", []any{7}, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMessage(tt.args...); got != tt.want {
				t.Errorf("formatMessage() = %q, want %q", got, tt.want)
			}
		})
	}
	if got := prefix("ctx"); got != "ctx: " {
		t.Errorf("prefix() = %q, want %q", got, "ctx: ")
	}
}

func TestBoardHelpers(t *testing.T) {
	b := Place(chess.NewBoard(), 0, 0, chess.Rook, chess.Black)
	Place(b, 7, 7, chess.King, chess.White)
	AssertBoard(t, b, []string{
		"r1111111",
		"11111111",
		"11111111",
		"11111111",
		"11111111",
		"11111111",
		"11111111",
		"1111111K",
	})
	AssertEqual(t, MustParseMove(t, "1:2:3:4"), chess.Move{From: chess.Pos{X: 1, Y: 2}, To: chess.Pos{X: 3, Y: 4}})
}
