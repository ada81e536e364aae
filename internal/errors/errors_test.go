package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors_Wrapping verifies wrapped sentinel errors can still be detected
func TestSentinelErrors_Wrapping(t *testing.T) {
	sentinels := []error{
		ErrInvalidNotation, ErrIllegalMove, ErrEmptySquare, ErrOutOfRange,
		ErrInvalidConfig, ErrProtocol, ErrAuth, ErrNotInMatch,
		ErrNotYourTurn, ErrMatchEnded, ErrInvalidRecord,
	}
	for _, s := range sentinels {
		t.Run(s.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", s)
			if !Is(wrapped, s) {
				t.Errorf("Is(wrapped, %v) = false, want true", s)
			}
			for _, other := range sentinels {
				if other != s && errors.Is(wrapped, other) {
					t.Errorf("wrapped %v also matches %v", s, other)
				}
			}
		})
	}
}

func TestMoveError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *MoveError
		contains []string
	}{
		{
			name: "full context",
			err: &MoveError{
				Err:    ErrIllegalMove,
				From:   "(0,7)",
				To:     "(0,3)",
				Piece:  "White Rook",
				Reason: "path blocked",
				Ply:    12,
			},
			contains: []string{"ply 12", "White Rook", "(0,7)->(0,3)", "path blocked", "illegal move"},
		},
		{
			name:     "sentinel only",
			err:      &MoveError{Err: ErrEmptySquare},
			contains: []string{"no piece on origin square"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("MoveError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

func TestMoveError_As(t *testing.T) {
	moveErr := &MoveError{Err: ErrIllegalMove, From: "(1,7)", To: "(1,5)", Piece: "White Knight"}
	wrapped := fmt.Errorf("apply failed: %w", moveErr)

	var extracted *MoveError
	if !As(wrapped, &extracted) {
		t.Fatal("As(wrapped, *MoveError) = false, want true")
	}
	if extracted.Piece != "White Knight" {
		t.Errorf("Piece = %q, want %q", extracted.Piece, "White Knight")
	}
	if !errors.Is(wrapped, ErrIllegalMove) {
		t.Error("errors.Is(wrapped, ErrIllegalMove) = false, want true")
	}
}

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{
			name: "notation row and column",
			err:  &ParseError{Err: ErrInvalidNotation, Row: 3, Column: 5, Expected: "piece or digit", Got: "'x'"},
			want: "row 3 col 5: expected piece or digit, got 'x': invalid notation",
		},
		{
			name: "record file",
			err:  &ParseError{Err: ErrInvalidRecord, File: "m.rec", Line: 4, Got: "\"zz\""},
			want: "m.rec:4: unexpected \"zz\": invalid game record",
		},
		{
			name: "expected only",
			err:  &ParseError{Expected: "turn"},
			want: "expected turn",
		},
		{
			name: "empty",
			err:  &ParseError{},
			want: "parse error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	err := &ParseError{Err: ErrInvalidNotation, Row: 9}
	if !errors.Is(err, ErrInvalidNotation) {
		t.Error("errors.Is(ParseError, ErrInvalidNotation) = false, want true")
	}
	if errors.Unwrap(err) != ErrInvalidNotation {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), ErrInvalidNotation)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "ctx") != nil {
		t.Error("Wrap(nil) should be nil")
	}
	if Wrapf(nil, "ctx %d", 1) != nil {
		t.Error("Wrapf(nil) should be nil")
	}

	err := Wrapf(ErrAuth, "login %q", "alice")
	if !errors.Is(err, ErrAuth) {
		t.Error("Wrapf lost the sentinel")
	}
	if want := `login "alice": authentication failed`; err.Error() != want {
		t.Errorf("Wrapf() = %q, want %q", err.Error(), want)
	}
}
