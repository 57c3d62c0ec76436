package game

import (
	"errors"
	"testing"
)

func TestEvaluateScenarios(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
		move int
		step Step
	}{
		{"empty board takes center", "         ", "    o    ", 4, StepOpening},
		{"block row", "xx  o    ", "xxo o    ", 2, StepBlock},
		{"block diagonal", "x o x o  ", "x o x o o", 8, StepBlock},
		{"last empty cell", "xoxooxx o", "xoxooxxoo", 7, StepLastCell},
		{"already won by o", "ooo xx x ", "ooo xx x ", 0, StepAlreadyWon},
		{"win before block", "o oxx    ", "oooxx    ", 1, StepWin},
		{"fork before center", " xox   o ", " xox  oo ", 6, StepFork},
		{"block fork", "x   o   x", "x o o   x", 2, StepBlockFork},
		{"center", "x        ", "x   o    ", 4, StepCenter},
		{"opposite corner", "x   o    ", "x   o   o", 8, StepOppositeCorner},
		{"opposite corner from bottom right", "    o   x", "o   o   x", 0, StepOppositeCorner},
		{"opposite corner from top right", "  x o    ", "  x o o  ", 6, StepOppositeCorner},
		{"opposite corner from bottom left", "    o x  ", "  o o x  ", 2, StepOppositeCorner},
		{"empty corner", "    x    ", "o   x    ", 0, StepEmptyCorner},
		{"empty side", "x ooxxx o", "xoooxxx o", 1, StepEmptySide},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, d, err := EvaluateDecision(tt.in)
			if err != nil {
				t.Fatalf("EvaluateDecision(%q) error: %v", tt.in, err)
			}
			if d.Move != tt.move || d.Step != tt.step {
				t.Fatalf("decision = %d/%v, want %d/%v", d.Move, d.Step, tt.move, tt.step)
			}
			if got := next.String(); got != tt.out {
				t.Fatalf("board = %q, want %q", got, tt.out)
			}
			s, err := Evaluate(tt.in)
			if err != nil || s != tt.out {
				t.Fatalf("Evaluate(%q) = %q, %v", tt.in, s, err)
			}
		})
	}
}

func TestEvaluateRejects(t *testing.T) {
	for _, raw := range []string{
		"xxx oo   ",
		"xxoox oxo",
		"x  xo xo ",
		"",
		"abcdefghi",
		"xx       ",
	} {
		if _, err := Evaluate(raw); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("Evaluate(%q) expected ErrInvalidRequest, got %v", raw, err)
		}
	}
}

func TestSelectMoveBlocksUnparsableBoard(t *testing.T) {
	// two x marks and no o: the parser rejects it but the selector still blocks
	d, err := SelectMove(board("xx       "))
	if err != nil {
		t.Fatalf("SelectMove error: %v", err)
	}
	if d.Move != 2 || d.Step != StepBlock {
		t.Fatalf("decision = %d/%v, want 2/block", d.Move, d.Step)
	}
}

func TestErrNoMoveIsInvalidRequest(t *testing.T) {
	if !errors.Is(ErrNoMove, ErrInvalidRequest) {
		t.Fatalf("ErrNoMove should wrap ErrInvalidRequest")
	}
}

func TestStepString(t *testing.T) {
	if StepBlockFork.String() != "block-fork" {
		t.Fatalf("unexpected name %q", StepBlockFork.String())
	}
	if Step(99).String() != "step(99)" {
		t.Fatalf("unexpected name %q", Step(99).String())
	}
}

// allBoards yields every assignment of marks to the nine cells.
func allBoards(yield func(Board)) {
	marks := [3]Mark{Empty, X, O}
	for n := 0; n < 19683; n++ {
		var b Board
		v := n
		for i := range b {
			b[i] = marks[v%3]
			v /= 3
		}
		yield(b)
	}
}

func TestEvaluateProperties(t *testing.T) {
	allBoards(func(b Board) {
		raw := b.String()
		next, d, err := EvaluateDecision(raw)
		if _, perr := ParseBoard(raw); perr != nil {
			if err == nil {
				t.Fatalf("%q: invalid board evaluated", raw)
			}
			return
		}
		if HasWon(b, X) {
			if !errors.Is(err, ErrInvalidRequest) {
				t.Fatalf("%q: x has won, expected rejection, got %v", raw, err)
			}
			return
		}
		if err != nil {
			t.Fatalf("%q: unexpected error %v", raw, err)
		}

		changed := 0
		for i := range b {
			if b[i] != next[i] {
				changed++
				if b[i] != Empty || next[i] != O {
					t.Fatalf("%q -> %q: cell %d changed from %c to %c", raw, next, i, b[i], next[i])
				}
			}
		}
		switch {
		case d.Step == StepAlreadyWon && changed != 0:
			t.Fatalf("%q: already won board changed", raw)
		case d.Step != StepAlreadyWon && changed != 1:
			t.Fatalf("%q -> %q: %d cells changed", raw, next, changed)
		}

		if d.Step == StepAlreadyWon {
			return
		}
		if _, ok := FindImmediateWin(b, O); ok && !HasWon(next, O) {
			t.Fatalf("%q -> %q: o missed a win", raw, next)
		}
		_, oWins := FindImmediateWin(b, O)
		if c, ok := FindImmediateWin(b, X); ok && !oWins && b.Count(Empty) > 1 && d.Move != c {
			t.Fatalf("%q: expected block at %d, got %d", raw, c, d.Move)
		}
	})
}
