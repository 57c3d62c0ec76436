package utils

import (
	"testing"

	"github.com/cameroncuttingedge/tic/game"
	"github.com/google/uuid"
)

func TestGenerateUUIDString(t *testing.T) {
	a, b := GenerateUUIDString(), GenerateUUIDString()
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("not a uuid %q: %v", a, err)
	}
	if a == b {
		t.Fatalf("expected distinct ids, got %q twice", a)
	}
}

func TestConvertBoardToStrings(t *testing.T) {
	b, err := game.ParseBoard("x o x o  ")
	if err != nil {
		t.Fatalf("ParseBoard error: %v", err)
	}
	want := [3][3]string{{"x", " ", "o"}, {" ", "x", " "}, {"o", " ", " "}}
	if got := ConvertBoardToStrings(b); got != want {
		t.Fatalf("ConvertBoardToStrings = %q, want %q", got, want)
	}
}
