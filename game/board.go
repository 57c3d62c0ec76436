package game

import (
	"errors"
	"fmt"
	"strings"
)

// Mark is the content of a single board cell. Its value is the wire symbol.
type Mark byte

const (
	Empty Mark = ' '
	X     Mark = 'x'
	O     Mark = 'o'
)

// Opponent returns the other side, or Empty if m is not a side.
func (m Mark) Opponent() Mark {
	switch m {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (m Mark) isSide() bool { return m == X || m == O }

const (
	Size   = 9
	Center = 4
)

// Board is a 3x3 board stored row-major:
//
//	0 1 2
//	3 4 5
//	6 7 8
type Board [Size]Mark

// ErrInvalidRequest is returned for any board the engine refuses to evaluate.
var ErrInvalidRequest = errors.New("invalid request")

// The geometry tables are read-only; nothing assigns to them after init.
var (
	// lines holds every winning triple: rows, columns, then diagonals.
	lines = [8][3]int{
		{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
		{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
		{0, 4, 8}, {2, 4, 6},
	}

	corners = [4]int{0, 2, 6, 8}
	sides   = [4]int{1, 3, 5, 7}
)

// oppositeCorner returns the corner diagonally across from corner c.
func oppositeCorner(c int) int { return 8 - c }

// ParseBoard reads the 9-symbol wire representation of a board and checks
// that O may legally move next.
func ParseBoard(raw string) (Board, error) {
	var b Board
	if len(raw) != Size {
		return b, fmt.Errorf("%w: board must have %d cells, got %d", ErrInvalidRequest, Size, len(raw))
	}

	for i := 0; i < Size; i++ {
		switch m := Mark(raw[i]); m {
		case Empty, X, O:
			b[i] = m
		default:
			return b, fmt.Errorf("%w: unknown symbol %q at cell %d", ErrInvalidRequest, raw[i], i)
		}
	}

	if b.Count(Empty) == 0 {
		return b, fmt.Errorf("%w: board is full", ErrInvalidRequest)
	}

	if diff := b.Count(X) - b.Count(O); diff != 0 && diff != 1 {
		return b, fmt.Errorf("%w: not o's turn (x-o = %d)", ErrInvalidRequest, diff)
	}
	return b, nil
}

// String renders the board in its wire representation.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(Size)
	for _, m := range b {
		sb.WriteByte(byte(m))
	}
	return sb.String()
}

// Count returns how many cells hold m.
func (b Board) Count(m Mark) int {
	n := 0
	for _, c := range b {
		if c == m {
			n++
		}
	}
	return n
}

// Cells returns the indexes holding m in ascending order.
func (b Board) Cells(m Mark) []int {
	var out []int
	for i, c := range b {
		if c == m {
			out = append(out, i)
		}
	}
	return out
}

// Place returns a copy of the board with an O at cell i.
func (b Board) Place(i int) Board {
	b[i] = O
	return b
}

// Rows splits the board into its three rows.
func (b Board) Rows() [3][3]Mark {
	var rows [3][3]Mark
	for i, m := range b {
		rows[i/3][i%3] = m
	}
	return rows
}
