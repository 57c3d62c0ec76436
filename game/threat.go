package game

import "math/bits"

// cellSet is a set of cell indexes, bit i standing for cell i.
type cellSet uint16

func setOf(cells ...int) cellSet {
	var s cellSet
	for _, c := range cells {
		s |= 1 << c
	}
	return s
}

func (s cellSet) has(i int) bool { return s&(1<<i) != 0 }

func (s cellSet) len() int { return bits.OnesCount16(uint16(s)) }

// first returns the lowest index in s. s must not be empty.
func (s cellSet) first() int { return bits.TrailingZeros16(uint16(s)) }

var lineSets = func() [len(lines)]cellSet {
	var out [len(lines)]cellSet
	for i, l := range lines {
		out[i] = setOf(l[:]...)
	}
	return out
}()

// position groups the cells of a board by content. It is built per call and
// never shared.
type position struct {
	empty, x, o cellSet
}

func newPosition(b Board) position {
	var p position
	for i, m := range b {
		switch m {
		case X:
			p.x |= 1 << i
		case O:
			p.o |= 1 << i
		default:
			p.empty |= 1 << i
		}
	}
	return p
}

func (p position) of(m Mark) cellSet {
	switch m {
	case X:
		return p.x
	case O:
		return p.o
	default:
		return 0
	}
}

// HasWon reports whether side s owns a complete line.
func HasWon(b Board, s Mark) bool {
	if !s.isSide() {
		return false
	}
	return newPosition(b).hasWon(s)
}

func (p position) hasWon(s Mark) bool {
	own := p.of(s)
	for _, l := range lineSets {
		if l&^own == 0 {
			return true
		}
	}
	return false
}

// FindImmediateWin returns the first cell, in line table order, that would
// complete a line for side s.
func FindImmediateWin(b Board, s Mark) (int, bool) {
	if !s.isSide() {
		return 0, false
	}
	return newPosition(b).immediateWin(s)
}

func (p position) immediateWin(s Mark) (int, bool) {
	own := p.of(s)
	for _, l := range lineSets {
		missing := l &^ own
		if missing.len() != 1 {
			continue
		}
		if c := missing.first(); p.empty.has(c) {
			return c, true
		}
	}
	return 0, false
}
