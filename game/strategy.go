package game

import "fmt"

// Step identifies the rule of the strategy that picked a move.
type Step int

const (
	StepAlreadyWon Step = iota
	StepLastCell
	StepOpening
	StepWin
	StepBlock
	StepFork
	StepBlockFork
	StepCenter
	StepOppositeCorner
	StepEmptyCorner
	StepEmptySide
)

var stepNames = [...]string{
	StepAlreadyWon:     "already-won",
	StepLastCell:       "last-cell",
	StepOpening:        "opening",
	StepWin:            "win",
	StepBlock:          "block",
	StepFork:           "fork",
	StepBlockFork:      "block-fork",
	StepCenter:         "center",
	StepOppositeCorner: "opposite-corner",
	StepEmptyCorner:    "empty-corner",
	StepEmptySide:      "empty-side",
}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return fmt.Sprintf("step(%d)", int(s))
	}
	return stepNames[s]
}

// Decision is the cell chosen for O and the rule that chose it.
type Decision struct {
	Move int
	Step Step
}

// ErrNoMove is returned when no rule applies. Valid boards never reach it.
var ErrNoMove = fmt.Errorf("%w: no move available", ErrInvalidRequest)

// SelectMove picks O's next move on a validated board.
func SelectMove(b Board) (Decision, error) {
	p := newPosition(b)

	// trivial cases
	switch {
	case p.hasWon(X):
		return Decision{}, fmt.Errorf("%w: x has already won", ErrInvalidRequest)
	case p.hasWon(O):
		// o has nothing left to do; "move" onto one of its own cells
		return Decision{Move: p.o.first(), Step: StepAlreadyWon}, nil
	case p.empty.len() == 1:
		return Decision{Move: p.empty.first(), Step: StepLastCell}, nil
	case p.empty.len() == Size:
		return Decision{Move: Center, Step: StepOpening}, nil
	}

	if c, ok := p.immediateWin(O); ok {
		return Decision{Move: c, Step: StepWin}, nil
	}
	if c, ok := p.immediateWin(X); ok {
		return Decision{Move: c, Step: StepBlock}, nil
	}
	if c, ok := p.fork(O); ok {
		return Decision{Move: c, Step: StepFork}, nil
	}
	if c, ok := p.fork(X); ok {
		return Decision{Move: c, Step: StepBlockFork}, nil
	}

	if p.empty.has(Center) {
		return Decision{Move: Center, Step: StepCenter}, nil
	}
	for _, c := range corners {
		if p.x.has(c) && p.empty.has(oppositeCorner(c)) {
			return Decision{Move: oppositeCorner(c), Step: StepOppositeCorner}, nil
		}
	}
	for _, c := range corners {
		if p.empty.has(c) {
			return Decision{Move: c, Step: StepEmptyCorner}, nil
		}
	}
	for _, c := range sides {
		if p.empty.has(c) {
			return Decision{Move: c, Step: StepEmptySide}, nil
		}
	}
	return Decision{}, ErrNoMove
}

// EvaluateDecision parses raw, picks O's move and returns the resulting board.
func EvaluateDecision(raw string) (Board, Decision, error) {
	b, err := ParseBoard(raw)
	if err != nil {
		return Board{}, Decision{}, err
	}
	d, err := SelectMove(b)
	if err != nil {
		return Board{}, Decision{}, err
	}
	return b.Place(d.Move), d, nil
}

// Evaluate returns the wire representation of raw after O's move.
func Evaluate(raw string) (string, error) {
	next, _, err := EvaluateDecision(raw)
	if err != nil {
		return "", err
	}
	return next.String(), nil
}
