package events

import (
	"time"

	"github.com/cameroncuttingedge/tic/game"
	"github.com/cameroncuttingedge/tic/utils"
	"github.com/rs/zerolog/log"
)

const (
	TypeConnected  = "connected"
	TypeEvaluation = "evaluation"
)

// Evaluation describes one board evaluated by the engine. Error is set and
// Result empty when the board was rejected.
type Evaluation struct {
	Type   string        `json:"type"`
	ID     string        `json:"id,omitempty"`
	Board  string        `json:"board"`
	Result string        `json:"result,omitempty"`
	Move   *int          `json:"move,omitempty"`
	Step   string        `json:"step,omitempty"`
	Grid   *[3][3]string `json:"grid,omitempty"`
	Error  string        `json:"error,omitempty"`
	Time   time.Time     `json:"time"`
}

type EvaluationEvent struct {
	Data Evaluation
}

// recordedBoard clips input that cannot be a board so oversized requests are
// not copied into logs or the feed.
func recordedBoard(raw string) string {
	if len(raw) <= game.Size {
		return raw
	}
	return raw[:game.Size] + "..."
}

// Evaluate runs the engine on raw and records the outcome under a new id.
func Evaluate(raw string) (Evaluation, error) {
	e := Evaluation{
		Type:  TypeEvaluation,
		ID:    utils.GenerateUUIDString(),
		Board: recordedBoard(raw),
		Time:  time.Now().UTC(),
	}
	next, d, err := game.EvaluateDecision(raw)
	if err != nil {
		e.Error = err.Error()
		log.Info().Str("evaluationID", e.ID).Str("board", e.Board).Err(err).Msg("Board rejected")
		return e, err
	}
	move := d.Move
	e.Result = next.String()
	e.Move = &move
	e.Step = d.Step.String()
	grid := utils.ConvertBoardToStrings(next)
	e.Grid = &grid
	log.Info().
		Str("evaluationID", e.ID).
		Str("board", e.Board).
		Str("result", e.Result).
		Str("step", e.Step).
		Msg("Board evaluated")
	return e, nil
}

var EventChannel = make(chan EvaluationEvent, 100)

// Publish queues an evaluation for the live feed without blocking. Events are
// dropped while the channel is full.
func Publish(e Evaluation) bool {
	select {
	case EventChannel <- EvaluationEvent{Data: e}:
		return true
	default:
		log.Warn().Str("evaluationID", e.ID).Msg("Event channel full, dropping evaluation")
		return false
	}
}
