package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cameroncuttingedge/tic/config"
	"github.com/cameroncuttingedge/tic/events"
	"github.com/cameroncuttingedge/tic/game"
	"github.com/cameroncuttingedge/tic/websocket"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const EvaluationIDHeader = "X-Evaluation-ID"

// maxBodyBytes bounds POST bodies; a board is nine bytes.
const maxBodyBytes = 1 << 10

type EvaluateRequest struct {
	Board string `json:"board"`
}

type EvaluateResponse struct {
	ID     string       `json:"id"`
	Board  string       `json:"board"`
	Result string       `json:"result"`
	Move   int          `json:"move"`
	Step   string       `json:"step"`
	Grid   [3][3]string `json:"grid"`
}

// NewRouter wires every route served by the engine.
func NewRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/tic", ticHandler).Methods("GET")
	r.HandleFunc("/tic/evaluate", evaluateHandler).Methods("POST")
	r.HandleFunc("/ws/tic", websocket.EvaluationWebSocketHandler)
	r.HandleFunc("/ws/feed", websocket.FeedWebSocketHandler)
	return r
}

// NewHandler wraps the router with panic recovery and access logging.
func NewHandler() http.Handler {
	var h http.Handler = NewRouter()
	h = handlers.CombinedLoggingHandler(log.Logger, h)
	h = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(h)
	return h
}

func StartAPI(cfg config.Config) error {
	websocket.SetOriginCheck(cfg.OriginAllowed)
	log.Info().Str("addr", cfg.Addr()).Msg("Server started")
	return http.ListenAndServe(cfg.Addr(), NewHandler())
}

// ticHandler serves the plain text contract: the board goes in as a query
// parameter and comes back with o's move applied.
func ticHandler(w http.ResponseWriter, r *http.Request) {
	board := r.URL.Query().Get("board")
	if board == "" {
		http.Error(w, "board is required", http.StatusBadRequest)
		return
	}

	e, err := evaluate(board)
	w.Header().Set(EvaluationIDHeader, e.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(e.Result))
}

func evaluateHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "error decoding JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	e, err := evaluate(req.Board)
	w.Header().Set(EvaluationIDHeader, e.ID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	response := EvaluateResponse{
		ID:     e.ID,
		Board:  e.Board,
		Result: e.Result,
		Move:   *e.Move,
		Step:   e.Step,
		Grid:   *e.Grid,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error().Err(err).Str("evaluationID", e.ID).Msg("Failed to encode response")
	}
}

// evaluate runs the engine and publishes the outcome to the live feed.
func evaluate(board string) (events.Evaluation, error) {
	e, err := events.Evaluate(board)
	events.Publish(e)
	if err != nil && !errors.Is(err, game.ErrInvalidRequest) {
		log.Error().Err(err).Str("evaluationID", e.ID).Msg("Unexpected engine error")
	}
	return e, err
}
