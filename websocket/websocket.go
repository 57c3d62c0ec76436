package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cameroncuttingedge/tic/events"
	"github.com/cameroncuttingedge/tic/game"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	// writeWait bounds a single frame write to a peer.
	writeWait = 10 * time.Second
	// sendBuffer is how many feed frames may queue for one client before it
	// is dropped.
	sendBuffer = 16
	// maxMessageSize bounds inbound frames; a board request is a few dozen bytes.
	maxMessageSize = 1 << 10
)

// client owns one connection. Feed clients are written only by their
// writePump; evaluation sockets write from the handler goroutine.
type client struct {
	conn      *websocket.Conn
	send      chan events.Evaluation
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
		send: make(chan events.Evaluation, sendBuffer),
		done: make(chan struct{}),
	}
}

func (c *client) writeJSON(v interface{}) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

// enqueue hands e to the writer without blocking. It reports false when the
// client is closed or its queue is full.
func (c *client) enqueue(e events.Evaluation) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- e:
		return true
	default:
		return false
	}
}

func (c *client) writePump() {
	for {
		select {
		case e := <-c.send:
			if err := c.writeJSON(e); err != nil {
				log.Warn().Err(err).Str("evaluationID", e.ID).Msg("Feed write failed, closing connection")
				c.close()
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

type BoardRequest struct {
	Board string `json:"board"`
}

var feedConnections = make(map[*client]struct{})
var lock sync.Mutex
var listenOnce sync.Once

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// SetOriginCheck replaces the origin check used for every upgrade.
func SetOriginCheck(check func(origin string) bool) {
	upgrader.CheckOrigin = func(r *http.Request) bool {
		return check(r.Header.Get("Origin"))
	}
}

// EvaluationWebSocketHandler answers every board frame with its evaluation.
// Rejected boards get a frame with the error set; the socket stays open.
func EvaluationWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade error")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)
	c := newClient(conn)
	log.Info().Str("remote", conn.RemoteAddr().String()).Msg("Evaluation socket connected")

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error().Err(err).Msg("WebSocket closed unexpectedly")
			}
			return
		}

		var e events.Evaluation
		var req BoardRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			e = events.Evaluation{
				Type:  events.TypeEvaluation,
				Error: fmt.Errorf("%w: %v", game.ErrInvalidRequest, err).Error(),
				Time:  time.Now().UTC(),
			}
		} else {
			e, _ = events.Evaluate(req.Board)
			events.Publish(e)
		}
		if err := c.writeJSON(e); err != nil {
			log.Error().Err(err).Str("evaluationID", e.ID).Msg("Error sending evaluation")
			return
		}
	}
}

// FeedWebSocketHandler streams every evaluation made by any client.
func FeedWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade error")
		return
	}
	c := newClient(conn)
	defer c.close()
	conn.SetReadLimit(maxMessageSize)

	// queued ahead of registration so the greeting is always the first frame
	c.enqueue(events.Evaluation{Type: events.TypeConnected})
	registerConnection(c)
	defer deregisterConnection(c)
	go c.writePump()

	// the feed is read-only; reading only detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func BroadcastEvaluation(e events.Evaluation) {
	lock.Lock()
	clients := make([]*client, 0, len(feedConnections))
	for c := range feedConnections {
		clients = append(clients, c)
	}
	lock.Unlock()

	if len(clients) == 0 {
		log.Debug().Str("evaluationID", e.ID).Msg("No feed connections to broadcast")
		return
	}

	log.Debug().Str("evaluationID", e.ID).Int("connectionsCount", len(clients)).Msg("Broadcasting evaluation")
	for _, c := range clients {
		if !c.enqueue(e) {
			log.Warn().Str("evaluationID", e.ID).Str("remote", c.conn.RemoteAddr().String()).Msg("Feed client is not keeping up, dropping connection")
			deregisterConnection(c)
			c.close()
		}
	}
}

func registerConnection(c *client) {
	lock.Lock()
	defer lock.Unlock()
	feedConnections[c] = struct{}{}
	log.Info().Int("connectionsCount", len(feedConnections)).Msg("Feed connection registered")
}

func deregisterConnection(c *client) {
	lock.Lock()
	defer lock.Unlock()
	delete(feedConnections, c)
	log.Info().Int("remainingConnections", len(feedConnections)).Msg("Feed connection deregistered")
}

// ConnectionCount returns the number of open feed connections.
func ConnectionCount() int {
	lock.Lock()
	defer lock.Unlock()
	return len(feedConnections)
}

// StartEventListening drains the event channel into the feed. Only the first
// call starts the listener.
func StartEventListening() {
	listenOnce.Do(func() {
		log.Info().Msg("Event listener starting...")
		go func() {
			for event := range events.EventChannel {
				if e := log.Debug(); e.Enabled() {
					if data, err := json.Marshal(event.Data); err != nil {
						e.Err(err).Msg("Failed to marshal evaluation event")
					} else {
						e.RawJSON("evaluation", data).Msg("Received evaluation event, broadcasting update")
					}
				}
				BroadcastEvaluation(event.Data)
			}
			log.Info().Msg("Event listener goroutine exited.")
		}()
	})
}
