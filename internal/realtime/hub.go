// Package realtime streams a running fill job's progress to subscribed
// websocket clients: one job, any number of listeners, with no concept
// of rooms, players, chat, or turns.
package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// MessageType distinguishes the handful of server-to-client messages a
// fill job's subscribers can receive.
type MessageType string

const (
	MsgProgress MessageType = "progress"
	MsgDone     MessageType = "done"
	MsgError    MessageType = "error"
)

// Message is the envelope every websocket frame carries.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ProgressPayload mirrors one row of summary.csv: it is sent whenever a
// completed MCTS iteration improves the best-seen reward.
type ProgressPayload struct {
	Iteration           int     `json:"iteration"`
	BestRewardSoFar     float64 `json:"bestRewardSoFar"`
	EntriesFilledInBest int     `json:"entriesFilledInBest"`
}

// DonePayload is sent once, when the job's run completes.
type DonePayload struct {
	BestReward    float64 `json:"bestReward"`
	EntriesFilled int     `json:"entriesFilled"`
	EntriesTotal  int     `json:"entriesTotal"`
	IterationsRun int     `json:"iterationsRun"`
}

// Client is one subscriber's websocket connection.
type Client struct {
	JobID string
	conn  *websocket.Conn
	send  chan Message
}

// Hub fans out one job's progress messages to every subscribed client.
// A job's client set is created on its first subscribe and removed when
// its last client disconnects; publishing to a job with no client set
// does nothing.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{} // jobID -> client set
}

// NewHub builds an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*Client]struct{})}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Subscribe upgrades an HTTP request to a websocket connection and
// registers it as a listener for jobID. It blocks until the connection
// closes, so callers should invoke it as (or from) the HTTP handler
// goroutine.
func (h *Hub) Subscribe(jobID string, w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{JobID: jobID, conn: conn, send: make(chan Message, 16)}
	h.register(client)
	defer h.unregister(client)

	go h.writePump(client)
	h.readPump(client)
	return nil
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.JobID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[c.JobID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.clients[c.JobID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.JobID)
		}
	}
	close(c.send)
	c.conn.Close()
}

// readPump discards client frames: subscribers never send job commands,
// but the read loop must run to process control frames (ping/close) and
// detect disconnects.
func (h *Hub) readPump(c *Client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *Client) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// PublishProgress broadcasts a progress update to every client
// subscribed to jobID. A job with no subscribers is a silent no-op.
func (h *Hub) PublishProgress(jobID string, p ProgressPayload) {
	h.broadcast(jobID, MsgProgress, p)
}

// PublishDone broadcasts the final result once. It does not close any
// connection; each client leaves the job's set when it disconnects.
func (h *Hub) PublishDone(jobID string, d DonePayload) {
	h.broadcast(jobID, MsgDone, d)
}

// PublishError broadcasts a job failure.
func (h *Hub) PublishError(jobID string, message string) {
	h.broadcast(jobID, MsgError, struct {
		Message string `json:"message"`
	}{message})
}

func (h *Hub) broadcast(jobID string, msgType MessageType, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("realtime: failed to marshal %s payload: %v", msgType, err)
		return
	}
	msg := Message{Type: msgType, Payload: raw}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[jobID] {
		select {
		case c.send <- msg:
		default:
			log.Printf("realtime: dropping %s message for a slow client on job %s", msgType, jobID)
		}
	}
}
