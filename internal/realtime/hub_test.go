package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func startTestServer(t *testing.T, h *Hub, jobID string) (*httptest.Server, string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h.Subscribe(jobID, w, r); err != nil {
			t.Errorf("Subscribe failed: %v", err)
		}
	}))
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	return srv, wsURL
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	return conn
}

func TestHub_PublishProgress_DeliversToSubscriber(t *testing.T) {
	h := NewHub()
	srv, url := startTestServer(t, h, "job-1")
	defer srv.Close()

	conn := dial(t, url)
	defer conn.Close()

	waitForSubscriber(t, h, "job-1")

	h.PublishProgress("job-1", ProgressPayload{Iteration: 5, BestRewardSoFar: 0.5, EntriesFilledInBest: 3})

	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if msg.Type != MsgProgress {
		t.Fatalf("expected MsgProgress, got %v", msg.Type)
	}
}

func TestHub_PublishDone_DeliversToSubscriber(t *testing.T) {
	h := NewHub()
	srv, url := startTestServer(t, h, "job-2")
	defer srv.Close()

	conn := dial(t, url)
	defer conn.Close()

	waitForSubscriber(t, h, "job-2")

	h.PublishDone("job-2", DonePayload{BestReward: 1, EntriesFilled: 4, EntriesTotal: 4, IterationsRun: 10})

	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if msg.Type != MsgDone {
		t.Fatalf("expected MsgDone, got %v", msg.Type)
	}
}

func TestHub_PublishToUnknownJob_IsNoOp(t *testing.T) {
	h := NewHub()
	h.PublishProgress("no-such-job", ProgressPayload{Iteration: 1})
}

func TestHub_DisconnectRemovesClient(t *testing.T) {
	h := NewHub()
	srv, url := startTestServer(t, h, "job-3")
	defer srv.Close()

	conn := dial(t, url)
	waitForSubscriber(t, h, "job-3")
	conn.Close()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		h.mu.RLock()
		_, ok := h.clients["job-3"]
		h.mu.RUnlock()
		if !ok {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("expected job-3's client set to be cleaned up after disconnect")
}

func waitForSubscriber(t *testing.T, h *Hub, jobID string) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		h.mu.RLock()
		n := len(h.clients[jobID])
		h.mu.RUnlock()
		if n > 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for a subscriber on job %s", jobID)
}
