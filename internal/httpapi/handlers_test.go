package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crossplay/xwordgen/internal/auth"
	"github.com/crossplay/xwordgen/internal/realtime"
	"github.com/crossplay/xwordgen/internal/store"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() (*gin.Engine, *Handlers) {
	jobs := NewJobManager(realtime.NewHub(), &store.Database{})
	handlers := NewHandlers(jobs)

	r := gin.New()
	r.GET("/health", Health)
	r.GET("/metrics", Metrics)
	r.POST("/fills", handlers.SubmitFill)
	r.GET("/fills/:id", handlers.GetFill)
	return r, handlers
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestMetrics(t *testing.T) {
	r, _ := newTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestSubmitFill_ThenGetFill(t *testing.T) {
	r, _ := newTestRouter()

	body, _ := json.Marshal(JobRequest{MaxMCTSIterations: 10})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/fills", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}

	var submitResp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &submitResp); err != nil {
		t.Fatalf("decode submit response: %v", err)
	}
	if submitResp.ID == "" {
		t.Fatal("expected a non-empty job id")
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/fills/"+submitResp.ID, nil)
	r.ServeHTTP(w2, req2)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w2.Code)
	}
}

func TestGetFill_UnknownID(t *testing.T) {
	r, _ := newTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/fills/does-not-exist", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestIssueToken(t *testing.T) {
	svc := auth.NewService("test-secret")
	hash, err := svc.HashSecret("admin-secret")
	if err != nil {
		t.Fatalf("HashSecret: %v", err)
	}

	r := gin.New()
	r.POST("/auth/token", IssueToken(svc, hash))

	body, _ := json.Marshal(map[string]string{
		"subject":     "ci-pipeline",
		"adminSecret": "admin-secret",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode token response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a non-empty token")
	}

	if _, err := svc.ValidateToken(resp.Token); err != nil {
		t.Fatalf("expected issued token to validate, got %v", err)
	}
}

func TestIssueToken_WrongSecret(t *testing.T) {
	svc := auth.NewService("test-secret")
	hash, err := svc.HashSecret("admin-secret")
	if err != nil {
		t.Fatalf("HashSecret: %v", err)
	}

	r := gin.New()
	r.POST("/auth/token", IssueToken(svc, hash))

	body, _ := json.Marshal(map[string]string{
		"subject":     "ci-pipeline",
		"adminSecret": "wrong-secret",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
