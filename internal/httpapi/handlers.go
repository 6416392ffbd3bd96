package httpapi

import (
	"net/http"

	"github.com/crossplay/xwordgen/internal/auth"
	"github.com/crossplay/xwordgen/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers wires the job manager into gin request handlers.
type Handlers struct {
	jobs *JobManager
}

// NewHandlers builds a Handlers bound to jobs.
func NewHandlers(jobs *JobManager) *Handlers {
	return &Handlers{jobs: jobs}
}

// SubmitFill handles POST /fills: decodes a JobRequest, starts the run,
// and returns the new job id immediately.
func (h *Handlers) SubmitFill(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.jobs.Submit(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"id": id, "status": JobRunning})
}

// GetFill handles GET /fills/:id.
func (h *Handlers) GetFill(c *gin.Context) {
	job := h.jobs.Get(c.Param("id"))
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	resp := gin.H{"id": job.ID, "status": job.Status}
	switch job.Status {
	case JobDone:
		resp["bestReward"] = job.BestReward
		resp["entries"] = job.Entries
		resp["gridCsv"] = job.GridCSV
		resp["summaryCsv"] = job.SummaryCSV
	case JobFailed:
		resp["error"] = job.Error
	}
	c.JSON(http.StatusOK, resp)
}

// SubscribeFill handles GET /fills/:id/ws, upgrading to a websocket
// stream of the job's progress.
func (h *Handlers) SubscribeFill(c *gin.Context) {
	id := c.Param("id")
	if h.jobs.Get(id) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	if err := h.jobs.hub.Subscribe(id, c.Writer, c.Request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// Health handles GET /health.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Metrics handles GET /metrics, returning the request-performance
// counters middleware.PerformanceMonitor records.
func Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.GetMetrics())
}

// IssueToken handles POST /auth/token for the token-issuing admin flow:
// callers present a pre-shared admin secret and receive a bearer token
// scoped to the requested subject.
func IssueToken(svc *auth.Service, adminSecretHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Subject     string `json:"subject" binding:"required"`
			AdminSecret string `json:"adminSecret" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !svc.CheckSecret(req.AdminSecret, adminSecretHash) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidCredentials.Error()})
			return
		}

		token, err := svc.GenerateToken(req.Subject)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}
