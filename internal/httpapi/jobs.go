// Package httpapi exposes the orchestrator as a service: POST /fills
// submits a layout + word source + budget as a job, GET /fills/:id
// reports status and (once finished) the grid/summary, and
// /fills/:id/ws streams iteration progress. Grounded on cmd/server's
// gin wiring and internal/api's handler style, repointed from
// multiplayer solving rooms at fill jobs.
package httpapi

import (
	"context"
	"sync"
	"time"

	"github.com/crossplay/xwordgen/internal/realtime"
	"github.com/crossplay/xwordgen/internal/store"
	"github.com/crossplay/xwordgen/pkg/grid"
	"github.com/crossplay/xwordgen/pkg/mcts"
	"github.com/crossplay/xwordgen/pkg/orchestrator"
	"github.com/crossplay/xwordgen/pkg/wordindex"
	"github.com/google/uuid"
)

// JobStatus is the lifecycle state of one submitted fill job.
type JobStatus string

const (
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

// JobRequest is the decoded body of POST /fills.
type JobRequest struct {
	PathToLayout      string `json:"pathToLayout"`
	NumRows           int    `json:"numRows"`
	NumCols           int    `json:"numCols"`
	PathToWords       string `json:"pathToWords"`
	MaxNumWords       int    `json:"maxNumWords"`
	MaxMCTSIterations int    `json:"maxMctsIterations"`
	RandomSeed        int64  `json:"randomSeed"`
}

// Job is the server-side record of one fill run, submitted or complete.
type Job struct {
	ID         string
	Status     JobStatus
	Error      string
	GridCSV    string
	SummaryCSV string
	BestReward float64
	Entries    int
	Iterations int
	CreatedAt  time.Time
}

// JobManager runs fill jobs in background goroutines and keeps their
// results in memory, optionally backed by store.Database for history
// and content-addressed caching.
type JobManager struct {
	hub   *realtime.Hub
	db    *store.Database
	mu    sync.RWMutex
	jobs  map[string]*Job
}

// NewJobManager builds a manager; db may be nil (history/cache disabled).
func NewJobManager(hub *realtime.Hub, db *store.Database) *JobManager {
	return &JobManager{hub: hub, db: db, jobs: make(map[string]*Job)}
}

// Get returns the current state of a job, or nil if unknown.
func (m *JobManager) Get(id string) *Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.jobs[id]
}

// Submit builds the layout/word suppliers from req, registers the job as
// running, and launches a background run, which serves a cached result
// when the store has one. req is not checked here: bad inputs surface as
// a failed job. Returns the new job's id.
func (m *JobManager) Submit(req JobRequest) (string, error) {
	var layout grid.LayoutSource
	if req.PathToLayout != "" {
		layout = grid.ExistingLayout{Path: req.PathToLayout}
	} else {
		rows, cols := req.NumRows, req.NumCols
		if rows == 0 {
			rows = 4
		}
		if cols == 0 {
			cols = 5
		}
		layout = grid.NewLayout{Rows: rows, Cols: cols}
	}

	var words wordindex.Source
	if req.PathToWords != "" {
		words = wordindex.FileWords{Path: req.PathToWords}
	} else {
		words = wordindex.DictionaryWords{}
	}

	maxIterations := req.MaxMCTSIterations
	if maxIterations == 0 {
		maxIterations = 1000
	}

	id := uuid.NewString()
	job := &Job{ID: id, Status: JobRunning, CreatedAt: time.Now()}
	m.mu.Lock()
	m.jobs[id] = job
	m.mu.Unlock()

	lastPublished := -1.0
	cfg := orchestrator.Config{
		Layout:            layout,
		Words:             words,
		MaxNumWords:       req.MaxNumWords,
		MaxMCTSIterations: maxIterations,
		RandomSeed:        req.RandomSeed,
		OnIteration: func(stat mcts.IterationStat) {
			if stat.BestRewardSoFar <= lastPublished {
				return
			}
			lastPublished = stat.BestRewardSoFar
			m.hub.PublishProgress(id, realtime.ProgressPayload{
				Iteration:           stat.Iteration,
				BestRewardSoFar:     stat.BestRewardSoFar,
				EntriesFilledInBest: stat.EntriesFilledInBest,
			})
		},
	}

	go m.run(job, cfg)

	return id, nil
}

func (m *JobManager) run(job *Job, cfg orchestrator.Config) {
	started := time.Now()

	layoutBlocked, layoutFixed, layoutErr := cfg.Layout.Layout()
	words, wordsErr := cfg.Words.Words()

	var cacheKey string
	if m.db != nil && layoutErr == nil && wordsErr == nil {
		fixedFP := make([]store.FixedLetterFingerprint, len(layoutFixed))
		for i, f := range layoutFixed {
			fixedFP[i] = store.FixedLetterFingerprint{Row: f.Row, Col: f.Col, Letter: f.Letter}
		}
		layoutFP := store.FingerprintLayout(layoutBlocked, fixedFP)
		wordFP := store.FingerprintWords(words)
		cacheKey = store.RunKey(layoutFP, wordFP, cfg.MaxMCTSIterations, cfg.RandomSeed)

		if cached, err := m.db.GetCachedRun(context.Background(), cacheKey); err == nil {
			m.finish(job, cached.GridCSV, cached.SummaryCSV, cached.BestReward, 0, 0)
			return
		}
	}

	result, err := orchestrator.Run(cfg)
	if err != nil {
		m.fail(job, err.Error())
		return
	}

	gridCSV, summaryCSV, err := orchestrator.RenderOutputs(job.ID, result.Grid, result.MCTS.BestState, result.MCTS)
	if err != nil {
		m.fail(job, err.Error())
		return
	}

	m.finish(job, gridCSV, summaryCSV, result.MCTS.BestReward, result.MCTS.BestState.FilledCount(), len(result.Grid.Entries))

	if m.db != nil {
		if cacheKey != "" {
			_ = m.db.PutCachedRun(context.Background(), cacheKey, &store.CachedRun{
				GridCSV:    gridCSV,
				SummaryCSV: summaryCSV,
				BestReward: result.MCTS.BestReward,
			})
		}
		layoutFP := ""
		wordFP := ""
		if layoutErr == nil && wordsErr == nil {
			fixedFP := make([]store.FixedLetterFingerprint, len(layoutFixed))
			for i, f := range layoutFixed {
				fixedFP[i] = store.FixedLetterFingerprint{Row: f.Row, Col: f.Col, Letter: f.Letter}
			}
			layoutFP = store.FingerprintLayout(layoutBlocked, fixedFP)
			wordFP = store.FingerprintWords(words)
		}
		_ = m.db.RecordFillRun(store.FillRun{
			ID:                job.ID,
			LayoutFingerprint: layoutFP,
			WordFingerprint:   wordFP,
			RandomSeed:        cfg.RandomSeed,
			MaxMCTSIterations: cfg.MaxMCTSIterations,
			BestReward:        result.MCTS.BestReward,
			EntriesFilled:     result.MCTS.BestState.FilledCount(),
			EntriesTotal:      len(result.Grid.Entries),
			IterationsRun:     result.MCTS.IterationsRun,
			StartedAt:         started,
			FinishedAt:        time.Now(),
		})
	}
}

func (m *JobManager) finish(job *Job, gridCSV, summaryCSV string, bestReward float64, filled, total int) {
	m.mu.Lock()
	job.Status = JobDone
	job.GridCSV = gridCSV
	job.SummaryCSV = summaryCSV
	job.BestReward = bestReward
	job.Entries = total
	m.mu.Unlock()

	m.hub.PublishDone(job.ID, realtime.DonePayload{
		BestReward:    bestReward,
		EntriesFilled: filled,
		EntriesTotal:  total,
	})
}

func (m *JobManager) fail(job *Job, message string) {
	m.mu.Lock()
	job.Status = JobFailed
	job.Error = message
	m.mu.Unlock()

	m.hub.PublishError(job.ID, message)
}
