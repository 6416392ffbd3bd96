package store

import (
	"fmt"
	"time"
)

// FillRun is one row of the fill_runs history table.
type FillRun struct {
	ID                string
	LayoutFingerprint string
	WordFingerprint   string
	RandomSeed        int64
	MaxMCTSIterations int
	BestReward        float64
	EntriesFilled     int
	EntriesTotal      int
	IterationsRun     int
	StartedAt         time.Time
	FinishedAt        time.Time
}

// RecordFillRun inserts one completed run into the history table. A nil
// DB makes this a no-op: history is additive, never load-bearing for a
// single run's result.
func (d *Database) RecordFillRun(r FillRun) error {
	if d.DB == nil {
		return nil
	}
	_, err := d.DB.Exec(`
		INSERT INTO fill_runs
			(id, layout_fingerprint, word_fingerprint, random_seed,
			 max_mcts_iterations, best_reward, entries_filled, entries_total,
			 iterations_run, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING`,
		r.ID, r.LayoutFingerprint, r.WordFingerprint, r.RandomSeed,
		r.MaxMCTSIterations, r.BestReward, r.EntriesFilled, r.EntriesTotal,
		r.IterationsRun, r.StartedAt, r.FinishedAt)
	if err != nil {
		return fmt.Errorf("store: failed to record fill run: %w", err)
	}
	return nil
}

// Stats is the aggregate the stats subcommand reports.
type Stats struct {
	TotalRuns          int
	PerfectRuns        int // best_reward = 1
	MeanReward         float64
	MeanIterationsRun  float64
}

// ComputeStats aggregates the fill_runs table. Returns a zero Stats with
// TotalRuns 0 when no Postgres connection is configured.
func (d *Database) ComputeStats() (*Stats, error) {
	if d.DB == nil {
		return &Stats{}, nil
	}

	row := d.DB.QueryRow(`
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE best_reward >= 1),
			COALESCE(AVG(best_reward), 0),
			COALESCE(AVG(iterations_run), 0)
		FROM fill_runs`)

	var s Stats
	if err := row.Scan(&s.TotalRuns, &s.PerfectRuns, &s.MeanReward, &s.MeanIterationsRun); err != nil {
		return nil, fmt.Errorf("store: failed to compute stats: %w", err)
	}
	return &s, nil
}
