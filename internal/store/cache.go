package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by GetCachedRun when the key is absent or
// caching is unavailable (Redis not configured).
var ErrCacheMiss = errors.New("store: cache miss")

// CachedRun is the serialized shape of a completed run, keyed by RunKey.
type CachedRun struct {
	GridCSV    string `json:"gridCsv"`
	SummaryCSV string `json:"summaryCsv"`
	BestReward float64 `json:"bestReward"`
}

const cacheTTL = 24 * time.Hour

// GetCachedRun looks up a previously-computed run by its content key.
func (d *Database) GetCachedRun(ctx context.Context, key string) (*CachedRun, error) {
	if d.Redis == nil {
		return nil, ErrCacheMiss
	}
	raw, err := d.Redis.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	var cr CachedRun
	if err := json.Unmarshal(raw, &cr); err != nil {
		return nil, err
	}
	return &cr, nil
}

// PutCachedRun stores a completed run's outputs under its content key.
// A nil Redis client makes this a silent no-op: caching is an
// optimization, never a requirement for correctness.
func (d *Database) PutCachedRun(ctx context.Context, key string, cr *CachedRun) error {
	if d.Redis == nil {
		return nil
	}
	raw, err := json.Marshal(cr)
	if err != nil {
		return err
	}
	return d.Redis.Set(ctx, key, raw, cacheTTL).Err()
}
