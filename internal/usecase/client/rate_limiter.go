package client

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/dreamw/travel-quote/internal/domain"
	"github.com/dreamw/travel-quote/internal/port"
)

const (
	// HistoryKey is the storage key of the submission timestamp history
	HistoryKey = "submission_history"

	DefaultMaxSubmissions = domain.DefaultMaxSubmissions
	DefaultWindow         = domain.DefaultWindow

	// maxLoggedHistory bounds how much of a corrupt stored value is logged
	maxLoggedHistory = 128
)

// RateLimiter admits at most maxSubmissions accepted submissions within a
// rolling window. History is a JSON array of unix-millisecond timestamps
// kept in a KeyValueStore, so it survives restarts on the same device.
type RateLimiter struct {
	store  port.KeyValueStore
	clock  port.Clock
	logger *log.Logger

	key    string
	max    int
	window time.Duration
}

type RateLimiterOption func(*RateLimiter)

func WithMaxSubmissions(n int) RateLimiterOption {
	return func(r *RateLimiter) { r.max = n }
}

func WithWindow(d time.Duration) RateLimiterOption {
	return func(r *RateLimiter) { r.window = d }
}

func WithHistoryKey(key string) RateLimiterOption {
	return func(r *RateLimiter) { r.key = key }
}

func WithLimiterLogger(l *log.Logger) RateLimiterOption {
	return func(r *RateLimiter) { r.logger = l }
}

func NewRateLimiter(store port.KeyValueStore, clock port.Clock, opts ...RateLimiterOption) *RateLimiter {
	r := &RateLimiter{
		store:  store,
		clock:  clock,
		logger: log.Default(),
		key:    HistoryKey,
		max:    DefaultMaxSubmissions,
		window: DefaultWindow,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.clock == nil {
		r.clock = port.SystemClock{}
	}
	return r
}

// IsAdmitted prunes expired entries, writes the pruned history back and
// reports whether another submission fits in the window.
func (r *RateLimiter) IsAdmitted(ctx context.Context) bool {
	history := r.load(ctx)
	now := r.clock.Now().UnixMilli()
	windowMs := r.window.Milliseconds()

	recent := history[:0]
	for _, ts := range history {
		if now-ts < windowMs {
			recent = append(recent, ts)
		}
	}
	r.save(ctx, recent)

	admitted := len(recent) < r.max
	if !admitted {
		r.logger.Printf("Rate limit reached: %d submissions in the last %s", len(recent), r.window)
	}
	return admitted
}

// RecordAttempt appends the current time to the history.
// Call it only after a submission was actually delivered.
func (r *RateLimiter) RecordAttempt(ctx context.Context) {
	history := r.load(ctx)
	history = append(history, r.clock.Now().UnixMilli())
	r.save(ctx, history)
}

// History returns the stored timestamps without pruning
func (r *RateLimiter) History(ctx context.Context) []time.Time {
	history := r.load(ctx)
	out := make([]time.Time, 0, len(history))
	for _, ts := range history {
		out = append(out, time.UnixMilli(ts))
	}
	return out
}

// Limits returns the configured maximum and window
func (r *RateLimiter) Limits() (int, time.Duration) {
	return r.max, r.window
}

// load never fails: unreadable or corrupt history counts as empty
func (r *RateLimiter) load(ctx context.Context) []int64 {
	raw, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		r.logger.Printf("Read submission history: %v (treating as empty)", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}
	var history []int64
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		r.logger.Printf("Corrupt submission history %q (%d bytes): %v (treating as empty)", truncate(raw, maxLoggedHistory), len(raw), err)
		return nil
	}
	return history
}

func (r *RateLimiter) save(ctx context.Context, history []int64) {
	if history == nil {
		history = []int64{}
	}
	data, err := json.Marshal(history)
	if err != nil {
		r.logger.Printf("Encode submission history: %v", err)
		return
	}
	if err := r.store.Set(ctx, r.key, string(data)); err != nil {
		r.logger.Printf("Write submission history: %v", err)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
