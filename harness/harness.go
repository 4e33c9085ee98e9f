// Package harness measures search cost on a chained hash table by timing
// randomly chosen lookups and aggregating the results.
package harness

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/theflywheel/chainhash"
)

var (
	// ErrNoKeys is returned when there are no keys to pick a search target from
	ErrNoKeys = errors.New("no keys available")
	// ErrInvalidCount is returned by BatchSearch for a negative search count
	ErrInvalidCount = errors.New("search count must not be negative")
)

// Searcher is anything that returns a probe count for a key, or
// chainhash.NotFound.
type Searcher interface {
	Search(key string) int
}

// Harness runs timed searches against a Searcher
type Harness struct {
	searcher Searcher
	rand     *rand.Rand
	now      func() time.Time
	observer Observer
	logger   *zap.Logger
}

// Option configures a Harness
type Option func(*Harness)

// WithSeed makes key selection reproducible
func WithSeed(seed int64) Option {
	return func(h *Harness) {
		h.rand = rand.New(rand.NewSource(seed))
	}
}

// WithRand sets the random source used to pick keys
func WithRand(r *rand.Rand) Option {
	return func(h *Harness) {
		h.rand = r
	}
}

// WithClock replaces time.Now for measuring searches
func WithClock(now func() time.Time) Option {
	return func(h *Harness) {
		h.now = now
	}
}

// WithObserver receives every timed search
func WithObserver(o Observer) Option {
	return func(h *Harness) {
		h.observer = o
	}
}

// WithLogger sets the logger used for per-search debug output
func WithLogger(l *zap.Logger) Option {
	return func(h *Harness) {
		h.logger = l
	}
}

// New creates a harness over s. Without options keys are picked with a
// time-seeded source and timed with the monotonic clock.
func New(s Searcher, opts ...Option) *Harness {
	h := &Harness{
		searcher: s,
		now:      time.Now,
		observer: nopObserver{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.rand == nil {
		h.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return h
}

// SearchResult is the outcome of one timed search
type SearchResult struct {
	Key     string
	Elapsed time.Duration
	Probes  int
}

// Found reports whether the key was present
func (r SearchResult) Found() bool {
	return r.Probes != chainhash.NotFound
}

// Millis returns the elapsed time in fractional milliseconds
func (r SearchResult) Millis() float64 {
	return millis(r.Elapsed)
}

func (r SearchResult) String() string {
	return fmt.Sprintf("Word: '%s'\nTime Taken: %.3f ms\nProbes Used: %d", r.Key, r.Millis(), r.Probes)
}

// BatchResult aggregates a run of independent random searches.
// TotalProbes only counts searches that found their key; misses are
// counted separately so the sentinel never enters the sum.
type BatchResult struct {
	Count       int
	Min         time.Duration
	Max         time.Duration
	Total       time.Duration
	TotalProbes int
	Misses      int
}

// Avg returns the mean elapsed time, or zero for an empty batch
func (r BatchResult) Avg() time.Duration {
	if r.Count == 0 {
		return 0
	}
	return r.Total / time.Duration(r.Count)
}

// AvgMillis returns the mean elapsed time in fractional milliseconds
func (r BatchResult) AvgMillis() float64 {
	if r.Count == 0 {
		return 0
	}
	return float64(r.Total) / float64(r.Count) / float64(time.Millisecond)
}

// MinMillis returns the fastest search in fractional milliseconds
func (r BatchResult) MinMillis() float64 { return millis(r.Min) }

// MaxMillis returns the slowest search in fractional milliseconds
func (r BatchResult) MaxMillis() float64 { return millis(r.Max) }

func (r BatchResult) String() string {
	if r.Count == 0 {
		return "For 0 searches: no searches performed"
	}
	return fmt.Sprintf("For %d searches: Min Time: %.3f ms, Avg Time: %.3f ms, Max Time: %.3f ms, Total Probes: %d",
		r.Count, r.MinMillis(), r.AvgMillis(), r.MaxMillis(), r.TotalProbes)
}

// SingleSearch times a search for one key chosen uniformly from keys
func (h *Harness) SingleSearch(keys []string) (SearchResult, error) {
	if len(keys) == 0 {
		return SearchResult{}, ErrNoKeys
	}
	return h.timedSearch(h.pick(keys)), nil
}

// BatchSearch performs count searches for keys chosen uniformly from keys,
// with replacement, and aggregates their timings and probe counts.
// A count of zero yields an empty result.
func (h *Harness) BatchSearch(keys []string, count int) (BatchResult, error) {
	if count < 0 {
		return BatchResult{}, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}
	if count == 0 {
		return BatchResult{}, nil
	}
	if len(keys) == 0 {
		return BatchResult{}, ErrNoKeys
	}

	res := BatchResult{Count: count, Min: time.Duration(1<<63 - 1)}
	for i := 0; i < count; i++ {
		r := h.timedSearch(h.pick(keys))

		if r.Elapsed < res.Min {
			res.Min = r.Elapsed
		}
		if r.Elapsed > res.Max {
			res.Max = r.Elapsed
		}
		res.Total += r.Elapsed

		if r.Found() {
			res.TotalProbes += r.Probes
		} else {
			res.Misses++
		}
	}

	h.logger.Debug("batch search complete",
		zap.Int("count", res.Count),
		zap.Duration("min", res.Min),
		zap.Duration("max", res.Max),
		zap.Int("total_probes", res.TotalProbes),
		zap.Int("misses", res.Misses))
	return res, nil
}

func (h *Harness) pick(keys []string) string {
	return keys[h.rand.Intn(len(keys))]
}

func (h *Harness) timedSearch(key string) SearchResult {
	start := h.now()
	probes := h.searcher.Search(key)
	elapsed := h.now().Sub(start)

	h.observer.ObserveSearch(key, elapsed, probes)
	h.logger.Debug("search",
		zap.String("key", key),
		zap.Duration("elapsed", elapsed),
		zap.Int("probes", probes))

	return SearchResult{Key: key, Elapsed: elapsed, Probes: probes}
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
