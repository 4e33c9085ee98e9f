package chainhash

import (
	"errors"
	"fmt"
	"math"
)

// NotFound is returned by Search when the key is not present in its chain.
// Valid probe counts are always >= 1.
const NotFound = -1

var (
	// ErrInvalidSize is returned by New when the requested bucket count is not positive
	ErrInvalidSize = errors.New("table size must be positive")
	// ErrNilHashFunc is returned when WithHashFunc is given a nil function
	ErrNilHashFunc = errors.New("hash function must not be nil")
)

// Table is a hash table of string keys with a fixed number of buckets.
// Collisions are resolved by separate chaining: each bucket holds the keys
// that hashed to it, in insertion order.
type Table struct {
	buckets [][]string
	hash    HashFunc
	entries int
}

// Option configures a Table at construction
type Option func(*Table) error

// WithHashFunc selects the hash algorithm used to pick buckets
func WithHashFunc(fn HashFunc) Option {
	return func(t *Table) error {
		if fn == nil {
			return ErrNilHashFunc
		}
		t.hash = fn
		return nil
	}
}

// New creates a table with size empty buckets
func New(size int, opts ...Option) (*Table, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}

	t := &Table{hash: JavaHash}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	t.buckets = make([][]string, size)
	return t, nil
}

func (t *Table) mustBeInitialized() {
	if t == nil || len(t.buckets) == 0 {
		panic("chainhash: use of uninitialized Table; construct it with New")
	}
}

// Index returns the bucket a key maps to, in [0, Size()).
func (t *Table) Index(key string) int {
	t.mustBeInitialized()
	h := t.hash(key) & math.MaxInt64
	return int(h % uint64(len(t.buckets)))
}

// Insert appends key to the end of its bucket's chain.
// Duplicates are kept as separate entries.
func (t *Table) Insert(key string) {
	t.mustBeInitialized()
	idx := t.Index(key)
	t.buckets[idx] = append(t.buckets[idx], key)
	t.entries++
}

// InsertAll inserts keys one at a time, in order
func (t *Table) InsertAll(keys ...string) {
	for _, key := range keys {
		t.Insert(key)
	}
}

// Search scans the key's chain in insertion order and returns the 1-based
// number of comparisons it took to find the first equal entry, or NotFound.
func (t *Table) Search(key string) int {
	t.mustBeInitialized()
	chain := t.buckets[t.Index(key)]

	probes := 0
	for _, entry := range chain {
		probes++
		if entry == key {
			return probes
		}
	}
	return NotFound
}

// Contains reports whether key has been inserted
func (t *Table) Contains(key string) bool {
	return t.Search(key) != NotFound
}

// Size returns the number of buckets
func (t *Table) Size() int {
	t.mustBeInitialized()
	return len(t.buckets)
}

// Len returns the total number of entries across all buckets
func (t *Table) Len() int {
	t.mustBeInitialized()
	return t.entries
}

// LoadFactor is the ratio of entries to buckets
func (t *Table) LoadFactor() float64 {
	t.mustBeInitialized()
	return float64(t.entries) / float64(len(t.buckets))
}

// Chain returns a copy of the entries in bucket i
func (t *Table) Chain(i int) []string {
	t.mustBeInitialized()
	if i < 0 || i >= len(t.buckets) {
		panic(fmt.Sprintf("chainhash: bucket index %d out of range [0, %d)", i, len(t.buckets)))
	}
	out := make([]string, len(t.buckets[i]))
	copy(out, t.buckets[i])
	return out
}

// Stats summarizes how entries are distributed over the buckets
type Stats struct {
	Size         int     `json:"size"`
	Entries      int     `json:"entries"`
	EmptyBuckets int     `json:"empty_buckets"`
	LongestChain int     `json:"longest_chain"`
	LoadFactor   float64 `json:"load_factor"`
}

// Stats walks every bucket and reports the chain distribution
func (t *Table) Stats() Stats {
	t.mustBeInitialized()
	s := Stats{
		Size:       len(t.buckets),
		Entries:    t.entries,
		LoadFactor: t.LoadFactor(),
	}
	for _, chain := range t.buckets {
		if len(chain) == 0 {
			s.EmptyBuckets++
		}
		if len(chain) > s.LongestChain {
			s.LongestChain = len(chain)
		}
	}
	return s
}
