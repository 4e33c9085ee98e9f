package chainhash

import "sync"

// SyncTable guards a Table with a read/write mutex so inserts and searches
// may come from several goroutines.
type SyncTable struct {
	mu    sync.RWMutex
	table *Table
}

// NewSync creates a locked table with size buckets
func NewSync(size int, opts ...Option) (*SyncTable, error) {
	t, err := New(size, opts...)
	if err != nil {
		return nil, err
	}
	return &SyncTable{table: t}, nil
}

// Insert appends key to its chain under the write lock
func (st *SyncTable) Insert(key string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.table.Insert(key)
}

// InsertAll inserts keys in order while holding the write lock once
func (st *SyncTable) InsertAll(keys ...string) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.table.InsertAll(keys...)
}

// Search returns the probe count for key, or NotFound
func (st *SyncTable) Search(key string) int {
	st.mu.RLock()
	defer st.mu.RUnlock()

	return st.table.Search(key)
}

// Contains reports whether key has been inserted
func (st *SyncTable) Contains(key string) bool {
	return st.Search(key) != NotFound
}

// Index returns the bucket key maps to. The bucket array never changes
// after construction, so no lock is needed.
func (st *SyncTable) Index(key string) int {
	return st.table.Index(key)
}

// Len returns the total number of entries
func (st *SyncTable) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()

	return st.table.Len()
}

// Stats reports the chain distribution
func (st *SyncTable) Stats() Stats {
	st.mu.RLock()
	defer st.mu.RUnlock()

	return st.table.Stats()
}
