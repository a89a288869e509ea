package storage

import (
	"context"
	"sync"
)

// MockBucketLister is an in-memory implementation of BucketLister for testing
// and local runs.
type MockBucketLister struct {
	mu      sync.RWMutex
	buckets []Bucket
	err     error
	calls   int
}

// NewMockBucketLister creates a new MockBucketLister reporting the given buckets
func NewMockBucketLister(names ...string) *MockBucketLister {
	buckets := make([]Bucket, 0, len(names))
	for _, name := range names {
		buckets = append(buckets, Bucket{Name: name})
	}
	return &MockBucketLister{buckets: buckets}
}

// SetError makes subsequent ListBuckets calls fail with err. Passing nil clears it.
func (m *MockBucketLister) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns the number of ListBuckets invocations so far.
func (m *MockBucketLister) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

// ListBuckets implements BucketLister.ListBuckets
func (m *MockBucketLister) ListBuckets(ctx context.Context) ([]Bucket, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, NewStorageError("ListBuckets", "mock", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return nil, NewStorageError("ListBuckets", "mock", m.err)
	}

	// Return a copy of the inventory
	return append([]Bucket(nil), m.buckets...), nil
}
