package storage

import (
	"context"
	"time"
)

// Bucket describes a storage bucket visible to the account.
type Bucket struct {
	Name         string    `json:"name"`
	CreationDate time.Time `json:"creation_date,omitempty"`
}

// BucketLister provides read-only access to the account's bucket inventory.
// Implementations must be safe for concurrent use; a single instance is built
// per process and shared across invocations.
type BucketLister interface {
	// ListBuckets returns every bucket owned by the caller, in the order the
	// provider reports them.
	ListBuckets(ctx context.Context) ([]Bucket, error)
}

// StorageConfig represents configuration for storage providers
type StorageConfig struct {
	Type    string            `json:"type" yaml:"type"`       // "s3" or "mock"
	Region  string            `json:"region" yaml:"region"`   // For cloud storage
	Options map[string]string `json:"options" yaml:"options"` // Provider-specific options
}

// BucketNames returns the names of buckets, keeping at most limit entries.
// A non-positive limit keeps them all.
func BucketNames(buckets []Bucket, limit int) []string {
	n := len(buckets)
	if limit > 0 && n > limit {
		n = limit
	}

	names := make([]string, 0, n)
	for _, b := range buckets[:n] {
		names = append(names, b.Name)
	}
	return names
}
