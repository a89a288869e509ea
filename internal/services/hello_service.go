package services

import (
	"context"
	"fmt"

	"lambda-services-api/internal/adapters/storage"
)

const (
	// DefaultUserID is the directory entry reported by the hello-world function
	DefaultUserID = "1"

	maxReportedBuckets = 5
)

// helloService implements the HelloService interface
type helloService struct {
	buckets storage.BucketLister
	users   UserService
	region  string
}

// NewHelloService creates a new hello service instance
func NewHelloService(buckets storage.BucketLister, users UserService, config *ServiceConfig) HelloService {
	config = config.withDefaults()
	return &helloService{
		buckets: buckets,
		users:   users,
		region:  config.Region,
	}
}

// Snapshot resolves the default user, then lists the account's buckets
func (s *helloService) Snapshot(ctx context.Context) (*HelloSnapshot, error) {
	user, err := s.users.LookupUser(ctx, DefaultUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve default user: %w", err)
	}

	buckets, err := s.buckets.ListBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list buckets: %w", err)
	}

	return &HelloSnapshot{
		DefaultUser: user,
		Region:      s.region,
		BucketCount: len(buckets),
		BucketNames: storage.BucketNames(buckets, maxReportedBuckets),
	}, nil
}
