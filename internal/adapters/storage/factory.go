package storage

import (
	"context"
	"fmt"
	"strings"
)

// StorageType represents the type of storage implementation
type StorageType string

const (
	StorageTypeS3   StorageType = "s3"
	StorageTypeMock StorageType = "mock"
)

// Factory creates BucketLister instances based on configuration
type Factory struct{}

// NewFactory creates a new storage factory
func NewFactory() *Factory {
	return &Factory{}
}

// Create creates a BucketLister instance based on the provided configuration
func (f *Factory) Create(ctx context.Context, config *StorageConfig) (BucketLister, error) {
	if config == nil {
		return nil, fmt.Errorf("storage config is required: %w", ErrInvalidConfig)
	}

	storageType := StorageType(strings.ToLower(config.Type))

	var lister BucketLister
	var err error

	switch storageType {
	case StorageTypeS3:
		lister, err = f.createS3Lister(ctx, config)
	case StorageTypeMock, "":
		lister, err = f.createMockLister(config)
	default:
		return nil, fmt.Errorf("unsupported storage type %q: %w", config.Type, ErrInvalidConfig)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create %s storage: %w", config.Type, err)
	}

	return lister, nil
}

// createS3Lister creates an AWS S3 backed lister
func (f *Factory) createS3Lister(ctx context.Context, config *StorageConfig) (BucketLister, error) {
	return NewS3BucketListerFromEnv(ctx, config.Region)
}

// createMockLister creates a mock lister. The "buckets" option holds a
// comma-separated inventory.
func (f *Factory) createMockLister(config *StorageConfig) (BucketLister, error) {
	var names []string
	for _, name := range strings.Split(config.Options["buckets"], ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return NewMockBucketLister(names...), nil
}

// CreateFromConfig is a convenience function to create storage from config
func CreateFromConfig(ctx context.Context, config *StorageConfig) (BucketLister, error) {
	return NewFactory().Create(ctx, config)
}
