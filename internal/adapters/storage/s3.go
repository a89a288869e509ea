package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used by S3BucketLister.
type S3API interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
}

// S3BucketLister lists buckets through the AWS S3 API.
type S3BucketLister struct {
	client S3API
	region string
}

// NewS3BucketLister wraps an existing S3 client.
func NewS3BucketLister(client S3API, region string) *S3BucketLister {
	return &S3BucketLister{
		client: client,
		region: region,
	}
}

// NewS3BucketListerFromEnv loads the default AWS credential chain and builds
// a client pinned to region.
func NewS3BucketListerFromEnv(ctx context.Context, region string) (*S3BucketLister, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, NewStorageError("LoadConfig", "s3", fmt.Errorf("%w: %w", ErrInvalidConfig, err))
	}

	return NewS3BucketLister(s3.NewFromConfig(cfg), cfg.Region), nil
}

// Region returns the region the client is bound to.
func (l *S3BucketLister) Region() string {
	return l.region
}

// ListBuckets implements BucketLister.ListBuckets
func (l *S3BucketLister) ListBuckets(ctx context.Context) ([]Bucket, error) {
	out, err := l.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, NewStorageError("ListBuckets", "s3", err)
		}
		return nil, NewStorageError("ListBuckets", "s3", fmt.Errorf("%w: %w", ErrStorageUnavailable, err))
	}

	buckets := make([]Bucket, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		bucket := Bucket{Name: aws.ToString(b.Name)}
		if b.CreationDate != nil {
			bucket.CreationDate = *b.CreationDate
		}
		buckets = append(buckets, bucket)
	}

	return buckets, nil
}
