package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store keeps cache entries as objects in an S3 bucket, one object per
// URL with the same <sha1(url)>.json naming as the filesystem layout.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3StoreParams contains configuration for creating an S3Store.
type NewS3StoreParams struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
}

// NewS3Store creates a store over an S3 bucket. Path-style addressing is
// used so S3-compatible endpoints (MinIO and friends) work unchanged.
func NewS3Store(ctx context.Context, params NewS3StoreParams) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(params.Region),
		config.WithBaseEndpoint(params.Endpoint),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			params.AccessKey,
			params.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return &S3Store{
		client: client,
		bucket: params.Bucket,
		prefix: params.Prefix,
	}, nil
}

func (s *S3Store) key(name string) string {
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

func (s *S3Store) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("head cache object %s: %w", name, err)
	}
	return true, nil
}

func (s *S3Store) Get(ctx context.Context, name string) ([]byte, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return nil, fmt.Errorf("get cache object %s: %w", name, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("read cache object %s: %w", name, err)
	}
	return data, nil
}

func (s *S3Store) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(name)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put cache object %s: %w", name, err)
	}
	return nil
}
