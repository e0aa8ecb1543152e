package thumbs

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store fetches thumbnails from an S3 bucket.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(context.Background())
//	store := thumbs.NewS3Store(s3.NewFromConfig(cfg), "my-bucket", "thumbs/")
type S3Store struct {
	client  *s3.Client
	bucket  string
	prefix  string
	maxSize int64
}

// NewS3Store creates an S3-backed Store.
//
// Parameters:
//   - client: AWS S3 client from aws-sdk-go-v2
//   - bucket: S3 bucket name
//   - prefix: key prefix prepended to every lookup (e.g. "thumbs/")
func NewS3Store(client *s3.Client, bucket, prefix string) *S3Store {
	return &S3Store{
		client:  client,
		bucket:  bucket,
		prefix:  prefix,
		maxSize: 8 << 20,
	}
}

// WithMaxSize sets the largest object Get will read (default 8 MiB;
// 0 means no limit).
func (s *S3Store) WithMaxSize(n int64) *S3Store {
	s.maxSize = n
	return s
}

// Get implements Store. A missing object maps to ErrNotFound.
func (s *S3Store) Get(ctx context.Context, key string) ([]byte, string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("thumbs: get %q: %w", key, err)
	}
	defer out.Body.Close()

	body := out.Body
	var reader io.Reader = body
	if s.maxSize > 0 {
		reader = io.LimitReader(body, s.maxSize)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, "", fmt.Errorf("thumbs: read %q: %w", key, err)
	}

	contentType := aws.ToString(out.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}
