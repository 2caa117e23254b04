// Package s3 provides the client used to stage prepared time-series data
// into the bucket the Forecast service imports from.
package s3

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Stager defines the staging operations used by the stage handler.
type Stager interface {
	// EnsureBucket creates the bucket if it does not exist.
	EnsureBucket(ctx context.Context, bucketName string) error

	// UploadFile uploads a local file to the bucket. Files ending in .gz are
	// decompressed on the fly so Forecast receives plain CSV.
	UploadFile(ctx context.Context, bucketName, key, path string) error
}

// api is the slice of the S3 SDK client this package uses.
type api interface {
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, opts ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Client implements Stager against the real S3 API.
type Client struct {
	s3     api
	region string
}

// NewClient creates a new S3 client from an AWS SDK configuration.
func NewClient(awsCfg aws.Config) *Client {
	return &Client{
		s3:     s3.NewFromConfig(awsCfg),
		region: awsCfg.Region,
	}
}

// EnsureBucket implements Stager. Returns nil if the bucket already exists
// and is owned by us.
func (c *Client) EnsureBucket(ctx context.Context, bucketName string) error {
	in := &s3.CreateBucketInput{
		Bucket: aws.String(bucketName),
	}
	// us-east-1 rejects an explicit LocationConstraint.
	if c.region != "" && c.region != "us-east-1" {
		in.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(c.region),
		}
	}

	if _, err := c.s3.CreateBucket(ctx, in); err != nil {
		if isBucketAlreadyOwnedByYou(err) {
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", bucketName, err)
	}
	return nil
}

// BucketExists checks if a bucket exists and is accessible.
func (c *Client) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucketName),
	})
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check bucket %s: %w", bucketName, err)
	}
	return true, nil
}

// UploadFile implements Stager.
func (c *Client) UploadFile(ctx context.Context, bucketName, key, path string) error {
	// #nosec G304
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var body io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("failed to read gzip %s: %w", path, err)
		}
		defer gz.Close()
		body = gz
	}

	if key == "" {
		key = DefaultKey(path)
	}

	if _, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(key),
		Body:   body,
	}); err != nil {
		return fmt.Errorf("failed to upload %s to s3://%s/%s: %w", path, bucketName, key, err)
	}
	return nil
}

// DefaultKey derives the object key from a local path: the base filename
// with any .gz suffix stripped, since .gz inputs are decompressed on upload.
func DefaultKey(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".gz")
}

// isBucketAlreadyOwnedByYou checks if the error indicates the bucket exists
// and is owned by us.
func isBucketAlreadyOwnedByYou(err error) bool {
	if err == nil {
		return false
	}

	var baoby *types.BucketAlreadyOwnedByYou
	if errors.As(err, &baoby) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "BucketAlreadyOwnedByYou"
	}
	return false
}

// isNotFoundError checks if the error is a not found error.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchBucket"
	}
	return false
}
