package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/apac-ml-tfc/forecast-poc/internal/platform/s3"
)

// Factory function variables for stage - can be replaced in tests.
var (
	// newStager creates an S3 staging client.
	newStager = func(awsCfg aws.Config) s3.Stager {
		return s3.NewClient(awsCfg)
	}
)

// Stage uploads a prepared data file to the S3 staging bucket Forecast
// imports from, creating the bucket if needed. Gzip-compressed files are
// expanded during upload.
func Stage(ctx context.Context, configPath, filePath, bucket, key string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	awsCfg, err := newAWSConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to resolve AWS credentials: %w", err)
	}

	if key == "" {
		key = s3.DefaultKey(filePath)
	}

	stager := newStager(awsCfg)

	log.Printf("Ensuring bucket: %s", bucket)
	if err := stager.EnsureBucket(ctx, bucket); err != nil {
		return fmt.Errorf("failed to ensure bucket: %w", err)
	}

	log.Printf("Uploading %s", filePath)
	if err := stager.UploadFile(ctx, bucket, key, filePath); err != nil {
		return fmt.Errorf("failed to upload: %w", err)
	}

	fmt.Println()
	fmt.Printf("Staged: s3://%s/%s\n", bucket, key)
	return nil
}
