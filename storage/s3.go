package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"gameplay-analysis-api/config"
)

// BlobStore persists raw video bytes under a generated identifier.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// S3Blob stores videos in an S3-compatible bucket. A custom endpoint with
// path-style addressing keeps it usable against R2 and MinIO as well as AWS.
type S3Blob struct {
	client *s3.Client
	bucket string
	logger *zap.Logger
}

// NewS3Blob builds the blob adapter from the S3 section of the configuration.
func NewS3Blob(ctx context.Context, cfg config.S3Config, logger *zap.Logger) (*S3Blob, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS configuration: %w", err)
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) { o.UsePathStyle = true },
	}
	if cfg.EndpointURL != "" {
		opts = append(opts, func(o *s3.Options) { o.BaseEndpoint = aws.String(cfg.EndpointURL) })
		logger.Info("Using custom storage endpoint configuration")
	}

	logger.Info("Blob store initialized", zap.String("bucket", cfg.Bucket))
	return &S3Blob{
		client: s3.NewFromConfig(awsCfg, opts...),
		bucket: cfg.Bucket,
		logger: logger,
	}, nil
}

// Put uploads the video bytes under the given key.
func (b *S3Blob) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	b.logger.Info("Video stored", zap.String("key", key), zap.Int("size_bytes", len(data)))
	return nil
}
