package export

import (
	"bytes"
	"context"
	"fmt"
	"path"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"tagmanager/internal/ports"
)

// S3Config holds the parameters of an S3-compatible export target
type S3Config struct {
	Bucket          string
	Prefix          string // optional key prefix, e.g. "exports/"
	Region          string
	Endpoint        string // optional; enables a custom endpoint (e.g. MinIO)
	AccessKeyID     string // optional (falls back to default credentials chain)
	SecretAccessKey string // optional
	PathStyle       bool
}

// S3Sink uploads export bundles to a single bucket
type S3Sink struct {
	client *s3.Client
	bucket string
	prefix string
}

var _ ports.ExportSink = (*S3Sink)(nil)

// NewS3Sink creates an S3 sink from cfg
func NewS3Sink(ctx context.Context, cfg S3Config, optFns ...func(*s3.Options)) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		for _, fn := range optFns {
			fn(o)
		}
	})
	return &S3Sink{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Write uploads data as a JSON object and returns its s3:// location
func (s *S3Sink) Write(ctx context.Context, name string, data []byte) (string, error) {
	key := path.Join(s.prefix, name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload export: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
