package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used by S3Sink.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink archives every event as a JSON object, partitioned by day.
type S3Sink struct {
	client S3API
	bucket string
}

func NewS3Sink(client S3API, bucket string) *S3Sink {
	return &S3Sink{client: client, bucket: bucket}
}

type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint points at an S3-compatible store such as MinIO.
	Endpoint string
}

func NewS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func (s *S3Sink) Name() string { return "s3" }

func ObjectKey(ev Event) string {
	t := ev.OccurredAt.UTC()
	return fmt.Sprintf("appointment-events/%d/%02d/%02d/%s.json",
		t.Year(), t.Month(), t.Day(), ev.ID)
}

func (s *S3Sink) Send(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("s3 sink: marshal: %w", err)
	}
	key := ObjectKey(ev)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 sink: put %s: %w", key, err)
	}
	return nil
}
