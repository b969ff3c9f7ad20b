// Package archive stores generated PDFs in an S3-compatible bucket so folio
// copies survive the small VPS the service runs on. Unconfigured, every call
// is a no-op.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"kegama-backend/internal/config"
)

type Client struct {
	s3     *s3.Client
	bucket string
}

// New builds the archive client. Returns nil (and no error) when the
// archive is not configured.
func New(cfg *config.Config) (*Client, error) {
	if cfg.Archive.Bucket == "" || cfg.Archive.AccessKey == "" {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Archive.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Archive.AccessKey, cfg.Archive.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load archive credentials: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Archive.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Archive.Endpoint)
		}
		o.UsePathStyle = true
	})

	return &Client{s3: client, bucket: cfg.Archive.Bucket}, nil
}

// StorePDF uploads a generated PDF under the given key. Runs in the
// background; failures are logged, never surfaced to the download request.
func (c *Client) StorePDF(key string, data []byte) {
	if c == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(c.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String("application/pdf"),
		})
		if err != nil {
			log.Printf("[Archive] upload %s failed: %v", key, err)
		}
	}()
}
