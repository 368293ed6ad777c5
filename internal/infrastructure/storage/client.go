// Package storage implements the blob storage boundary over S3. Files live
// in the bucket; the service only keeps object keys, public URLs and
// metadata.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"github.com/studioforma/atelier/internal/config"
	"github.com/studioforma/atelier/internal/usecase"
)

// objectAPI is the slice of the S3 client the uploader needs.
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Client uploads objects to the configured bucket. It implements
// usecase.BlobUploader.
type Client struct {
	s3            objectAPI
	bucket        string
	publicBaseURL string
	logger        *zap.Logger
}

// NewClient creates a new S3-backed storage client.
func NewClient(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// S3-compatible stores want path-style addressing.
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Client{
		s3:            s3Client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        logger,
	}, nil
}

// Upload stores the object under the given key and returns the key, its
// public URL and the metadata the caller persists.
func (c *Client) Upload(ctx context.Context, objectKey, contentType string, data []byte) (*usecase.UploadResult, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		c.logger.Error("Failed to upload object",
			zap.String("key", objectKey),
			zap.Error(err))
		return nil, fmt.Errorf("failed to upload object to s3: %w", err)
	}

	return &usecase.UploadResult{
		Key:       objectKey,
		PublicURL: fmt.Sprintf("%s/%s", c.publicBaseURL, objectKey),
		Size:      int64(len(data)),
		MimeType:  contentType,
	}, nil
}

// Remove deletes the object stored under the given key. S3 treats deleting
// a missing object as success, so retries are safe.
func (c *Client) Remove(ctx context.Context, objectKey string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object from s3: %w", err)
	}
	return nil
}
