// Package upload stores user-submitted images in S3 and hands back public
// URLs. It is a collaborator of the content core, not part of it: posts only
// ever carry the resulting URL.
package upload

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/techblog/core/internal/pkg/apperr"
)

// Service uploads objects to a single bucket under a folder prefix.
type Service struct {
	client *s3.Client
	bucket string
	region string
}

func NewService(client *s3.Client, bucket, region string) *Service {
	return &Service{client: client, bucket: bucket, region: region}
}

// NewS3Client builds an S3 client from an AWS config, honoring an optional
// endpoint override (localstack in development).
func NewS3Client(awsCfg aws.Config, endpoint string) *s3.Client {
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
}

// Upload stores the object under folder/<uuid><ext> and returns its URL.
func (s *Service) Upload(ctx context.Context, folder, filename, contentType string, size int64, body io.Reader) (string, error) {
	if s.client == nil {
		return "", apperr.StoreUnavailable(nil, "image storage not configured")
	}

	key := folder + "/" + uuid.NewString() + filepath.Ext(filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", apperr.StoreUnavailable(err, "upload object")
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}
