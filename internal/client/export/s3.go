package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader pushes a generated report to external storage.
type Uploader interface {
	Upload(ctx context.Context, filename string, buffer *bytes.Buffer) error
}

// S3Uploader uploads reports to an S3 bucket.
type S3Uploader struct {
	uploader *manager.Uploader
	bucket   string
}

func NewS3Uploader(client manager.UploadAPIClient, bucket string) (S3Uploader, error) {
	if client == nil {
		return S3Uploader{}, errors.New("s3 upload client nil")
	}
	if bucket == "" {
		return S3Uploader{}, errors.New("bucket is empty")
	}
	return S3Uploader{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
	}, nil
}

// NewS3UploaderFromEnv builds an uploader from the default AWS
// credential chain.
func NewS3UploaderFromEnv(ctx context.Context, bucket string) (S3Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return S3Uploader{}, fmt.Errorf("aws config error: %w", err)
	}
	return NewS3Uploader(s3.NewFromConfig(cfg), bucket)
}

func (u S3Uploader) Upload(ctx context.Context, filename string, buffer *bytes.Buffer) error {
	_, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(filename),
		Body:   buffer,
	})
	if err != nil {
		return fmt.Errorf("upload failed filename=[%s], bucket=[%s]: %w", filename, u.bucket, err)
	}
	return nil
}
