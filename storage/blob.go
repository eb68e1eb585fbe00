package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/work-spot/api-go/config"
)

// BlobStorage is the object-store surface the API uses: presigned uploads,
// existence checks on confirm, and hard deletes when offices go away. Tests
// substitute an in-memory implementation.
type BlobStorage interface {
	PresignPut(key, contentType string) (string, error)
	Exists(key string) (bool, error)
	Delete(key string) error
	PublicURL(key string) string
}

// R2Storage talks to a Cloudflare R2 bucket through the S3 API.
type R2Storage struct {
	Client *s3.Client
	Config *config.R2Config
}

func NewR2Storage(cfg *config.R2Config) *R2Storage {
	client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
		Region: cfg.Region,
	})

	return &R2Storage{
		Client: client,
		Config: cfg,
	}
}

func (r *R2Storage) PresignPut(key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(r.Config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presigner := s3.NewPresignClient(r.Client)
	req, err := presigner.PresignPutObject(context.TODO(), input, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})

	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (r *R2Storage) Exists(key string) (bool, error) {
	input := &s3.HeadObjectInput{
		Bucket: aws.String(r.Config.BucketName),
		Key:    aws.String(key),
	}

	_, err := r.Client.HeadObject(context.TODO(), input)
	if err != nil {
		return false, nil
	}

	return true, nil
}

func (r *R2Storage) Delete(key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(r.Config.BucketName),
		Key:    aws.String(key),
	}

	_, err := r.Client.DeleteObject(context.TODO(), input)
	return err
}

func (r *R2Storage) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", r.Config.PublicURL, key)
}
