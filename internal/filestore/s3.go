package filestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	appConfig "github.com/dahun428-fx/bizcare-dummy-server/internal/config"
)

// S3 stores files in an S3 (or MinIO) bucket under kind-prefixed keys
type S3 struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
}

// NewS3 creates an S3 file store from configuration
func NewS3(cfg *appConfig.S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("filestore: S3 bucket is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("filestore: S3 region is required")
	}

	var awsCfg aws.Config
	var err error

	if cfg.Endpoint != "" {
		// MinIO requires explicit credentials and path-style addressing
		if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
			return nil, fmt.Errorf("filestore: access key and secret key are required for a custom endpoint")
		}
		awsCfg, err = config.LoadDefaultConfig(context.TODO(),
			config.WithRegion(cfg.Region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			)),
		)
	} else {
		// Default credential chain (IAM role, ~/.aws/credentials)
		awsCfg, err = config.LoadDefaultConfig(context.TODO(),
			config.WithRegion(cfg.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("filestore: load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3{
		client:   client,
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		endpoint: cfg.Endpoint,
	}, nil
}

func (s *S3) key(kind, fileName string) string {
	return kind + "/" + fileName
}

func (s *S3) Save(ctx context.Context, kind, fileName string, r io.Reader) (int64, error) {
	// S3 needs a seekable body or a known length; buffer the content
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("filestore: read upload: %w", err)
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(kind, fileName)),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return 0, fmt.Errorf("filestore: put %s: %w", fileName, err)
	}
	return int64(len(data)), nil
}

func (s *S3) Open(ctx context.Context, kind, fileName string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(kind, fileName)),
	})
	if err != nil {
		return nil, fmt.Errorf("filestore: get %s: %w", fileName, err)
	}
	return out.Body, nil
}

func (s *S3) Delete(ctx context.Context, kind, fileName string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(kind, fileName)),
	})
	if err != nil {
		return fmt.Errorf("filestore: delete %s: %w", fileName, err)
	}
	return nil
}

func (s *S3) Exists(ctx context.Context, kind, fileName string) bool {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(kind, fileName)),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false
		}
		return false
	}
	return true
}

func (s *S3) URL(kind, fileName string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, s.key(kind, fileName))
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, s.key(kind, fileName))
}
