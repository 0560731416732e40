package artifact_repo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"slot_math/internal/config"
	"slot_math/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3Repo struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3ArtifactRepository зеркало опубликованных файлов в бакете S3.
// Без явных ключей используется стандартная цепочка учетных данных AWS.
func NewS3ArtifactRepository(ctx context.Context, cfg config.S3Config) (repository.ArtifactRepository, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region()),
	}
	if cfg.AccessKeyID() != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID(),
			cfg.SecretAccessKey(),
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint() != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint())
			o.UsePathStyle = true
		}
	})

	return &s3Repo{
		client: client,
		bucket: cfg.Bucket(),
		prefix: cfg.Prefix(),
	}, nil
}

func (r *s3Repo) key(name string) string {
	return path.Join(r.prefix, name)
}

func (r *s3Repo) Put(ctx context.Context, name string, data []byte) error {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(r.key(name)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", r.Location(name), err)
	}
	return nil
}

func (r *s3Repo) Get(ctx context.Context, name string) ([]byte, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key(name)),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", r.Location(name), err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (r *s3Repo) Location(name string) string {
	return "s3://" + r.bucket + "/" + r.key(name)
}
