package env

import (
	"fmt"
	"os"
	"slot_math/internal/config"
)

const (
	s3BucketEnvName   = "S3_BUCKET"
	s3RegionEnvName   = "S3_REGION"
	s3PrefixEnvName   = "S3_PREFIX"
	s3EndpointEnvName = "S3_ENDPOINT"
	awsAccessKeyName  = "AWS_ACCESS_KEY_ID"
	awsSecretKeyName  = "AWS_SECRET_ACCESS_KEY"
)

type s3Config struct {
	bucket          string
	region          string
	prefix          string
	endpoint        string
	accessKeyID     string
	secretAccessKey string
}

// NewS3Config зеркало артефактов в S3. ok=false - S3_BUCKET не задан.
func NewS3Config() (cfg config.S3Config, ok bool, err error) {
	bucket := os.Getenv(s3BucketEnvName)
	if len(bucket) == 0 {
		return nil, false, nil
	}
	region := os.Getenv(s3RegionEnvName)
	if len(region) == 0 {
		return nil, true, fmt.Errorf("%s is required when %s is set", s3RegionEnvName, s3BucketEnvName)
	}
	return &s3Config{
		bucket:          bucket,
		region:          region,
		prefix:          os.Getenv(s3PrefixEnvName),
		endpoint:        os.Getenv(s3EndpointEnvName),
		accessKeyID:     os.Getenv(awsAccessKeyName),
		secretAccessKey: os.Getenv(awsSecretKeyName),
	}, true, nil
}

func (c *s3Config) Bucket() string { return c.bucket }

func (c *s3Config) Region() string { return c.region }

func (c *s3Config) Prefix() string { return c.prefix }

func (c *s3Config) Endpoint() string { return c.endpoint }

func (c *s3Config) AccessKeyID() string { return c.accessKeyID }

func (c *s3Config) SecretAccessKey() string { return c.secretAccessKey }
