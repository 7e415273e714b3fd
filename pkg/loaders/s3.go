package loaders

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrymomot/translations"
)

// S3Config holds S3-compatible bucket configuration.
type S3Config struct {
	// Bucket is the bucket name (required).
	Bucket string `env:"S3_BUCKET"`

	// AccessKey is the access key ID (required).
	AccessKey string `env:"S3_ACCESS_KEY"`

	// SecretKey is the secret access key (required).
	SecretKey string `env:"S3_SECRET_KEY"`

	// Endpoint is a custom endpoint URL (MinIO and friends).
	Endpoint string `env:"S3_ENDPOINT"`

	// Region defaults to us-east-1.
	Region string `env:"S3_REGION" envDefault:"us-east-1"`

	// Prefix is prepended to every object key.
	Prefix string `env:"S3_PREFIX"`

	// PathStyle enables path-style addressing (required for MinIO).
	PathStyle bool `env:"S3_PATH_STYLE"`

	// MaxObjectSize caps a namespace document (default 5MB).
	MaxObjectSize int64 `env:"S3_MAX_OBJECT_SIZE"`
}

func (c *S3Config) applyDefaults() {
	if c.Region == "" {
		c.Region = "us-east-1"
	}
	if c.MaxObjectSize <= 0 {
		c.MaxObjectSize = DefaultMaxBodySize
	}
	c.Prefix = strings.Trim(c.Prefix, "/")
}

func (c *S3Config) validate() error {
	var missing []string
	if c.Bucket == "" {
		missing = append(missing, "bucket")
	}
	if c.AccessKey == "" {
		missing = append(missing, "access key")
	}
	if c.SecretKey == "" {
		missing = append(missing, "secret key")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidConfig, strings.Join(missing, ", "))
	}
	return nil
}

// S3 returns a loader that reads {prefix}/{locale}/{namespace}.json, .yaml
// or .yml objects from a bucket. The first existing object wins; a namespace
// without an object yields no data and no error.
func S3(cfg S3Config) (translations.NamespaceLoader, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)
		},
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	l := &s3Loader{
		client: s3.New(s3.Options{}, opts...),
		cfg:    cfg,
	}
	return l.load, nil
}

type s3Loader struct {
	client *s3.Client
	cfg    S3Config
}

func (l *s3Loader) load(ctx context.Context, locale, namespace string) (translations.Record, error) {
	for _, ext := range Extensions {
		key := path.Join(l.cfg.Prefix, locale, namespace+ext)

		out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(l.cfg.Bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			if isNotFound(err) {
				continue
			}
			return nil, wrapS3Error(err)
		}

		data, err := io.ReadAll(io.LimitReader(out.Body, l.cfg.MaxObjectSize+1))
		out.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
		}
		if int64(len(data)) > l.cfg.MaxObjectSize {
			return nil, fmt.Errorf("%w: %q exceeds %d bytes", ErrInvalidFile, key, l.cfg.MaxObjectSize)
		}
		return decode(key, data)
	}
	return nil, nil
}

func isNotFound(err error) bool {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}

// wrapS3Error maps S3 errors onto sentinel errors.
// The original error is formatted with %v so callers match sentinels only.
func wrapS3Error(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDenied", "Forbidden", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrRequestFailed, err)
}
