// Package s3 implements core.Slot on an S3-compatible object store.
// Each key is one object; PutObject replaces it atomically.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/introspection"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/aretw0/jot/pkg/core"
)

// ObjectExt is appended to every key to form the object name.
const ObjectExt = ".json"

// Config holds the configuration for creating an S3 slot.
type Config struct {
	// Bucket holds the slot objects. Required.
	Bucket string
	// Prefix is prepended to object names (e.g. "jot/").
	Prefix string
	// Endpoint is the S3 endpoint URL. Leave empty to use AWS S3.
	Endpoint string
	// Region is the AWS region (e.g. "us-east-1", "auto").
	Region string
	// AccessKeyID and SecretAccessKey are optional static credentials.
	// When empty the default AWS credential chain is used.
	AccessKeyID     string
	SecretAccessKey string
	// UsePathStyle enables path-style addressing (needed by most
	// S3-compatible servers and by gofakes3).
	UsePathStyle bool

	Logger *slog.Logger
}

// Slot implements core.Slot over an S3 bucket.
type Slot struct {
	client *s3.Client
	bucket string
	prefix string
	logger *slog.Logger
}

// New creates a new S3 slot with the given configuration.
func New(ctx context.Context, cfg Config) (*Slot, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket is required")
	}

	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	sdkConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3: failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewFromClient(client, cfg.Bucket, cfg.Prefix, cfg.Logger), nil
}

// NewFromClient creates a Slot from an existing S3 client.
func NewFromClient(client *s3.Client, bucket, prefix string, logger *slog.Logger) *Slot {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Slot{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

// Initialize verifies the bucket is reachable.
func (s *Slot) Initialize(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("s3: bucket %q is not accessible: %w", s.bucket, err)
	}
	return nil
}

// Get retrieves the object backing key. A missing object is not found.
func (s *Slot) Get(ctx context.Context, key string) (string, bool, error) {
	name := s.objectName(key)
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("s3: failed to get object %q: %w", name, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return "", false, fmt.Errorf("s3: failed to read object body %q: %w", name, err)
	}
	return string(data), true, nil
}

// Set replaces the object backing key.
func (s *Slot) Set(ctx context.Context, key, value string) error {
	name := s.objectName(key)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		Body:        bytes.NewReader([]byte(value)),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3: failed to put object %q: %w", name, err)
	}
	s.logger.Debug("slot written", "bucket", s.bucket, "object", name, "bytes", len(value))
	return nil
}

func (s *Slot) objectName(key string) string {
	return s.prefix + strings.TrimPrefix(key, "/") + ObjectExt
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var notFound *types.NotFound
	return errors.As(err, &notFound)
}

// State implements introspection.Introspectable.
func (s *Slot) State() any {
	return map[string]string{"bucket": s.bucket, "prefix": s.prefix}
}

// ComponentType implements introspection.Component.
func (s *Slot) ComponentType() string {
	return "s3"
}

var _ core.Slot = (*Slot)(nil)
var _ core.Initializer = (*Slot)(nil)
var _ introspection.Component = (*Slot)(nil)
