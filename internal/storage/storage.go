// Package storage turns product image keys stored in S3-compatible object
// storage (MinIO in development) into time-limited download URLs.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config holds object storage settings.
type Config struct {
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	Bucket         string
	UseSSL         bool
	Region         string
}

// LoadConfig reads S3_* variables. ok is false when image storage is not
// configured at all, in which case images are served as given.
func LoadConfig() (cfg Config, ok bool, err error) {
	cfg = Config{
		Endpoint:       os.Getenv("S3_ENDPOINT"),
		PublicEndpoint: os.Getenv("S3_PUBLIC_ENDPOINT"),
		AccessKey:      os.Getenv("S3_ACCESS_KEY"),
		SecretKey:      os.Getenv("S3_SECRET_KEY"),
		Bucket:         os.Getenv("S3_BUCKET_NAME"),
		UseSSL:         os.Getenv("S3_USE_SSL") == "true",
		Region:         os.Getenv("S3_REGION"),
	}
	if cfg.Endpoint == "" && cfg.Bucket == "" {
		return cfg, false, nil
	}

	if cfg.Endpoint == "" {
		return cfg, false, fmt.Errorf("S3_ENDPOINT environment variable is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return cfg, false, fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY environment variables are required")
	}
	if cfg.Bucket == "" {
		return cfg, false, fmt.Errorf("S3_BUCKET_NAME environment variable is required")
	}
	if cfg.PublicEndpoint == "" {
		cfg.PublicEndpoint = cfg.Endpoint
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	return cfg, true, nil
}

func (c Config) url(endpoint string) string {
	protocol := "http"
	if c.UseSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s", protocol, endpoint)
}

// Presigner signs GET requests for image objects.
type Presigner interface {
	PresignImage(ctx context.Context, key string, ttl time.Duration) (string, error)
	Health(ctx context.Context) error
}

type service struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
}

// New creates an S3 presigner. Presigned URLs use the public endpoint so
// browsers can reach them; health checks use the internal one.
func New(ctx context.Context, cfg Config) (Presigner, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.url(cfg.Endpoint))
		o.UsePathStyle = true
	})
	publicClient := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.url(cfg.PublicEndpoint))
		o.UsePathStyle = true
	})

	return &service{
		client:    client,
		presigner: s3.NewPresignClient(publicClient),
		bucket:    cfg.Bucket,
	}, nil
}

// PresignImage creates a presigned download URL for an image key.
func (s *service) PresignImage(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if key == "" {
		return "", fmt.Errorf("image key cannot be empty")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("TTL must be positive")
	}

	request, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = ttl
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign image %s: %w", key, err)
	}
	return request.URL, nil
}

// Health checks if the bucket is reachable.
func (s *service) Health(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("storage health check failed: %w", err)
	}
	return nil
}

// IsObjectKey reports whether an image reference is a bucket key rather
// than an absolute URL, a rooted path, or a bundled static asset.
func IsObjectKey(image string) bool {
	switch {
	case image == "":
		return false
	case strings.Contains(image, "://"), strings.HasPrefix(image, "//"):
		return false
	case strings.HasPrefix(image, "/"), strings.HasPrefix(image, "img/"):
		return false
	case strings.HasPrefix(image, "data:"):
		return false
	}
	return true
}

// ImageResolver maps image references to URLs a browser can load.
type ImageResolver struct {
	presigner Presigner
	ttl       time.Duration
	logger    *slog.Logger
}

// NewImageResolver creates a resolver. A nil presigner leaves every image
// untouched.
func NewImageResolver(p Presigner, ttl time.Duration, logger *slog.Logger) *ImageResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageResolver{presigner: p, ttl: ttl, logger: logger}
}

// Resolve returns a presigned URL for object keys and the input otherwise.
// Signing failures degrade to the raw reference.
func (r *ImageResolver) Resolve(ctx context.Context, image string) string {
	if r == nil || r.presigner == nil || !IsObjectKey(image) {
		return image
	}
	url, err := r.presigner.PresignImage(ctx, image, r.ttl)
	if err != nil {
		r.logger.Warn("Failed to presign product image", "key", image, "error", err.Error())
		return image
	}
	return url
}
