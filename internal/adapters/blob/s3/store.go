package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/anilpal6795/crime-linker/internal/domain"
	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Store keeps evidence files in a single S3 (or MinIO) bucket. Keys map to
// object keys directly.
type Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

var _ domain.BlobStore = (*Store)(nil)

type Config struct {
	Bucket    string
	Region    string
	Endpoint  string // optional, e.g. a MinIO URL
	PathStyle bool

	// Static credentials; when empty the default AWS chain is used.
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string

	// HTTPClient replaces the SDK transport, mostly for tests.
	HTTPClient s3.HTTPClient
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.HTTPClient != nil {
			o.HTTPClient = cfg.HTTPClient
		}
	})
	return &Store{client: client, presign: s3.NewPresignClient(client), bucket: cfg.Bucket}, nil
}

// Put uploads r under key, replacing any previous object. The body is
// buffered so the SDK can sign and checksum it.
func (s *Store) Put(ctx context.Context, key string, r io.Reader, contentType string) (domain.BlobInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.BlobInfo{}, fmt.Errorf("read %s: %w", key, err)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return domain.BlobInfo{}, fmt.Errorf("put %s: %w", key, err)
	}
	return domain.BlobInfo{Key: key, Size: int64(len(data)), ContentType: contentType}, nil
}

func (s *Store) PresignURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	out, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(po *s3.PresignOptions) { po.Expires = expiry })
	if err != nil {
		return "", err
	}
	return out.URL, nil
}

// URL is the stable reference stored in evidence.fileUrl.
func (s *Store) URL(key string) string {
	return "s3://" + s.bucket + "/" + key
}
