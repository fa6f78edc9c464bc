package imagestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/memberclub/internal/observability"
)

// ObjectAPI is the subset of the S3 client the store uses.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Options struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKeyID   string
	SecretKey     string
	PublicBaseURL string
	Timeout       time.Duration
	MaxAttempts   int
}

type S3Store struct {
	client  ObjectAPI
	bucket  string
	baseURL string
	timeout time.Duration
}

// NewS3Client builds an S3 client from the default AWS credential chain, or
// from static keys when they are given (S3-compatible endpoints).
func NewS3Client(ctx context.Context, o S3Options) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(o.Region)}
	if o.MaxAttempts > 0 {
		opts = append(opts, awsconfig.WithRetryMaxAttempts(o.MaxAttempts))
	}
	if o.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKeyID, o.SecretKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
			so.UsePathStyle = true
		}
	}), nil
}

func NewS3Store(client ObjectAPI, o S3Options) *S3Store {
	base := strings.TrimRight(o.PublicBaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", o.Bucket, o.Region)
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &S3Store{client: client, bucket: o.Bucket, baseURL: base, timeout: timeout}
}

func (s *S3Store) Validate(data []byte, c Constraints) (Metadata, *Rejection) {
	return Validate(data, c)
}

func (s *S3Store) Transform(data []byte) ([]byte, error) {
	return Transform(data)
}

// Put uploads data under folder/opts.Name. The external id is the object key.
func (s *S3Store) Put(ctx context.Context, data []byte, folder string, opts PutOptions) (Uploaded, error) {
	meta, err := inspect(data)
	if err != nil {
		return Uploaded{}, err
	}
	if opts.Name == "" {
		return Uploaded{}, errors.New("object name is required")
	}
	key := path.Join(folder, opts.Name)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("image/" + meta.Format),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
		Metadata:      opts.Transformation.hints(),
	})
	if err != nil {
		observability.ImageStoreOpsTotal.WithLabelValues("put", "error").Inc()
		return Uploaded{}, fmt.Errorf("put object %s: %w", key, err)
	}
	observability.ImageStoreOpsTotal.WithLabelValues("put", "ok").Inc()

	observability.GetLogger(ctx).Debug("image stored",
		zap.String("external_id", key),
		zap.Int("bytes", len(data)),
	)

	return Uploaded{
		URL:        s.baseURL + "/" + key,
		ExternalID: key,
		Format:     meta.Format,
		Width:      meta.Width,
		Height:     meta.Height,
		Bytes:      meta.Bytes,
	}, nil
}

// Delete removes an object. A missing object is not an error.
func (s *S3Store) Delete(ctx context.Context, externalID string) error {
	if externalID == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(externalID),
	})
	if err != nil && !isNotFound(err) {
		observability.ImageStoreOpsTotal.WithLabelValues("delete", "error").Inc()
		return fmt.Errorf("delete object %s: %w", externalID, err)
	}
	observability.ImageStoreOpsTotal.WithLabelValues("delete", "ok").Inc()
	return nil
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
