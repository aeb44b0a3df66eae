package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	terrors "github.com/PolarWolf314/totara/internal/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Params understood by the S3 backend. Either a shared-config profile or a
// static key pair provides credentials; with neither, the SDK's default
// chain applies.
const (
	ParamBucket          = "bucket"
	ParamRegion          = "region"
	ParamProfile         = "profile"
	ParamAccessKeyID     = "access_key_id"
	ParamSecretAccessKey = "secret_access_key"
)

type s3Backend struct {
	client *s3.Client
	bucket string
}

func newS3Backend(ctx context.Context, params map[string]string) (Backend, error) {
	bucket := params[ParamBucket]
	if bucket == "" {
		return nil, fmt.Errorf("s3 backend requires a %q param", ParamBucket)
	}

	opts := []func(*config.LoadOptions) error{}
	if region := params[ParamRegion]; region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if profile := params[ParamProfile]; profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	} else if id := params[ParamAccessKeyID]; id != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(id, params[ParamSecretAccessKey], ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		// The retry policy lives in this package; the SDK must not stack
		// its own attempts on top of it.
		o.Retryer = aws.NopRetryer{}
	})

	return &s3Backend{client: client, bucket: bucket}, nil
}

func (s *s3Backend) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, s.classify(key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, markTransient(fmt.Errorf("%w: reading s3://%s/%s: %s", terrors.ErrRemoteUnavailable, s.bucket, key, err))
	}
	return data, nil
}

func (s *s3Backend) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return s.classify(key, err)
	}
	return nil
}

func (s *s3Backend) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		classified := s.classify(key, err)
		if errors.Is(classified, terrors.ErrRemoteNotFound) {
			return false, nil
		}
		return false, classified
	}
	return true, nil
}

// classify maps SDK errors onto the transport taxonomy: missing objects
// become ErrRemoteNotFound, auth/permission failures become a permanent
// ErrRemoteUnavailable, and anything else is a transient
// ErrRemoteUnavailable eligible for retry.
func (s *s3Backend) classify(key string, err error) error {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return fmt.Errorf("%w: s3://%s/%s", terrors.ErrRemoteNotFound, s.bucket, key)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return fmt.Errorf("%w: s3://%s/%s", terrors.ErrRemoteNotFound, s.bucket, key)
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken", "TokenRefreshRequired":
			return fmt.Errorf("%w: s3://%s/%s: %s", terrors.ErrRemoteUnavailable, s.bucket, key, apiErr.ErrorMessage())
		}
	}

	return markTransient(fmt.Errorf("%w: s3://%s/%s: %s", terrors.ErrRemoteUnavailable, s.bucket, key, err))
}
