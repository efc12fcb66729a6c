package publisher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/Jhoney47/GameCodeBase/internal/config"
)

const digestMetadataKey = "digest"

// objectAPI is the subset of the S3 client used by S3Remote
type objectAPI interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Remote mirrors the artifact to an S3-compatible bucket
type S3Remote struct {
	client objectAPI
	bucket string
	key    string
}

// NewS3Remote builds an S3 client from configuration. A custom endpoint
// implies path-style addressing.
func NewS3Remote(cfg config.S3Config) (*S3Remote, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	accessKey := strings.TrimSpace(cfg.AccessKeyID)
	secretKey := strings.TrimSpace(cfg.SecretAccessKey)
	if bucket == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("incomplete s3 config: bucket/access_key_id/secret_access_key are required")
	}

	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		UsePathStyle: cfg.PathStyle,
	}
	if endpoint := strings.TrimSuffix(strings.TrimSpace(cfg.Endpoint), "/"); endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}

	return newS3Remote(s3.New(opts), bucket, cfg.Key), nil
}

func newS3Remote(client objectAPI, bucket, key string) *S3Remote {
	return &S3Remote{client: client, bucket: bucket, key: strings.TrimPrefix(key, "/")}
}

func (r *S3Remote) Name() string { return "s3" }

// Push uploads the artifact unless the object already carries its digest
func (r *S3Remote) Push(ctx context.Context, a Artifact) (bool, error) {
	head, err := r.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.key),
	})
	if err == nil && head.Metadata[digestMetadataKey] == a.Digest {
		return false, nil
	}
	var notFound *types.NotFound
	if err != nil && !errors.As(err, &notFound) {
		return false, fmt.Errorf("failed to stat s3://%s/%s: %w", r.bucket, r.key, err)
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(r.bucket),
		Key:          aws.String(r.key),
		Body:         bytes.NewReader(a.Data),
		ContentType:  aws.String("application/json; charset=utf-8"),
		CacheControl: aws.String("no-cache"),
		Metadata:     map[string]string{digestMetadataKey: a.Digest},
	})
	if err != nil {
		return false, fmt.Errorf("failed to upload s3://%s/%s: %w", r.bucket, r.key, err)
	}

	return true, nil
}
