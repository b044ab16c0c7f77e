package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

type S3Config struct {
	Endpoint     string
	Region       string
	AccessKeyID  string
	SecretKey    string
	UsePathStyle bool
}

// S3Gateway implements Gateway on any S3-compatible backend.
type S3Gateway struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

func NewS3Gateway(ctx context.Context, cfg S3Config, bucket string) (*S3Gateway, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.Endpoint != "" {
			return aws.Endpoint{
				URL:           cfg.Endpoint,
				PartitionID:   "aws",
				SigningRegion: cfg.Region,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3Gateway{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
	}, nil
}

func (g *S3Gateway) ListBuckets(ctx context.Context) ([]BucketInfo, error) {
	out, err := g.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, err
	}
	buckets := make([]BucketInfo, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		buckets = append(buckets, BucketInfo{Name: aws.ToString(b.Name)})
	}
	return buckets, nil
}

func (g *S3Gateway) Upload(ctx context.Context, key string, data []byte, contentType string, overwrite bool) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(g.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}
	if !overwrite {
		// Conditional write, backend rejects duplicate keys with 412.
		input.IfNoneMatch = aws.String("*")
	}
	if _, err := g.client.PutObject(ctx, input); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed" {
			return fmt.Errorf("%w: %s", ErrUploadConflict, key)
		}
		return err
	}
	return nil
}

func (g *S3Gateway) Download(ctx context.Context, key string) ([]byte, error) {
	out, err := g.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (g *S3Gateway) Delete(ctx context.Context, key string) error {
	_, err := g.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (g *S3Gateway) List(ctx context.Context, prefix string, search string) ([]ObjectInfo, error) {
	out, err := g.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(g.bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return nil, err
	}
	objects := make([]ObjectInfo, 0, len(out.Contents))
	for _, obj := range out.Contents {
		name := aws.ToString(obj.Key)
		if search != "" && !strings.Contains(name, search) {
			continue
		}
		objects = append(objects, ObjectInfo{
			Name: name,
			Size: aws.ToInt64(obj.Size),
		})
	}
	return objects, nil
}

func (g *S3Gateway) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, err := g.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expiry
	})
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
