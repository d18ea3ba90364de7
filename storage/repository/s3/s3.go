package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/superj80820/videotube/domain"
)

type s3Repo struct {
	client *s3.Client
	bucket string
	region string
}

func CreateS3Repo(ctx context.Context, bucket, region string) (domain.StorageRepo, error) {
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(region))
	if err != nil {
		return nil, errors.Wrap(err, "load default config failed")
	}

	return &s3Repo{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

func (s *s3Repo) Upload(ctx context.Context, fileReader io.Reader, key string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   fileReader,
	})
	if err != nil {
		return "", errors.Wrap(err, "put object failed")
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

func (s *s3Repo) Delete(ctx context.Context, url string) error {
	key, err := s.keyFromURL(url)
	if err != nil {
		return err
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return errors.Wrap(err, "delete object failed")
	}
	return nil
}

func (s *s3Repo) keyFromURL(url string) (string, error) {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	if !strings.HasPrefix(url, prefix) {
		return "", errors.New("url does not belong to bucket")
	}
	return strings.TrimPrefix(url, prefix), nil
}
