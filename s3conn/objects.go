package s3conn

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// UploadObject uploads body to the remembered bucket under key.
func (s *S3Connection) UploadObject(ctx context.Context, key string, body io.Reader) error {
	client, bucket, err := s.requireBucket()
	if err != nil {
		return err
	}

	start := time.Now()
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	s.record("s3", "PutObject", start, err)
	if err != nil {
		s.log.Error("Error uploading file %q: %v", key, err)
		return fmt.Errorf("put object %q: %w", key, err)
	}

	s.log.Success("File %q successfully uploaded to bucket %q.", key, bucket)
	return nil
}

// GetObject retrieves an object from the remembered bucket. The caller owns
// the response body and must close it.
func (s *S3Connection) GetObject(ctx context.Context, key string) (*s3.GetObjectOutput, error) {
	client, bucket, err := s.requireBucket()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	s.record("s3", "GetObject", start, err)
	if err != nil {
		s.log.Error("an error occurred: %v", err)
		return nil, fmt.Errorf("get object %q: %w", key, err)
	}
	return out, nil
}

// HeadObject retrieves an object's metadata without its body.
func (s *S3Connection) HeadObject(ctx context.Context, key string) (*s3.HeadObjectOutput, error) {
	client, bucket, err := s.requireBucket()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	s.record("s3", "HeadObject", start, err)
	if err != nil {
		s.log.Error("an error occurred: %v", err)
		return nil, fmt.Errorf("head object %q: %w", key, err)
	}
	return out, nil
}

// DeleteObject removes an object from the remembered bucket.
func (s *S3Connection) DeleteObject(ctx context.Context, key string) error {
	client, bucket, err := s.requireBucket()
	if err != nil {
		return err
	}

	start := time.Now()
	_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	s.record("s3", "DeleteObject", start, err)
	if err != nil {
		s.log.Error("an error occurred: %v", err)
		return fmt.Errorf("delete object %q: %w", key, err)
	}

	s.log.Success("Successfully deleted %q from bucket %q.", key, bucket)
	return nil
}

// ListObjects returns the first page of objects in the remembered bucket.
// Listing is deliberately unpaginated; an empty bucket yields an empty slice.
func (s *S3Connection) ListObjects(ctx context.Context) ([]s3types.Object, error) {
	client, bucket, err := s.requireBucket()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	})
	s.record("s3", "ListObjectsV2", start, err)
	if err != nil {
		s.log.Error("an error occurred: %v", err)
		return nil, fmt.Errorf("list objects: %w", err)
	}
	if out.Contents == nil {
		return []s3types.Object{}, nil
	}
	return out.Contents, nil
}

// ListObjectKeys returns only the keys from the first page of the remembered
// bucket's listing.
func (s *S3Connection) ListObjectKeys(ctx context.Context) ([]string, error) {
	objects, err := s.ListObjects(ctx)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(objects))
	for _, obj := range objects {
		keys = append(keys, aws.ToString(obj.Key))
	}
	return keys, nil
}
