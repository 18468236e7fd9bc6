package s3conn

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/muhammedrahil/cloudspark/policy"
)

// DefaultCORSRules returns a fresh copy of the permissive default CORS rule
// set: all origins and headers, the five verbs the facade's presigned URLs
// can produce, and a 3000 second preflight cache. Built per call so callers
// can mutate the result freely.
func DefaultCORSRules() []s3types.CORSRule {
	return []s3types.CORSRule{
		{
			AllowedHeaders: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "HEAD", "DELETE"},
			AllowedOrigins: []string{"*"},
			ExposeHeaders:  []string{},
			MaxAgeSeconds:  aws.Int32(3000),
		},
	}
}

// CreateBucket creates the named bucket if it does not exist and adopts it
// as the remembered bucket. An existing bucket is a non-fatal, logged
// outcome. us-east-1 is the AWS special case: its CreateBucket request must
// not carry a LocationConstraint.
func (s *S3Connection) CreateBucket(ctx context.Context, bucketName string) error {
	client, err := s.require()
	if err != nil {
		return err
	}

	start := time.Now()
	_, headErr := client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucketName),
	})
	s.record("s3", "HeadBucket", start, headErr)

	if headErr == nil {
		s.log.Error("Bucket %q already exists.", bucketName)
		s.setBucket(bucketName)
		return nil
	}
	if !isBucketNotFound(headErr) {
		s.log.Error("an error occurred: %v", headErr)
		return fmt.Errorf("head bucket %q: %w", bucketName, headErr)
	}

	input := &s3.CreateBucketInput{
		Bucket: aws.String(bucketName),
	}
	if region := s.conn.Region(); region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(region),
		}
	}

	start = time.Now()
	_, err = client.CreateBucket(ctx, input)
	s.record("s3", "CreateBucket", start, err)
	if err != nil {
		s.log.Error("an error occurred: %v", err)
		return fmt.Errorf("create bucket %q: %w", bucketName, err)
	}

	s.log.Success("Bucket %q created successfully.", bucketName)
	s.setBucket(bucketName)
	return nil
}

// DeleteBucket deletes the remembered bucket.
func (s *S3Connection) DeleteBucket(ctx context.Context) error {
	client, bucket, err := s.requireBucket()
	if err != nil {
		return err
	}

	start := time.Now()
	_, err = client.DeleteBucket(ctx, &s3.DeleteBucketInput{
		Bucket: aws.String(bucket),
	})
	s.record("s3", "DeleteBucket", start, err)
	if err != nil {
		s.log.Error("an error occurred: %v", err)
		return fmt.Errorf("delete bucket %q: %w", bucket, err)
	}

	s.log.Success("Bucket %q deleted.", bucket)
	return nil
}

// SetBucketCORS applies the given CORS rules to the remembered bucket. A nil
// rule set applies DefaultCORSRules.
func (s *S3Connection) SetBucketCORS(ctx context.Context, rules []s3types.CORSRule) error {
	client, bucket, err := s.requireBucket()
	if err != nil {
		return err
	}

	if rules == nil {
		rules = DefaultCORSRules()
	}

	start := time.Now()
	_, err = client.PutBucketCors(ctx, &s3.PutBucketCorsInput{
		Bucket:            aws.String(bucket),
		CORSConfiguration: &s3types.CORSConfiguration{CORSRules: rules},
	})
	s.record("s3", "PutBucketCors", start, err)
	if err != nil {
		s.log.Error("an error occurred: %v", err)
		return fmt.Errorf("put bucket cors: %w", err)
	}

	s.log.Success("CORS configuration set for bucket %q.", bucket)
	return nil
}

// GetBucketCORS retrieves the CORS rules of the remembered bucket.
func (s *S3Connection) GetBucketCORS(ctx context.Context) ([]s3types.CORSRule, error) {
	client, bucket, err := s.requireBucket()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := client.GetBucketCors(ctx, &s3.GetBucketCorsInput{
		Bucket: aws.String(bucket),
	})
	s.record("s3", "GetBucketCors", start, err)
	if err != nil {
		s.log.Error("an error occurred: %v", err)
		return nil, fmt.Errorf("get bucket cors: %w", err)
	}
	return out.CORSRules, nil
}

// DeleteBucketCORS removes the CORS configuration from the remembered bucket.
func (s *S3Connection) DeleteBucketCORS(ctx context.Context) error {
	client, bucket, err := s.requireBucket()
	if err != nil {
		return err
	}

	start := time.Now()
	_, err = client.DeleteBucketCors(ctx, &s3.DeleteBucketCorsInput{
		Bucket: aws.String(bucket),
	})
	s.record("s3", "DeleteBucketCors", start, err)
	if err != nil {
		s.log.Error("an error occurred: %v", err)
		return fmt.Errorf("delete bucket cors: %w", err)
	}
	return nil
}

// SetBucketPolicy applies a policy document to the remembered bucket. A nil
// document applies a fresh public-read policy scoped to the bucket.
func (s *S3Connection) SetBucketPolicy(ctx context.Context, doc *policy.Document) error {
	_, bucket, err := s.requireBucket()
	if err != nil {
		return err
	}

	if doc == nil {
		doc = policy.PublicRead(bucket)
	}
	raw, err := doc.JSON()
	if err != nil {
		return err
	}
	return s.SetBucketPolicyJSON(ctx, raw)
}

// SetBucketPolicyJSON applies a provider-native JSON policy document to the
// remembered bucket. AccessDenied gets a dedicated console line because it is
// the failure operators hit most when the acting credentials lack
// s3:PutBucketPolicy.
func (s *S3Connection) SetBucketPolicyJSON(ctx context.Context, policyJSON string) error {
	client, bucket, err := s.requireBucket()
	if err != nil {
		return err
	}

	start := time.Now()
	_, err = client.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(bucket),
		Policy: aws.String(policyJSON),
	})
	s.record("s3", "PutBucketPolicy", start, err)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "AccessDenied" {
			s.log.Error("Access denied: insufficient permissions to set the bucket policy.")
		} else {
			s.log.Error("an error occurred: %v", err)
		}
		return fmt.Errorf("put bucket policy: %w", err)
	}

	s.log.Success("Bucket policy updated successfully.")
	return nil
}

// GetBucketPolicy retrieves the remembered bucket's policy as the
// provider-native JSON document.
func (s *S3Connection) GetBucketPolicy(ctx context.Context) (string, error) {
	client, bucket, err := s.requireBucket()
	if err != nil {
		return "", err
	}

	start := time.Now()
	out, err := client.GetBucketPolicy(ctx, &s3.GetBucketPolicyInput{
		Bucket: aws.String(bucket),
	})
	s.record("s3", "GetBucketPolicy", start, err)
	if err != nil {
		s.log.Error("an error occurred: %v", err)
		return "", fmt.Errorf("get bucket policy: %w", err)
	}
	return aws.ToString(out.Policy), nil
}

// DeleteBucketPolicy removes the remembered bucket's policy.
func (s *S3Connection) DeleteBucketPolicy(ctx context.Context) error {
	client, bucket, err := s.requireBucket()
	if err != nil {
		return err
	}

	start := time.Now()
	_, err = client.DeleteBucketPolicy(ctx, &s3.DeleteBucketPolicyInput{
		Bucket: aws.String(bucket),
	})
	s.record("s3", "DeleteBucketPolicy", start, err)
	if err != nil {
		s.log.Error("an error occurred: %v", err)
		return fmt.Errorf("delete bucket policy: %w", err)
	}
	return nil
}

// PublicAccess blocks or allows public access on the remembered bucket.
// All four public-access-block flags follow the block argument.
func (s *S3Connection) PublicAccess(ctx context.Context, block bool) error {
	client, bucket, err := s.requireBucket()
	if err != nil {
		return err
	}

	start := time.Now()
	_, err = client.PutPublicAccessBlock(ctx, &s3.PutPublicAccessBlockInput{
		Bucket: aws.String(bucket),
		PublicAccessBlockConfiguration: &s3types.PublicAccessBlockConfiguration{
			BlockPublicAcls:       aws.Bool(block),
			IgnorePublicAcls:      aws.Bool(block),
			BlockPublicPolicy:     aws.Bool(block),
			RestrictPublicBuckets: aws.Bool(block),
		},
	})
	s.record("s3", "PutPublicAccessBlock", start, err)
	if err != nil {
		s.log.Error("an error occurred: %v", err)
		return fmt.Errorf("put public access block: %w", err)
	}

	status := "blocked"
	if !block {
		status = "allowed"
	}
	s.log.Success("Public access %s for bucket %q.", status, bucket)
	return nil
}

// isBucketNotFound reports whether err is a "bucket does not exist"
// response. HeadBucket surfaces 404 as *s3types.NotFound on AWS proper;
// S3-compatible endpoints may return NoSuchBucket or a bare coded APIError.
func isBucketNotFound(err error) bool {
	var notFound *s3types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noSuchBucket *s3types.NoSuchBucket
	if errors.As(err, &noSuchBucket) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchBucket", "404":
			return true
		}
	}
	return false
}
