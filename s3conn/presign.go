package s3conn

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MetadataFieldPrefix is the form-field prefix under which object metadata
// travels in a presigned POST upload.
const MetadataFieldPrefix = "x-amz-meta-"

// fileNameParam is the reserved Params key that names the upload itself and
// must never become a metadata field.
const fileNameParam = "file_name"

// PresignPostInput carries the optional inputs of PresignedCreateURL.
//
// Params entries other than the reserved "file_name" key are injected as
// x-amz-meta-<key> entries into both Fields and Conditions, bound to the
// literal value. This lets a caller pre-authorize specific object metadata
// without the uploader being able to forge different values.
//
// Fields and Conditions, when supplied, are mutated in place; callers must
// not assume immutability of what they pass. Nil values get fresh ones.
type PresignPostInput struct {
	Params     map[string]string
	Fields     map[string]string
	Conditions []any

	// Expires bounds the POST policy's validity. Zero means DefaultExpiry.
	Expires time.Duration
}

// PresignedPost is the descriptor returned for a presigned POST upload:
// the form action URL, the complete form field set (signature fields plus
// any injected metadata), the policy conditions, and the validity window.
type PresignedPost struct {
	URL        string
	Fields     map[string]string
	Conditions []any
	Expires    time.Duration
}

// PresignedCreateURL builds a presigned POST upload descriptor for
// objectName in the remembered bucket. See PresignPostInput for the
// metadata-injection contract.
func (s *S3Connection) PresignedCreateURL(ctx context.Context, objectName string, in PresignPostInput) (*PresignedPost, error) {
	presigner, bucket, err := s.requirePresigner()
	if err != nil {
		return nil, err
	}

	fields := in.Fields
	if fields == nil {
		fields = make(map[string]string)
	}
	conditions := in.Conditions
	for key, value := range in.Params {
		if key == fileNameParam {
			continue
		}
		name := MetadataFieldPrefix + key
		fields[name] = value
		conditions = append(conditions, map[string]string{name: value})
	}

	expires := in.Expires
	if expires <= 0 {
		expires = DefaultExpiry
	}

	start := time.Now()
	out, err := presigner.PresignPostObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectName),
	}, func(o *s3.PresignPostOptions) {
		o.Expires = expires
		o.Conditions = conditions
	})
	s.record("s3", "PresignPostObject", start, err)
	if err != nil {
		s.log.Error("an error occurred: %v", err)
		return nil, fmt.Errorf("presign create url for %q: %w", objectName, err)
	}

	// The signed form values (key, policy, signature) join the injected
	// metadata fields; the service's values win on key collisions.
	for k, v := range out.Values {
		fields[k] = v
	}

	return &PresignedPost{
		URL:        out.URL,
		Fields:     fields,
		Conditions: conditions,
		Expires:    expires,
	}, nil
}

// PresignedGetURL generates a time-bounded URL granting GET access to one
// object. Zero expires means DefaultExpiry.
func (s *S3Connection) PresignedGetURL(ctx context.Context, objectName string, expires time.Duration) (string, error) {
	presigner, bucket, err := s.requirePresigner()
	if err != nil {
		return "", err
	}
	if expires <= 0 {
		expires = DefaultExpiry
	}

	start := time.Now()
	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectName),
	}, s3.WithPresignExpires(expires))
	s.record("s3", "PresignGetObject", start, err)
	if err != nil {
		s.log.Error("an error occurred: %v", err)
		return "", fmt.Errorf("presign get url for %q: %w", objectName, err)
	}
	return req.URL, nil
}

// PresignedDeleteURL generates a time-bounded URL granting DELETE access to
// one object. Zero expires means DefaultExpiry.
func (s *S3Connection) PresignedDeleteURL(ctx context.Context, objectName string, expires time.Duration) (string, error) {
	presigner, bucket, err := s.requirePresigner()
	if err != nil {
		return "", err
	}
	if expires <= 0 {
		expires = DefaultExpiry
	}

	start := time.Now()
	req, err := presigner.PresignDeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(objectName),
	}, s3.WithPresignExpires(expires))
	s.record("s3", "PresignDeleteObject", start, err)
	if err != nil {
		s.log.Error("an error occurred: %v", err)
		return "", fmt.Errorf("presign delete url for %q: %w", objectName, err)
	}
	return req.URL, nil
}
