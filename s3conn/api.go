// This file defines narrow interfaces for the S3, presign, and IAM
// operations the facade performs. Each interface wraps exactly one SDK
// method, enabling mock injection in tests.

package s3conn

import (
	"context"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// HeadBucketAPI defines the subset used to check bucket existence.
type HeadBucketAPI interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// CreateBucketAPI defines the subset used to create a bucket.
type CreateBucketAPI interface {
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// DeleteBucketAPI defines the subset used to delete a bucket.
type DeleteBucketAPI interface {
	DeleteBucket(ctx context.Context, params *s3.DeleteBucketInput, optFns ...func(*s3.Options)) (*s3.DeleteBucketOutput, error)
}

// BucketCorsAPI defines the subset used to manage a bucket's CORS
// configuration.
type BucketCorsAPI interface {
	PutBucketCors(ctx context.Context, params *s3.PutBucketCorsInput, optFns ...func(*s3.Options)) (*s3.PutBucketCorsOutput, error)
	GetBucketCors(ctx context.Context, params *s3.GetBucketCorsInput, optFns ...func(*s3.Options)) (*s3.GetBucketCorsOutput, error)
	DeleteBucketCors(ctx context.Context, params *s3.DeleteBucketCorsInput, optFns ...func(*s3.Options)) (*s3.DeleteBucketCorsOutput, error)
}

// BucketPolicyAPI defines the subset used to manage a bucket's policy.
type BucketPolicyAPI interface {
	PutBucketPolicy(ctx context.Context, params *s3.PutBucketPolicyInput, optFns ...func(*s3.Options)) (*s3.PutBucketPolicyOutput, error)
	GetBucketPolicy(ctx context.Context, params *s3.GetBucketPolicyInput, optFns ...func(*s3.Options)) (*s3.GetBucketPolicyOutput, error)
	DeleteBucketPolicy(ctx context.Context, params *s3.DeleteBucketPolicyInput, optFns ...func(*s3.Options)) (*s3.DeleteBucketPolicyOutput, error)
}

// PutPublicAccessBlockAPI defines the subset used to block public access.
type PutPublicAccessBlockAPI interface {
	PutPublicAccessBlock(ctx context.Context, params *s3.PutPublicAccessBlockInput, optFns ...func(*s3.Options)) (*s3.PutPublicAccessBlockOutput, error)
}

// ObjectAPI defines the subset used for single-object CRUD.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// ListObjectsV2API defines the subset used for single-page bucket listing.
type ListObjectsV2API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3API groups every S3 operation the facade performs into a single
// interface for mock injection in tests.
type S3API interface {
	HeadBucketAPI
	CreateBucketAPI
	DeleteBucketAPI
	BucketCorsAPI
	BucketPolicyAPI
	PutPublicAccessBlockAPI
	ObjectAPI
	ListObjectsV2API
}

// PresignAPI defines the presign operations the facade performs. The v4
// return type is *v4.PresignedHTTPRequest (from aws/signer/v4), which is
// what the s3.PresignClient methods return; presigned URLs are always
// SigV4-signed, the signature version presigning requires.
type PresignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignDeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignPostObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignPostOptions)) (*s3.PresignedPostRequest, error)
}

// ListUserPoliciesAPI defines the subset of the IAM API used to list inline
// policies for a named principal.
type ListUserPoliciesAPI interface {
	ListUserPolicies(ctx context.Context, params *iam.ListUserPoliciesInput, optFns ...func(*iam.Options)) (*iam.ListUserPoliciesOutput, error)
}

// Compile-time checks: the real SDK clients satisfy all narrow interfaces.
var (
	_ S3API               = (*s3.Client)(nil)
	_ PresignAPI          = (*s3.PresignClient)(nil)
	_ ListUserPoliciesAPI = (*iam.Client)(nil)
)
