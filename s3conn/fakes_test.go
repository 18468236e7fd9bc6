package s3conn

import (
	"context"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/muhammedrahil/cloudspark/awsconn"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

// fakeS3Client implements S3API for testing. Per-operation error fields and
// call counters let tests script upstream outcomes and assert call counts.
type fakeS3Client struct {
	headBucketErr   error // nil means bucket exists
	createBucketErr error
	deleteBucketErr error
	putCorsErr      error
	getCorsErr      error
	deleteCorsErr   error
	putPolicyErr    error
	getPolicyErr    error
	deletePolicyErr error
	putPABErr       error
	putObjectErr    error
	getObjectErr    error
	headObjectErr   error
	deleteObjectErr error
	listObjectsErr  error

	getCorsOut     *s3.GetBucketCorsOutput
	getPolicyOut   *s3.GetBucketPolicyOutput
	listObjectsOut *s3.ListObjectsV2Output

	calls map[string]int

	lastCreateInput *s3.CreateBucketInput
	lastPutCors     *s3.PutBucketCorsInput
	lastPutPolicy   *s3.PutBucketPolicyInput
	lastPutPAB      *s3.PutPublicAccessBlockInput
	lastPutObject   *s3.PutObjectInput
	lastKey         string
}

func newFakeS3Client() *fakeS3Client {
	return &fakeS3Client{calls: map[string]int{}}
}

func (f *fakeS3Client) HeadBucket(_ context.Context, _ *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	f.calls["HeadBucket"]++
	if f.headBucketErr != nil {
		return nil, f.headBucketErr
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3Client) CreateBucket(_ context.Context, params *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	f.calls["CreateBucket"]++
	f.lastCreateInput = params
	if f.createBucketErr != nil {
		return nil, f.createBucketErr
	}
	return &s3.CreateBucketOutput{}, nil
}

func (f *fakeS3Client) DeleteBucket(_ context.Context, _ *s3.DeleteBucketInput, _ ...func(*s3.Options)) (*s3.DeleteBucketOutput, error) {
	f.calls["DeleteBucket"]++
	if f.deleteBucketErr != nil {
		return nil, f.deleteBucketErr
	}
	return &s3.DeleteBucketOutput{}, nil
}

func (f *fakeS3Client) PutBucketCors(_ context.Context, params *s3.PutBucketCorsInput, _ ...func(*s3.Options)) (*s3.PutBucketCorsOutput, error) {
	f.calls["PutBucketCors"]++
	f.lastPutCors = params
	if f.putCorsErr != nil {
		return nil, f.putCorsErr
	}
	return &s3.PutBucketCorsOutput{}, nil
}

func (f *fakeS3Client) GetBucketCors(_ context.Context, _ *s3.GetBucketCorsInput, _ ...func(*s3.Options)) (*s3.GetBucketCorsOutput, error) {
	f.calls["GetBucketCors"]++
	if f.getCorsErr != nil {
		return nil, f.getCorsErr
	}
	if f.getCorsOut != nil {
		return f.getCorsOut, nil
	}
	return &s3.GetBucketCorsOutput{}, nil
}

func (f *fakeS3Client) DeleteBucketCors(_ context.Context, _ *s3.DeleteBucketCorsInput, _ ...func(*s3.Options)) (*s3.DeleteBucketCorsOutput, error) {
	f.calls["DeleteBucketCors"]++
	if f.deleteCorsErr != nil {
		return nil, f.deleteCorsErr
	}
	return &s3.DeleteBucketCorsOutput{}, nil
}

func (f *fakeS3Client) PutBucketPolicy(_ context.Context, params *s3.PutBucketPolicyInput, _ ...func(*s3.Options)) (*s3.PutBucketPolicyOutput, error) {
	f.calls["PutBucketPolicy"]++
	f.lastPutPolicy = params
	if f.putPolicyErr != nil {
		return nil, f.putPolicyErr
	}
	return &s3.PutBucketPolicyOutput{}, nil
}

func (f *fakeS3Client) GetBucketPolicy(_ context.Context, _ *s3.GetBucketPolicyInput, _ ...func(*s3.Options)) (*s3.GetBucketPolicyOutput, error) {
	f.calls["GetBucketPolicy"]++
	if f.getPolicyErr != nil {
		return nil, f.getPolicyErr
	}
	if f.getPolicyOut != nil {
		return f.getPolicyOut, nil
	}
	return &s3.GetBucketPolicyOutput{}, nil
}

func (f *fakeS3Client) DeleteBucketPolicy(_ context.Context, _ *s3.DeleteBucketPolicyInput, _ ...func(*s3.Options)) (*s3.DeleteBucketPolicyOutput, error) {
	f.calls["DeleteBucketPolicy"]++
	if f.deletePolicyErr != nil {
		return nil, f.deletePolicyErr
	}
	return &s3.DeleteBucketPolicyOutput{}, nil
}

func (f *fakeS3Client) PutPublicAccessBlock(_ context.Context, params *s3.PutPublicAccessBlockInput, _ ...func(*s3.Options)) (*s3.PutPublicAccessBlockOutput, error) {
	f.calls["PutPublicAccessBlock"]++
	f.lastPutPAB = params
	if f.putPABErr != nil {
		return nil, f.putPABErr
	}
	return &s3.PutPublicAccessBlockOutput{}, nil
}

func (f *fakeS3Client) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.calls["PutObject"]++
	f.lastPutObject = params
	if params.Key != nil {
		f.lastKey = *params.Key
	}
	if f.putObjectErr != nil {
		return nil, f.putObjectErr
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3Client) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.calls["GetObject"]++
	if params.Key != nil {
		f.lastKey = *params.Key
	}
	if f.getObjectErr != nil {
		return nil, f.getObjectErr
	}
	return &s3.GetObjectOutput{}, nil
}

func (f *fakeS3Client) HeadObject(_ context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.calls["HeadObject"]++
	if params.Key != nil {
		f.lastKey = *params.Key
	}
	if f.headObjectErr != nil {
		return nil, f.headObjectErr
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3Client) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.calls["DeleteObject"]++
	if params.Key != nil {
		f.lastKey = *params.Key
	}
	if f.deleteObjectErr != nil {
		return nil, f.deleteObjectErr
	}
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3Client) ListObjectsV2(_ context.Context, _ *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.calls["ListObjectsV2"]++
	if f.listObjectsErr != nil {
		return nil, f.listObjectsErr
	}
	if f.listObjectsOut != nil {
		return f.listObjectsOut, nil
	}
	return &s3.ListObjectsV2Output{}, nil
}

// totalCalls sums every recorded SDK call, for zero-network assertions.
func (f *fakeS3Client) totalCalls() int {
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// fakePresigner implements PresignAPI for testing. Option functions are
// applied so tests can observe the expiry and conditions the facade set.
type fakePresigner struct {
	url        string
	postValues map[string]string
	err        error

	getCalls    int
	deleteCalls int
	postCalls   int

	lastGetExpires    s3.PresignOptions
	lastDeleteExpires s3.PresignOptions
	lastPostOptions   s3.PresignPostOptions
	lastKey           string
}

func (f *fakePresigner) PresignGetObject(_ context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.getCalls++
	if params.Key != nil {
		f.lastKey = *params.Key
	}
	for _, fn := range optFns {
		fn(&f.lastGetExpires)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &v4.PresignedHTTPRequest{URL: f.url}, nil
}

func (f *fakePresigner) PresignDeleteObject(_ context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.deleteCalls++
	if params.Key != nil {
		f.lastKey = *params.Key
	}
	for _, fn := range optFns {
		fn(&f.lastDeleteExpires)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &v4.PresignedHTTPRequest{URL: f.url}, nil
}

func (f *fakePresigner) PresignPostObject(_ context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignPostOptions)) (*s3.PresignedPostRequest, error) {
	f.postCalls++
	if params.Key != nil {
		f.lastKey = *params.Key
	}
	for _, fn := range optFns {
		fn(&f.lastPostOptions)
	}
	if f.err != nil {
		return nil, f.err
	}
	values := map[string]string{}
	for k, v := range f.postValues {
		values[k] = v
	}
	return &s3.PresignedPostRequest{URL: f.url, Values: values}, nil
}

// fakeIAMClient implements ListUserPoliciesAPI for testing.
type fakeIAMClient struct {
	policyNames []string
	err         error
	calls       int
	lastUser    string
}

func (f *fakeIAMClient) ListUserPolicies(_ context.Context, params *iam.ListUserPoliciesInput, _ ...func(*iam.Options)) (*iam.ListUserPoliciesOutput, error) {
	f.calls++
	if params.UserName != nil {
		f.lastUser = *params.UserName
	}
	if f.err != nil {
		return nil, f.err
	}
	return &iam.ListUserPoliciesOutput{PolicyNames: f.policyNames}, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// bucketNotFoundError returns an error that errors.As can unwrap to
// *s3types.NotFound, as HeadBucket surfaces 404.
func bucketNotFoundError() error {
	return &smithyhttp.ResponseError{
		Response: &smithyhttp.Response{Response: &http.Response{StatusCode: 404}},
		Err:      &s3types.NotFound{Message: aws.String("not found")},
	}
}

// newTestFacade wires a facade to the given fakes for the given region.
func newTestFacade(region string, s3c *fakeS3Client, presigner *fakePresigner, iamc *fakeIAMClient, opts ...Option) *S3Connection {
	conn := awsconn.New(awsconn.Credentials{
		AccessKey: "AKIATEST",
		SecretKey: "secret",
		Region:    region,
	})
	base := []Option{
		WithClientFactory(func(aws.Config) (S3API, PresignAPI) {
			return s3c, presigner
		}),
		WithIAMFactory(func(aws.Config) ListUserPoliciesAPI {
			return iamc
		}),
	}
	// Caller options come last so tests can override the factories.
	return New(conn, append(base, opts...)...)
}
