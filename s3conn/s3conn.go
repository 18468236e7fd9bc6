// Package s3conn provides the cloudspark storage facade: a lazily connected
// S3 client bound to a remembered bucket name, with bucket lifecycle, CORS,
// policy, public-access, object CRUD, IAM policy listing, and presigned URL
// operations layered on top.
//
// The facade composes an awsconn.Connection rather than extending it. Client
// and presign client are constructed at most once per facade instance and
// never replaced; there is no reconnect path. Every operation other than
// Connect fails fast with a precondition error if invoked before the client
// (and, where required, a bucket) is set; no network call is attempted.
package s3conn

import (
	"errors"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/muhammedrahil/cloudspark/awsconn"
	"github.com/muhammedrahil/cloudspark/console"
	"github.com/muhammedrahil/cloudspark/logging"
)

// DefaultExpiry is the presigned URL lifetime used when the caller does not
// supply one.
const DefaultExpiry = time.Hour

// Precondition errors returned before any network attempt.
var (
	// ErrNotConnected is returned by operations invoked before Connect.
	ErrNotConnected = errors.New("s3 connection not established: call Connect first")

	// ErrNoBucket is returned by bucket-scoped operations when no bucket
	// name has been remembered yet.
	ErrNoBucket = errors.New("no bucket set: call Connect with a bucket name")
)

// S3Connection is the storage facade. Construct with New, then call Connect
// before any operation. Safe for concurrent use; note that two concurrent
// Connect calls with different bucket names race on the single remembered
// bucket with last-write-wins semantics.
type S3Connection struct {
	conn *awsconn.Connection
	log  console.Logger
	rec  logging.Recorder

	// Factories are overridable for tests; the defaults build real SDK
	// clients from the connection's aws.Config.
	newClient func(aws.Config) (S3API, PresignAPI)
	newIAM    func(aws.Config) ListUserPoliciesAPI

	mu        sync.Mutex
	client    S3API
	presigner PresignAPI
	iamClient ListUserPoliciesAPI
	bucket    string
}

// Option configures an S3Connection at construction time.
type Option func(*S3Connection)

// WithLogger sets the console output collaborator. The default discards all
// output.
func WithLogger(log console.Logger) Option {
	return func(s *S3Connection) { s.log = log }
}

// WithRecorder sets the structured API-call recorder. The default discards
// all records.
func WithRecorder(rec logging.Recorder) Option {
	return func(s *S3Connection) { s.rec = rec }
}

// WithClientFactory overrides S3 client construction. Primarily a test seam.
func WithClientFactory(f func(aws.Config) (S3API, PresignAPI)) Option {
	return func(s *S3Connection) { s.newClient = f }
}

// WithIAMFactory overrides IAM client construction. Primarily a test seam.
func WithIAMFactory(f func(aws.Config) ListUserPoliciesAPI) Option {
	return func(s *S3Connection) { s.newIAM = f }
}

// New creates a facade over the given connection. No clients are constructed
// until Connect.
func New(conn *awsconn.Connection, opts ...Option) *S3Connection {
	s := &S3Connection{
		conn: conn,
		log:  console.Nop(),
		rec:  logging.NopRecorder(),
		newClient: func(cfg aws.Config) (S3API, PresignAPI) {
			client := s3.NewFromConfig(cfg)
			return client, s3.NewPresignClient(client)
		},
		newIAM: func(cfg aws.Config) ListUserPoliciesAPI {
			return iam.NewFromConfig(cfg)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect ensures the underlying session and the S3 client exist, building
// each at most once, and returns the client. A non-empty bucketName
// unconditionally overwrites the remembered bucket; an empty one leaves it
// untouched.
func (s *S3Connection) Connect(bucketName string) S3API {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		cfg := s.conn.Establish()
		s.client, s.presigner = s.newClient(cfg)
	}
	if bucketName != "" {
		s.bucket = bucketName
	}
	return s.client
}

// Instance returns the connected client, or ErrNotConnected if Connect was
// never called.
func (s *S3Connection) Instance() (S3API, error) {
	return s.require()
}

// Bucket returns the remembered bucket name, or the empty string if none has
// been set.
func (s *S3Connection) Bucket() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bucket
}

// require returns the client, failing with ErrNotConnected before any
// network attempt when Connect has not run.
func (s *S3Connection) require() (S3API, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil, ErrNotConnected
	}
	return s.client, nil
}

// requireBucket returns the client and remembered bucket, failing fast when
// either precondition is missing.
func (s *S3Connection) requireBucket() (S3API, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil, "", ErrNotConnected
	}
	if s.bucket == "" {
		return nil, "", ErrNoBucket
	}
	return s.client, s.bucket, nil
}

// requirePresigner returns the presign client and remembered bucket.
func (s *S3Connection) requirePresigner() (PresignAPI, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.presigner == nil {
		return nil, "", ErrNotConnected
	}
	if s.bucket == "" {
		return nil, "", ErrNoBucket
	}
	return s.presigner, s.bucket, nil
}

// setBucket overwrites the remembered bucket (last-write-wins).
func (s *S3Connection) setBucket(name string) {
	s.mu.Lock()
	s.bucket = name
	s.mu.Unlock()
}

// record forwards one completed SDK call to the structured recorder.
func (s *S3Connection) record(service, operation string, start time.Time, err error) {
	s.rec.Record(service, operation, time.Since(start), err)
}
