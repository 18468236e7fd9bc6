package awsconn

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/muhammedrahil/cloudspark/console"
)

// GetSessionTokenAPI defines the subset of the STS API used to mint
// temporary credentials. This interface enables mock injection for testing.
type GetSessionTokenAPI interface {
	GetSessionToken(ctx context.Context, params *sts.GetSessionTokenInput, optFns ...func(*sts.Options)) (*sts.GetSessionTokenOutput, error)
}

var _ GetSessionTokenAPI = (*sts.Client)(nil)

// TokenIssuer exchanges a long-lived key pair for a short-lived, scoped
// credential triple. Each Issue call mints a fresh, independently-expiring
// token; nothing is cached and nothing is retried.
type TokenIssuer struct {
	client GetSessionTokenAPI
	region string
	log    console.Logger
}

// NewTokenIssuer creates a TokenIssuer with the given STS client.
// Pass a nil logger to suppress console output.
func NewTokenIssuer(client GetSessionTokenAPI, region string, log console.Logger) *TokenIssuer {
	if log == nil {
		log = console.Nop()
	}
	return &TokenIssuer{client: client, region: region, log: log}
}

// Issue performs one GetSessionToken round trip and returns the resulting
// scoped credentials. The duration is passed through to the service; values
// outside the service's accepted range surface as the upstream rejection
// rather than a local validation error, since the bound is provider-defined.
func (i *TokenIssuer) Issue(ctx context.Context, duration time.Duration) (Credentials, error) {
	if duration <= 0 {
		return Credentials{}, fmt.Errorf("token duration must be positive, got %s", duration)
	}

	out, err := i.client.GetSessionToken(ctx, &sts.GetSessionTokenInput{
		DurationSeconds: aws.Int32(int32(duration / time.Second)),
	})
	if err != nil {
		i.log.Error("an error occurred: %v", err)
		return Credentials{}, fmt.Errorf("sts get-session-token: %w", err)
	}

	if out.Credentials == nil {
		return Credentials{}, fmt.Errorf("sts get-session-token returned nil credentials")
	}

	i.log.Success("Temporary credentials issued, expiring at %s.", aws.ToTime(out.Credentials.Expiration).Format(time.RFC3339))
	return Credentials{
		AccessKey:    aws.ToString(out.Credentials.AccessKeyId),
		SecretKey:    aws.ToString(out.Credentials.SecretAccessKey),
		SessionToken: aws.ToString(out.Credentials.SessionToken),
		Region:       i.region,
	}, nil
}

// IssueTemporaryCredentials builds an STS client from the given long-lived
// key pair and mints a scoped credential triple in one step. The returned
// Credentials can be passed directly to New.
func IssueTemporaryCredentials(ctx context.Context, accessKey, secretKey, region string, duration time.Duration) (Credentials, error) {
	if accessKey == "" || secretKey == "" {
		return Credentials{}, fmt.Errorf("access key and secret key must be non-empty")
	}

	client := sts.NewFromConfig(aws.Config{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
	})
	return NewTokenIssuer(client, region, nil).Issue(ctx, duration)
}
