package s3conn

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
)

// ListUserPolicies lists the inline policy names attached to the named IAM
// user. Requires Connect (the IAM client shares the facade's session) but no
// bucket.
func (s *S3Connection) ListUserPolicies(ctx context.Context, userName string) ([]string, error) {
	if _, err := s.require(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.iamClient == nil {
		s.iamClient = s.newIAM(s.conn.Establish())
	}
	client := s.iamClient
	s.mu.Unlock()

	start := time.Now()
	out, err := client.ListUserPolicies(ctx, &iam.ListUserPoliciesInput{
		UserName: aws.String(userName),
	})
	s.record("iam", "ListUserPolicies", start, err)
	if err != nil {
		s.log.Error("an error occurred: %v", err)
		return nil, fmt.Errorf("list user policies for %q: %w", userName, err)
	}
	return out.PolicyNames, nil
}
