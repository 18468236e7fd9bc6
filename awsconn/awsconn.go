// Package awsconn manages AWS identity for cloudspark. A Connection captures
// an immutable set of credentials at construction time and lazily builds
// exactly one aws.Config from them; the config is memoized for the lifetime
// of the Connection and never replaced.
//
// Temporary, scoped credentials can be minted ahead of time with a
// TokenIssuer (see issuer.go) and passed to New like any other key pair.
package awsconn

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// Credentials holds an access key pair, an optional session token, and the
// target region. Values are immutable once constructed.
type Credentials struct {
	AccessKey    string
	SecretKey    string
	SessionToken string
	Region       string
}

// Connection lazily constructs and memoizes an aws.Config bound to a static
// credentials provider. Safe for concurrent use: concurrent first calls to
// Establish construct the config exactly once.
type Connection struct {
	creds Credentials

	once sync.Once
	cfg  aws.Config
}

// New creates a Connection for the given credentials. No network activity
// occurs until a client built from Establish performs a call.
func New(creds Credentials) *Connection {
	return &Connection{creds: creds}
}

// NewFromEnvironment builds a Connection from the ambient AWS credential
// chain (environment variables, shared config files, instance metadata)
// instead of explicit static keys. The resolved config is memoized the same
// way as one built by Establish.
func NewFromEnvironment(ctx context.Context, region string) (*Connection, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	c := &Connection{creds: Credentials{Region: region}}
	c.once.Do(func() { c.cfg = cfg })
	return c, nil
}

// Establish returns the memoized aws.Config, building it on first use.
// Every subsequent call returns the identical config.
func (c *Connection) Establish() aws.Config {
	c.once.Do(func() {
		c.cfg = aws.Config{
			Region: c.creds.Region,
			Credentials: credentials.NewStaticCredentialsProvider(
				c.creds.AccessKey,
				c.creds.SecretKey,
				c.creds.SessionToken,
			),
		}
	})
	return c.cfg
}

// Credentials returns a copy of the identity captured at construction time.
func (c *Connection) Credentials() Credentials {
	return c.creds
}

// Region returns the region captured at construction time.
func (c *Connection) Region() string {
	return c.creds.Region
}
