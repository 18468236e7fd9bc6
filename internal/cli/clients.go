package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/muhammedrahil/cloudspark/awsconn"
	"github.com/muhammedrahil/cloudspark/config"
	"github.com/muhammedrahil/cloudspark/console"
	"github.com/muhammedrahil/cloudspark/logging"
	"github.com/muhammedrahil/cloudspark/s3conn"
)

// loadConfig reads the on-disk configuration and applies CLI flag
// overrides from the command context.
func loadConfig(cliCtx *CLIContext) (*config.Config, error) {
	cfg, err := config.Load(config.DefaultConfigDir())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cliCtx == nil {
		return cfg, nil
	}
	if cliCtx.Region != "" {
		cfg.Region = cliCtx.Region
	}
	if cliCtx.Bucket != "" {
		cfg.Bucket = cliCtx.Bucket
	}
	return cfg, nil
}

// newFacade builds a connected S3 facade from configuration. The returned
// facade has its client established and the configured bucket adopted.
func newFacade(cliCtx *CLIContext) (*s3conn.S3Connection, *config.Config, error) {
	cfg, err := loadConfig(cliCtx)
	if err != nil {
		return nil, nil, err
	}

	rec := logging.NopRecorder()
	if cliCtx != nil && cliCtx.Debug {
		if r, err := logging.NewFileRecorder(os.TempDir(), true); err == nil {
			rec = r
		}
	}

	var conn *awsconn.Connection
	if cfg.AccessKey == "" && cfg.SecretKey == "" {
		// No keys configured, fall back to the ambient credential chain.
		conn, err = awsconn.NewFromEnvironment(context.Background(), cfg.Region)
		if err != nil {
			return nil, nil, err
		}
	} else {
		conn = awsconn.New(awsconn.Credentials{
			AccessKey:    cfg.AccessKey,
			SecretKey:    cfg.SecretKey,
			SessionToken: cfg.SessionToken,
			Region:       cfg.Region,
		})
	}

	facade := s3conn.New(conn,
		s3conn.WithLogger(console.New(os.Stdout)),
		s3conn.WithRecorder(rec),
	)
	facade.Connect(cfg.Bucket)
	return facade, cfg, nil
}
