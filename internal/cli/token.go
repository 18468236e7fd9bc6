package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/muhammedrahil/cloudspark/awsconn"
)

// tokenJSON is the JSON representation of issued temporary credentials.
type tokenJSON struct {
	AccessKey    string `json:"access_key"`
	SecretKey    string `json:"secret_key"`
	SessionToken string `json:"session_token"`
	Region       string `json:"region"`
}

func newTokenCommand() *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Manage temporary STS credentials",
	}
	tokenCmd.AddCommand(newTokenIssueCommand())
	return tokenCmd
}

func newTokenIssueCommand() *cobra.Command {
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue temporary session credentials via STS",
		Long:  "Issue temporary session credentials from AWS STS using the configured long-lived access keys.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := FromCommand(cmd)
			cfg, err := loadConfig(cliCtx)
			if err != nil {
				return err
			}
			if duration == 0 {
				duration = time.Duration(cfg.SessionDurationSeconds) * time.Second
			}

			creds, err := awsconn.IssueTemporaryCredentials(cmd.Context(),
				cfg.AccessKey, cfg.SecretKey, cfg.Region, duration)
			if err != nil {
				return err
			}

			if cliCtx != nil && cliCtx.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(tokenJSON{
					AccessKey:    creds.AccessKey,
					SecretKey:    creds.SecretKey,
					SessionToken: creds.SessionToken,
					Region:       creds.Region,
				})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"access key: %s\nsecret key: %s\nsession token: %s\nregion: %s\n",
				creds.AccessKey, creds.SecretKey, creds.SessionToken, creds.Region,
			)
			return err
		},
	}

	cmd.Flags().DurationVar(&duration, "duration", 0, "Session lifetime (defaults to config session_duration_seconds)")
	return cmd
}
