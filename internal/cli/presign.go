package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/muhammedrahil/cloudspark/s3conn"
)

func newPresignCommand() *cobra.Command {
	presignCmd := &cobra.Command{
		Use:   "presign",
		Short: "Generate presigned URLs for the target bucket",
	}
	presignCmd.AddCommand(newPresignGetCommand())
	presignCmd.AddCommand(newPresignDeleteCommand())
	presignCmd.AddCommand(newPresignCreateCommand())
	return presignCmd
}

func newPresignGetCommand() *cobra.Command {
	var expires time.Duration

	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Generate a presigned download URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, _, err := newFacade(FromCommand(cmd))
			if err != nil {
				return err
			}
			url, err := facade.PresignedGetURL(cmd.Context(), args[0], expires)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), url)
			return err
		},
	}

	cmd.Flags().DurationVar(&expires, "expires", s3conn.DefaultExpiry, "URL lifetime")
	return cmd
}

func newPresignDeleteCommand() *cobra.Command {
	var expires time.Duration

	cmd := &cobra.Command{
		Use:   "delete KEY",
		Short: "Generate a presigned delete URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, _, err := newFacade(FromCommand(cmd))
			if err != nil {
				return err
			}
			url, err := facade.PresignedDeleteURL(cmd.Context(), args[0], expires)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), url)
			return err
		},
	}

	cmd.Flags().DurationVar(&expires, "expires", s3conn.DefaultExpiry, "URL lifetime")
	return cmd
}

func newPresignCreateCommand() *cobra.Command {
	var (
		expires time.Duration
		params  []string
	)

	cmd := &cobra.Command{
		Use:   "create KEY",
		Short: "Generate a presigned POST upload form",
		Long:  "Generate a presigned POST URL and form fields for browser uploads. Extra parameters become x-amz-meta object metadata.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, _, err := newFacade(FromCommand(cmd))
			if err != nil {
				return err
			}

			in := s3conn.PresignPostInput{Expires: expires}
			for _, p := range params {
				k, v, ok := strings.Cut(p, "=")
				if !ok {
					return fmt.Errorf("invalid --param %q, want key=value", p)
				}
				if in.Params == nil {
					in.Params = map[string]string{}
				}
				in.Params[k] = v
			}

			post, err := facade.PresignedCreateURL(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(post)
		},
	}

	cmd.Flags().DurationVar(&expires, "expires", s3conn.DefaultExpiry, "Upload form lifetime")
	cmd.Flags().StringArrayVar(&params, "param", nil, "Metadata parameter as key=value (repeatable)")
	return cmd
}
