package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muhammedrahil/cloudspark/policy"
)

func newBucketCommand() *cobra.Command {
	bucketCmd := &cobra.Command{
		Use:   "bucket",
		Short: "Manage S3 buckets",
	}
	bucketCmd.AddCommand(newBucketCreateCommand())
	bucketCmd.AddCommand(newBucketDeleteCommand())
	bucketCmd.AddCommand(newBucketBlockPublicCommand())
	bucketCmd.AddCommand(newCorsCommand())
	bucketCmd.AddCommand(newPolicyCommand())
	return bucketCmd
}

func newBucketCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create a bucket in the configured region",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, _, err := newFacade(FromCommand(cmd))
			if err != nil {
				return err
			}
			return facade.CreateBucket(cmd.Context(), args[0])
		},
	}
}

func newBucketDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete the target bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, _, err := newFacade(FromCommand(cmd))
			if err != nil {
				return err
			}
			return facade.DeleteBucket(cmd.Context())
		},
	}
}

func newBucketBlockPublicCommand() *cobra.Command {
	var unblock bool

	cmd := &cobra.Command{
		Use:   "block-public",
		Short: "Block or unblock all public access to the target bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, _, err := newFacade(FromCommand(cmd))
			if err != nil {
				return err
			}
			return facade.PublicAccess(cmd.Context(), !unblock)
		},
	}

	cmd.Flags().BoolVar(&unblock, "off", false, "Lift the public access block instead of applying it")
	return cmd
}

// ---

func newCorsCommand() *cobra.Command {
	corsCmd := &cobra.Command{
		Use:   "cors",
		Short: "Manage the CORS configuration of the target bucket",
	}

	corsCmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the bucket CORS rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, _, err := newFacade(FromCommand(cmd))
			if err != nil {
				return err
			}
			rules, err := facade.GetBucketCORS(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rules)
		},
	})

	corsCmd.AddCommand(&cobra.Command{
		Use:   "set",
		Short: "Apply the permissive default CORS rules to the bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, _, err := newFacade(FromCommand(cmd))
			if err != nil {
				return err
			}
			return facade.SetBucketCORS(cmd.Context(), nil)
		},
	})

	corsCmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Remove the bucket CORS configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, _, err := newFacade(FromCommand(cmd))
			if err != nil {
				return err
			}
			return facade.DeleteBucketCORS(cmd.Context())
		},
	})

	return corsCmd
}

// ---

func newPolicyCommand() *cobra.Command {
	policyCmd := &cobra.Command{
		Use:   "policy",
		Short: "Manage the bucket policy of the target bucket",
	}

	policyCmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the bucket policy document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, _, err := newFacade(FromCommand(cmd))
			if err != nil {
				return err
			}
			doc, err := facade.GetBucketPolicy(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), doc)
			return err
		},
	})

	policyCmd.AddCommand(&cobra.Command{
		Use:   "set",
		Short: "Apply the public-read policy to the bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, _, err := newFacade(FromCommand(cmd))
			if err != nil {
				return err
			}
			return facade.SetBucketPolicy(cmd.Context(), nil)
		},
	})

	policyCmd.AddCommand(&cobra.Command{
		Use:   "delete",
		Short: "Remove the bucket policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, _, err := newFacade(FromCommand(cmd))
			if err != nil {
				return err
			}
			return facade.DeleteBucketPolicy(cmd.Context())
		},
	})

	policyCmd.AddCommand(&cobra.Command{
		Use:   "decode ENCODED",
		Short: "Decode a base64-encoded policy document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decoded, err := policy.Decode(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), decoded)
			return err
		},
	})

	return policyCmd
}
