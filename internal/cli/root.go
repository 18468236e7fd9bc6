package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewRootCommand creates and returns the root cobra command with all global
// persistent flags registered. Subcommands are attached here.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cloudspark",
		Short:         "Manage S3 buckets, objects, and presigned URLs",
		Long:          "cloudspark wraps AWS S3, STS, and IAM to manage buckets, objects, presigned URLs, and temporary credentials with minimal boilerplate.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := NewCLIContext(cmd)
			cmd.SetContext(WithContext(context.Background(), cliCtx))
			return nil
		},
	}

	rootCmd.PersistentFlags().String("region", "", "AWS region (overrides config)")
	rootCmd.PersistentFlags().String("bucket", "", "Target bucket (overrides config)")
	rootCmd.PersistentFlags().Bool("debug", false, "Mirror API call records to stderr")
	rootCmd.PersistentFlags().Bool("json", false, "Machine-readable JSON output")

	// Register subcommands
	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newTokenCommand())
	rootCmd.AddCommand(newBucketCommand())
	rootCmd.AddCommand(newObjectCommand())
	rootCmd.AddCommand(newPresignCommand())
	rootCmd.AddCommand(newIAMCommand())

	return rootCmd
}

// Execute creates the root command and runs it. Called from main.
func Execute() error {
	return NewRootCommand().Execute()
}
