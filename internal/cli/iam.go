package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newIAMCommand() *cobra.Command {
	iamCmd := &cobra.Command{
		Use:   "iam",
		Short: "Inspect IAM resources",
	}
	iamCmd.AddCommand(newIAMPoliciesCommand())
	return iamCmd
}

func newIAMPoliciesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "policies USER",
		Short: "List the inline policy names attached to an IAM user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := FromCommand(cmd)
			facade, _, err := newFacade(cliCtx)
			if err != nil {
				return err
			}

			names, err := facade.ListUserPolicies(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if cliCtx != nil && cliCtx.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(names)
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
