package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newObjectCommand() *cobra.Command {
	objectCmd := &cobra.Command{
		Use:   "object",
		Short: "Manage objects in the target bucket",
	}
	objectCmd.AddCommand(newObjectPutCommand())
	objectCmd.AddCommand(newObjectGetCommand())
	objectCmd.AddCommand(newObjectDeleteCommand())
	objectCmd.AddCommand(newObjectListCommand())
	return objectCmd
}

func newObjectPutCommand() *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "put FILE",
		Short: "Upload a local file to the target bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, _, err := newFacade(FromCommand(cmd))
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			if key == "" {
				key = filepath.Base(args[0])
			}
			return facade.UploadObject(cmd.Context(), key, f)
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Object key (defaults to the file name)")
	return cmd
}

func newObjectGetCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Download an object to stdout or a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, _, err := newFacade(FromCommand(cmd))
			if err != nil {
				return err
			}

			out, err := facade.GetObject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer out.Body.Close()

			dst := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				dst = f
			}
			_, err = io.Copy(dst, out.Body)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the object to this file instead of stdout")
	return cmd
}

func newObjectDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete KEY",
		Short: "Delete an object from the target bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			facade, _, err := newFacade(FromCommand(cmd))
			if err != nil {
				return err
			}
			return facade.DeleteObject(cmd.Context(), args[0])
		},
	}
}

func newObjectListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List object keys in the target bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := FromCommand(cmd)
			facade, _, err := newFacade(cliCtx)
			if err != nil {
				return err
			}

			keys, err := facade.ListObjectKeys(cmd.Context())
			if err != nil {
				return err
			}

			if cliCtx != nil && cliCtx.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(keys)
			}
			for _, key := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}
}
