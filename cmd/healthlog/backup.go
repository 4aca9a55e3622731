package main

import (
	"fmt"
	"os"

	appService "healthlog/internal/application/service"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every journal entry as a JSON export document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			result := appService.NewBackupService(rt.store, nil, rt.log, rt.metrics).Export(cmd.Context())
			if !result.OK {
				return fmt.Errorf("%s", result.Message)
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(append(result.Data, '\n'))
				return err
			}
			if err := os.WriteFile(out, result.Data, 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s to %s\n", result.Message, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Insert the records of a JSON export document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.close()

			result := appService.NewBackupService(rt.store, nil, rt.log, rt.metrics).Import(cmd.Context(), data)
			if !result.OK() {
				return fmt.Errorf("%s", result.Message())
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message())
			return nil
		},
	}
}
