package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/pkg/config"
)

// errInvalid marks a submission that failed validation. The command has
// already printed the errors.
var errInvalid = errors.New("submission is invalid")

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "formkit",
		Short:         "Validate form submissions against declarative schemas",
		Long:          `formkit loads YAML form schemas and validates submissions against them, either once from the command line or over HTTP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			files, _ := cmd.Flags().GetStringSlice("env-file")
			if len(files) == 0 {
				return nil
			}
			return config.LoadEnv(files...)
		},
	}

	cmd.PersistentFlags().StringSlice("env-file", nil, "Load environment variables from these files")
	cmd.PersistentFlags().StringSlice("messages", nil, "Message catalogue files overriding the built-in messages")
	cmd.PersistentFlags().String("lang", "", "Default language for rendered messages")

	cmd.AddCommand(newCheckCmd(), newServeCmd(), newVersionCmd())
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
