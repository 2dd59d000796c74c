package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the vocabreview command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vocabreview",
		Short:         "Spaced repetition review scheduler for vocabulary lessons",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().String("config", "", "path to config file (default ./config.yaml)")

	root.AddCommand(
		newServeCmd(),
		newQueueCmd(),
		newReviewCmd(),
		newMemorizeCmd(),
		newLearnerCmd(),
		newImportCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
