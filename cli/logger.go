package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nrislani/iics-promote/logging"
)

// GetLogger creates a logger honoring the command's standard flags.
func GetLogger(cmd *cobra.Command) *logrus.Entry {
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	logging.Configure(verbose, jsonOutput)

	return logging.NewLogger("iicspromote")
}
