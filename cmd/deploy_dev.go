package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nrislani/iics-promote/errors"
)

// NewDeployDevCmd validates the assets a dev commit changed by running a
// test job for each one.
func NewDeployDevCmd() *cobra.Command {
	var commit string

	cmd := &cobra.Command{
		Use:   "deploy-dev",
		Short: "Validate the changed assets of a commit in the dev org",
		Long: `Fetches the objects changed by a commit, filters them to the configured
resource type, and runs a test job for each one in the dev org. The exit
code reflects the aggregate outcome, so the calling workflow can gate the
UAT promotion on it.`,
		Example: `  COMMIT_HASH=$(git rev-parse HEAD) iicspromote deploy-dev`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if commit == "" {
				commit = os.Getenv("COMMIT_HASH")
			}
			if commit == "" {
				return errors.ConfigMissing("COMMIT_HASH")
			}

			runner, client, err := buildRunner(cmd, "")
			if err != nil {
				return err
			}
			defer client.Logout(cmd.Context())

			_, err = runner.RunDev(cmd.Context(), commit)
			return err
		},
	}

	cmd.Flags().StringVar(&commit, "commit", "", "Commit hash to validate (defaults to $COMMIT_HASH)")
	return cmd
}
