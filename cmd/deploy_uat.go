package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nrislani/iics-promote/config"
	"github.com/nrislani/iics-promote/errors"
)

// NewDeployUATCmd promotes a commit into the UAT org and re-validates it
// there.
func NewDeployUATCmd() *cobra.Command {
	var commit string

	cmd := &cobra.Command{
		Use:   "deploy-uat",
		Short: "Pull a commit into the UAT org and validate it",
		Long: `Syncs the commit into the UAT org via pullByCommitHash, then runs a test
job for every changed object of the configured resource type. The pull is
issued exactly once; retrying it could apply the commit twice.`,
		Example: `  UAT_COMMIT_HASH=$(git rev-parse HEAD) iicspromote deploy-uat`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if commit == "" {
				commit = os.Getenv("UAT_COMMIT_HASH")
			}
			if commit == "" {
				return errors.ConfigMissing("UAT_COMMIT_HASH")
			}

			runner, client, err := buildRunner(cmd, config.PrefixUAT)
			if err != nil {
				return err
			}
			defer client.Logout(cmd.Context())

			_, err = runner.RunUAT(cmd.Context(), commit)
			return err
		},
	}

	cmd.Flags().StringVar(&commit, "commit", "", "Commit hash to promote (defaults to $UAT_COMMIT_HASH)")
	return cmd
}
