package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nrislani/iics-promote/errors"
	"github.com/nrislani/iics-promote/git"
)

// NewChangesCmd lists the objects a commit changed without triggering any
// jobs. Handy for checking what a deploy-dev run would test.
func NewChangesCmd() *cobra.Command {
	var commit string
	var all bool

	cmd := &cobra.Command{
		Use:   "changes",
		Short: "List the objects changed by a commit",
		Example: `  iicspromote changes --commit abc123
  iicspromote changes --commit abc123 --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if commit == "" {
				commit = os.Getenv("COMMIT_HASH")
			}
			if commit == "" {
				// Outside CI, default to the local checkout's HEAD.
				head, err := git.HeadCommit(".")
				if err != nil {
					return errors.ConfigMissing("COMMIT_HASH")
				}
				commit = head
			}

			client, cfg, err := buildClient(cmd, "")
			if err != nil {
				return err
			}
			defer client.Logout(cmd.Context())

			resourceType := cfg.ResourceType
			if all {
				resourceType = ""
			}

			objects, err := client.GetChangedObjects(cmd.Context(), commit, cfg.RepoName, resourceType)
			if err != nil {
				return err
			}

			for _, obj := range objects {
				fmt.Printf("%-10s %-30s %s\n", obj.Type, obj.Name, obj.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&commit, "commit", "", "Commit hash to inspect (defaults to $COMMIT_HASH)")
	cmd.Flags().BoolVar(&all, "all", false, "List every changed object, not just the configured resource type")
	return cmd
}
