package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nrislani/iics-promote/config"
	"github.com/nrislani/iics-promote/errors"
	"github.com/nrislani/iics-promote/iics"
)

// NewRollbackCmd restores a UAT asset to its previous committed version.
func NewRollbackCmd() *cobra.Command {
	var path, object, objectType string

	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Restore a UAT asset to its previous version",
		Long: `Looks up the asset's commit history, takes the commit immediately before
the latest one, and pulls just that object back into the UAT org. Fails
when the asset has no earlier version to return to.`,
		Example: `  PATH_NAME=Default OBJECT_NAME=m_load_customers iicspromote rollback`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = os.Getenv("PATH_NAME")
			}
			if object == "" {
				object = os.Getenv("OBJECT_NAME")
			}
			if path == "" {
				return errors.ConfigMissing("PATH_NAME")
			}
			if object == "" {
				return errors.ConfigMissing("OBJECT_NAME")
			}

			runner, client, err := buildRunner(cmd, config.PrefixUAT)
			if err != nil {
				return err
			}
			defer client.Logout(cmd.Context())

			return runner.Rollback(cmd.Context(), path, object, objectType)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Folder path of the asset (defaults to $PATH_NAME)")
	cmd.Flags().StringVar(&object, "object", "", "Asset name (defaults to $OBJECT_NAME)")
	cmd.Flags().StringVar(&objectType, "type", iics.DefaultRollbackType, "Asset type in the org")
	return cmd
}
