// Package cmd holds the iicspromote subcommand constructors.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nrislani/iics-promote/cli"
	"github.com/nrislani/iics-promote/config"
	"github.com/nrislani/iics-promote/deploy"
	"github.com/nrislani/iics-promote/git"
	"github.com/nrislani/iics-promote/iics"
)

// buildClient loads configuration for the org selected by prefix, logs in,
// and returns a client tuned from the config. Config problems surface
// before any network call; login failures fail fast without retry.
func buildClient(cmd *cobra.Command, prefix string) (*iics.Client, *config.Config, error) {
	opts := cli.GetOptions(cmd)
	log := cli.GetLogger(cmd)

	cfg, err := config.Load(prefix, opts.ConfigFile)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if cfg.RepoName == "" {
		// The checkout's origin is the same repository the workflow runs in.
		cfg.RepoName = git.RepoName(".")
	}
	log.WithFields(map[string]interface{}{
		"podUrl":       cfg.PodURL,
		"resourceType": cfg.ResourceType,
		"repo":         cfg.RepoName,
	}).Debug("configuration loaded")

	session, err := iics.Login(cmd.Context(), cfg.LoginURL, cfg.PodURL, cfg.Username, cfg.Password)
	if err != nil {
		return nil, nil, err
	}

	client := iics.NewClient(session,
		iics.WithBackoff(iics.Backoff{
			MaxAttempts: cfg.Tuning.RetryMaxAttempts,
			BaseDelay:   cfg.Tuning.RetryBaseDelay,
			MaxDelay:    cfg.Tuning.RetryMaxDelay,
			Multiplier:  2,
		}),
		iics.WithPullPollInterval(cfg.Tuning.PullPollInterval),
	)
	return client, cfg, nil
}

// buildRunner is buildClient plus the deploy orchestration on top.
func buildRunner(cmd *cobra.Command, prefix string) (*deploy.Runner, *iics.Client, error) {
	client, cfg, err := buildClient(cmd, prefix)
	if err != nil {
		return nil, nil, err
	}
	return deploy.NewRunner(client, cfg), client, nil
}
