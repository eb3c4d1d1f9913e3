package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nrislani/iics-promote/cli"
	"github.com/nrislani/iics-promote/cmd"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"iicspromote",
		"Promote IICS assets from the dev org to UAT",
	)

	// Add subcommands
	rootCmd.AddCommand(cmd.NewDeployDevCmd())
	rootCmd.AddCommand(cmd.NewDeployUATCmd())
	rootCmd.AddCommand(cmd.NewRollbackCmd())
	rootCmd.AddCommand(cmd.NewChangesCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	// Workflow timeouts land as SIGTERM; turn them into context cancellation
	// so in-flight polling and backoff sleeps stop promptly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		cli.NewErrorHandler(verbose).Handle(err)
		os.Exit(1)
	}
}
