// Package deploy sequences the promotion phases: validate changed assets in
// the dev org, pull and re-validate them in the UAT org, and roll a single
// asset back when a promotion went bad.
package deploy

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/nrislani/iics-promote/config"
	"github.com/nrislani/iics-promote/errors"
	"github.com/nrislani/iics-promote/iics"
	"github.com/nrislani/iics-promote/logging"
)

// Runner drives one promotion phase against one org.
type Runner struct {
	client *iics.Client
	cfg    *config.Config
	log    *logrus.Entry
}

// NewRunner creates a runner bound to an authenticated client.
func NewRunner(client *iics.Client, cfg *config.Config) *Runner {
	return &Runner{
		client: client,
		cfg:    cfg,
		log:    logging.NewLogger("deploy"),
	}
}

// RunDev validates a dev commit: every changed object of the configured
// resource type gets a test job, sequentially, in API response order.
func (r *Runner) RunDev(ctx context.Context, commitHash string) (*Summary, error) {
	objects, err := r.client.GetChangedObjects(ctx, commitHash, r.cfg.RepoName, r.cfg.ResourceType)
	if err != nil {
		return nil, err
	}

	return r.testObjects(ctx, commitHash, objects)
}

// RunUAT promotes a commit to UAT: pull it into the org first, then run the
// same per-object validation as the dev phase.
func (r *Runner) RunUAT(ctx context.Context, commitHash string) (*Summary, error) {
	if _, err := r.client.PullChanges(ctx, commitHash); err != nil {
		return nil, err
	}

	objects, err := r.client.GetChangedObjects(ctx, commitHash, r.cfg.RepoName, r.cfg.ResourceType)
	if err != nil {
		return nil, err
	}

	return r.testObjects(ctx, commitHash, objects)
}

// Rollback restores an asset to its previous version in the UAT org.
func (r *Runner) Rollback(ctx context.Context, path, objectName, objectType string) error {
	result, err := r.client.Rollback(ctx, path, objectName, objectType)
	if err != nil {
		return err
	}

	r.log.WithFields(map[string]interface{}{
		"path":   path,
		"object": objectName,
		"status": result.Status,
	}).Info("rollback complete")
	return nil
}

// testObjects triggers and polls a test job per object. A transport or
// timeout failure aborts the run; a job that finishes FAILED is recorded
// and the remaining objects still get tested, so one broken mapping does
// not hide results for the rest of the commit. Failure order matches
// object order.
func (r *Runner) testObjects(ctx context.Context, commitHash string, objects []iics.ChangedObject) (*Summary, error) {
	summary := &Summary{Commit: commitHash}

	if len(objects) == 0 {
		r.log.WithFields(map[string]interface{}{
			"commit": commitHash,
			"type":   r.cfg.ResourceType,
		}).Info("no matching objects in commit, nothing to test")
		return summary, nil
	}

	for _, obj := range objects {
		result, err := r.client.RunAndWait(ctx, obj,
			r.cfg.Tuning.JobPollTimeout, r.cfg.Tuning.JobPollInterval)
		if err != nil {
			return summary, err
		}
		summary.Add(*result)
	}

	if failed := summary.Failed(); len(failed) > 0 {
		return summary, errors.New(errors.ErrCodeJobFailed,
			fmt.Sprintf("%d of %d validation jobs failed", len(failed), len(summary.Results))).
			WithDetail("commitHash", commitHash).
			WithDetail("failed", names(failed))
	}

	r.log.WithFields(map[string]interface{}{
		"commit": commitHash,
		"tested": len(summary.Results),
	}).Info("all validation jobs succeeded")
	return summary, nil
}

func names(results []iics.JobResult) []string {
	out := make([]string, len(results))
	for i, result := range results {
		out[i] = result.ObjectName
	}
	return out
}
