package iics

import (
	"context"
	"fmt"
	"time"

	promote "github.com/nrislani/iics-promote/errors"
)

// pullStateInProgress is the only non-terminal state a source-control
// action reports.
const (
	pullStateInProgress = "IN_PROGRESS"
	pullStateSuccessful = "SUCCESSFUL"
)

// PullChanges syncs a whole commit into the org via pullByCommitHash and
// waits for the action to finish. The pull mutates org state, so the POST
// gets a single attempt.
func (c *Client) PullChanges(ctx context.Context, commitHash string) (*JobResult, error) {
	if err := c.checkSession(); err != nil {
		return nil, err
	}
	if commitHash == "" {
		return nil, promote.ConfigInvalid("a commit hash is required")
	}

	c.log.WithField("commit", commitHash).Info("pulling commit into org")

	endpoint := fmt.Sprintf("%s/public/core/v3/pullByCommitHash", c.session.PodURL)
	var body pullResponse
	if err := c.post(ctx, endpoint, pullRequest{CommitHash: commitHash}, &body); err != nil {
		return nil, promote.Wrap(err, promote.ErrCodePullFailed,
			fmt.Sprintf("pull of commit %s failed", commitHash)).
			WithDetail("commitHash", commitHash)
	}

	return c.waitForPull(ctx, commitHash, body.PullActionID)
}

// PullObject syncs a single object from a commit. Used by rollback to
// restore one asset without dragging the rest of the commit along.
func (c *Client) PullObject(ctx context.Context, commitHash, objectID string) (*JobResult, error) {
	if err := c.checkSession(); err != nil {
		return nil, err
	}

	c.log.WithFields(map[string]interface{}{
		"commit":   commitHash,
		"objectId": objectID,
	}).Info("pulling object into org")

	endpoint := fmt.Sprintf("%s/public/core/v3/pull", c.session.PodURL)
	var body pullResponse
	err := c.post(ctx, endpoint, pullRequest{
		CommitHash: commitHash,
		Objects:    []pullTarget{{ID: objectID}},
	}, &body)
	if err != nil {
		return nil, promote.Wrap(err, promote.ErrCodePullFailed,
			fmt.Sprintf("pull of object %s failed", objectID)).
			WithDetail("commitHash", commitHash).
			WithDetail("objectId", objectID)
	}

	return c.waitForPull(ctx, commitHash, body.PullActionID)
}

// waitForPull polls the source-control action until it leaves IN_PROGRESS.
// Status reads are idempotent and retried. There is no internal timeout;
// the workflow-level context is the cancellation mechanism, matching how
// the pipeline has always bounded pulls.
func (c *Client) waitForPull(ctx context.Context, commitHash, pullActionID string) (*JobResult, error) {
	if pullActionID == "" {
		return nil, promote.PullFailed(commitHash, "pull response carried no pullActionId")
	}

	endpoint := fmt.Sprintf("%s/public/core/v3/sourceControlAction/%s", c.session.PodURL, pullActionID)

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("cancelled while waiting for pull %s: %w", pullActionID, ctx.Err())
		case <-time.After(c.pullPollInterval):
		}

		c.log.WithField("pullActionId", pullActionID).Debug("checking pull status")

		var action sourceControlAction
		if err := c.getRetry(ctx, "poll pull status", endpoint, &action); err != nil {
			return nil, promote.RequestFailed("poll pull status", err).
				WithDetail("pullActionId", pullActionID)
		}

		state := action.Status.State
		if state == pullStateInProgress {
			continue
		}

		if state != pullStateSuccessful {
			return nil, promote.PullFailed(commitHash, state).
				WithDetail("message", action.Status.Message)
		}

		c.log.WithField("commit", commitHash).Info("pull successful")
		return &JobResult{
			ObjectName: commitHash,
			Status:     StatusSuccess,
		}, nil
	}
}
