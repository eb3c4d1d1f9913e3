package iics

import (
	"context"
	"fmt"
	"time"

	promote "github.com/nrislani/iics-promote/errors"
)

// TriggerJob starts a test job for a changed object. The call mutates org
// state, so it gets exactly one attempt: a retry here could double-run a
// deployment test.
func (c *Client) TriggerJob(ctx context.Context, obj ChangedObject) (*JobResult, error) {
	if err := c.checkSession(); err != nil {
		return nil, err
	}
	if obj.AppContextID == "" {
		return nil, promote.ObjectNotFound(obj.Path, obj.Name).
			WithDetail("reason", "object has no appContextId")
	}

	c.log.WithFields(map[string]interface{}{
		"object": obj.Name,
		"taskId": obj.AppContextID,
		"type":   obj.Type,
	}).Info("triggering job")

	endpoint := fmt.Sprintf("%s/api/v2/job/", c.session.PodURL)
	var body jobResponse
	err := c.post(ctx, endpoint, jobRequest{
		Type:     "job",
		TaskID:   obj.AppContextID,
		TaskType: obj.Type,
	}, &body)
	if err != nil {
		return nil, promote.RequestFailed("trigger job", err).
			WithDetail("objectName", obj.Name)
	}

	if body.RunID == 0 {
		return nil, promote.RequestFailed("trigger job",
			fmt.Errorf("job start response carried no runId")).
			WithDetail("objectName", obj.Name)
	}

	return &JobResult{
		ObjectName: obj.Name,
		Status:     StatusPending,
		RunID:      body.RunID,
	}, nil
}

// PollJob watches the v2 activity log for a run until it reaches a terminal
// state or the timeout fires. Each individual status read is idempotent and
// retried; the loop itself stops at the first terminal status observed. On
// timeout the caller gets a JOB_TIMEOUT error, never a non-terminal result.
func (c *Client) PollJob(ctx context.Context, runID int64, timeout, interval time.Duration) (*JobResult, error) {
	if err := c.checkSession(); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/api/v2/activity/activityLog?runId=%d", c.session.PodURL, runID)
	deadline := time.Now().Add(timeout)

	for {
		var entries []activityLogEntry
		if err := c.getRetry(ctx, "poll job status", endpoint, &entries); err != nil {
			return nil, promote.RequestFailed("poll job status", err).
				WithDetail("runId", runID)
		}

		if len(entries) == 0 {
			// The activity log lags briefly after a job starts.
			c.log.WithField("runId", runID).Warn("activity log empty, waiting")
		} else {
			entry := entries[0]
			result := &JobResult{
				ObjectName: entry.ObjectName,
				RunID:      runID,
			}
			switch {
			case entry.State == 1:
				result.Status = StatusSuccess
				c.log.WithField("object", entry.ObjectName).Info("job completed successfully")
				return result, nil
			case entry.State != 0:
				// A failed run is still a terminal result; callers decide
				// how to aggregate it.
				result.Status = StatusFailed
				result.Error = entry.ErrorMsg
				c.log.WithFields(map[string]interface{}{
					"object": entry.ObjectName,
					"state":  entry.State,
					"error":  entry.ErrorMsg,
				}).Error("job failed")
				return result, nil
			}
			c.log.WithField("runId", runID).Debug("job still running")
		}

		if time.Now().Add(interval).After(deadline) {
			return nil, promote.JobTimeout(runID, timeout)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("cancelled while polling run %d: %w", runID, ctx.Err())
		case <-time.After(interval):
		}
	}
}

// RunAndWait triggers a job for an object and blocks until it finishes.
func (c *Client) RunAndWait(ctx context.Context, obj ChangedObject, timeout, interval time.Duration) (*JobResult, error) {
	result, err := c.TriggerJob(ctx, obj)
	if err != nil {
		return nil, err
	}
	return c.PollJob(ctx, result.RunID, timeout, interval)
}
