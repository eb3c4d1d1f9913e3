package errors

import (
	"fmt"
	"time"
)

// ConfigMissing creates an error for a missing required setting
func ConfigMissing(name string) *PromoteError {
	return New(ErrCodeConfigMissing, fmt.Sprintf("required setting '%s' is missing or empty", name)).
		WithDetail("setting", name)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *PromoteError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// AuthFailed creates an authentication failure error carrying the HTTP
// status and a snippet of the response body
func AuthFailed(status int, snippet string) *PromoteError {
	return New(ErrCodeAuthFailed, fmt.Sprintf("login rejected with HTTP %d", status)).
		WithDetail("status", status).
		WithDetail("response", snippet)
}

// RequestFailed wraps a definitive or retry-exhausted API request error
func RequestFailed(op string, err error) *PromoteError {
	return Wrap(err, ErrCodeRequestFailed, fmt.Sprintf("request failed: %s", op)).
		WithDetail("operation", op)
}

// JobTimeout creates a polling timeout error
func JobTimeout(runID int64, timeout time.Duration) *PromoteError {
	return New(ErrCodeJobTimeout,
		fmt.Sprintf("job run %d did not reach a terminal state within %s", runID, timeout)).
		WithDetail("runId", runID).
		WithDetail("timeout", timeout.String())
}

// PullFailed creates a pull/sync failure error
func PullFailed(commitHash, state string) *PromoteError {
	return New(ErrCodePullFailed,
		fmt.Sprintf("pull of commit %s finished with status %s", commitHash, state)).
		WithDetail("commitHash", commitHash).
		WithDetail("state", state)
}

// RollbackFailed creates a rollback failure error
func RollbackFailed(objectName, reason string) *PromoteError {
	return New(ErrCodeRollbackFailed,
		fmt.Sprintf("cannot roll back '%s': %s", objectName, reason)).
		WithDetail("objectName", objectName)
}

// ObjectNotFound creates an error for an asset missing from the org
func ObjectNotFound(path, objectName string) *PromoteError {
	return New(ErrCodeObjectNotFound,
		fmt.Sprintf("object '%s' not found in path '%s'", objectName, path)).
		WithDetail("path", path).
		WithDetail("objectName", objectName)
}
