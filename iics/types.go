// Package iics wraps the Informatica Intelligent Cloud Services REST APIs
// used by the promotion pipeline: the v3 source-control endpoints for
// commits, pulls, and rollbacks, and the v2 job endpoints for running and
// monitoring task tests.
package iics

import "time"

// JobStatus is the lifecycle state of a triggered job.
type JobStatus string

const (
	StatusPending JobStatus = "PENDING"
	StatusRunning JobStatus = "RUNNING"
	StatusSuccess JobStatus = "SUCCESS"
	StatusFailed  JobStatus = "FAILED"
)

// Terminal reports whether the status is an end state. Polling stops at the
// first terminal status observed.
func (s JobStatus) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// Session is an authenticated IICS session. It lives for one process run
// and is never persisted.
type Session struct {
	LoginURL  string
	PodURL    string
	SessionID string
	Expiry    time.Time
}

// Valid reports whether the session can still back API calls.
func (s *Session) Valid() bool {
	if s == nil || s.SessionID == "" || s.PodURL == "" {
		return false
	}
	if !s.Expiry.IsZero() && time.Now().After(s.Expiry) {
		return false
	}
	return true
}

// ChangedObject is one asset touched by a commit, as reported by the v3
// commit endpoint.
type ChangedObject struct {
	ID           string `json:"id"`
	AppContextID string `json:"appContextId"`
	Path         string `json:"path"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	CommitHash   string `json:"-"`
}

// JobResult is the outcome of one triggered job or source-control action.
type JobResult struct {
	ObjectName string
	Status     JobStatus
	RunID      int64
	Error      string
}

// Wire types. Schemas are owned by the vendor API; only the fields the
// pipeline reads are declared.

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserInfo struct {
		SessionID string `json:"sessionId"`
	} `json:"userInfo"`
	Products []struct {
		Name       string `json:"name"`
		BaseAPIURL string `json:"baseApiUrl"`
	} `json:"products"`
}

type commitResponse struct {
	Changes []ChangedObject `json:"changes"`
}

type jobRequest struct {
	Type     string `json:"@type"`
	TaskID   string `json:"taskId"`
	TaskType string `json:"taskType"`
}

type jobResponse struct {
	RunID int64 `json:"runId"`
}

// activityLogEntry is one row of the v2 activity log. State is 0 while the
// job is running, 1 on success, anything else is a failure.
type activityLogEntry struct {
	State      int    `json:"state"`
	ObjectName string `json:"objectName"`
	ErrorMsg   string `json:"errorMsg"`
}

type pullRequest struct {
	CommitHash string       `json:"commitHash"`
	Objects    []pullTarget `json:"objects,omitempty"`
}

type pullTarget struct {
	ID string `json:"id"`
}

type pullResponse struct {
	PullActionID string `json:"pullActionId"`
}

type sourceControlAction struct {
	Status struct {
		State   string `json:"state"`
		Message string `json:"message"`
	} `json:"status"`
}

type commitHistoryResponse struct {
	Commits []struct {
		Hash string `json:"hash"`
	} `json:"commits"`
}

type lookupRequest struct {
	Objects []lookupTarget `json:"objects"`
}

type lookupTarget struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

type lookupResponse struct {
	Objects []struct {
		ID string `json:"id"`
	} `json:"objects"`
}
