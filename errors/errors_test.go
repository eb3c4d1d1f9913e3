package errors

import (
	"fmt"
	"testing"
	"time"
)

func TestPromoteError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeAuthFailed, "login rejected")
	if err.Code != ErrCodeAuthFailed {
		t.Errorf("expected code %s, got %s", ErrCodeAuthFailed, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("connection reset")
	wrapped := Wrap(cause, ErrCodeRequestFailed, "request failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeRequestFailed) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeAuthFailed) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("status", 401).WithDetail("response", "invalid credentials")
	if detailed.Details["status"] != 401 {
		t.Error("WithDetail should add details")
	}
}

func TestIsUnwrapsWrappedErrors(t *testing.T) {
	inner := ConfigMissing("IICS_POD_URL")
	outer := fmt.Errorf("loading settings: %w", inner)

	if !Is(outer, ErrCodeConfigMissing) {
		t.Error("Is should match codes through fmt.Errorf wrapping")
	}
	if GetCode(outer) != ErrCodeConfigMissing {
		t.Errorf("GetCode should find the inner code, got %s", GetCode(outer))
	}
}

func TestErrorConstructors(t *testing.T) {
	// Test AuthFailed
	err := AuthFailed(401, `{"error":"Invalid login"}`)
	if err.Code != ErrCodeAuthFailed {
		t.Errorf("expected code %s, got %s", ErrCodeAuthFailed, err.Code)
	}
	if err.Details["status"] != 401 {
		t.Error("AuthFailed should include status detail")
	}

	// Test JobTimeout
	err = JobTimeout(12345, 10*time.Minute)
	if err.Code != ErrCodeJobTimeout {
		t.Errorf("expected code %s, got %s", ErrCodeJobTimeout, err.Code)
	}
	if err.Details["runId"] != int64(12345) {
		t.Error("JobTimeout should include runId detail")
	}

	// Test RollbackFailed
	err = RollbackFailed("m_customer_load", "no previous version in commit history")
	if err.Code != ErrCodeRollbackFailed {
		t.Errorf("expected code %s, got %s", ErrCodeRollbackFailed, err.Code)
	}
	if err.Details["objectName"] != "m_customer_load" {
		t.Error("RollbackFailed should include objectName detail")
	}
}
