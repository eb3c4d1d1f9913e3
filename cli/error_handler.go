package cli

import (
	"fmt"
	"os"

	"github.com/nrislani/iics-promote/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle writes a user-friendly message for an error based on its code and
// returns the error so the caller can surface it as a non-zero exit.
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigMissing:
		if perr, ok := err.(*errors.PromoteError); ok {
			fmt.Fprintf(os.Stderr, "❌ Required setting %s is not set\n", perr.Details["setting"])
			fmt.Fprintf(os.Stderr, "Set it in the workflow environment or in iicspromote.yml.\n")
		}
		return err

	case errors.ErrCodeAuthFailed:
		fmt.Fprintf(os.Stderr, "❌ IICS login failed. Check the credentials configured in the workflow secrets.\n")
		return err

	case errors.ErrCodeJobTimeout:
		if perr, ok := err.(*errors.PromoteError); ok {
			fmt.Fprintf(os.Stderr, "❌ Job run %v did not finish within %v\n",
				perr.Details["runId"], perr.Details["timeout"])
			fmt.Fprintf(os.Stderr, "Raise tuning.job_poll_timeout if the task legitimately runs long.\n")
		}
		return err

	case errors.ErrCodeJobFailed:
		if perr, ok := err.(*errors.PromoteError); ok {
			fmt.Fprintf(os.Stderr, "❌ Validation failed: %v\n", perr.Details["failed"])
		}
		return err

	case errors.ErrCodeRollbackFailed:
		if perr, ok := err.(*errors.PromoteError); ok {
			fmt.Fprintf(os.Stderr, "❌ Rollback of '%s' is not possible: %s\n",
				perr.Details["objectName"], perr.Message)
		}
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		if h.Verbose {
			if perr, ok := err.(*errors.PromoteError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", perr.ToJSON())
			}
		}
		return err
	}
}
