package deploy

import "github.com/nrislani/iics-promote/iics"

// Summary aggregates the per-object job results of one promotion phase.
// Results keep the order the objects were tested in.
type Summary struct {
	Commit  string
	Results []iics.JobResult
}

// Add appends a terminal job result.
func (s *Summary) Add(result iics.JobResult) {
	s.Results = append(s.Results, result)
}

// Failed returns the failed results, in test order.
func (s *Summary) Failed() []iics.JobResult {
	var failed []iics.JobResult
	for _, result := range s.Results {
		if result.Status == iics.StatusFailed {
			failed = append(failed, result)
		}
	}
	return failed
}

// OK reports whether every tested object succeeded.
func (s *Summary) OK() bool {
	return len(s.Failed()) == 0
}
