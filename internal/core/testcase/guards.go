// Package testcase contains the pure business logic for test case
// execution tracking.
package testcase

import "fmt"

// Execution status constants
const (
	StatusNotRun  = "not_run"
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusBlocked = "blocked"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// ValidStatus reports whether s is a known execution status.
func ValidStatus(s string) bool {
	switch s {
	case StatusNotRun, StatusPassed, StatusFailed, StatusBlocked:
		return true
	}
	return false
}

// IsExecuted reports whether a status represents a recorded run.
// not_run is the only non-executed status.
func IsExecuted(s string) bool {
	return ValidStatus(s) && s != StatusNotRun
}

// CanSetStatus evaluates whether an execution status can be recorded.
// Rules:
// - Status must be one of not_run, passed, failed, blocked
func CanSetStatus(status string) GuardResult {
	if !ValidStatus(status) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invalid status %q (valid: %s, %s, %s, %s)", status, StatusNotRun, StatusPassed, StatusFailed, StatusBlocked),
		}
	}
	return GuardResult{Allowed: true}
}
