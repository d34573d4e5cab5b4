// Package story contains the pure business logic for user stories:
// the sync title-matching rule and normalization of externally sourced
// priority and status values into the local vocabularies.
package story

import "strings"

// Priority constants
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Status constants
const (
	StatusDraft      = "draft"
	StatusReady      = "ready"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Source constants
const (
	SourceManual = "manual"
	SourceJira   = "jira"
	SourceAzure  = "azure"
)

// EqualTitles reports whether two stories are the same story for sync
// reconciliation purposes. The rule is exactly case-insensitive equality:
// whitespace differences (including trailing spaces) are NOT unified.
func EqualTitles(a, b string) bool {
	return strings.EqualFold(a, b)
}

// ValidPriority reports whether p is a known priority value.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known story status.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusReady, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// PriorityFromNumber maps a work-item tracker's numeric priority to the
// local three-tier label: 1 is high, 2 is medium, 3 is low. Any other
// value, including the zero value for a missing field, is medium.
func PriorityFromNumber(n int) string {
	switch n {
	case 1:
		return PriorityHigh
	case 2:
		return PriorityMedium
	case 3:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// NormalizePriority maps an issue tracker's priority name to the local
// vocabulary. Unknown names fall back to medium.
func NormalizePriority(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "highest", "high", "critical", "blocker":
		return PriorityHigh
	case "low", "lowest", "minor", "trivial":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// NormalizeStatus maps an issue tracker's status name to the local story
// status vocabulary. Unknown names fall back to draft.
func NormalizeStatus(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ready", "selected for development", "approved":
		return StatusReady
	case "in progress", "in_progress", "active", "committed", "in review":
		return StatusInProgress
	case "done", "closed", "resolved", "completed":
		return StatusCompleted
	default:
		return StatusDraft
	}
}
