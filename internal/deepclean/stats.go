package deepclean

import (
	"time"
)

// Options configures a cleanup run.
type Options struct {
	// Root is the directory to clean downwards from.
	Root string
	// DryRun reports matches without deleting anything.
	DryRun bool
	// AutoConfirm skips the confirmation prompt.
	AutoConfirm bool
	// Excludes contains wildcard patterns for directories that are neither matched nor descended.
	Excludes []string
}

// RunStats holds the counters of a deletion pass.
type RunStats struct {
	// Deleted is the number of folders removed successfully.
	Deleted int `json:"deleted"`
	// FreedBytes is the sum of pre-deletion sizes of the removed folders.
	FreedBytes int64 `json:"freed_bytes"`
}

// State is the point a run stopped at.
type State string

const (
	// StateNothingFound means the scan produced no matches.
	StateNothingFound State = "nothing-found"
	// StateReported means matches were listed in dry-run mode.
	StateReported State = "reported"
	// StateCancelled means the operator declined the deletion.
	StateCancelled State = "cancelled"
	// StateDone means the deletion pass ran over every match.
	StateDone State = "done"
)

// Report is the outcome of a run.
type Report struct {
	// Root is the absolute directory the scan started from.
	Root string `json:"root"`
	// State is where the run stopped.
	State State `json:"state"`
	// Matches lists the matched directories in scan order.
	Matches []string `json:"matches"`
	// Stats holds deletion counters. Zero unless State is StateDone.
	Stats RunStats `json:"stats"`
	// Errors contains every scan and delete error in the order they occurred.
	Errors []string `json:"errors"`
	// Elapsed is the total time taken by the run, including the prompt.
	Elapsed time.Duration `json:"elapsed"`
}

// ExitCode maps the report to a process exit code.
// Only a completed deletion pass with accumulated errors is a failure.
func (r *Report) ExitCode() int {
	if r.State == StateDone && len(r.Errors) > 0 {
		return 1
	}

	return 0
}
