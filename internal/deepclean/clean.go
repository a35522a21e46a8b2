package deepclean

import (
	"fmt"
	"os"

	"github.com/idelchi/deepclean/internal/logging"
)

// Remover abstracts recursive directory removal so tests can prove what is
// and is not deleted.
type Remover interface {
	RemoveAll(path string) error
}

// OSRemover implements Remover with os.RemoveAll.
type OSRemover struct{}

// RemoveAll removes path and everything below it.
func (OSRemover) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// OutcomeKind classifies the result of deleting one match.
type OutcomeKind string

const (
	// Deleted means the directory was removed.
	Deleted OutcomeKind = "deleted"
	// AccessDenied means removal failed on permissions.
	AccessDenied OutcomeKind = "access-denied"
	// IOFailure means removal failed on an I/O condition, typically a locked file.
	IOFailure OutcomeKind = "io-error"
	// Failed means removal failed for any other reason.
	Failed OutcomeKind = "error"
)

// Outcome is the result of deleting one match.
type Outcome struct {
	// Path is the matched directory.
	Path string
	// Size is the pre-deletion size of the directory.
	Size int64
	// Kind classifies the result.
	Kind OutcomeKind
	// Err is the removal error, nil when Kind is Deleted.
	Err error
}

// Cleaner deletes matched directories.
type Cleaner struct {
	// Remover performs the deletion. Defaults to OSRemover.
	Remover Remover
	// Size computes a directory size before deletion. Defaults to SizeOf.
	Size func(string) int64
	// OnOutcome, if set, is called after each match is processed.
	OnOutcome func(Outcome)
	// Log receives debug and audit output. May be nil.
	Log *logging.Logger
}

// Clean deletes every match in order. A failing match is recorded in errs and
// never stops the batch.
func (c Cleaner) Clean(matches []string, errs *ErrorLog) RunStats {
	remover := c.Remover
	if remover == nil {
		remover = OSRemover{}
	}

	size := c.Size
	if size == nil {
		size = SizeOf
	}

	var stats RunStats

	for _, path := range matches {
		outcome := Outcome{Path: path, Size: size(path), Kind: Deleted}

		c.Log.Debugf("deleting %s (%d bytes)", path, outcome.Size)

		if err := remover.RemoveAll(path); err != nil {
			outcome.Err = err
			outcome.Kind, outcome.Size = classifyDelete(err), 0

			errs.Add(deleteError(outcome))
			c.Log.Auditf("FAILED %s: %v", path, err)
		} else {
			stats.Deleted++
			stats.FreedBytes += outcome.Size

			c.Log.Auditf("DELETED %s (%d bytes)", path, outcome.Size)
		}

		if c.OnOutcome != nil {
			c.OnOutcome(outcome)
		}
	}

	return stats
}

func classifyDelete(err error) OutcomeKind {
	switch {
	case isPermission(err):
		return AccessDenied
	case isIO(err):
		return IOFailure
	default:
		return Failed
	}
}

func deleteError(o Outcome) string {
	switch o.Kind {
	case AccessDenied:
		return "Access denied (may require elevation): " + o.Path
	case IOFailure:
		return fmt.Sprintf("I/O error (possibly locked files): %s - %s", o.Path, reason(o.Err))
	default:
		return fmt.Sprintf("Error deleting %s: %s", o.Path, reason(o.Err))
	}
}
