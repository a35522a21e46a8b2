package deepclean

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/idelchi/deepclean/internal/logging"
)

// Hooks lets the caller take part in a run. Every field is optional.
type Hooks struct {
	// OnError is called with every error entry as soon as it is recorded.
	OnError func(msg string)
	// OnMatches is called once with the scan result, before any decision is taken.
	OnMatches func(matches []string)
	// Confirm asks the operator whether to delete the matches.
	// A nil Confirm declines, so only AutoConfirm can delete without one.
	Confirm func(matches []string) bool
	// OnDeleting is called once when the deletion pass starts.
	OnDeleting func()
	// OnOutcome is called after each match is processed.
	OnOutcome func(Outcome)
	// Remover overrides the filesystem removal. Defaults to OSRemover.
	Remover Remover
	// Log receives debug and audit output.
	Log *logging.Logger
}

// Run scans opt.Root and, unless the run is a dry run or declined, deletes
// every match. The returned error is only set for failures that prevent the
// run from starting; per-directory failures end up in Report.Errors.
//
// Runs are strictly sequential: scan, then the optional confirmation, then
// deletion. Once deletion starts it runs over every match.
func Run(opt Options, hooks Hooks) (*Report, error) {
	start := time.Now()

	if opt.Root == "" {
		opt.Root = "."
	}

	root, err := filepath.Abs(opt.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	log := hooks.Log
	errs := NewErrorLog(hooks.OnError)

	log.Debugf("root: %s", root)
	log.Debugf("dry run: %t, auto confirm: %t", opt.DryRun, opt.AutoConfirm)

	for _, pattern := range opt.Excludes {
		log.Debugf("exclude: %s", pattern)
	}

	scanner := Scanner{Excludes: opt.Excludes, Log: log}
	matches := scanner.Scan(root, errs)

	report := &Report{Root: root, Matches: matches}

	finish := func(state State) (*Report, error) {
		report.State = state
		report.Errors = errs.Entries()
		report.Elapsed = time.Since(start)

		log.Debugf("run finished: %s", state)

		return report, nil
	}

	if len(matches) == 0 {
		return finish(StateNothingFound)
	}

	if hooks.OnMatches != nil {
		hooks.OnMatches(matches)
	}

	if opt.DryRun {
		return finish(StateReported)
	}

	if !opt.AutoConfirm && (hooks.Confirm == nil || !hooks.Confirm(matches)) {
		return finish(StateCancelled)
	}

	if hooks.OnDeleting != nil {
		hooks.OnDeleting()
	}

	cleaner := Cleaner{
		Remover:   hooks.Remover,
		OnOutcome: hooks.OnOutcome,
		Log:       log,
	}

	report.Stats = cleaner.Clean(matches, errs)

	log.Auditf("SUMMARY root=%s deleted=%d freed=%d errors=%d",
		root, report.Stats.Deleted, report.Stats.FreedBytes, errs.Len())

	return finish(StateDone)
}
