package deepclean

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/IGLOU-EU/go-wildcard"

	"github.com/idelchi/deepclean/internal/logging"
)

// targetNames are the directory names selected for deletion.
//
//nolint:gochecknoglobals // Fixed target set
var targetNames = []string{"bin", "obj"}

// IsTarget reports whether a directory name is "bin" or "obj", ignoring case.
func IsTarget(name string) bool {
	for _, target := range targetNames {
		if strings.EqualFold(name, target) {
			return true
		}
	}

	return false
}

// Scanner finds target directories below a root.
type Scanner struct {
	// Excludes contains wildcard patterns matched against the directory name
	// and its slash-separated path relative to the root.
	Excludes []string
	// Log receives debug output. May be nil.
	Log *logging.Logger
}

// Scan walks root depth-first in pre-order and returns the matched directories.
// A matched directory is not descended into. The root itself is never matched.
// Listing failures are recorded in errs and only abandon the failing branch.
func (s Scanner) Scan(root string, errs *ErrorLog) []string {
	matches := []string{}

	// Pending directories, top of stack last. Children are pushed in reverse
	// so they are popped in enumeration order.
	stack := []string{root}

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if dir != root {
			if pattern := s.excluded(root, dir); pattern != "" {
				s.Log.Debugf("excluding directory: %s (matched %q)", dir, pattern)

				continue
			}

			if IsTarget(filepath.Base(dir)) {
				s.Log.Debugf("match: %s", dir)

				matches = append(matches, dir)

				continue
			}
		}

		children, err := subdirectories(dir)
		if err != nil {
			errs.Add(scanError(dir, err))

			continue
		}

		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	return matches
}

// excluded returns the first exclude pattern matching dir, or "".
func (s Scanner) excluded(root, dir string) string {
	if len(s.Excludes) == 0 {
		return ""
	}

	name := filepath.Base(dir)

	rel, err := filepath.Rel(root, dir)
	if err != nil {
		rel = dir
	}

	rel = filepath.ToSlash(rel)

	for _, pattern := range s.Excludes {
		if wildcard.Match(pattern, name) || wildcard.Match(pattern, rel) {
			return pattern
		}
	}

	return ""
}

// subdirectories lists the immediate subdirectories of dir, sorted by name.
// Symbolic links are skipped.
func subdirectories(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	dirs := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(dir, entry.Name()))
		}
	}

	return dirs, nil
}

func scanError(path string, err error) string {
	switch {
	case isPermission(err):
		return "Access denied: " + path
	case isPathTooLong(err):
		return "Path too long: " + path
	default:
		return fmt.Sprintf("Error accessing %s: %s", path, reason(err))
	}
}
