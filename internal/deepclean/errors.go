package deepclean

import (
	"errors"
	"io/fs"
	"syscall"
)

// ErrorLog is the append-only list of human-readable errors of a run.
// Scan and delete errors share one log.
type ErrorLog struct {
	entries []string
	notify  func(string)
}

// NewErrorLog creates an ErrorLog. notify, if non-nil, is called with every appended entry.
func NewErrorLog(notify func(string)) *ErrorLog {
	return &ErrorLog{notify: notify}
}

// Add appends an entry.
func (l *ErrorLog) Add(msg string) {
	l.entries = append(l.entries, msg)

	if l.notify != nil {
		l.notify(msg)
	}
}

// Entries returns a copy of the logged entries.
func (l *ErrorLog) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)

	return out
}

// Len returns the number of logged entries.
func (l *ErrorLog) Len() int {
	return len(l.entries)
}

// ioErrnos are failures caused by the state of the files rather than by permissions,
// most often a file held open by another process.
//
//nolint:gochecknoglobals // Lookup table
var ioErrnos = []syscall.Errno{
	syscall.EBUSY,
	syscall.ETXTBSY,
	syscall.ENOTEMPTY,
	syscall.EROFS,
	syscall.EIO,
}

func isPermission(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}

func isPathTooLong(err error) bool {
	return errors.Is(err, syscall.ENAMETOOLONG)
}

func isIO(err error) bool {
	for _, errno := range ioErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}

	return false
}

// reason returns the underlying cause of err without the operation and path
// that *fs.PathError prepends.
func reason(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}

	return err.Error()
}
