// Package logging provides the debug and audit output of deepclean.
//
// Debug lines go to the console when enabled. Audit lines go to an optional
// size-rotated log file and record what was deleted and what failed.
package logging

import (
	"fmt"
	"io"
	"log"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Audit configures the rotating audit log.
type Audit struct {
	// File is the log file path. Empty disables the audit log.
	File string
	// MaxSizeMB is the size in megabytes at which the file is rotated.
	MaxSizeMB int
	// MaxBackups is the number of rotated files to keep.
	MaxBackups int
	// MaxAgeDays is the number of days to keep rotated files.
	MaxAgeDays int
	// Compress gzips rotated files.
	Compress bool
}

// Logger provides conditional debug output and an optional audit log.
// A nil *Logger discards everything.
type Logger struct {
	debug  bool
	out    io.Writer
	audit  *log.Logger
	closer io.Closer
}

// New creates a Logger writing debug lines to out when debug is true.
func New(out io.Writer, debug bool) *Logger {
	return &Logger{debug: debug, out: out}
}

// OpenAudit attaches a rotating audit log. It is a no-op if a.File is empty.
func (l *Logger) OpenAudit(a Audit) {
	if a.File == "" {
		return
	}

	rotator := &lumberjack.Logger{
		Filename:   a.File,
		MaxSize:    a.MaxSizeMB,
		MaxBackups: a.MaxBackups,
		MaxAge:     a.MaxAgeDays,
		Compress:   a.Compress,
	}

	l.audit = log.New(rotator, "", log.LstdFlags)
	l.closer = rotator
}

// Debugf prints a "[debug]:" line if debug output is enabled.
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil || !l.debug {
		return
	}

	fmt.Fprintf(l.out, "[debug]: "+format+"\n", args...)
}

// Auditf records a line in the audit log, if one is open.
func (l *Logger) Auditf(format string, args ...any) {
	if l == nil || l.audit == nil {
		return
	}

	l.audit.Printf(format, args...)
}

// Close closes the audit log.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}

	if err := l.closer.Close(); err != nil {
		return fmt.Errorf("closing audit log: %w", err)
	}

	return nil
}
