package audit

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/campus-lab/rostersync/pkg/utils/logging"
	"github.com/campus-lab/rostersync/pkg/utils/safe"
)

// Log is the line-oriented audit trail of a sync run: one human-readable line
// per decision, written to the primary writer and optionally mirrored to an
// append-only file. The format is plain text for human audit, not machine
// parsing. A run has a single writer; Log is not safe for concurrent use.
type Log struct {
	out  io.Writer
	file *os.File
	path string
}

// Option is a functional option for Log configuration
type Option func(*Log)

// WithWriter replaces the primary writer (stdout by default)
func WithWriter(w io.Writer) Option {
	return func(l *Log) {
		l.out = w
	}
}

// New opens the audit log. When path is non-empty the log is mirrored to that
// file in append mode; a file that cannot be opened is reported through the
// operational logger and the run continues without the mirror.
func New(ctx context.Context, path string, opts ...Option) *Log {
	l := &Log{out: os.Stdout}
	for _, opt := range opts {
		opt(l)
	}

	if path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			logging.From(ctx).Warn("Failed to open audit log file, continuing without file mirror",
				"path", path, logging.ErrAttr(err))
		} else {
			l.file = f
			l.path = path
		}
	}

	return l
}

// Line writes one formatted audit line
func (l *Log) Line(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(l.out, msg)
	if l.file != nil {
		fmt.Fprintln(l.file, msg)
	}
}

// Separator writes the run separator line
func (l *Log) Separator() {
	l.Line("----------------------------------------------------------------------")
}

// Path returns the mirror file path, or empty string when the mirror is not
// active
func (l *Log) Path() string {
	return l.path
}

// Close closes the file mirror if one is open
func (l *Log) Close(ctx context.Context) {
	if l.file != nil {
		safe.Close(ctx, l.file)
		l.file = nil
	}
}
