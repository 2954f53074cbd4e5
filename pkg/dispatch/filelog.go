package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/formd/formd/pkg/form"
	"github.com/formd/formd/pkg/logging"
	"github.com/formd/formd/pkg/notify"
)

// blockDelimiter separates entries in the submission log.
var blockDelimiter = strings.Repeat("=", 50)

// FileLogger appends submissions to a local plain-text log file. It is the
// fallback variant used when mail credentials are not configured.
//
// The file is opened per write and never held across requests; concurrent
// appends are serialized with a mutex so blocks cannot interleave.
type FileLogger struct {
	path string
	mu   sync.Mutex
	log  *slog.Logger
}

// NewFileLogger creates the file-logging dispatch variant.
func NewFileLogger(path string, opts ...Option) *FileLogger {
	o := options{log: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &FileLogger{path: path, log: o.log}
}

// Mode reports the dispatch variant.
func (l *FileLogger) Mode() string { return ModeLog }

// Path returns the log file path.
func (l *FileLogger) Path() string { return l.path }

// Dispatch appends one block to the log file: a delimiter line, the
// ISO-8601 timestamp, the submission ID, and every field on its own line
// (N/A for absent optional fields).
func (l *FileLogger) Dispatch(_ context.Context, sub *form.Submission) error {
	msg := notify.Compose(sub, sub.Received)

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(blockDelimiter)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Timestamp: %s\n", sub.Received.UTC().Format(time.RFC3339))
	if sub.ID != "" {
		fmt.Fprintf(&sb, "ID: %s\n", sub.ID)
	}
	sb.WriteString(msg.Text())

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open submission log: %w", err)
	}

	if _, err := f.WriteString(sb.String()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write submission log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close submission log: %w", err)
	}

	l.log.Info("submission logged", "id", sub.ID, "path", l.path)
	return nil
}
