package deployment

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LogSink is the append-only record of one deployment. It stays open for the
// whole build/upload/reconcile sequence and is closed unconditionally at the
// end, so a truncated file always means the process died, not that a step
// was skipped.
type LogSink struct {
	f    *os.File
	path string
}

// OpenLogSink creates <root>/<appName>-<uuid>.log for appending.
func OpenLogSink(root, appName string) (*LogSink, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create logs directory %q: %w", root, err)
	}
	path := filepath.Join(root, fmt.Sprintf("%s-%s.log", appName, uuid.New().String()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %q: %w", path, err)
	}
	return &LogSink{f: f, path: path}, nil
}

func (s *LogSink) Path() string { return s.path }

func (s *LogSink) Write(p []byte) (int, error) { return s.f.Write(p) }

// WriteLine appends one formatted status line. Write errors are swallowed:
// the deployment outcome must not depend on the health of its log file.
func (s *LogSink) WriteLine(format string, args ...any) {
	fmt.Fprintf(s.f, format+"\n", args...)
}

func (s *LogSink) Close() error { return s.f.Close() }
