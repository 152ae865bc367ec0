// Package logger configures the diagnostic log. The TUI owns the terminal,
// so diagnostics go to a file rather than stderr.
package logger

import (
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
)

// Entry and Fields expose the underlying types so callers do not import logrus.
type Entry = logrus.Entry
type Fields = logrus.Fields

var rootLogger = logrus.StandardLogger()

// Configure sets the shared formatter and caller reporting.
func Configure() {
	root().SetReportCaller(true)
	root().SetFormatter(PlainFormatter{})
}

// SetLevel parses level ("debug", "info", ...) and applies it to the root
// logger. An empty level leaves the current level in place.
func SetLevel(level string) error {
	if level == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	root().SetLevel(lvl)
	return nil
}

// SetupFile redirects the root logger to logPath, creating parent
// directories as needed. The returned closer owns the file.
func SetupFile(logPath string) (io.Closer, error) {
	if logPath == "" {
		return nil, fmt.Errorf("logger: empty log path")
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, fmt.Errorf("logger: mkdir %q: %w", filepath.Dir(logPath), err)
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logger: open %q: %w", logPath, err)
	}
	root().SetOutput(f)
	return f, nil
}

// SetOutput redirects the root logger; used by tests and `console serve`.
func SetOutput(w io.Writer) {
	root().SetOutput(w)
}

// Discard silences the root logger.
func Discard() {
	root().SetOutput(io.Discard)
}

// Named returns an entry tagged with a component field.
func Named(component string) *Entry {
	entry := logrus.NewEntry(root())
	if component != "" {
		entry = entry.WithField("component", component)
	}
	return entry
}

func root() *logrus.Logger {
	if rootLogger == nil {
		rootLogger = logrus.StandardLogger()
	}
	return rootLogger
}

// PlainFormatter writes one line per entry:
//
//	2024-05-01T12:00:00.000Z WARN  clipboard: copy failed block=1 (tui/update.go:241)
type PlainFormatter struct{}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

var levelTags = map[logrus.Level]string{
	logrus.PanicLevel: "PANIC",
	logrus.FatalLevel: "FATAL",
	logrus.ErrorLevel: "ERROR",
	logrus.WarnLevel:  "WARN",
	logrus.InfoLevel:  "INFO",
	logrus.DebugLevel: "DEBUG",
	logrus.TraceLevel: "TRACE",
}

// Format implements logrus.Formatter.
func (PlainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry == nil {
		return nil, nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-5s ", entry.Time.UTC().Format(timeLayout), levelTags[entry.Level])
	if c, ok := entry.Data["component"].(string); ok && c != "" {
		b.WriteString(c + ": ")
	}
	b.WriteString(entry.Message)
	for _, k := range slices.Sorted(maps.Keys(entry.Data)) {
		if k != "component" {
			fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
		}
	}
	if entry.HasCaller() {
		fmt.Fprintf(&b, " (%s:%d)", callerSite(entry.Caller.File), entry.Caller.Line)
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// callerSite keeps the package directory and file name of a source path.
func callerSite(file string) string {
	dir, name := filepath.Split(filepath.Clean(file))
	return filepath.ToSlash(filepath.Join(filepath.Base(dir), name))
}
