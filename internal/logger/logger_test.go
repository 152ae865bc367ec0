package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestPlainFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "copy failed",
		Data:    logrus.Fields{"component": "clipboard", "entry": 7, "block": 1},
	}

	out, err := PlainFormatter{}.Format(entry)
	if err != nil {
		t.Fatal(err)
	}
	got := string(out)
	for _, want := range []string{"2024-05-01T12:00:00.000Z WARN  clipboard: copy failed block=1 entry=7"} {
		if !strings.Contains(got, want) {
			t.Errorf("Format() missing %q: %q", want, got)
		}
	}
	if !strings.HasSuffix(got, "\n") {
		t.Errorf("Format() should end with newline: %q", got)
	}
}

func TestCallerSite(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/home/dev/console/internal/tui/update.go", "tui/update.go"},
		{"/src/cmd/console/wiring.go", "console/wiring.go"},
		{"main.go", "main.go"},
	}
	for _, tt := range tests {
		if got := callerSite(tt.in); got != tt.want {
			t.Errorf("callerSite(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlainFormatter_NilEntry(t *testing.T) {
	out, err := PlainFormatter{}.Format(nil)
	if err != nil || len(out) != 0 {
		t.Errorf("Format(nil) = %q, %v; want empty, nil", out, err)
	}
}

func TestNamed(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })
	Configure()

	Named("executor").WithField("command", "ls").Info("dispatch")

	got := buf.String()
	for _, want := range []string{"INFO  executor: dispatch command=ls", "(logger/logger_test.go:"} {
		if !strings.Contains(got, want) {
			t.Errorf("log line missing %q: %q", want, got)
		}
	}
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { _ = SetLevel("info") })

	if err := SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel(debug) = %v", err)
	}
	if root().GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", root().GetLevel())
	}
	if err := SetLevel(""); err != nil {
		t.Errorf("SetLevel(\"\") = %v, want nil", err)
	}
	if err := SetLevel("loud"); err == nil {
		t.Error("SetLevel(loud) should fail")
	}
}

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "console.log")
	closer, err := SetupFile(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		closer.Close()
	})

	Named("history").Warn("persist failed")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "persist failed") {
		t.Errorf("log file missing message: %q", data)
	}
}

func TestSetupFile_EmptyPath(t *testing.T) {
	if _, err := SetupFile(""); err == nil {
		t.Error("expected error for empty path")
	}
}
