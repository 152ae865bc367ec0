package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long Wait keeps reading output after the command is
// cancelled.
const waitDelay = 500 * time.Millisecond

// Shell runs each command through a local shell ("<shell> -c <command>").
type Shell struct {
	// Path is the shell binary. Defaults to "/bin/sh".
	Path string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Timeout bounds each command; 0 means none.
	Timeout time.Duration
}

// NewShell creates a Shell executor.
func NewShell(path, dir string, timeout time.Duration) *Shell {
	return &Shell{Path: path, Dir: dir, Timeout: timeout}
}

// Execute implements Executor. stdout and stderr are combined in order. A
// non-zero exit is an application-level failure (Result.Error); failing to
// start the shell is returned as an error.
func (s *Shell) Execute(ctx context.Context, command string) (Result, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	exe := s.Path
	if exe == "" {
		exe = "/bin/sh"
	}

	cmd := exec.CommandContext(ctx, exe, "-c", command)
	cmd.Dir = s.Dir
	// Children of the shell may hold the output pipe open after the shell
	// is killed; the whole process group goes, and Wait gives up on the
	// pipe after waitDelay.
	killProcessGroup(cmd)
	cmd.WaitDelay = waitDelay
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Start(); err != nil {
		return Result{}, fmt.Errorf("shell: start: %w", err)
	}

	err := cmd.Wait()
	output := strings.TrimRight(out.String(), "\n")
	if err == nil {
		return Result{Output: output}, nil
	}

	if ctx.Err() != nil {
		msg := fmt.Sprintf("command aborted: %v", ctx.Err())
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && s.Timeout > 0 {
			msg = fmt.Sprintf("command timed out after %s", s.Timeout)
		}
		return Result{Output: joinNonEmpty(output, msg), Error: true}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if output == "" {
			output = exitErr.Error()
		}
		return Result{Output: output, Error: true}, nil
	}
	return Result{}, fmt.Errorf("shell: wait: %w", err)
}

func joinNonEmpty(a, b string) string {
	if a == "" {
		return b
	}
	return a + "\n" + b
}
