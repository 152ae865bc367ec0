// Package executor defines the command-execution capability the console
// forwards submissions to, with HTTP, local-shell, and function adapters,
// plus the HTTP handler that serves an Executor to remote consoles.
package executor

import "context"

// Request is the wire form of a command sent to a remote executor.
type Request struct {
	Command string `json:"command"`
}

// Result is the executor's answer. Error marks an application-level failure
// (the command ran but failed); transport failures are returned as errors.
type Result struct {
	Output string `json:"result"`
	Error  bool   `json:"error"`
}

// Executor turns a command string into a Result.
type Executor interface {
	Execute(ctx context.Context, command string) (Result, error)
}

// Func adapts a plain function to Executor.
type Func func(ctx context.Context, command string) (Result, error)

// Execute implements Executor.
func (f Func) Execute(ctx context.Context, command string) (Result, error) {
	return f(ctx, command)
}
