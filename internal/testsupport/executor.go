package testsupport

import (
	"context"
	"sync"
)

// ExecutorFunc adapts a plain function to the ytsearch.Executor interface.
type ExecutorFunc func(ctx context.Context, binary string, args []string, onStdout func(string)) error

// Run invokes the wrapped function.
func (f ExecutorFunc) Run(ctx context.Context, binary string, args []string, onStdout func(string)) error {
	return f(ctx, binary, args, onStdout)
}

// ScriptedExecutor replays the same canned output lines for every invocation
// and records each call. Safe for concurrent use.
type ScriptedExecutor struct {
	Lines []string
	Err   error

	mu    sync.Mutex
	calls [][]string
}

// Run records the invocation and emits the scripted lines unless Err is set.
func (s *ScriptedExecutor) Run(ctx context.Context, binary string, args []string, onStdout func(string)) error {
	s.mu.Lock()
	s.calls = append(s.calls, append([]string(nil), args...))
	s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	for _, line := range s.Lines {
		onStdout(line)
	}
	return nil
}

// Calls returns the number of recorded invocations.
func (s *ScriptedExecutor) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// Args returns a copy of the argument slices from every recorded invocation.
func (s *ScriptedExecutor) Args() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, len(s.calls))
	copy(out, s.calls)
	return out
}
