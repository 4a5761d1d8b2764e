package testutil

import (
	"fmt"
	"strings"
	"sync"

	"github.com/mesh-intelligence/cratepub/internal/runner"
)

// Call is one recorded Runner invocation.
type Call struct {
	Command string
	Args    []string
}

// Line returns the call as a single space-joined command line.
func (c Call) Line() string {
	return strings.TrimSpace(c.Command + " " + strings.Join(c.Args, " "))
}

// FakeRunner answers Run from a script keyed by command line and records
// every call. Unscripted commands fail to start.
type FakeRunner struct {
	mu     sync.Mutex
	script map[string]fakeResponse
	calls  []Call
	// OnCall, when set, observes every call before it is answered.
	OnCall func(Call)
}

type fakeResponse struct {
	res runner.Result
	err error
}

// NewFakeRunner returns an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{script: make(map[string]fakeResponse)}
}

// On scripts the result for an exact command line such as
// "cargo search kelk".
func (f *FakeRunner) On(line string, res runner.Result) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.script[line] = fakeResponse{res: res}
	return f
}

// OnStdout scripts a successful call printing stdout.
func (f *FakeRunner) OnStdout(line, stdout string) *FakeRunner {
	return f.On(line, runner.Result{Stdout: stdout})
}

// OnExit scripts a call exiting with code and stderr.
func (f *FakeRunner) OnExit(line string, code int, stderr string) *FakeRunner {
	return f.On(line, runner.Result{ExitCode: code, Stderr: stderr})
}

// OnStartError scripts a call that cannot be started.
func (f *FakeRunner) OnStartError(line string, err error) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.script[line] = fakeResponse{res: runner.Result{ExitCode: -1}, err: err}
	return f
}

// Run implements runner.Runner.
func (f *FakeRunner) Run(command string, args ...string) (runner.Result, error) {
	call := Call{Command: command, Args: append([]string(nil), args...)}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	resp, ok := f.script[call.Line()]
	hook := f.OnCall
	f.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	if !ok {
		return runner.Result{ExitCode: -1}, fmt.Errorf("fake runner: unscripted command %q", call.Line())
	}
	return resp.res, resp.err
}

// Calls returns the recorded calls in order.
func (f *FakeRunner) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Lines returns the recorded calls as command lines.
func (f *FakeRunner) Lines() []string {
	calls := f.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.Line()
	}
	return lines
}

// CountPrefix returns how many recorded calls start with prefix.
func (f *FakeRunner) CountPrefix(prefix string) int {
	n := 0
	for _, l := range f.Lines() {
		if strings.HasPrefix(l, prefix) {
			n++
		}
	}
	return n
}
