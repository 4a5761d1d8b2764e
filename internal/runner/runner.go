// Package runner runs external tools (git, cargo) on behalf of the release
// orchestration. The Runner interface is the only process capability the
// rest of cratepub depends on, so tests substitute a scripted fake.
package runner

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/mesh-intelligence/cratepub/pkg/types"
)

// Result is the captured outcome of one tool invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner runs a command to completion. It returns an error only when the
// command could not be started; a non-zero exit is reported in Result.
type Runner interface {
	Run(command string, args ...string) (Result, error)
}

// Shell runs commands as child processes in a fixed working directory.
type Shell struct {
	// Dir is the working directory of every command. Empty means the
	// current directory.
	Dir string
	// Env is added to the child environment.
	Env map[string]string
	// Stdout and Stderr, when set, receive a live copy of the child output
	// in addition to the captured Result.
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// NewShell returns a Shell that runs commands in dir and logs through
// logger.
func NewShell(dir string, logger *slog.Logger) *Shell {
	if logger == nil {
		logger = slog.Default()
	}
	return &Shell{Dir: dir, Logger: logger}
}

// Run implements Runner. Arguments are passed to the child verbatim.
func (s *Shell) Run(command string, args ...string) (Result, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(command, args...)
	cmd.Dir = s.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if s.Stdout != nil {
		cmd.Stdout = io.MultiWriter(&stdout, s.Stdout)
	}
	if s.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, s.Stderr)
	}
	if len(s.Env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range s.Env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	s.logger().Debug("exec", "cmd", command+" "+strings.Join(args, " "), "dir", s.Dir)
	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		res.ExitCode = -1
		return res, err
	}
	s.logger().Debug("exit", "cmd", command, "code", res.ExitCode)
	return res, nil
}

func (s *Shell) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

// Output runs command through r and converts a start failure or non-zero
// exit into a *types.ExternalToolError.
func Output(r Runner, command string, args ...string) (Result, error) {
	res, err := r.Run(command, args...)
	if err != nil {
		return res, &types.ExternalToolError{Tool: command, Args: args, ExitCode: -1, Stderr: res.Stderr, Err: err}
	}
	if res.ExitCode != 0 {
		return res, &types.ExternalToolError{Tool: command, Args: args, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return res, nil
}
