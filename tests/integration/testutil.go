// Package integration provides end-to-end tests that run the cratepub
// binary against a scratch Cargo workspace with scripted git and cargo
// stand-ins on the command line.
package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var (
	// cratepubBin is the path to the built cratepub binary.
	cratepubBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// fakeGit prints $FAKE_GIT_TAG as the latest tag, or fails like git does in
// a repository without tags. Both fakes refuse to run outside
// $FAKE_WORKSPACE.
const fakeGit = `#!/bin/sh
if [ "$(pwd -P)" != "$FAKE_WORKSPACE" ]; then
	echo "fatal: not a git repository: $(pwd -P)" >&2
	exit 128
fi
if [ -z "$FAKE_GIT_TAG" ]; then
	echo "fatal: No names found, cannot describe anything." >&2
	exit 128
fi
echo "$FAKE_GIT_TAG"
`

// fakeCargo appends every invocation to $FAKE_CARGO_LOG. search answers from
// the lines of $FAKE_REGISTRY; publish fails for the crate named in
// $FAKE_CARGO_FAIL.
const fakeCargo = `#!/bin/sh
if [ "$(pwd -P)" != "$FAKE_WORKSPACE" ]; then
	echo "error: could not find Cargo.toml in $(pwd -P)" >&2
	exit 101
fi
echo "$*" >> "$FAKE_CARGO_LOG"
case "$1" in
search)
	[ -f "$FAKE_REGISTRY" ] && grep "^$2 = " "$FAKE_REGISTRY"
	exit 0
	;;
publish)
	if [ -n "$FAKE_CARGO_FAIL" ] && [ "$3" = "$FAKE_CARGO_FAIL" ]; then
		echo "error: failed to publish $3" >&2
		exit 101
	fi
	echo "   Uploading $3"
	exit 0
	;;
esac
echo "unexpected cargo command: $*" >&2
exit 64
`

// TestEnv is an isolated workspace with its own tools, config, and data
// directories.
type TestEnv struct {
	t        *testing.T
	Root     string
	BinDir   string
	DataDir  string
	CargoLog string
	Registry string

	// Env holds extra variables for every run.
	Env []string
}

// NewTestEnv lays out a workspace with the given members, each declared at
// version, and installs the fake tools.
func NewTestEnv(t *testing.T, version string, members ...string) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build cratepub: %v", buildErr)
	}
	if cratepubBin == "" {
		t.Fatal("cratepub binary not built (cratepubBin is empty)")
	}

	tmp := t.TempDir()
	e := &TestEnv{
		t:        t,
		Root:     filepath.Join(tmp, "workspace"),
		BinDir:   filepath.Join(tmp, "bin"),
		DataDir:  filepath.Join(tmp, "data"),
		CargoLog: filepath.Join(tmp, "cargo.log"),
		Registry: filepath.Join(tmp, "registry.txt"),
	}

	e.write(filepath.Join(e.BinDir, "git"), fakeGit, 0o755)
	e.write(filepath.Join(e.BinDir, "cargo"), fakeCargo, 0o755)

	quoted := make([]string, len(members))
	for i, m := range members {
		quoted[i] = `"crates/` + m + `"`
	}
	e.write(filepath.Join(e.Root, "Cargo.toml"),
		"[workspace]\nmembers = ["+strings.Join(quoted, ", ")+"]\n", 0o644)
	for _, m := range members {
		e.write(filepath.Join(e.Root, "crates", m, "Cargo.toml"),
			"[package]\nname = \""+m+"\"\nversion = \""+version+"\"\n", 0o644)
	}
	return e
}

// Publish records name at version in the fake registry.
func (e *TestEnv) Publish(name, version string) {
	e.t.Helper()
	f, err := os.OpenFile(e.Registry, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		e.t.Fatalf("open registry: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(name + ` = "` + version + `"    # a crate` + "\n"); err != nil {
		e.t.Fatalf("write registry: %v", err)
	}
}

// CargoCalls returns the recorded cargo invocations.
func (e *TestEnv) CargoCalls() []string {
	e.t.Helper()
	data, err := os.ReadFile(e.CargoLog)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		e.t.Fatalf("read cargo log: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func (e *TestEnv) write(path, content string, mode os.FileMode) {
	e.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		e.t.Fatalf("write %s: %v", path, err)
	}
}

// CmdResult holds the result of a cratepub command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes cratepub against the workspace. The fake tools are selected
// through config environment variables so PATH stays untouched.
func (e *TestEnv) Run(args ...string) CmdResult {
	e.t.Helper()

	workspace, err := filepath.EvalSymlinks(e.Root)
	if err != nil {
		e.t.Fatalf("resolve workspace: %v", err)
	}

	allArgs := append([]string{"--root", e.Root}, args...)
	cmd := exec.Command(cratepubBin, allArgs...)
	cmd.Env = append(cleanEnv(),
		"CRATEPUB_CONFIG_DIR="+filepath.Join(e.DataDir, "config"),
		"CRATEPUB_DATA_DIR="+e.DataDir,
		"CRATEPUB_TOOLS_GIT="+filepath.Join(e.BinDir, "git"),
		"CRATEPUB_TOOLS_CARGO="+filepath.Join(e.BinDir, "cargo"),
		"CRATEPUB_PUBLISH_DELAY=0s",
		"FAKE_WORKSPACE="+workspace,
		"FAKE_CARGO_LOG="+e.CargoLog,
		"FAKE_REGISTRY="+e.Registry,
	)
	cmd.Env = append(cmd.Env, e.Env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err = cmd.Run()

	res := CmdResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			e.t.Fatalf("run cratepub: %v", err)
		}
		res.ExitCode = exitErr.ExitCode()
	}
	return res
}

// cleanEnv returns os.Environ() with all CRATEPUB_*, FAKE_*, and XDG_*
// variables removed.
func cleanEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "CRATEPUB_") || strings.HasPrefix(kv, "FAKE_") || strings.HasPrefix(kv, "XDG_") {
			continue
		}
		env = append(env, kv)
	}
	return env
}
