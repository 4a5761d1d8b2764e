package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain builds the cratepub binary once before running tests.
func TestMain(m *testing.M) {
	if runtime.GOOS == "windows" {
		// The fake tools are shell scripts.
		os.Exit(0)
	}

	projectRoot, err := FindProjectRoot()
	if err != nil {
		buildErr = err
		os.Exit(1)
	}

	tmpDir, err := os.MkdirTemp("", "cratepub-test-*")
	if err != nil {
		buildErr = err
		os.Exit(1)
	}
	cratepubBin = filepath.Join(tmpDir, "cratepub")

	cmd := exec.Command("go", "build", "-o", cratepubBin, "./cmd/cratepub")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		buildErr = &BuildError{Err: err, Output: string(output)}
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

func TestCheck_ReadyToPublish(t *testing.T) {
	env := NewTestEnv(t, "0.3.0", "kelk-env", "kelk-storage", "kelk")
	env.Env = append(env.Env, "FAKE_GIT_TAG=v0.3.0")
	env.Publish("kelk-env", "0.2.0")

	res := env.Run("check")
	require.Equal(t, 0, res.ExitCode, res.Stderr)
	assert.Contains(t, res.Stdout, "0.3.0")
	assert.Equal(t, []string{
		"search kelk-env",
		"search kelk-storage",
		"search kelk",
	}, env.CargoCalls())
}

func TestCheck_VersionMismatchSkipsRegistry(t *testing.T) {
	env := NewTestEnv(t, "0.2.9", "kelk-env", "kelk")
	env.Env = append(env.Env, "FAKE_GIT_TAG=v0.3.0")

	res := env.Run("check")
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Stdout, "kelk-env version should be 0.3.0 (found 0.2.9)")
	assert.Empty(t, env.CargoCalls())
}

func TestCheck_AlreadyPublished(t *testing.T) {
	env := NewTestEnv(t, "0.3.0", "kelk-env", "kelk-storage", "kelk")
	env.Env = append(env.Env, "FAKE_GIT_TAG=v0.3.0")
	env.Publish("kelk-storage", "0.3.0")

	res := env.Run("check")
	assert.Equal(t, 2, res.ExitCode)
	assert.Contains(t, res.Stdout, "kelk-storage is already published with version 0.3.0")
	assert.Equal(t, []string{"search kelk-env", "search kelk-storage"}, env.CargoCalls())
}

func TestCheck_NoTag(t *testing.T) {
	env := NewTestEnv(t, "0.3.0", "kelk")

	res := env.Run("check")
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, res.Stderr, "No names found")
}

func TestPublish_DryRun(t *testing.T) {
	env := NewTestEnv(t, "0.3.0", "kelk-env", "kelk")

	res := env.Run("publish", "--dry-run")
	require.Equal(t, 0, res.ExitCode, res.Stderr)
	assert.Equal(t, []string{
		"publish -p kelk-env --dry-run",
		"publish -p kelk --dry-run",
	}, env.CargoCalls())
}

func TestPublish_StopsAtFailure(t *testing.T) {
	env := NewTestEnv(t, "0.3.0", "kelk-env", "kelk-storage", "kelk")
	env.Env = append(env.Env, "FAKE_CARGO_FAIL=kelk-storage")

	res := env.Run("publish", "--journal")
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, res.Stderr, "publishing kelk-storage")
	assert.Contains(t, res.Stderr, "already published: kelk-env")
	assert.Equal(t, []string{
		"publish -p kelk-env",
		"publish -p kelk-storage",
	}, env.CargoCalls())

	hist := env.Run("history")
	require.Equal(t, 0, hist.ExitCode, hist.Stderr)
	assert.Contains(t, hist.Stdout, "kelk-env")
	assert.Contains(t, hist.Stdout, "failed")
}

func TestInit_WritesWorkspaceConfig(t *testing.T) {
	env := NewTestEnv(t, "0.3.0", "kelk")

	res := env.Run("init")
	require.Equal(t, 0, res.ExitCode, res.Stderr)
	assert.FileExists(t, filepath.Join(env.Root, ".cratepub.yaml"))
}
