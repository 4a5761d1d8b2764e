package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDir_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}

	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-config/cratepub", got)
	})

	t.Run("falls back to ~/.config when XDG unset", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		got, err := DefaultConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "cratepub"), got)
	})
}

func TestDefaultDataDir_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}

	t.Run("uses XDG_DATA_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
		got, err := DefaultDataDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-data/cratepub", got)
	})

	t.Run("falls back to ~/.local/share when XDG unset", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		got, err := DefaultDataDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".local", "share", "cratepub"), got)
	})
}

func TestResolveConfigFile(t *testing.T) {
	writeFile := func(t *testing.T, path string) {
		t.Helper()
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("tag_prefix: v\n"), 0o644))
	}

	t.Run("explicit path wins even when missing", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, WorkspaceFileName))
		got, err := ResolveConfigFile("/explicit/cratepub.yaml", root)
		require.NoError(t, err)
		assert.Equal(t, "/explicit/cratepub.yaml", got)
	})

	t.Run("workspace file wins over user config", func(t *testing.T) {
		root := t.TempDir()
		userDir := t.TempDir()
		t.Setenv(EnvConfigDir, userDir)
		writeFile(t, filepath.Join(root, WorkspaceFileName))
		writeFile(t, filepath.Join(userDir, UserConfigName))

		got, err := ResolveConfigFile("", root)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, WorkspaceFileName), got)
	})

	t.Run("user config when workspace has none", func(t *testing.T) {
		userDir := t.TempDir()
		t.Setenv(EnvConfigDir, userDir)
		writeFile(t, filepath.Join(userDir, UserConfigName))

		got, err := ResolveConfigFile("", t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(userDir, UserConfigName), got)
	})

	t.Run("none found", func(t *testing.T) {
		t.Setenv(EnvConfigDir, t.TempDir())
		got, err := ResolveConfigFile("", t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestResolveJournalDir(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		envVal     string
		want       string
	}{
		{"configured wins over env", "/config/data", "/env/data", "/config/data"},
		{"env when not configured", "", "/env/data", "/env/data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvDataDir, tt.envVal)
			got, err := ResolveJournalDir(tt.configured)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("platform default when both empty", func(t *testing.T) {
		t.Setenv(EnvDataDir, "")
		got, err := ResolveJournalDir("")
		require.NoError(t, err)
		assert.Contains(t, got, AppName)
	})

	t.Run("relative value becomes absolute", func(t *testing.T) {
		t.Setenv(EnvDataDir, "")
		got, err := ResolveJournalDir("relative/data")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})
}
