package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Crate describes one workspace member written by WriteWorkspace.
type Crate struct {
	Dir     string
	Name    string
	Version string
}

// WriteWorkspace lays out a Cargo workspace under a new temp dir: a root
// Cargo.toml listing the crates in order and one Cargo.toml per crate.
// It returns the workspace root.
func WriteWorkspace(t testing.TB, crates ...Crate) string {
	t.Helper()
	root := t.TempDir()

	members := make([]string, len(crates))
	for i, c := range crates {
		members[i] = fmt.Sprintf("%q", c.Dir)
	}
	WriteFile(t, filepath.Join(root, "Cargo.toml"),
		"[workspace]\nmembers = ["+strings.Join(members, ", ")+"]\n")

	for _, c := range crates {
		WriteFile(t, filepath.Join(root, c.Dir, "Cargo.toml"), CrateManifest(c.Name, c.Version))
	}
	return root
}

// CrateManifest returns a minimal package manifest.
func CrateManifest(name, version string) string {
	return fmt.Sprintf("[package]\nname = %q\nversion = %q\nedition = \"2021\"\n\n[dependencies]\n", name, version)
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
