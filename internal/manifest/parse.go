package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/mesh-intelligence/cratepub/pkg/types"
)

// cargoFile is the subset of Cargo.toml that cratepub reads.
type cargoFile struct {
	Package   *cargoPackage   `toml:"package"`
	Workspace *cargoWorkspace `toml:"workspace"`
}

type cargoPackage struct {
	Name string `toml:"name"`
	// Version is either a string or an inheritance table such as
	// {workspace = true}.
	Version any `toml:"version"`
}

type cargoWorkspace struct {
	Members []string               `toml:"members"`
	Package *cargoWorkspacePackage `toml:"package"`
}

type cargoWorkspacePackage struct {
	Version string `toml:"version"`
}

func readCargo(path string) (*cargoFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.ManifestError{Path: path, Err: err}
	}
	var f cargoFile
	if err := toml.Unmarshal(data, &f); err != nil {
		var decErr *toml.DecodeError
		if errors.As(err, &decErr) {
			row, col := decErr.Position()
			err = fmt.Errorf("line %d column %d: %w", row, col, err)
		}
		return nil, &types.ManifestError{Path: path, Err: err}
	}
	return &f, nil
}

// LoadWorkspace reads the ordered member list from the workspace manifest
// at root/manifestName.
func LoadWorkspace(root, manifestName string) (types.WorkspaceConfig, error) {
	path := filepath.Join(root, manifestName)
	f, err := readCargo(path)
	if err != nil {
		return types.WorkspaceConfig{}, err
	}
	if f.Workspace == nil {
		return types.WorkspaceConfig{}, &types.ManifestError{Path: path, Field: "workspace"}
	}
	if len(f.Workspace.Members) == 0 {
		return types.WorkspaceConfig{}, &types.ManifestError{Path: path, Field: "workspace.members"}
	}
	for i, m := range f.Workspace.Members {
		if m == "" {
			return types.WorkspaceConfig{}, &types.ManifestError{
				Path: path, Field: fmt.Sprintf("workspace.members[%d]", i), Err: errors.New("empty member path"),
			}
		}
	}
	return types.WorkspaceConfig{Members: append([]string(nil), f.Workspace.Members...)}, nil
}

// Load reads the package name and version declared at path. A
// `version.workspace = true` entry takes [workspace.package] version from
// the nearest manifest of the same name, starting at path itself and
// walking up, that has a [workspace] table.
func Load(path string) (types.PackageConfig, error) {
	f, err := readCargo(path)
	if err != nil {
		return types.PackageConfig{}, err
	}
	if f.Package == nil {
		return types.PackageConfig{}, &types.ManifestError{Path: path, Field: "package"}
	}
	if f.Package.Name == "" {
		return types.PackageConfig{}, &types.ManifestError{Path: path, Field: "package.name"}
	}

	version, err := resolveVersion(f.Package.Version, func() string { return workspaceVersion(path) })
	if err != nil {
		return types.PackageConfig{}, &types.ManifestError{Path: path, Field: "package.version", Err: err}
	}
	if version == "" {
		return types.PackageConfig{}, &types.ManifestError{Path: path, Field: "package.version"}
	}
	return types.PackageConfig{Name: f.Package.Name, Version: version}, nil
}

func workspaceVersion(path string) string {
	name := filepath.Base(path)
	dir := filepath.Dir(path)
	for {
		f, err := readCargo(filepath.Join(dir, name))
		if err == nil && f.Workspace != nil {
			if f.Workspace.Package == nil {
				return ""
			}
			return f.Workspace.Package.Version
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

var errNotInherited = errors.New("inherits from workspace but [workspace.package] has no version")

func resolveVersion(raw any, inherited func() string) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case map[string]any:
		if ws, ok := v["workspace"].(bool); ok && ws {
			v := inherited()
			if v == "" {
				return "", errNotInherited
			}
			return v, nil
		}
		return "", fmt.Errorf("unsupported version table %v", v)
	default:
		return "", fmt.Errorf("expected string, got %T", raw)
	}
}
