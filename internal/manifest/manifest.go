package manifest

import (
	"log/slog"
	"path/filepath"

	"github.com/mesh-intelligence/cratepub/pkg/types"
)

// Registry is the registry capability a Manifest delegates to.
type Registry interface {
	Record(name string) (types.RegistryRecord, error)
	Publish(name string, dryRun bool) error
}

// Manifest is one loaded workspace member bound to a registry.
type Manifest struct {
	pkg      types.Package
	registry Registry
	logger   *slog.Logger
}

// New binds pkg to registry.
func New(pkg types.Package, registry Registry, logger *slog.Logger) *Manifest {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manifest{pkg: pkg, registry: registry, logger: logger}
}

// Open loads the member manifest under root and binds it to registry.
func Open(root, member, manifestName string, registry Registry, logger *slog.Logger) (*Manifest, error) {
	path := filepath.Join(root, member, manifestName)
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	pkg := types.Package{
		Name:         cfg.Name,
		Version:      cfg.Version,
		ManifestPath: path,
	}
	return New(pkg, registry, logger), nil
}

// Package returns the declared package.
func (m *Manifest) Package() types.Package { return m.pkg }

// Name returns the declared package name.
func (m *Manifest) Name() string { return m.pkg.Name }

// Version returns the declared package version.
func (m *Manifest) Version() string { return m.pkg.Version }

func (m *Manifest) String() string { return m.pkg.String() }

// IsAlreadyPublished reports whether the registry's latest version equals
// the declared version. A package the registry has never seen is not
// published.
func (m *Manifest) IsAlreadyPublished() (bool, error) {
	rec, err := m.registry.Record(m.pkg.Name)
	if err != nil {
		return false, err
	}
	if !rec.Published() {
		return false, nil
	}
	return rec.Version == m.pkg.Version, nil
}

// Publish publishes the package, or validates it only when dryRun is set.
func (m *Manifest) Publish(dryRun bool) error {
	if dryRun {
		m.logger.Info("dry run: not publishing", "package", m.pkg.Name)
	}
	if err := m.registry.Publish(m.pkg.Name, dryRun); err != nil {
		return err
	}
	m.logger.Debug("publish succeeded", "package", m.pkg.Name, "version", m.pkg.Version, "dry_run", dryRun)
	return nil
}
