package types

// ReleaseVersion is the canonical version of the current release, derived
// from the most recent version-control tag.
type ReleaseVersion string

func (v ReleaseVersion) String() string { return string(v) }

// Package is one publishable member of a workspace.
type Package struct {
	Name         string
	Version      string
	ManifestPath string
}

func (p Package) String() string {
	return p.Name + ": " + p.Version
}

// WorkspaceConfig is the ordered member list read from the root manifest.
// Order is publish order.
type WorkspaceConfig struct {
	Members []string
}

// PackageConfig is the name and version declared by one package manifest.
type PackageConfig struct {
	Name    string
	Version string
}

// RegistryRecord is the result of one registry lookup. An empty Version
// means the package has never been published.
type RegistryRecord struct {
	Name    string
	Version string
}

// Published reports whether the registry knows any version of the package.
func (r RegistryRecord) Published() bool {
	return r.Version != ""
}
