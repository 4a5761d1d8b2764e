package workspace

import (
	"log/slog"
	"time"

	"github.com/mesh-intelligence/cratepub/internal/manifest"
	"github.com/mesh-intelligence/cratepub/pkg/types"
)

// Oracle resolves the release version.
type Oracle interface {
	Resolve() (types.ReleaseVersion, error)
}

// Member is one package of the workspace. *manifest.Manifest implements it.
type Member interface {
	Package() types.Package
	IsAlreadyPublished() (bool, error)
	Publish(dryRun bool) error
}

// PublishObserver is notified of each publish outcome. The workspace itself
// keeps no record of what it published.
type PublishObserver interface {
	Published(pkg types.Package, dryRun bool)
	Failed(pkg types.Package, dryRun bool, err error)
}

// Options configures a Workspace.
type Options struct {
	// Oracle is required by Check.
	Oracle   Oracle
	Registry manifest.Registry
	// ManifestName is the manifest file name in the root and in each
	// member directory. Defaults to Cargo.toml.
	ManifestName string
	// Delay is the pause between consecutive real publishes.
	Delay time.Duration
	// Sleep blocks for the inter-publish delay. Defaults to time.Sleep.
	Sleep    func(time.Duration)
	Observer PublishObserver
	Logger   *slog.Logger
}

// Workspace is an immutable, ordered list of packages.
type Workspace struct {
	members  []Member
	oracle   Oracle
	delay    time.Duration
	sleep    func(time.Duration)
	observer PublishObserver
	logger   *slog.Logger
}

// New returns a Workspace over members in the given order.
func New(members []Member, opts Options) *Workspace {
	w := &Workspace{
		members:  append([]Member(nil), members...),
		oracle:   opts.Oracle,
		delay:    opts.Delay,
		sleep:    opts.Sleep,
		observer: opts.Observer,
		logger:   opts.Logger,
	}
	if w.sleep == nil {
		w.sleep = time.Sleep
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	return w
}

// Load reads the workspace member list under root and opens one manifest
// per member, preserving order. Any manifest error aborts the load.
func Load(root string, opts Options) (*Workspace, error) {
	name := opts.ManifestName
	if name == "" {
		name = types.DefaultManifest
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg, err := manifest.LoadWorkspace(root, name)
	if err != nil {
		return nil, err
	}

	members := make([]Member, 0, len(cfg.Members))
	for _, dir := range cfg.Members {
		logger.Debug("parsing manifest", "member", dir)
		m, err := manifest.Open(root, dir, name, opts.Registry, logger)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return New(members, opts), nil
}

// Packages returns the packages in publish order.
func (w *Workspace) Packages() []types.Package {
	pkgs := make([]types.Package, len(w.members))
	for i, m := range w.members {
		pkgs[i] = m.Package()
	}
	return pkgs
}

// Len returns the number of packages.
func (w *Workspace) Len() int { return len(w.members) }
