package workspace

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/cratepub/pkg/types"
)

// ErrNoOracle is returned by Check when the workspace was built without an
// Oracle.
var ErrNoOracle = errors.New("workspace has no release version oracle")

// Check verifies that every package declares the release version and that
// none is already published at it. It resolves the release once, stops at
// the first version mismatch before querying the registry at all, and
// otherwise stops at the first package already published. Check has no
// side effects.
func (w *Workspace) Check() (types.CheckResult, error) {
	if w.oracle == nil {
		return types.CheckResult{}, ErrNoOracle
	}
	release, err := w.oracle.Resolve()
	if err != nil {
		return types.CheckResult{}, err
	}
	w.logger.Info("latest release version", "version", release)

	for _, m := range w.members {
		pkg := m.Package()
		if pkg.Version != string(release) {
			return types.CheckResult{Status: types.CheckVersionMismatch, Release: release, Package: pkg}, nil
		}
	}

	for _, m := range w.members {
		pkg := m.Package()
		published, err := m.IsAlreadyPublished()
		if err != nil {
			return types.CheckResult{}, fmt.Errorf("checking %s: %w", pkg.Name, err)
		}
		if published {
			return types.CheckResult{Status: types.CheckAlreadyPublished, Release: release, Package: pkg}, nil
		}
		w.logger.Debug("not yet published", "package", pkg.Name, "version", pkg.Version)
	}

	return types.CheckResult{Status: types.CheckOK, Release: release}, nil
}
