package workspace

import (
	"github.com/mesh-intelligence/cratepub/pkg/types"
)

// Publish publishes every package in order, one at a time. Between real
// publishes it sleeps for the configured delay so the registry index can
// catch up before a later check; it never sleeps after the last package or
// in a dry run.
//
// Publish is not transactional. When a package fails, the ones before it
// stay published, the ones after it are not attempted, and the returned
// *types.PublishError lists what was already published.
func (w *Workspace) Publish(dryRun bool) error {
	if dryRun {
		w.logger.Info("dry run, not actually publishing anything")
	}
	w.logOrder()

	published := make([]string, 0, len(w.members))
	for i, m := range w.members {
		pkg := m.Package()
		w.logger.Info("publishing", "package", pkg.Name, "version", pkg.Version)

		if err := m.Publish(dryRun); err != nil {
			if w.observer != nil {
				w.observer.Failed(pkg, dryRun, err)
			}
			return &types.PublishError{Package: pkg.Name, Published: published, Err: err}
		}
		published = append(published, pkg.Name)
		if w.observer != nil {
			w.observer.Published(pkg, dryRun)
		}

		if i == len(w.members)-1 {
			break
		}
		if dryRun {
			w.logger.Debug("dry run: not sleeping for the registry index to update")
			continue
		}
		w.logger.Info("sleeping to allow the registry index to update", "delay", w.delay)
		w.sleep(w.delay)
	}
	return nil
}

func (w *Workspace) logOrder() {
	names := make([]string, len(w.members))
	for i, m := range w.members {
		names[i] = m.Package().Name
	}
	w.logger.Debug("publishing order", "packages", names)
}
