package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cratepub/internal/registry"
	"github.com/mesh-intelligence/cratepub/internal/vcs"
	"github.com/mesh-intelligence/cratepub/internal/workspace"
)

// loadWorkspace builds the workspace under the --root directory, wired to
// git and cargo through the app's runner.
func (a *app) loadWorkspace(cmd *cobra.Command, observer workspace.PublishObserver) (*workspace.Workspace, error) {
	r := a.newRunner(a.flags.root, a.logger, a.flags.verbose, cmd.ErrOrStderr())
	return workspace.Load(a.flags.root, workspace.Options{
		Oracle:       vcs.NewOracle(r, a.config.Tools.Git, a.config.TagPrefix, a.logger),
		Registry:     registry.NewClient(r, a.config.Tools.Cargo, a.logger),
		ManifestName: a.config.Manifest,
		Delay:        a.config.PublishDelay,
		Sleep:        a.sleep,
		Observer:     observer,
		Logger:       a.logger,
	})
}
