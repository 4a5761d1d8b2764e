package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cratepub/internal/journal"
	"github.com/mesh-intelligence/cratepub/internal/paths"
	"github.com/mesh-intelligence/cratepub/internal/workspace"
)

type publishFlags struct {
	dryRun bool
}

func newPublishCmd(a *app) *cobra.Command {
	var pf publishFlags
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish the workspace crates to the registry in order",
		Long: "Publish every workspace crate in member order, pausing between crates so\n" +
			"the registry index can update. A failure stops the run; crates published\n" +
			"before it stay published. Run check first.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPublish(cmd, pf)
		},
	}
	cmd.Flags().BoolVar(&pf.dryRun, "dry-run", false, "run the whole sequence without publishing anything")
	cmd.Flags().Bool("journal", false, "record publish outcomes in the journal")
	return cmd
}

func (a *app) runPublish(cmd *cobra.Command, pf publishFlags) error {
	var (
		observer workspace.PublishObserver
		run      *journal.Run
	)
	if a.config.Journal.Enabled {
		j, err := a.openJournal()
		if err != nil {
			return err
		}
		defer j.Close()
		run = j.Begin()
		observer = run
		a.logger.Debug("journal run started", "run", run.ID)
	}

	ws, err := a.loadWorkspace(cmd, observer)
	if err != nil {
		return err
	}

	if err := ws.Publish(pf.dryRun); err != nil {
		return err
	}
	if run != nil {
		if err := run.Err(); err != nil {
			a.logger.Warn("journal write failed", "error", err)
		}
	}

	verb := "published"
	if pf.dryRun {
		verb = "verified (dry run)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d crates %s\n", ws.Len(), verb)
	return nil
}

func (a *app) openJournal() (*journal.Journal, error) {
	dir, err := paths.ResolveJournalDir(a.config.Journal.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolve journal dir: %w", err)
	}
	return journal.Open(dir)
}
