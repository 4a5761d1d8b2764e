package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cratepub/pkg/types"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check crate versions against the latest release tag",
		Long: "Verify that every workspace crate declares the version of the latest\n" +
			"release tag and that none is already published at that version.\n\n" +
			"Exit status: 0 when ready to publish, 1 on a version mismatch,\n" +
			"2 when a crate is already published, 3 on any other error.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd)
		},
	}
}

func (a *app) runCheck(cmd *cobra.Command) error {
	ws, err := a.loadWorkspace(cmd, nil)
	if err != nil {
		return err
	}

	res, err := ws.Check()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Message())
	if res.Status != types.CheckOK {
		return &ExitError{Code: int(res.Status)}
	}
	return nil
}
