package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cratepub/internal/journal"
)

type historyFlags struct {
	limit    int
	jsonMode bool
}

func newHistoryCmd(a *app) *cobra.Command {
	var hf historyFlags
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded publish outcomes from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHistory(cmd, hf)
		},
	}
	cmd.Flags().IntVarP(&hf.limit, "limit", "n", 20, "maximum number of entries (0 for all)")
	cmd.Flags().BoolVar(&hf.jsonMode, "json", false, "output in JSON format")
	return cmd
}

func (a *app) runHistory(cmd *cobra.Command, hf historyFlags) error {
	j, err := a.openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	entries, err := j.Entries(hf.limit)
	if err != nil {
		return err
	}

	if hf.jsonMode {
		return renderHistoryJSON(cmd.OutOrStdout(), entries)
	}
	renderHistoryTable(cmd.OutOrStdout(), entries)
	return nil
}

func renderHistoryTable(w io.Writer, entries []journal.Entry) {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "(no entries)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Recorded", "Run", "Crate", "Version", "Outcome", "Error"})
	for _, e := range entries {
		t.AppendRow(table.Row{
			e.RecordedAt.Local().Format(time.DateTime),
			shortRunID(e.RunID),
			e.Package,
			e.Version,
			e.Outcome,
			e.Error,
		})
	}
	t.Render()
}

type historyEntryJSON struct {
	RunID      string    `json:"run_id"`
	Package    string    `json:"package"`
	Version    string    `json:"version"`
	DryRun     bool      `json:"dry_run"`
	Outcome    string    `json:"outcome"`
	Error      string    `json:"error,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

func renderHistoryJSON(w io.Writer, entries []journal.Entry) error {
	out := make([]historyEntryJSON, len(entries))
	for i, e := range entries {
		out[i] = historyEntryJSON(e)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
