package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/cratepub/internal/paths"
	"github.com/mesh-intelligence/cratepub/pkg/types"
)

// configFile holds the structure written to .cratepub.yaml. Durations are
// written as strings so the file stays readable.
type configFile struct {
	TagPrefix    string              `yaml:"tag_prefix"`
	PublishDelay string              `yaml:"publish_delay"`
	Manifest     string              `yaml:"manifest"`
	Tools        types.ToolsConfig   `yaml:"tools"`
	Journal      types.JournalConfig `yaml:"journal"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default .cratepub.yaml in the workspace root",
		Long:  "Write .cratepub.yaml with the effective settings. An existing file is left untouched.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(a.flags.root, paths.WorkspaceFileName)
			written, err := writeConfigIfMissing(path, a.config)
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			if written {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", path)
			}
			return nil
		},
	}
}

// writeConfigIfMissing creates the config file from cfg if it does not
// exist. It reports whether the file was written.
func writeConfigIfMissing(path string, cfg types.Config) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	data, err := yaml.Marshal(&configFile{
		TagPrefix:    cfg.TagPrefix,
		PublishDelay: cfg.PublishDelay.String(),
		Manifest:     cfg.Manifest,
		Tools:        cfg.Tools,
		Journal:      cfg.Journal,
	})
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}

	header := []byte("# cratepub configuration\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
