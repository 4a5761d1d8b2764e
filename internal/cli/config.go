package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/cratepub/internal/paths"
	"github.com/mesh-intelligence/cratepub/pkg/types"
)

// Config keys.
const (
	cfgKeyTagPrefix      = "tag_prefix"
	cfgKeyPublishDelay   = "publish_delay"
	cfgKeyManifest       = "manifest"
	cfgKeyToolsGit       = "tools.git"
	cfgKeyToolsCargo     = "tools.cargo"
	cfgKeyJournalEnabled = "journal.enabled"
	cfgKeyJournalDir     = "journal.dir"

	envPrefix = "CRATEPUB"
)

// loadConfig reads the configuration with Viper: defaults, then the config
// file, then CRATEPUB_* environment variables, then bound flags. A missing
// config file is not an error unless it was named explicitly. It returns
// the decoded config and the file used, if any.
func loadConfig(explicit, root string, flags *pflag.FlagSet) (types.Config, string, error) {
	v := newViper()

	file, err := paths.ResolveConfigFile(explicit, root)
	if err != nil {
		return types.Config{}, "", fmt.Errorf("resolve config file: %w", err)
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return types.Config{}, "", fmt.Errorf("read config %s: %w", file, err)
		}
	}

	if flags != nil {
		if f := flags.Lookup("journal"); f != nil {
			if err := v.BindPFlag(cfgKeyJournalEnabled, f); err != nil {
				return types.Config{}, "", fmt.Errorf("bind flag: %w", err)
			}
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, "", fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, "", fmt.Errorf("invalid config: %w", err)
	}
	return cfg, file, nil
}

func newViper() *viper.Viper {
	def := types.DefaultConfig()

	v := viper.New()
	v.SetDefault(cfgKeyTagPrefix, def.TagPrefix)
	v.SetDefault(cfgKeyPublishDelay, def.PublishDelay)
	v.SetDefault(cfgKeyManifest, def.Manifest)
	v.SetDefault(cfgKeyToolsGit, def.Tools.Git)
	v.SetDefault(cfgKeyToolsCargo, def.Tools.Cargo)
	v.SetDefault(cfgKeyJournalEnabled, def.Journal.Enabled)
	v.SetDefault(cfgKeyJournalDir, def.Journal.Dir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}
