// Package vcs resolves the release version from git tag metadata.
package vcs

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mesh-intelligence/cratepub/internal/runner"
	"github.com/mesh-intelligence/cratepub/pkg/types"
)

// Oracle resolves the canonical release version from the most recent tag.
type Oracle struct {
	runner runner.Runner
	git    string
	prefix string
	logger *slog.Logger
}

// NewOracle returns an Oracle that runs git through r and strips prefix
// (typically "v") from the tag.
func NewOracle(r runner.Runner, git, prefix string, logger *slog.Logger) *Oracle {
	if git == "" {
		git = types.DefaultGit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Oracle{runner: r, git: git, prefix: prefix, logger: logger}
}

// Resolve runs "git describe --abbrev=0" and returns the tag with
// surrounding whitespace and the tag prefix removed. It is not retried.
func (o *Oracle) Resolve() (types.ReleaseVersion, error) {
	res, err := runner.Output(o.runner, o.git, "describe", "--abbrev=0")
	if err != nil {
		return "", fmt.Errorf("resolving release version: %w", err)
	}

	version := ParseTag(res.Stdout, o.prefix)
	if version == "" {
		return "", fmt.Errorf("resolving release version: %w", &types.ExternalToolError{
			Tool: o.git, Args: []string{"describe", "--abbrev=0"}, ExitCode: 0, Err: types.ErrNoReleaseTag,
		})
	}
	o.logger.Debug("resolved release version", "tag", strings.TrimSpace(res.Stdout), "version", version)
	return types.ReleaseVersion(version), nil
}

// ParseTag trims whitespace from tag and strips one leading prefix.
func ParseTag(tag, prefix string) string {
	tag = strings.TrimSpace(tag)
	if prefix != "" {
		tag = strings.TrimPrefix(tag, prefix)
	}
	return strings.TrimSpace(tag)
}
