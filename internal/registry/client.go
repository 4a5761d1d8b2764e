// Package registry queries and publishes to the package registry through
// the cargo command-line tool.
package registry

import (
	"bufio"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/mesh-intelligence/cratepub/internal/runner"
	"github.com/mesh-intelligence/cratepub/pkg/types"
)

// Client talks to the registry. Lookups are never cached.
type Client struct {
	runner runner.Runner
	cargo  string
	logger *slog.Logger
}

// NewClient returns a Client that runs cargo through r.
func NewClient(r runner.Runner, cargo string, logger *slog.Logger) *Client {
	if cargo == "" {
		cargo = types.DefaultCargo
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{runner: r, cargo: cargo, logger: logger}
}

// Lookup returns the latest published version of name, or "" when the
// registry has no package with exactly that name. A search that cannot run
// or exits non-zero is an error wrapping types.ErrRegistryQuery, never "".
func (c *Client) Lookup(name string) (string, error) {
	args := []string{"search", name}
	res, err := runner.Output(c.runner, c.cargo, args...)
	if err != nil {
		return "", fmt.Errorf("looking up %s: %w: %w", name, types.ErrRegistryQuery, err)
	}

	version := ParseSearch(res.Stdout, name)
	c.logger.Debug("registry lookup", "package", name, "published", version)
	return version, nil
}

// Record returns the lookup result as a RegistryRecord.
func (c *Client) Record(name string) (types.RegistryRecord, error) {
	v, err := c.Lookup(name)
	if err != nil {
		return types.RegistryRecord{}, err
	}
	return types.RegistryRecord{Name: name, Version: v}, nil
}

// Publish runs "cargo publish -p name", adding --dry-run when dryRun is set.
// Without dryRun the package version is registered irreversibly.
func (c *Client) Publish(name string, dryRun bool) error {
	args := PublishArgs(name, dryRun)
	c.logger.Debug("publish", "cmd", c.cargo+" "+strings.Join(args, " "))
	_, err := runner.Output(c.runner, c.cargo, args...)
	return err
}

// PublishArgs returns the cargo arguments for publishing name.
func PublishArgs(name string, dryRun bool) []string {
	args := []string{"publish", "-p", name}
	if dryRun {
		args = append(args, "--dry-run")
	}
	return args
}

// ParseSearch scans cargo search output for a line of the form
// `name = "version"` whose name matches exactly and returns the version.
func ParseSearch(output, name string) string {
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(name) + ` = "([^"]+)"`)
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		if m := re.FindStringSubmatch(scanner.Text()); m != nil {
			return m[1]
		}
	}
	return ""
}
