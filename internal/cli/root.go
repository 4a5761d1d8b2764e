// Package cli implements the cratepub command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cratepub/internal/runner"
	"github.com/mesh-intelligence/cratepub/pkg/types"
)

// Exit codes. The check outcomes map to types.CheckStatus values.
const (
	exitSuccess          = 0
	exitVersionMismatch  = int(types.CheckVersionMismatch)
	exitAlreadyPublished = int(types.CheckAlreadyPublished)
	exitFatal            = 3
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	root       string
	configFile string
	verbose    bool
}

// app carries per-invocation state shared by the subcommands.
type app struct {
	flags rootFlags

	// newRunner and sleep are replaced in tests.
	newRunner func(dir string, logger *slog.Logger, verbose bool, stderr io.Writer) runner.Runner
	sleep     func(time.Duration)

	logger *slog.Logger
	config types.Config
}

// Option customises the root command.
type Option func(*app)

// WithRunner makes every subcommand run external tools through r.
func WithRunner(r runner.Runner) Option {
	return func(a *app) {
		a.newRunner = func(string, *slog.Logger, bool, io.Writer) runner.Runner { return r }
	}
}

// WithSleep replaces the inter-publish sleep.
func WithSleep(sleep func(time.Duration)) Option {
	return func(a *app) { a.sleep = sleep }
}

// ExitError carries a non-zero process exit code out of a command without
// being a failure that needs printing.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

// NewRootCmd creates the top-level "cratepub" command with global flags
// and all subcommands registered.
func NewRootCmd(opts ...Option) *cobra.Command {
	a := &app{
		newRunner: defaultRunner,
		sleep:     time.Sleep,
	}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "cratepub",
		Short: "Publish the crates of a Cargo workspace in order",
		Long: "cratepub checks that every crate in a Cargo workspace carries the latest\n" +
			"release tag's version and is not yet on the registry, then publishes the\n" +
			"crates one at a time in workspace member order.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.flags.root, "root", ".", "workspace root containing the workspace Cargo.toml")
	root.PersistentFlags().StringVar(&a.flags.configFile, "config", "", "config file (default: <root>/.cratepub.yaml or the user config dir)")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "be verbose")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newPublishCmd(a))
	root.AddCommand(newHistoryCmd(a))

	return root
}

// setup loads configuration and builds the logger before any subcommand
// runs.
func (a *app) setup(cmd *cobra.Command) error {
	a.logger = newLogger(cmd.ErrOrStderr(), a.flags.verbose)

	// Skip config loading for the version command.
	if cmd.Name() == "version" {
		return nil
	}

	cfg, used, err := loadConfig(a.flags.configFile, a.flags.root, cmd.Flags())
	if err != nil {
		return err
	}
	if used != "" {
		a.logger.Debug("loaded config", "file", used)
	}
	a.config = cfg
	return nil
}

// defaultRunner runs git and cargo inside the workspace root so the tag and
// the published crates come from the same checkout as the manifests.
func defaultRunner(dir string, logger *slog.Logger, verbose bool, stderr io.Writer) runner.Runner {
	sh := runner.NewShell(dir, logger)
	if verbose {
		sh.Stdout = stderr
		sh.Stderr = stderr
	}
	return sh
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the command line and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer, opts ...Option) int {
	root := NewRootCmd(opts...)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return exitCode(root.Execute(), stderr)
}

// exitCode maps a command error to a process exit code, printing the cause
// of fatal errors.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return exitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintln(stderr, "Error:", err)
	return exitFatal
}
