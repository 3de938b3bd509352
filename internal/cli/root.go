// Package cli implements the fastfs command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Cyclone1070/fastfs/internal/config"
	"github.com/Cyclone1070/fastfs/internal/fastfs"
	"github.com/Cyclone1070/fastfs/internal/logging"
	"github.com/Cyclone1070/fastfs/internal/service/fs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Exit codes
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

// app holds what every subcommand needs once flags are parsed.
type app struct {
	cfg  *config.Config
	log  *logrus.Logger
	osfs *fs.OSFileSystem
	fs   *fastfs.FastFS

	verbose    bool
	configPath string
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "fastfs",
		Short: "Directory checks, listings, recursive mkdir and recursive copy",
		Long: `fastfs inspects and copies directory trees.

Configuration is read from ~/.config/fastfs/config.json (or --config) and
FASTFS_<SECTION>_<KEY> environment variables, e.g. FASTFS_COPY_CONCURRENCY=1.

Exit Codes:
  0   - Success
  1   - Operation failed (or isdir: not a directory)
  2   - CLI usage error
  130 - Interrupted`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log every copied file")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a config file")

	root.AddCommand(
		newIsDirCmd(a),
		newLsCmd(a),
		newMkdirCmd(a),
		newMkdirpCmd(a),
		newCpCmd(a),
		newCprCmd(a),
		newTreeCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	loader := config.NewLoader()
	if a.configPath != "" {
		loader = loader.WithPath(a.configPath)
	}
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	a.cfg = cfg
	a.log = logging.NewWithOutput(cfg.Log, cmd.ErrOrStderr())
	if a.verbose {
		logging.Verbose(a.log)
	}
	a.osfs = fs.NewOSFileSystem()
	a.fs = fastfs.New(a.osfs, cfg)
	return nil
}

// Execute runs the command line and returns the process exit code.
// SIGINT and SIGTERM cancel the running operation.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCmd()
	err := cmd.ExecuteContext(ctx)
	if err != nil && !isSilent(err) {
		st := newStyles(cmd.ErrOrStderr())
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", st.err.Render("error:"), err)
	}
	return ExitCode(err)
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var exitErr *exitError
	var usageErr *usageError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &exitErr):
		return exitErr.code
	case errors.As(err, &usageErr):
		return ExitUsage
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	default:
		return ExitFailure
	}
}

// exitError ends the process with code without printing anything.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func isSilent(err error) bool {
	var exitErr *exitError
	return errors.As(err, &exitErr)
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}
