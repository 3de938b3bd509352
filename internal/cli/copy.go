package cli

import (
	"fmt"
	"sync/atomic"

	"github.com/Cyclone1070/fastfs/internal/fastfs"
	"github.com/Cyclone1070/fastfs/internal/service/ignore"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newCpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cp <src> <dst>",
		Short: "Copy a single file's content",
		Args:  usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.fs.CopyFile(cmd.Context(), args[0], args[1])
		},
	}
}

type cprFlags struct {
	excludes    []string
	ignoreFile  string
	concurrency int
	symlinks    string
}

func newCprCmd(a *app) *cobra.Command {
	var flags cprFlags

	cmd := &cobra.Command{
		Use:   "cpr <src> <dst>",
		Short: "Copy a directory tree",
		Long: `cpr copies the directory src to dst, creating dst and its parents.

Files are copied concurrently (copy.concurrency, default 8). Symlinks are
followed by default; sockets, devices and pipes fail the copy unless
copy.unsupported is "skip". Patterns use gitignore syntax and match paths
relative to src.

Examples:
  fastfs cpr ./site /srv/site --exclude '*.log' --exclude node_modules/
  fastfs cpr ./repo /tmp/repo --ignore-file .gitignore --symlinks skip`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCpr(cmd, a, &flags, args[0], args[1])
		},
	}
	cmd.Flags().StringArrayVarP(&flags.excludes, "exclude", "x", nil, "Exclude paths matching a gitignore pattern (repeatable)")
	cmd.Flags().StringVar(&flags.ignoreFile, "ignore-file", "", "Read exclusion patterns from this file in the source root (default copy.ignore_file)")
	cmd.Flags().IntVarP(&flags.concurrency, "concurrency", "j", 0, "Maximum concurrent file copies (default copy.concurrency)")
	cmd.Flags().StringVar(&flags.symlinks, "symlinks", "", "Symlink policy: follow, skip or fail (default copy.symlinks)")
	return cmd
}

func runCpr(cmd *cobra.Command, a *app, flags *cprFlags, src, dst string) error {
	opts := a.fs.Options()

	if cmd.Flags().Changed("concurrency") {
		if flags.concurrency < 1 {
			return &usageError{err: fmt.Errorf("--concurrency must be at least 1, got %d", flags.concurrency)}
		}
		opts.Concurrency = flags.concurrency
	}
	if cmd.Flags().Changed("symlinks") {
		switch p := fastfs.SymlinkPolicy(flags.symlinks); p {
		case fastfs.SymlinkFollow, fastfs.SymlinkSkip, fastfs.SymlinkFail:
			opts.Symlinks = p
		default:
			return &usageError{err: fmt.Errorf("--symlinks must be follow, skip or fail, got %q", flags.symlinks)}
		}
	}

	ignoreFile := a.cfg.Copy.IgnoreFile
	if cmd.Flags().Changed("ignore-file") {
		ignoreFile = flags.ignoreFile
	}
	matcher, err := ignore.Load(a.osfs, src, ignoreFile, flags.excludes)
	if err != nil {
		return err
	}
	if matcher.Len() > 0 {
		opts.Ignore = matcher
	}

	var copied, skipped atomic.Int64
	opts.OnFile = func(src, dst string) {
		copied.Add(1)
		a.log.WithFields(logrus.Fields{"src": src, "dst": dst}).Debug("copied file")
	}
	opts.OnSkip = func(path string, kind fastfs.EntryKind) {
		skipped.Add(1)
		a.log.WithFields(logrus.Fields{"path": path, "kind": kind.String()}).Warn("skipped entry")
	}

	a.log.WithFields(logrus.Fields{
		"src":         src,
		"dst":         dst,
		"concurrency": opts.Concurrency,
		"symlinks":    string(opts.Symlinks),
		"patterns":    matcher.Len(),
	}).Debug("copying tree")

	if err := a.fs.CopyTreeWith(cmd.Context(), src, dst, opts); err != nil {
		a.log.WithFields(logrus.Fields{logrus.ErrorKey: err, "copied": copied.Load()}).Error("copy aborted")
		return err
	}

	out := cmd.OutOrStdout()
	st := newStyles(out)
	summary := fmt.Sprintf("copied %d files", copied.Load())
	if n := skipped.Load(); n > 0 {
		summary += fmt.Sprintf(", skipped %d entries", n)
	}
	fmt.Fprintf(out, "%s %s\n", st.success.Render("✔"), summary)
	return nil
}
