package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newIsDirCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "isdir <path>",
		Short: "Exit 0 if path is a directory, 1 otherwise",
		Long: `isdir follows symlinks. A missing path, or one with a non-directory
component, is reported as "not a directory" rather than an error.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.fs.IsDir(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return &exitError{code: ExitFailure}
			}
			return nil
		},
	}
}

func newLsCmd(a *app) *cobra.Command {
	var showKinds bool

	cmd := &cobra.Command{
		Use:   "ls <dir>",
		Short: "List a directory's entries with their kinds",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.fs.ListEntries(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			st := newStyles(out)
			for _, e := range entries {
				if showKinds {
					fmt.Fprintf(out, "%s%s\n", st.kind.Render(e.Kind.String()), st.entry(e))
				} else {
					fmt.Fprintln(out, st.entry(e))
				}
			}
			a.log.WithField("dir", args[0]).WithField("typed", a.fs.HasTypes()).Debugf("listed %d entries", len(entries))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&showKinds, "kinds", "k", false, "Show the kind of each entry")
	return cmd
}

func newMkdirCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir <dir>",
		Short: "Create a single directory; the parent must exist",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.fs.Mkdir(cmd.Context(), args[0])
		},
	}
}

func newMkdirpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mkdirp <dir>...",
		Short: "Create directories and any missing parents",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, dir := range args {
				if err := a.fs.EnsureDir(cmd.Context(), dir); err != nil {
					return err
				}
				a.log.WithField("dir", dir).Debug("ensured directory")
			}
			return nil
		},
	}
}
