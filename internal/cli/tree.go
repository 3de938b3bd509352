package cli

import (
	"encoding/json"

	"github.com/Cyclone1070/fastfs/internal/tree"
	"github.com/spf13/cobra"
)

func newTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <dir>",
		Short: "Print a JSON snapshot of a directory tree",
		Long: `tree prints every visible entry under dir as nested JSON objects.
Files map to their size in bytes. Names starting with "." are left out and
symlinks are followed.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := tree.Snapshot(a.osfs, args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(snapshot)
		},
	}
}
