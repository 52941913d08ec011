package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inspirehep/harvestingkit/format"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List available formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := format.DefaultRegistry.List()
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No formats registered")
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Available formats:")
		for _, name := range names {
			f, _ := format.Get(name)
			fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %-18s %s\n", name, "["+format.Capabilities(f)+"]", f.Description())
		}
		return nil
	},
}
