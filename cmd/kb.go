package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inspirehep/harvestingkit/kb"
)

var kbCmd = &cobra.Command{
	Use:   "kb [name]",
	Short: "List knowledge bases or show the entries of one",
	Long: `List the loaded knowledge bases, or print the entries of one.

Knowledge bases are the embedded defaults overlaid with --kb-dir and then
--kb-file. Entries are printed as key and value separated by a tab.

Examples:
  harvestingkit kb
  harvestingkit kb journals
  harvestingkit kb --kb-dir ./kbs journals`,
	Args: cobra.MaximumNArgs(1),
	RunE: runKB,
}

func runKB(cmd *cobra.Command, args []string) error {
	kbs, err := loadKnowledgeBases()
	if err != nil {
		return fmt.Errorf("loading knowledge bases: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprintln(out, "Knowledge bases:")
		for _, name := range kbs.List() {
			base, _ := kbs.Get(name)
			fmt.Fprintf(out, "  %-12s %6d entries  %s\n", name, len(base.Entries), base.Description)
		}
		return nil
	}

	base, ok := kbs.Get(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", kb.ErrNotFound, args[0])
	}
	for _, key := range base.Entries.Keys() {
		fmt.Fprintf(out, "%s\t%s\n", key, base.Entries[key])
	}
	return nil
}
