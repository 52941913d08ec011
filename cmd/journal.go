package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inspirehep/harvestingkit/pos"
)

var journalCmd = &cobra.Command{
	Use:   "journal <name>...",
	Short: "Normalize journal names to their short form",
	Long: `Normalize journal names using the journal knowledge base.

Each name is printed with its short form and the volume letter split off
its end, if any, separated by tabs.

Examples:
  harvestingkit journal "Nuclear Physics B"
  harvestingkit journal --kb-file journals.yaml "Phys. Rev. D"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kbs, err := loadKnowledgeBases()
		if err != nil {
			return fmt.Errorf("loading knowledge bases: %w", err)
		}

		mapper := pos.NewMapper(kbs)
		for _, name := range args {
			short, volume := mapper.FixJournalName(name)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", name, short, volume)
		}
		return nil
	},
}
