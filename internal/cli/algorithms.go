package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List available scoring algorithms and their options",
	Args:  cobra.NoArgs,
	RunE:  runAlgorithms,
}

func runAlgorithms(cmd *cobra.Command, args []string) error {
	for _, algo := range registry.All() {
		fmt.Printf("%s\n  %s\n", algo.Name(), algo.Description())

		specs := algo.SupportedOptions()
		if len(specs) == 0 {
			fmt.Println()
			continue
		}

		names := make([]string, 0, len(specs))
		for name := range specs {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Println("  Options:")
		for _, name := range names {
			spec := specs[name]
			fmt.Printf("    %-18s %s (default %v)\n", name, spec.Help, spec.Default)
		}
		fmt.Println()
	}
	return nil
}
