package cmd

import (
	"fmt"

	"github.com/mkuzmin/toolpick/internal/catalog"
	"github.com/mkuzmin/toolpick/internal/recommender"
	"github.com/mkuzmin/toolpick/internal/report"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var showCmd = &cobra.Command{
	Use:   "show <tool-id>",
	Short: "Show a single catalog tool by its id",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		store, err := catalog.Load(viper.GetString("catalog"))
		if err != nil {
			return err
		}

		tool := store.FindByID(args[0])
		if tool == nil {
			fmt.Printf("no tool with id %q in the catalog\n", args[0])
			return nil
		}

		fmt.Printf("# %s (%s)\n\n", tool.Name, tool.Category)
		fmt.Println(report.Details(&recommender.Candidate{Tool: tool}))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
