package cmd

import (
	"fmt"

	"github.com/mkuzmin/toolpick/internal/catalog"
	"github.com/mkuzmin/toolpick/internal/report"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the tool categories present in the catalog",
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := catalog.Load(viper.GetString("catalog"))
		if err != nil {
			return err
		}

		for _, category := range store.Categories() {
			fmt.Printf("%-12s %s\n", category, report.CategoryNames[category])
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
