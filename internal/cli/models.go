package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lawsphere/lexgate/internal/catalog"
	"github.com/lawsphere/lexgate/internal/config"
)

var modelsLocalOnly bool

func init() {
	rootCmd.AddCommand(modelsCmd)
	modelsCmd.Flags().BoolVar(&modelsLocalOnly, "local-only", false, "List only on-premise models")
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List catalog models with trust classification",
	RunE:  runModels,
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}

	available := cat.Available(!modelsLocalOnly && cfg.Routing.EnableCloud)
	for _, key := range cat.Keys() {
		m, ok := available[key]
		if !ok {
			continue
		}
		cost := "free"
		if m.CostPer1KTokens > 0 {
			cost = fmt.Sprintf("$%.6f/1K", m.CostPer1KTokens)
		}
		fmt.Printf("%-18s %-12s %-28s %s\n", key, m.Provider, m.DisplayName, cost)
	}
	return nil
}
