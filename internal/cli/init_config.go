package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lawsphere/lexgate/internal/config"
)

func init() {
	rootCmd.AddCommand(initConfigCmd)
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Generate default lexgate.yaml with comments",
	Long:  "Writes a commented lexgate.yaml in the current directory.\nEdit this file to customize routing policy and audit settings.",
	RunE:  runInitConfig,
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	path := "lexgate.yaml"
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("lexgate.yaml already exists in the current directory")
	}

	if err := os.WriteFile(path, []byte(config.DefaultYAML()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}
