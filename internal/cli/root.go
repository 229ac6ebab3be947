package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "lexgate",
	Short: "Privacy-aware trust routing for legal AI workloads",
	Long:  "Decides whether a request may go to a cloud language model or must stay on-premise, and records every decision for compliance audit. Documents and PII never leave the local environment.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to lexgate.yaml (defaults apply when omitted)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
