package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lawsphere/lexgate/internal/scanner"
)

func init() {
	rootCmd.AddCommand(redactCmd)
}

var redactCmd = &cobra.Command{
	Use:   "redact <text>",
	Short: "Produce a safe-to-log preview with PII replaced",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		redacted, redactions := scanner.Redact(args[0])
		fmt.Println(redacted)
		for _, r := range redactions {
			fmt.Printf("  redacted %s\n", r)
		}
		return nil
	},
}
