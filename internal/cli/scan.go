package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lawsphere/lexgate/internal/scanner"
)

var (
	scanFile string
	scanJSON bool
)

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVarP(&scanFile, "file", "f", "", "Attachment to scan alongside the query text")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Output full ScanResult as JSON")
}

var scanCmd = &cobra.Command{
	Use:   "scan <text>",
	Short: "Classify content sensitivity without routing",
	Long:  "Runs the privacy scanner over the given text (plus an optional attachment)\nand reports the sensitivity level, matched patterns, and routing recommendation.",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	var fileName, fileContent string
	if scanFile != "" {
		content, err := readFileArg(scanFile)
		if err != nil {
			return err
		}
		fileName = filepath.Base(scanFile)
		fileContent = content
	}

	result := scanner.Scan(args[0], scanFile != "", fileName, fileContent)

	if scanJSON {
		return printJSON(result)
	}

	fmt.Printf("Sensitivity:  %s\n", result.Level)
	fmt.Printf("Force local:  %v\n", result.ForceLocal)
	fmt.Printf("Confidence:   %.2f\n", result.ConfidenceScore)
	for _, p := range result.DetectedPatterns {
		fmt.Printf("  pattern: %s\n", p)
	}
	for _, p := range result.PIIFound {
		fmt.Printf("  pii:     %s\n", p)
	}
	for _, m := range result.LegalMarkers {
		fmt.Printf("  marker:  %s\n", m)
	}
	fmt.Println(result.Recommendation)
	return nil
}
