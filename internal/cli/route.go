package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lawsphere/lexgate/internal/router"
)

var (
	routeFile       string
	routeModel      string
	routeForceLocal bool
	routeTokens     int
	routeJSON       bool
)

func init() {
	rootCmd.AddCommand(routeCmd)
	routeCmd.Flags().StringVarP(&routeFile, "file", "f", "", "Attachment to route alongside the query text")
	routeCmd.Flags().StringVarP(&routeModel, "model", "m", "", "Explicit model preference (catalog key, or 'auto')")
	routeCmd.Flags().BoolVar(&routeForceLocal, "force-local", false, "Force on-premise processing")
	routeCmd.Flags().IntVar(&routeTokens, "tokens", 1000, "Estimated token count for cost calculation")
	routeCmd.Flags().BoolVar(&routeJSON, "json", false, "Output full RoutingResult as JSON")
}

var routeCmd = &cobra.Command{
	Use:   "route <text>",
	Short: "Decide where a request would run",
	Long:  "Scans the text, applies routing policy, and prints the selected model with\nthe full trust explanation. Dry-run: no audit entry is written.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoute,
}

func runRoute(cmd *cobra.Command, args []string) error {
	_, rt, err := loadRouter()
	if err != nil {
		return err
	}

	var fileName, fileContent string
	if routeFile != "" {
		content, err := readFileArg(routeFile)
		if err != nil {
			return err
		}
		fileName = filepath.Base(routeFile)
		fileContent = content
	}

	result := rt.Route(router.RouteRequest{
		Content:         args[0],
		FileAttached:    routeFile != "",
		FileName:        fileName,
		FileContent:     fileContent,
		ModelPreference: routeModel,
		ForceLocal:      routeForceLocal,
		EstimatedTokens: routeTokens,
	})

	if routeJSON {
		return printJSON(result)
	}

	fmt.Printf("%s  %s\n", result.TrustBadge, result.Decision)
	fmt.Printf("Model:        %s (%s)\n", result.SelectedModel.DisplayName, result.SelectedModel.Provider)
	fmt.Printf("Est. cost:    $%.6f (saved $%.6f vs cloud baseline)\n", result.EstimatedCost, result.CostSavedVsCloud)
	fmt.Printf("Audit ID:     %s\n", result.AuditID)
	fmt.Println(result.TrustMessage)
	for _, d := range result.TrustDetails {
		fmt.Printf("  %s\n", d)
	}
	return nil
}
