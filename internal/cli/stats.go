package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lawsphere/lexgate/internal/audit"
	"github.com/lawsphere/lexgate/internal/config"
)

var (
	statsDays int
	statsJSON bool
)

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().IntVar(&statsDays, "days", 7, "How many days back to aggregate")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output the full report as JSON")
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize recent routing activity from the audit logs",
	Long:  "Aggregates the persisted audit files for the last N days. Live in-process\ncounters are served by the running service at /v1/trust/stats; this command\nreads only what was written to disk.",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if statsDays < 1 {
		return fmt.Errorf("--days must be at least 1")
	}

	auditor, err := audit.New(audit.Config{
		Dir:           cfg.Audit.Dir,
		RetentionDays: cfg.Audit.RetentionDays,
		FileLogging:   false, // read-only: do not create the log directory
	}, nil)
	if err != nil {
		return err
	}

	end := time.Now().UTC()
	report, err := auditor.ComplianceReport(end.AddDate(0, 0, -(statsDays-1)), end)
	if err != nil {
		return err
	}

	if statsJSON {
		return printJSON(report)
	}

	fmt.Printf("Period:          %s to %s (%d/%d days with data)\n",
		report.ReportPeriod.Start, report.ReportPeriod.End,
		report.ReportPeriod.DaysWithData, report.ReportPeriod.DaysRequested)
	fmt.Printf("Requests:        %d (%.1f%% local)\n",
		report.Summary.TotalRequests, report.Summary.LocalPercentage)
	fmt.Printf("Documents:       %d processed\n", report.Summary.DocumentsProcessed)
	fmt.Printf("PII protected:   %d instances\n", report.Summary.PIIInstancesProtected)
	fmt.Printf("Cloud exposure:  %d sensitive entries\n",
		report.PrivacyCompliance.SensitiveDataCloudExposure)
	fmt.Printf("Est. cost:       $%.4f (saved ₹%.2f vs cloud baseline)\n",
		report.CostAnalysis.TotalCostUSD, report.CostAnalysis.TotalSavedINR)
	return nil
}
