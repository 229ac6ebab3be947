package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Period describes the requested report range and actual coverage.
// DaysWithData < DaysRequested makes log gaps visible to the reader.
type Period struct {
	Start         string `json:"start"`
	End           string `json:"end"`
	DaysRequested int    `json:"days_requested"`
	DaysWithData  int    `json:"days_with_data"`
}

// ReportSummary holds the aggregate request counts for the range.
type ReportSummary struct {
	TotalRequests         int     `json:"total_requests"`
	ProcessedLocally      int     `json:"processed_locally"`
	ProcessedCloud        int     `json:"processed_cloud"`
	LocalPercentage       float64 `json:"local_percentage"`
	DocumentsProcessed    int     `json:"documents_processed"`
	PIIInstancesProtected int     `json:"pii_instances_protected"`
}

// PrivacyCompliance holds the compliance invariant checks.
//
// SensitiveDataCloudExposure counts entries routed to cloud that carry
// sensitive-content evidence. The router prevents this by construction, so
// any nonzero count is a violation worth surfacing.
type PrivacyCompliance struct {
	AllDocumentsLocal          bool `json:"all_documents_local"`
	AllPIILocal                bool `json:"all_pii_local"`
	SensitiveDataCloudExposure int  `json:"sensitive_data_cloud_exposure"`
}

// CostAnalysis totals estimated spend and savings for the range.
type CostAnalysis struct {
	TotalCostUSD  float64 `json:"total_cost_usd"`
	TotalSavedUSD float64 `json:"total_saved_usd"`
	TotalSavedINR float64 `json:"total_saved_inr"`
}

// Report is a compliance report over persisted entries. Computed entirely
// from the log files; original content is never touched.
type Report struct {
	ReportPeriod            Period            `json:"report_period"`
	Summary                 ReportSummary     `json:"summary"`
	PrivacyCompliance       PrivacyCompliance `json:"privacy_compliance"`
	CostAnalysis            CostAnalysis      `json:"cost_analysis"`
	ModelsUsed              map[string]int    `json:"models_used"`
	SensitivityDistribution map[string]int    `json:"sensitivity_distribution"`
	GeneratedAt             string            `json:"generated_at"`
}

// ComplianceReport re-reads persisted entries across the day range and
// aggregates them. Missing day files are skipped; the report reflects only
// the days for which data exists.
func (l *Logger) ComplianceReport(start, end time.Time) (*Report, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("audit: report range end %s before start %s",
			end.Format(dayFormat), start.Format(dayFormat))
	}

	report := &Report{
		ReportPeriod: Period{
			Start: start.UTC().Format(dayFormat),
			End:   end.UTC().Format(dayFormat),
		},
		ModelsUsed:              map[string]int{},
		SensitivityDistribution: map[string]int{},
		GeneratedAt:             time.Now().UTC().Format(TimestampFormat),
	}

	allDocsLocal := true
	allPIILocal := true

	day := start.UTC().Truncate(24 * time.Hour)
	endDay := end.UTC().Truncate(24 * time.Hour)
	for !day.After(endDay) {
		report.ReportPeriod.DaysRequested++

		entries, err := readDayFile(l.dayPath(day))
		if err != nil {
			return nil, err
		}
		day = day.AddDate(0, 0, 1)
		if entries == nil {
			continue
		}
		report.ReportPeriod.DaysWithData++

		for _, e := range entries {
			report.Summary.TotalRequests++
			if e.IsLocal {
				report.Summary.ProcessedLocally++
			} else {
				report.Summary.ProcessedCloud++
			}
			if e.DocumentAttached {
				report.Summary.DocumentsProcessed++
				if !e.IsLocal {
					allDocsLocal = false
				}
			}
			if e.PIIDetectedCount > 0 && !e.IsLocal {
				allPIILocal = false
			}
			report.Summary.PIIInstancesProtected += e.PIIDetectedCount

			if !e.IsLocal && (e.DocumentAttached || e.PIIDetectedCount > 0 ||
				e.SensitivityLevel == "confidential" || e.SensitivityLevel == "secret") {
				report.PrivacyCompliance.SensitiveDataCloudExposure++
			}

			report.CostAnalysis.TotalCostUSD += e.EstimatedCostUSD
			report.CostAnalysis.TotalSavedUSD += e.CostSavedUSD

			report.ModelsUsed[e.ModelUsed]++
			report.SensitivityDistribution[e.SensitivityLevel]++
		}
	}

	if report.Summary.TotalRequests > 0 {
		report.Summary.LocalPercentage =
			float64(report.Summary.ProcessedLocally) / float64(report.Summary.TotalRequests) * 100
	}
	report.PrivacyCompliance.AllDocumentsLocal = allDocsLocal
	report.PrivacyCompliance.AllPIILocal = allPIILocal
	report.CostAnalysis.TotalSavedINR = report.CostAnalysis.TotalSavedUSD * usdToINR

	return report, nil
}

// readDayFile parses one day-partition. A missing file returns (nil, nil);
// malformed lines are skipped.
func readDayFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("audit: open day file: %w", err)
	}
	defer f.Close()

	entries := []Entry{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("audit: scan day file: %w", err)
	}
	return entries, nil
}
