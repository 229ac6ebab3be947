package audit

import "fmt"

// Stats is a point-in-time snapshot of the in-memory counters. Best-effort:
// a process restart resets them; lifetime totals come from ComplianceReport.
type Stats struct {
	TotalRequests             int64   `json:"total_requests"`
	LocalRequests             int64   `json:"local_requests"`
	CloudRequests             int64   `json:"cloud_requests"`
	DocumentsProcessedLocally int64   `json:"documents_processed_locally"`
	PIIProtectedCount         int64   `json:"pii_protected_count"`
	TotalCostUSD              float64 `json:"total_cost_usd"`
	TotalSavedUSD             float64 `json:"total_saved_usd"`

	LocalPercentage      float64 `json:"local_percentage"`
	AvgCostPerRequestUSD float64 `json:"avg_cost_per_request_usd"`
	TotalSavedINR        float64 `json:"total_saved_inr"`
}

// usdToINR is the fixed conversion rate for user-facing rupee figures.
const usdToINR = 83

// Stats returns the current aggregate snapshot.
func (l *Logger) Stats() Stats {
	l.mu.Lock()
	c := l.stats
	l.mu.Unlock()

	s := Stats{
		TotalRequests:             c.TotalRequests,
		LocalRequests:             c.LocalRequests,
		CloudRequests:             c.CloudRequests,
		DocumentsProcessedLocally: c.DocumentsProcessedLocally,
		PIIProtectedCount:         c.PIIProtectedCount,
		TotalCostUSD:              c.TotalCostUSD,
		TotalSavedUSD:             c.TotalSavedUSD,
		TotalSavedINR:             c.TotalSavedUSD * usdToINR,
	}
	if c.TotalRequests > 0 {
		s.LocalPercentage = float64(c.LocalRequests) / float64(c.TotalRequests) * 100
		s.AvgCostPerRequestUSD = c.TotalCostUSD / float64(c.TotalRequests)
	}
	return s
}

// DashboardData is the UI trust dashboard payload.
type DashboardData struct {
	TrustScore     float64        `json:"trust_score"`
	PrivacyMetrics PrivacyMetrics `json:"privacy_metrics"`
	CostMetrics    CostMetrics    `json:"cost_metrics"`
	Guarantees     []string       `json:"guarantees"`
}

// PrivacyMetrics shows users their data stayed on-premise.
type PrivacyMetrics struct {
	DocumentsProtected    int64  `json:"documents_protected"`
	PIIInstancesProtected int64  `json:"pii_instances_protected"`
	LocalProcessingRate   string `json:"local_processing_rate"`
}

// CostMetrics shows cumulative savings in rupees.
type CostMetrics struct {
	TotalSavedINR   string `json:"total_saved_inr"`
	AvgCostPerQuery string `json:"avg_cost_per_query"`
}

// Dashboard returns trust dashboard data derived from the stats snapshot.
func (l *Logger) Dashboard() DashboardData {
	s := l.Stats()

	score := s.LocalPercentage + 10
	if score > 100 {
		score = 100
	}

	return DashboardData{
		TrustScore: score,
		PrivacyMetrics: PrivacyMetrics{
			DocumentsProtected:    s.DocumentsProcessedLocally,
			PIIInstancesProtected: s.PIIProtectedCount,
			LocalProcessingRate:   fmt.Sprintf("%.1f%%", s.LocalPercentage),
		},
		CostMetrics: CostMetrics{
			TotalSavedINR:   fmt.Sprintf("₹%.2f", s.TotalSavedINR),
			AvgCostPerQuery: fmt.Sprintf("₹%.4f", s.AvgCostPerRequestUSD*usdToINR),
		},
		Guarantees: []string{
			"All uploaded documents processed on-premise",
			"Personal information never sent to external services",
			"Privileged communications fully protected",
			"Complete audit trail available",
		},
	}
}
