package model

import "time"

// SensitivityLevel classifies content following legal industry data
// classification standards.
type SensitivityLevel string

const (
	LevelPublic       SensitivityLevel = "public"       // cloud APIs allowed
	LevelInternal     SensitivityLevel = "internal"     // prefer local, cloud OK for generic
	LevelConfidential SensitivityLevel = "confidential" // local only, client data
	LevelSecret       SensitivityLevel = "secret"       // local only, privileged communications
)

// levelRank maps sensitivity to a comparable integer for monotonic escalation.
var levelRank = map[SensitivityLevel]int{
	LevelPublic:       0,
	LevelInternal:     1,
	LevelConfidential: 2,
	LevelSecret:       3,
}

// Rank returns the ordering index of the level. Unknown levels rank as public.
func (l SensitivityLevel) Rank() int {
	return levelRank[l]
}

// MaxLevel returns the higher of two sensitivity levels.
//
// INVARIANT: raising with MaxLevel can only increase a level, never decrease.
func MaxLevel(a, b SensitivityLevel) SensitivityLevel {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// ModelProvider classifies where a model runs.
type ModelProvider string

const (
	ProviderLocal      ModelProvider = "local"       // on-premise, air-gapped
	ProviderCloud      ModelProvider = "cloud"       // external API
	ProviderOpenSource ModelProvider = "open_source" // self-hostable third-party weights
)

// ParseProvider maps a string to a ModelProvider. Unknown strings are rejected.
func ParseProvider(s string) (ModelProvider, bool) {
	switch ModelProvider(s) {
	case ProviderLocal, ProviderCloud, ProviderOpenSource:
		return ModelProvider(s), true
	default:
		return "", false
	}
}

// RoutingDecision is the routing outcome category.
type RoutingDecision string

const (
	LocalRequired  RoutingDecision = "local_required"  // sensitive, must be local
	LocalPreferred RoutingDecision = "local_preferred" // cost/privacy optimization
	CloudAllowed   RoutingDecision = "cloud_allowed"   // non-sensitive
)

// Complexity is the estimated effort tier of a query.
type Complexity string

const (
	Simple   Complexity = "simple"
	Moderate Complexity = "moderate"
	Complex  Complexity = "complex"
)

// ModelConfig describes one invocable model in the catalog.
type ModelConfig struct {
	ModelID         string        `json:"model_id" yaml:"model_id"`
	DisplayName     string        `json:"display_name" yaml:"display_name"`
	Provider        ModelProvider `json:"provider" yaml:"provider"`
	APIBase         string        `json:"api_base,omitempty" yaml:"api_base,omitempty"`
	APIKeyEnv       string        `json:"api_key_env,omitempty" yaml:"api_key_env,omitempty"`
	CostPer1KTokens float64       `json:"cost_per_1k_tokens" yaml:"cost_per_1k_tokens"`
	LatencyMSAvg    int           `json:"latency_ms_avg" yaml:"latency_ms_avg"`
	ContextWindow   int           `json:"context_window" yaml:"context_window"`
	Capabilities    []string      `json:"capabilities" yaml:"capabilities"`
	Priority        int           `json:"priority" yaml:"priority"` // lower = preferred
}

// IsLocal reports whether the model runs on-premise.
func (m ModelConfig) IsLocal() bool {
	return m.Provider == ProviderLocal
}

// ScanResult is the outcome of a privacy scan.
type ScanResult struct {
	Level            SensitivityLevel `json:"sensitivity_level"`
	DetectedPatterns []string         `json:"detected_patterns"`
	PIIFound         []string         `json:"pii_found"`
	LegalMarkers     []string         `json:"legal_markers"`
	DocumentAttached bool             `json:"document_attached"`
	ConfidenceScore  float64          `json:"confidence_score"`
	Recommendation   string           `json:"recommendation"`
	ForceLocal       bool             `json:"force_local"`
}

// RoutingResult is a complete routing decision with transparency info.
type RoutingResult struct {
	Decision      RoutingDecision `json:"decision"`
	SelectedModel ModelConfig     `json:"selected_model"`
	PrivacyScan   ScanResult      `json:"privacy_scan"`

	// Trust indicators for the UI.
	IsLocal      bool     `json:"is_local"`
	TrustBadge   string   `json:"trust_badge"`
	TrustMessage string   `json:"trust_message"`
	TrustDetails []string `json:"trust_details"`

	EstimatedCost    float64 `json:"estimated_cost"`
	CostSavedVsCloud float64 `json:"cost_saved_vs_cloud"`

	RoutingTimeMS float64   `json:"routing_time_ms"`
	Timestamp     time.Time `json:"timestamp"`

	AuditID       string `json:"audit_id"`
	CanLogContent bool   `json:"can_log_content"` // false if too sensitive
}
