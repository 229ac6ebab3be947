package audit

import (
	"crypto/sha256"
	"encoding/hex"
)

// Entry is one line in the day-partitioned JSONL audit log. All fields are
// scalars (no maps) to guarantee deterministic json.Marshal field order.
// Content is recorded only as a one-way hash, never as plaintext.
type Entry struct {
	AuditID   string `json:"audit_id"`
	Timestamp string `json:"timestamp"`

	// Routing.
	RoutingDecision string `json:"routing_decision"`
	ModelUsed       string `json:"model_used"`
	ModelProvider   string `json:"model_provider"`
	IsLocal         bool   `json:"is_local"`

	// Privacy.
	SensitivityLevel    string `json:"sensitivity_level"`
	PIIDetectedCount    int    `json:"pii_detected_count"`
	LegalMarkersCount   int    `json:"legal_markers_count"`
	DocumentAttached    bool   `json:"document_attached"`
	ForceLocalTriggered bool   `json:"force_local_triggered"`

	// Cost.
	EstimatedCostUSD float64 `json:"estimated_cost_usd"`
	CostSavedUSD     float64 `json:"cost_saved_usd"`

	RoutingTimeMS float64 `json:"routing_time_ms"`

	// ContentHash verifies which request an entry belongs to without
	// storing the request.
	ContentHash string `json:"content_hash"`

	SessionID  string `json:"session_id,omitempty"`
	UserIDHash string `json:"user_id_hash,omitempty"`
}

// hashDigestLen is the hex length of stored content and user hashes.
const hashDigestLen = 16

// HashContent returns a truncated SHA-256 hex digest of text.
func HashContent(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])[:hashDigestLen]
}
