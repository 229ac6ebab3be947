package router

import (
	"fmt"

	"github.com/lawsphere/lexgate/internal/model"
)

// usdToINR is the fixed conversion rate used in user-facing savings lines.
const usdToINR = 83

// complexityLabel maps a complexity tier to its UI label.
func complexityLabel(c model.Complexity) string {
	switch c {
	case model.Simple:
		return "⚡ Simple query"
	case model.Complex:
		return "🔬 Complex analysis"
	default:
		return "📝 Standard query"
	}
}

// trustNarrative builds the badge, message, and itemized evidence for a
// routing result. Deterministic over its inputs: the narrative is
// presentational and reproducible from the RoutingResult fields alone.
func trustNarrative(decision model.RoutingDecision, selected model.ModelConfig, scan model.ScanResult, complexity model.Complexity, isLocal bool, costSaved float64) (badge, message string, details []string) {
	// Badge reflects the model actually used, not what was allowed.
	if isLocal {
		badge = "🏠 LOCAL"
	} else {
		badge = "☁️ CLOUD"
	}

	label := complexityLabel(complexity)

	switch decision {
	case model.LocalRequired:
		message = "Your data is being processed securely on-premise. No information leaves your server."
		details = []string{
			"✓ Document/query processed locally",
			"✓ No external API calls",
			"✓ No data transmitted to cloud",
			"✓ Full privacy maintained",
			fmt.Sprintf("✓ Model: %s", selected.DisplayName),
			fmt.Sprintf("✓ Complexity: %s", label),
		}
		if len(scan.PIIFound) > 0 {
			details = append(details, fmt.Sprintf("✓ PII detected and protected: %d items", len(scan.PIIFound)))
		}
		if len(scan.LegalMarkers) > 0 {
			details = append(details, fmt.Sprintf("✓ Legal sensitivity detected: %d markers", len(scan.LegalMarkers)))
		}

	case model.LocalPreferred:
		message = "Processing locally for cost optimization. Your data stays on-premise."
		details = []string{
			"✓ Local processing for efficiency",
			"✓ Cost-optimized routing",
			fmt.Sprintf("✓ Model: %s", selected.DisplayName),
			fmt.Sprintf("✓ Complexity: %s", label),
			fmt.Sprintf("✓ Estimated savings: ₹%.2f", costSaved*usdToINR),
		}

	default: // CloudAllowed
		if isLocal {
			message = "Local-first mode: Processing locally for privacy and cost savings."
			details = []string{
				"✓ Local-first preference active",
				"✓ No data sent to cloud",
				fmt.Sprintf("✓ Model: %s", selected.DisplayName),
				fmt.Sprintf("✓ Complexity: %s", label),
				fmt.Sprintf("✓ Savings vs cloud: ₹%.2f", costSaved*usdToINR),
			}
		} else {
			message = "No sensitive content detected. Using cloud for faster response."
			details = []string{
				"ℹ️ Generic query - cloud processing used",
				"ℹ️ No documents or PII detected",
				fmt.Sprintf("ℹ️ Model: %s", selected.DisplayName),
				fmt.Sprintf("ℹ️ Complexity: %s", label),
				"ℹ️ You can switch to local anytime",
			}
		}
	}

	return badge, message, details
}
