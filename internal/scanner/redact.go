package scanner

import (
	"fmt"
	"strings"
)

// Redact replaces every PII match in content with a [REDACTED-<KIND>]
// placeholder and returns descriptions of what was removed. Used for
// safe-to-log previews only; routing decisions never consume redacted text.
func Redact(content string) (string, []string) {
	redacted := content
	redactions := []string{}

	for _, p := range piiPatterns {
		placeholder := fmt.Sprintf("[REDACTED-%s]", strings.ToUpper(p.Name))
		for _, m := range p.Re.FindAllString(content, -1) {
			redacted = strings.ReplaceAll(redacted, m, placeholder)
			redactions = append(redactions, fmt.Sprintf("%s: %s***", p.Name, prefixChars(m, previewChars)))
		}
	}

	return redacted, redactions
}
