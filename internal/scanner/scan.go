package scanner

import (
	"fmt"
	"strings"

	"github.com/lawsphere/lexgate/internal/model"
)

// maxMatchesPerKind caps how many redacted previews one PII kind contributes.
const maxMatchesPerKind = 3

// previewChars is how many raw characters of a match may appear in evidence.
const previewChars = 4

// Recommendation templates derived from force_local and sensitivity level.
const (
	recommendLocalOnly      = "LOCAL_ONLY: Sensitive content detected. Processing on-premise."
	recommendLocalPreferred = "LOCAL_PREFERRED: Some legal context detected. Local recommended."
	recommendCloudOK        = "CLOUD_OK: No sensitive content detected. Cloud processing allowed."
)

// Scan classifies content sensitivity and collects matched-pattern evidence.
// Pure and deterministic: no I/O, no hidden state, never fails. Malformed
// input yields a low-sensitivity result.
//
// INVARIANT: the returned level is the maximum implied by any matched rule;
// adding evidence to a text never lowers it.
func Scan(content string, fileAttached bool, fileName, fileContent string) model.ScanResult {
	detected := []string{}
	piiFound := []string{}
	markers := []string{}
	level := model.LevelPublic
	forceLocal := false

	fullText := content
	if fileContent != "" {
		fullText += " " + fileContent
	}
	lowerText := strings.ToLower(fullText)

	// Any attachment is confidential by policy, regardless of content.
	if fileAttached {
		level = model.LevelConfidential
		detected = append(detected, "document_attached")
		forceLocal = true
	}

	// PII detection. Previews are truncated and capped per kind.
	for _, p := range piiPatterns {
		matches := p.Re.FindAllString(fullText, -1)
		if len(matches) == 0 {
			continue
		}
		if len(matches) > maxMatchesPerKind {
			matches = matches[:maxMatchesPerKind]
		}
		for _, m := range matches {
			piiFound = append(piiFound, fmt.Sprintf("%s: %s***", p.Name, prefixChars(m, previewChars)))
		}
		level = model.MaxLevel(level, model.LevelConfidential)
		forceLocal = true
	}

	// Keyword families.
	for _, fam := range markerFamilies {
		for _, kw := range fam.Keywords {
			if !strings.Contains(lowerText, kw) {
				continue
			}
			markers = append(markers, fmt.Sprintf("%s: %s", fam.Name, kw))
			if fam.Absolute {
				level = fam.Level
			} else {
				level = model.MaxLevel(level, fam.Level)
			}
			if fam.ForceLocal {
				forceLocal = true
			}
		}
	}

	// Numbered case references force local without raising the level.
	for _, re := range caseIdentifierPatterns {
		if re.MatchString(fullText) {
			markers = append(markers, "case_identifier_detected")
			forceLocal = true
		}
	}

	total := len(piiFound) + len(markers) + len(detected)
	confidence := float64(total) * 0.2
	if fileAttached {
		confidence += 0.5
	}
	if confidence > 1.0 {
		confidence = 1.0
	}

	var recommendation string
	switch {
	case forceLocal:
		recommendation = recommendLocalOnly
	case level == model.LevelInternal:
		recommendation = recommendLocalPreferred
	default:
		recommendation = recommendCloudOK
	}

	return model.ScanResult{
		Level:            level,
		DetectedPatterns: detected,
		PIIFound:         piiFound,
		LegalMarkers:     markers,
		DocumentAttached: fileAttached,
		ConfidenceScore:  confidence,
		Recommendation:   recommendation,
		ForceLocal:       forceLocal,
	}
}

// prefixChars returns the first n characters of s, rune-safe.
func prefixChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
