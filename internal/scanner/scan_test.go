package scanner

import (
	"reflect"
	"strings"
	"testing"

	"github.com/lawsphere/lexgate/internal/model"
)

func TestScanPlainQuestionIsPublic(t *testing.T) {
	result := Scan("What is the weather today?", false, "", "")
	if result.Level != model.LevelPublic {
		t.Errorf("expected public, got %v", result.Level)
	}
	if result.ForceLocal {
		t.Error("expected force_local=false for plain question")
	}
	if len(result.PIIFound) != 0 {
		t.Errorf("expected no PII, got %v", result.PIIFound)
	}
}

func TestScanEmptyInput(t *testing.T) {
	result := Scan("", false, "", "")
	if result.Level != model.LevelPublic {
		t.Errorf("expected public for empty input, got %v", result.Level)
	}
	if result.ForceLocal {
		t.Error("expected force_local=false for empty input")
	}
	if result.ConfidenceScore != 0 {
		t.Errorf("expected zero confidence, got %v", result.ConfidenceScore)
	}
}

func TestScanAadhaarDetection(t *testing.T) {
	result := Scan("My Aadhaar is 234512345678", false, "", "")
	if !result.ForceLocal {
		t.Error("expected force_local=true for Aadhaar number")
	}
	if result.Level.Rank() < model.LevelConfidential.Rank() {
		t.Errorf("expected at least confidential, got %v", result.Level)
	}
	if len(result.PIIFound) != 1 {
		t.Fatalf("expected one PII entry, got %v", result.PIIFound)
	}
	if !strings.HasPrefix(result.PIIFound[0], "aadhaar: 2345") {
		t.Errorf("unexpected PII entry %q", result.PIIFound[0])
	}
}

func TestScanAttachmentForcesLocal(t *testing.T) {
	result := Scan("", true, "contract.pdf", "")
	if !result.ForceLocal {
		t.Error("expected force_local=true for attachment")
	}
	if result.Level.Rank() < model.LevelConfidential.Rank() {
		t.Errorf("expected at least confidential, got %v", result.Level)
	}
	found := false
	for _, p := range result.DetectedPatterns {
		if p == "document_attached" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected document_attached pattern, got %v", result.DetectedPatterns)
	}
}

func TestScanPrivilegedMarkerIsSecret(t *testing.T) {
	result := Scan("This is privileged and confidential attorney-client privilege material", false, "", "")
	if result.Level != model.LevelSecret {
		t.Errorf("expected secret, got %v", result.Level)
	}
	if !result.ForceLocal {
		t.Error("expected force_local=true for privileged marker")
	}
}

func TestScanPANShapedStringCounts(t *testing.T) {
	// The scanner does not validate checksums: shape is enough.
	result := Scan("random ref ABCDE1234F in text", false, "", "")
	if len(result.PIIFound) == 0 {
		t.Fatal("expected PAN-shaped string to count as PII")
	}
	if !strings.HasPrefix(result.PIIFound[0], "pan: ABCD") {
		t.Errorf("unexpected PII entry %q", result.PIIFound[0])
	}
	if !result.ForceLocal {
		t.Error("expected force_local=true")
	}
}

func TestScanDocumentTypeRaisesToInternalOnly(t *testing.T) {
	result := Scan("Please prepare a vakalatnama for the hearing", false, "", "")
	if result.Level != model.LevelInternal {
		t.Errorf("expected internal, got %v", result.Level)
	}
	if result.ForceLocal {
		t.Error("document type mentions must not force local")
	}
	if result.Recommendation != recommendLocalPreferred {
		t.Errorf("unexpected recommendation %q", result.Recommendation)
	}
}

func TestScanCaseIdentifierForcesLocalWithoutRaisingLevel(t *testing.T) {
	result := Scan("Refer to Case No. 1234 for context", false, "", "")
	if !result.ForceLocal {
		t.Error("expected force_local=true for case identifier")
	}
	if result.Level != model.LevelPublic {
		t.Errorf("case identifier must not raise level, got %v", result.Level)
	}
	found := false
	for _, m := range result.LegalMarkers {
		if m == "case_identifier_detected" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected case_identifier_detected marker, got %v", result.LegalMarkers)
	}
}

func TestScanOverlappingEvidenceAccumulates(t *testing.T) {
	result := Scan("confidential: Aadhaar 234512345678 for the petitioner", false, "", "")
	if len(result.PIIFound) == 0 {
		t.Error("expected PII evidence")
	}
	hasConfidential, hasClientData := false, false
	for _, m := range result.LegalMarkers {
		if strings.HasPrefix(m, "confidential:") {
			hasConfidential = true
		}
		if strings.HasPrefix(m, "client_data:") {
			hasClientData = true
		}
	}
	if !hasConfidential || !hasClientData {
		t.Errorf("expected confidential and client_data markers, got %v", result.LegalMarkers)
	}
	if result.Level != model.LevelConfidential {
		t.Errorf("expected confidential, got %v", result.Level)
	}
}

func TestScanPerKindCap(t *testing.T) {
	text := "a@x.com b@x.com c@x.com d@x.com e@x.com"
	result := Scan(text, false, "", "")
	count := 0
	for _, p := range result.PIIFound {
		if strings.HasPrefix(p, "email:") {
			count++
		}
	}
	if count != maxMatchesPerKind {
		t.Errorf("expected %d email entries, got %d", maxMatchesPerKind, count)
	}
}

func TestScanFileContentIsScanned(t *testing.T) {
	result := Scan("please summarize", true, "notes.txt", "witness statement of the accused")
	hasWitness := false
	for _, m := range result.LegalMarkers {
		if m == "client_data: witness statement" {
			hasWitness = true
		}
	}
	if !hasWitness {
		t.Errorf("expected marker from file content, got %v", result.LegalMarkers)
	}
}

func TestScanConfidenceScore(t *testing.T) {
	// One pattern (document_attached) plus the attachment bonus.
	result := Scan("", true, "a.pdf", "")
	if result.ConfidenceScore != 0.7 {
		t.Errorf("expected confidence 0.7, got %v", result.ConfidenceScore)
	}

	// Many markers saturate at 1.0.
	text := strings.Repeat("petitioner respondent plaintiff defendant accused ", 2)
	result = Scan(text, true, "a.pdf", "")
	if result.ConfidenceScore != 1.0 {
		t.Errorf("expected confidence capped at 1.0, got %v", result.ConfidenceScore)
	}
}

func TestForceLocalSoundness(t *testing.T) {
	// Every trigger class must set force_local.
	cases := []struct {
		name         string
		content      string
		fileAttached bool
	}{
		{"attachment", "harmless", true},
		{"pii", "call me at 9876543210", false},
		{"privileged", "covered by litigation privilege", false},
		{"confidential", "this is a trade secret", false},
		{"client_data", "the respondent filed late", false},
		{"financial", "the settlement amount is pending", false},
		{"case_identifier", "see W.P. No. 882", false},
	}
	for _, tc := range cases {
		result := Scan(tc.content, tc.fileAttached, "", "")
		if !result.ForceLocal {
			t.Errorf("%s: expected force_local=true", tc.name)
		}
	}
}

func TestMonotonicSensitivity(t *testing.T) {
	// Adding matching evidence never lowers the computed level.
	base := Scan("attorney client privilege applies", false, "", "")
	if base.Level != model.LevelSecret {
		t.Fatalf("expected secret, got %v", base.Level)
	}

	more := Scan("attorney client privilege applies to this affidavit about a bank account", false, "", "")
	if more.Level.Rank() < base.Level.Rank() {
		t.Errorf("level decreased from %v to %v after adding evidence", base.Level, more.Level)
	}
}

func TestPIIRedactionCap(t *testing.T) {
	result := Scan("Aadhaar 234512345678 and PAN ABCDE1234F and mail someone@example.com", false, "", "")
	if len(result.PIIFound) == 0 {
		t.Fatal("expected PII entries")
	}
	for _, entry := range result.PIIFound {
		_, raw, ok := strings.Cut(entry, ": ")
		if !ok {
			t.Fatalf("malformed PII entry %q", entry)
		}
		raw = strings.TrimSuffix(raw, "***")
		if len([]rune(raw)) > previewChars {
			t.Errorf("entry %q exposes more than %d raw characters", entry, previewChars)
		}
	}
}

func TestScanIsDeterministic(t *testing.T) {
	text := "strictly confidential affidavit, Aadhaar 234512345678, Case No. 42"
	a := Scan(text, true, "file.pdf", "bank account details")
	b := Scan(text, true, "file.pdf", "bank account details")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical inputs produced different results:\n%+v\n%+v", a, b)
	}
}
