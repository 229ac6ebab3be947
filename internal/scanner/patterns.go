package scanner

import (
	"regexp"

	"github.com/lawsphere/lexgate/internal/model"
)

// piiPattern is one named PII detector. Order is significant: pii_found
// entries and redaction placeholders follow table order.
type piiPattern struct {
	Name string
	Re   *regexp.Regexp
}

// piiPatterns covers Indian and international identifiers. Structured
// identifiers match case-sensitively: a PAN is uppercase by definition.
var piiPatterns = []piiPattern{
	{"aadhaar", regexp.MustCompile(`\b[2-9]\d{3}\s?\d{4}\s?\d{4}\b`)},
	{"pan", regexp.MustCompile(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`)},
	{"indian_phone", regexp.MustCompile(`\b(?:\+91[\-\s]?)?[6-9]\d{9}\b`)},
	{"indian_passport", regexp.MustCompile(`\b[A-Z][0-9]{7}\b`)},
	{"gstin", regexp.MustCompile(`\b[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9A-Z]Z[0-9A-Z]\b`)},
	{"ssn", regexp.MustCompile(`\b\d{3}[-\s]?\d{2}[-\s]?\d{4}\b`)},
	{"email", regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)},
	{"credit_card", regexp.MustCompile(`\b(?:\d{4}[-\s]?){3}\d{4}\b`)},
	{"ip_address", regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`)},
	{"person_name_context", regexp.MustCompile(`\b(?:Mr\.|Mrs\.|Ms\.|Dr\.|Shri|Smt\.|Adv\.)\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)},
}

// markerFamily is one keyword family with its level and routing impact.
// Keywords are matched as case-insensitive substrings of the full text.
// Adding a jurisdiction is a table change, not a code change.
type markerFamily struct {
	Name       string
	Level      model.SensitivityLevel
	Absolute   bool // level is set unconditionally, not raised-to
	ForceLocal bool
	Keywords   []string
}

// markerFamilies are evaluated in order; legal_markers entries follow
// table order.
var markerFamilies = []markerFamily{
	{
		Name:       "privileged",
		Level:      model.LevelSecret,
		Absolute:   true,
		ForceLocal: true,
		Keywords: []string{
			"attorney-client privilege",
			"attorney client privilege",
			"legal privilege",
			"privileged communication",
			"privileged and confidential",
			"work product doctrine",
			"litigation privilege",
		},
	},
	{
		Name:       "confidential",
		Level:      model.LevelConfidential,
		ForceLocal: true,
		Keywords: []string{
			"confidential",
			"strictly confidential",
			"private and confidential",
			"not for circulation",
			"internal use only",
			"do not distribute",
			"trade secret",
			"proprietary information",
		},
	},
	{
		Name:       "client_data",
		Level:      model.LevelConfidential,
		ForceLocal: true,
		Keywords: []string{
			"client name",
			"client details",
			"party details",
			"petitioner",
			"respondent",
			"plaintiff",
			"defendant",
			"complainant",
			"accused",
			"witness statement",
			"affidavit",
		},
	},
	{
		Name:       "financial",
		Level:      model.LevelConfidential,
		ForceLocal: true,
		Keywords: []string{
			"bank account",
			"account number",
			"settlement amount",
			"compensation",
			"damages claimed",
			"court fees",
			"stamp duty",
		},
	},
	{
		Name:  "document_type",
		Level: model.LevelInternal,
		// Document-type mentions are context, not content: no force_local.
		Keywords: []string{
			"vakalatnama",
			"power of attorney",
			"affidavit",
			"petition",
			"written statement",
			"rejoinder",
			"surrejoinder",
			"bail application",
			"anticipatory bail",
			"settlement deed",
			"memorandum of understanding",
			"non-disclosure agreement",
			"nda",
		},
	},
}

// caseIdentifierPatterns flag specific numbered case references. They force
// local routing but deliberately do not raise the sensitivity level: an
// identifier alone is not sensitive content, yet still demands caution.
var caseIdentifierPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)case\s*no\.?\s*:?\s*\d+`),
	regexp.MustCompile(`(?i)writ\s*petition\s*(?:no\.?)?\s*\d+`),
	regexp.MustCompile(`(?i)civil\s*suit\s*(?:no\.?)?\s*\d+`),
	regexp.MustCompile(`(?i)criminal\s*case\s*(?:no\.?)?\s*\d+`),
	regexp.MustCompile(`(?i)fir\s*no\.?\s*:?\s*\d+`),
	regexp.MustCompile(`(?i)cnr\s*(?:number|no\.?)?\s*:?\s*[A-Z]{4}\d+`),
	regexp.MustCompile(`(?i)diary\s*no\.?\s*:?\s*\d+`),
	regexp.MustCompile(`(?i)o\.?\s*a\.?\s*no\.?\s*\d+`),
	regexp.MustCompile(`(?i)c\.?\s*a\.?\s*no\.?\s*\d+`),
	regexp.MustCompile(`(?i)w\.?\s*p\.?\s*no\.?\s*\d+`),
}
