package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lawsphere/lexgate/internal/catalog"
	"github.com/lawsphere/lexgate/internal/model"
	"github.com/lawsphere/lexgate/internal/router"
)

func newTestLogger(t *testing.T) *Logger {
	t.Helper()
	l, err := New(Config{Dir: t.TempDir(), RetentionDays: 365, FileLogging: true}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l
}

func makeResult(auditID string, isLocal bool, piiCount int, doc bool, level model.SensitivityLevel, cost, saved float64) model.RoutingResult {
	pii := make([]string, piiCount)
	for i := range pii {
		pii[i] = fmt.Sprintf("aadhaar: %d***", i)
	}
	decision := model.CloudAllowed
	provider := model.ProviderCloud
	if isLocal {
		decision = model.LocalRequired
		provider = model.ProviderLocal
	}
	return model.RoutingResult{
		Decision:      decision,
		SelectedModel: model.ModelConfig{ModelID: "m1", Provider: provider},
		PrivacyScan: model.ScanResult{
			Level:            level,
			PIIFound:         pii,
			DocumentAttached: doc,
			ForceLocal:       isLocal,
		},
		IsLocal:          isLocal,
		EstimatedCost:    cost,
		CostSavedVsCloud: saved,
		Timestamp:        time.Now().UTC(),
		AuditID:          auditID,
	}
}

func readTodayLines(t *testing.T, l *Logger) []string {
	t.Helper()
	data, err := os.ReadFile(l.dayPath(time.Now().UTC()))
	if err != nil {
		t.Fatalf("read day file: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestLogPersistsHashNotContent(t *testing.T) {
	l := newTestLogger(t)
	content := "privileged settlement discussion with XKCD-MARKER-9912"

	entry := l.Log(makeResult("LR-1", true, 1, false, model.LevelSecret, 0, 0.004), content, "sess-1", "user-7")

	if len(entry.ContentHash) != hashDigestLen {
		t.Errorf("hash length %d, want %d", len(entry.ContentHash), hashDigestLen)
	}
	if entry.UserIDHash == "user-7" || entry.UserIDHash == "" {
		t.Errorf("user id must be stored hashed, got %q", entry.UserIDHash)
	}

	data, err := os.ReadFile(l.dayPath(time.Now().UTC()))
	if err != nil {
		t.Fatalf("read day file: %v", err)
	}
	if strings.Contains(string(data), "XKCD-MARKER-9912") {
		t.Error("raw content leaked into the audit file")
	}
	if strings.Contains(string(data), "user-7") {
		t.Error("raw user id leaked into the audit file")
	}
	if !strings.Contains(string(data), entry.ContentHash) {
		t.Error("content hash missing from the audit file")
	}
}

func TestLogEntryRoundTrips(t *testing.T) {
	l := newTestLogger(t)
	l.Log(makeResult("LR-rt", false, 0, false, model.LevelPublic, 0.005, 0), "plain question", "", "")

	lines := readTodayLines(t, l)
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	var e Entry
	if err := json.Unmarshal([]byte(lines[0]), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.AuditID != "LR-rt" || e.IsLocal || e.ModelProvider != "cloud" {
		t.Errorf("unexpected entry %+v", e)
	}
	if e.SessionID != "" || e.UserIDHash != "" {
		t.Errorf("empty ids must be omitted, got %+v", e)
	}
	if _, err := time.Parse(TimestampFormat, e.Timestamp); err != nil {
		t.Errorf("bad timestamp %q: %v", e.Timestamp, err)
	}
}

func TestStatsAggregation(t *testing.T) {
	l := newTestLogger(t)
	l.Log(makeResult("a", true, 2, true, model.LevelConfidential, 0, 0.004), "one", "", "")
	l.Log(makeResult("b", true, 0, false, model.LevelPublic, 0, 0.001), "two", "", "")
	l.Log(makeResult("c", false, 0, false, model.LevelPublic, 0.005, 0), "three", "", "")

	s := l.Stats()
	if s.TotalRequests != 3 || s.LocalRequests != 2 || s.CloudRequests != 1 {
		t.Errorf("unexpected counts %+v", s)
	}
	if s.DocumentsProcessedLocally != 1 || s.PIIProtectedCount != 2 {
		t.Errorf("unexpected privacy counters %+v", s)
	}
	if want := 2.0 / 3 * 100; s.LocalPercentage < want-0.01 || s.LocalPercentage > want+0.01 {
		t.Errorf("local percentage %v, want about %v", s.LocalPercentage, want)
	}
	if s.TotalSavedINR != s.TotalSavedUSD*83 {
		t.Errorf("INR conversion mismatch: %v vs %v", s.TotalSavedINR, s.TotalSavedUSD*83)
	}
}

func TestStatsEmpty(t *testing.T) {
	l := newTestLogger(t)
	s := l.Stats()
	if s.LocalPercentage != 0 || s.AvgCostPerRequestUSD != 0 {
		t.Errorf("zero-request stats must not divide, got %+v", s)
	}
}

func TestDashboardTrustScoreCap(t *testing.T) {
	l := newTestLogger(t)
	l.Log(makeResult("a", true, 0, false, model.LevelPublic, 0, 0), "x", "", "")

	d := l.Dashboard()
	if d.TrustScore != 100 {
		t.Errorf("all-local traffic should cap the score at 100, got %v", d.TrustScore)
	}
	if len(d.Guarantees) != 4 {
		t.Errorf("expected 4 guarantees, got %d", len(d.Guarantees))
	}
	if d.PrivacyMetrics.LocalProcessingRate != "100.0%" {
		t.Errorf("unexpected rate %q", d.PrivacyMetrics.LocalProcessingRate)
	}
	if !strings.HasPrefix(d.CostMetrics.TotalSavedINR, "₹") {
		t.Errorf("unexpected savings format %q", d.CostMetrics.TotalSavedINR)
	}
}

func TestLogSurvivesAppendFailure(t *testing.T) {
	l := newTestLogger(t)
	// A directory squatting on the day path makes the open fail.
	if err := os.Mkdir(l.dayPath(time.Now().UTC()), 0o700); err != nil {
		t.Fatal(err)
	}

	l.Log(makeResult("a", true, 0, false, model.LevelPublic, 0, 0), "x", "", "")
	if got := l.Stats().TotalRequests; got != 1 {
		t.Errorf("counters must update despite append failure, got %d", got)
	}
}

func TestFileLoggingDisabled(t *testing.T) {
	dir := t.TempDir()
	l, err := New(Config{Dir: filepath.Join(dir, "never-created"), RetentionDays: 30, FileLogging: false}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Log(makeResult("a", true, 0, false, model.LevelPublic, 0, 0), "x", "", "")

	if _, err := os.Stat(filepath.Join(dir, "never-created")); !os.IsNotExist(err) {
		t.Error("disabled file logging must not create the directory")
	}
	if got := l.Stats().TotalRequests; got != 1 {
		t.Errorf("counters must still work, got %d", got)
	}
}

func writeDayFile(t *testing.T, l *Logger, day time.Time, entries []Entry) {
	t.Helper()
	var b strings.Builder
	for _, e := range entries {
		line, err := json.Marshal(e)
		if err != nil {
			t.Fatal(err)
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(l.dayPath(day), []byte(b.String()), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestComplianceReportAcrossDays(t *testing.T) {
	l := newTestLogger(t)
	now := time.Now().UTC()
	start := now.AddDate(0, 0, -2)

	writeDayFile(t, l, start, []Entry{
		{AuditID: "d0-1", IsLocal: true, DocumentAttached: true, SensitivityLevel: "confidential", ModelUsed: "qwen2.5-14b", CostSavedUSD: 0.004},
		{AuditID: "d0-2", IsLocal: true, PIIDetectedCount: 2, SensitivityLevel: "confidential", ModelUsed: "qwen2.5-14b"},
	})
	// The middle day has no traffic at all.
	writeDayFile(t, l, now, []Entry{
		{AuditID: "d2-1", IsLocal: false, SensitivityLevel: "public", ModelUsed: "gpt-4o", EstimatedCostUSD: 0.005},
		{AuditID: "d2-2", IsLocal: false, PIIDetectedCount: 1, SensitivityLevel: "confidential", ModelUsed: "gpt-4o"},
	})

	r, err := l.ComplianceReport(start, now)
	if err != nil {
		t.Fatalf("ComplianceReport: %v", err)
	}

	if r.ReportPeriod.DaysRequested != 3 || r.ReportPeriod.DaysWithData != 2 {
		t.Errorf("unexpected period %+v", r.ReportPeriod)
	}
	if r.Summary.TotalRequests != 4 || r.Summary.ProcessedLocally != 2 {
		t.Errorf("unexpected summary %+v", r.Summary)
	}
	if r.Summary.PIIInstancesProtected != 3 {
		t.Errorf("PII instances = %d, want 3", r.Summary.PIIInstancesProtected)
	}
	if r.PrivacyCompliance.AllPIILocal {
		t.Error("cloud entry with PII must clear all_pii_local")
	}
	if !r.PrivacyCompliance.AllDocumentsLocal {
		t.Error("documents were all local")
	}
	// d2-2 is the only sensitive entry that went to cloud.
	if r.PrivacyCompliance.SensitiveDataCloudExposure != 1 {
		t.Errorf("exposure = %d, want 1", r.PrivacyCompliance.SensitiveDataCloudExposure)
	}
	if r.ModelsUsed["gpt-4o"] != 2 || r.ModelsUsed["qwen2.5-14b"] != 2 {
		t.Errorf("unexpected models_used %v", r.ModelsUsed)
	}
	if r.SensitivityDistribution["confidential"] != 3 {
		t.Errorf("unexpected distribution %v", r.SensitivityDistribution)
	}
	if r.CostAnalysis.TotalSavedINR != r.CostAnalysis.TotalSavedUSD*83 {
		t.Errorf("INR mismatch in %+v", r.CostAnalysis)
	}
}

func TestComplianceReportRejectsInvertedRange(t *testing.T) {
	l := newTestLogger(t)
	now := time.Now().UTC()
	if _, err := l.ComplianceReport(now, now.AddDate(0, 0, -1)); err == nil {
		t.Error("expected error for end before start")
	}
}

func TestComplianceReportSkipsMalformedLines(t *testing.T) {
	l := newTestLogger(t)
	now := time.Now().UTC()

	good, _ := json.Marshal(Entry{AuditID: "ok", IsLocal: true, SensitivityLevel: "public"})
	content := "not json at all\n" + string(good) + "\n\n"
	if err := os.WriteFile(l.dayPath(now), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	r, err := l.ComplianceReport(now, now)
	if err != nil {
		t.Fatalf("ComplianceReport: %v", err)
	}
	if r.Summary.TotalRequests != 1 {
		t.Errorf("expected 1 parsed entry, got %d", r.Summary.TotalRequests)
	}
}

func TestPruneExpired(t *testing.T) {
	l := newTestLogger(t)

	old := filepath.Join(l.cfg.Dir, "audit_2020-01-01.jsonl")
	if err := os.WriteFile(old, []byte("{}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	l.Log(makeResult("a", true, 0, false, model.LevelPublic, 0, 0), "x", "", "")

	l.cfg.RetentionDays = 30
	removed, err := l.PruneExpired()
	if err != nil {
		t.Fatalf("PruneExpired: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("expired file survived")
	}
	if _, err := os.Stat(l.dayPath(time.Now().UTC())); err != nil {
		t.Errorf("current day file should survive: %v", err)
	}
}

func TestConcurrentLogging(t *testing.T) {
	l := newTestLogger(t)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Log(makeResult(fmt.Sprintf("LR-%d", i), i%2 == 0, 0, false, model.LevelPublic, 0, 0), "x", "", "")
		}(i)
	}
	wg.Wait()

	if got := l.Stats().TotalRequests; got != n {
		t.Errorf("total = %d, want %d", got, n)
	}
	if lines := readTodayLines(t, l); len(lines) != n {
		t.Errorf("file has %d lines, want %d", len(lines), n)
	}
}

// Routed traffic must never produce a compliance violation: every path that
// carries documents, PII, or elevated sensitivity lands on a local model.
func TestRoutedTrafficHasNoCloudExposure(t *testing.T) {
	l := newTestLogger(t)
	rt, err := router.New(router.DefaultConfig(), catalog.New())
	if err != nil {
		t.Fatalf("router.New: %v", err)
	}

	requests := []router.RouteRequest{
		{Content: "What is the limitation period for appeals?"},
		{Content: "My Aadhaar is 234512345678"},
		{Content: "strictly confidential settlement discussion"},
		{Content: "summarize this deed", FileAttached: true, FileName: "deed.pdf"},
		{Content: "Draft a comprehensive research note", ModelPreference: "gpt-4o"},
		{Content: "privileged and confidential counsel opinion", ModelPreference: "gpt-4o"},
		{Content: "Refer to Case No. 99 of 2024"},
		{Content: "short query", ForceLocal: true},
	}
	for _, req := range requests {
		req.EstimatedTokens = 800
		res := rt.Route(req)
		l.Log(res, req.Content, "sess", "")
	}

	now := time.Now().UTC()
	r, err := l.ComplianceReport(now, now)
	if err != nil {
		t.Fatalf("ComplianceReport: %v", err)
	}
	if r.Summary.TotalRequests != len(requests) {
		t.Fatalf("report covers %d requests, want %d", r.Summary.TotalRequests, len(requests))
	}
	if r.PrivacyCompliance.SensitiveDataCloudExposure != 0 {
		t.Errorf("exposure = %d, want 0", r.PrivacyCompliance.SensitiveDataCloudExposure)
	}
	if !r.PrivacyCompliance.AllDocumentsLocal || !r.PrivacyCompliance.AllPIILocal {
		t.Errorf("compliance flags cleared: %+v", r.PrivacyCompliance)
	}
}
