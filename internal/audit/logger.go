package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lawsphere/lexgate/internal/model"
)

// TimestampFormat is the layout used in audit entry timestamps.
const TimestampFormat = time.RFC3339Nano

// dayFormat keys log files by UTC calendar day.
const dayFormat = "2006-01-02"

// Config holds audit logger settings.
type Config struct {
	Dir           string
	RetentionDays int
	FileLogging   bool
}

// DefaultConfig returns the shipped audit settings.
func DefaultConfig() Config {
	return Config{
		Dir:           "./logs/audit",
		RetentionDays: 365,
		FileLogging:   true,
	}
}

// counters are the in-memory aggregate statistics. Advisory: dashboards read
// them, but the durable source of truth is the append-only log.
type counters struct {
	TotalRequests             int64
	LocalRequests             int64
	CloudRequests             int64
	DocumentsProcessedLocally int64
	PIIProtectedCount         int64
	TotalCostUSD              float64
	TotalSavedUSD             float64
}

// Logger durably records routing decisions without ever persisting raw
// content. The only component in the core with mutable process-wide state.
type Logger struct {
	cfg Config
	log *zap.Logger

	mu    sync.Mutex // guards counters
	stats counters

	fileMu sync.Mutex // serializes appends; files are keyed by day
}

// New creates the audit directory (when file logging is enabled) and
// returns a logger.
func New(cfg Config, log *zap.Logger) (*Logger, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.FileLogging {
		if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
			return nil, fmt.Errorf("audit: create directory: %w", err)
		}
	}
	return &Logger{cfg: cfg, log: log}, nil
}

// Log records one routing decision. Counters always update; a file append
// failure is logged as a warning and swallowed: losing an audit record is
// preferable to failing a user-facing request.
func (l *Logger) Log(result model.RoutingResult, content, sessionID, userID string) Entry {
	entry := Entry{
		AuditID:             result.AuditID,
		Timestamp:           result.Timestamp.UTC().Format(TimestampFormat),
		RoutingDecision:     string(result.Decision),
		ModelUsed:           result.SelectedModel.ModelID,
		ModelProvider:       string(result.SelectedModel.Provider),
		IsLocal:             result.IsLocal,
		SensitivityLevel:    string(result.PrivacyScan.Level),
		PIIDetectedCount:    len(result.PrivacyScan.PIIFound),
		LegalMarkersCount:   len(result.PrivacyScan.LegalMarkers),
		DocumentAttached:    result.PrivacyScan.DocumentAttached,
		ForceLocalTriggered: result.PrivacyScan.ForceLocal,
		EstimatedCostUSD:    result.EstimatedCost,
		CostSavedUSD:        result.CostSavedVsCloud,
		RoutingTimeMS:       result.RoutingTimeMS,
		ContentHash:         HashContent(content),
		SessionID:           sessionID,
	}
	if userID != "" {
		entry.UserIDHash = HashContent(userID)
	}

	l.mu.Lock()
	l.stats.TotalRequests++
	if result.IsLocal {
		l.stats.LocalRequests++
	} else {
		l.stats.CloudRequests++
	}
	if result.PrivacyScan.DocumentAttached {
		l.stats.DocumentsProcessedLocally++
	}
	l.stats.PIIProtectedCount += int64(len(result.PrivacyScan.PIIFound))
	l.stats.TotalCostUSD += result.EstimatedCost
	l.stats.TotalSavedUSD += result.CostSavedVsCloud
	l.mu.Unlock()

	if l.cfg.FileLogging {
		if err := l.append(entry); err != nil {
			l.log.Warn("audit persistence failed",
				zap.String("audit_id", entry.AuditID),
				zap.Error(err))
		}
	}

	return entry
}

// append writes one JSONL line to the current UTC day file. Short,
// non-cancelable critical section.
func (l *Logger) append(entry Entry) error {
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("audit: marshal entry: %w", err)
	}

	path := l.dayPath(time.Now().UTC())

	l.fileMu.Lock()
	defer l.fileMu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("audit: open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("audit: write entry: %w", err)
	}
	return f.Sync()
}

// dayPath returns the log file path for the given UTC day.
func (l *Logger) dayPath(t time.Time) string {
	return filepath.Join(l.cfg.Dir, fmt.Sprintf("audit_%s.jsonl", t.Format(dayFormat)))
}

// PruneExpired deletes day files older than the retention window and
// returns how many were removed.
func (l *Logger) PruneExpired() (int, error) {
	if !l.cfg.FileLogging || l.cfg.RetentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -l.cfg.RetentionDays)

	entries, err := os.ReadDir(l.cfg.Dir)
	if err != nil {
		return 0, fmt.Errorf("audit: read directory: %w", err)
	}

	removed := 0
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "audit_") || !strings.HasSuffix(name, ".jsonl") {
			continue
		}
		day, err := time.Parse(dayFormat, strings.TrimSuffix(strings.TrimPrefix(name, "audit_"), ".jsonl"))
		if err != nil {
			continue
		}
		if day.Before(cutoff) {
			if err := os.Remove(filepath.Join(l.cfg.Dir, name)); err != nil {
				return removed, fmt.Errorf("audit: remove %s: %w", name, err)
			}
			removed++
		}
	}
	return removed, nil
}
