package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/lawsphere/lexgate/internal/model"
	"github.com/lawsphere/lexgate/internal/router"
	"github.com/lawsphere/lexgate/internal/scanner"
)

func (s *Server) routes() http.Handler {
	mux := chi.NewRouter()

	s.mu.RLock()
	origins := s.cfg.Server.AllowedOrigins
	s.mu.RUnlock()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	mux.Use(s.requestLogger)

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.Route("/v1/trust", func(rt chi.Router) {
		rt.Post("/scan", s.wrap(s.handleScan))
		rt.Post("/route", s.wrap(s.handleRoute))
		rt.Post("/redact", s.wrap(s.handleRedact))
		rt.Get("/stats", s.wrap(s.handleStats))
		rt.Get("/dashboard", s.wrap(s.handleDashboard))
		rt.Get("/models", s.wrap(s.handleModels))
		rt.Get("/summary", s.wrap(s.handleSummary))
		rt.Get("/report", s.wrap(s.handleReport))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequestError marks caller mistakes so wrap maps them to 400.
type badRequestError struct{ msg string }

func (e badRequestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return badRequestError{msg: fmt.Sprintf(format, args...)}
}

func (s *Server) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			if _, ok := err.(badRequestError); ok {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

type scanRequest struct {
	Content      string `json:"content"`
	FileAttached bool   `json:"file_attached"`
	FileName     string `json:"file_name"`
	FileContent  string `json:"file_content"`
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) error {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("invalid request body: %v", err)
	}
	result := scanner.Scan(req.Content, req.FileAttached, req.FileName, req.FileContent)
	return writeJSON(w, result)
}

type routeRequest struct {
	scanRequest
	ModelPreference string `json:"model_preference"`
	ForceLocal      bool   `json:"force_local"`
	EstimatedTokens int    `json:"estimated_tokens"`
	SessionID       string `json:"session_id"`
	UserID          string `json:"user_id"`
}

type routeResponse struct {
	model.RoutingResult
	AuditRecorded bool `json:"audit_recorded"`
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) error {
	var req routeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("invalid request body: %v", err)
	}
	if req.EstimatedTokens == 0 {
		req.EstimatedTokens = 1000
	}

	result := s.router().Route(router.RouteRequest{
		Content:         req.Content,
		FileAttached:    req.FileAttached,
		FileName:        req.FileName,
		FileContent:     req.FileContent,
		ModelPreference: req.ModelPreference,
		ForceLocal:      req.ForceLocal,
		EstimatedTokens: req.EstimatedTokens,
	})
	s.auditor.Log(result, req.Content, req.SessionID, req.UserID)

	return writeJSON(w, routeResponse{RoutingResult: result, AuditRecorded: true})
}

type redactRequest struct {
	Content string `json:"content"`
}

type redactResponse struct {
	Redacted   string   `json:"redacted"`
	Redactions []string `json:"redactions"`
}

func (s *Server) handleRedact(w http.ResponseWriter, r *http.Request) error {
	var req redactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return badRequest("invalid request body: %v", err)
	}
	redacted, redactions := scanner.Redact(req.Content)
	return writeJSON(w, redactResponse{Redacted: redacted, Redactions: redactions})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, s.auditor.Stats())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, s.auditor.Dashboard())
}

type modelEntry struct {
	Key string `json:"key"`
	model.ModelConfig
	IsLocal bool `json:"is_local"`
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) error {
	includeCloud := r.URL.Query().Get("local_only") != "true"
	available := s.router().AvailableModels(includeCloud)

	models := make([]modelEntry, 0, len(available))
	for key, m := range available {
		models = append(models, modelEntry{Key: key, ModelConfig: m, IsLocal: m.IsLocal()})
	}
	return writeJSON(w, map[string]any{"models": models})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, s.router().TrustSummary())
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) error {
	start, err := parseDay(r.URL.Query().Get("start"))
	if err != nil {
		return badRequest("invalid start: %v", err)
	}
	end, err := parseDay(r.URL.Query().Get("end"))
	if err != nil {
		return badRequest("invalid end: %v", err)
	}

	report, err := s.auditor.ComplianceReport(start, end)
	if err != nil {
		return err
	}
	return writeJSON(w, report)
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("missing date (want YYYY-MM-DD)")
	}
	return time.Parse("2006-01-02", s)
}
