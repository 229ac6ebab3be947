package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lawsphere/lexgate/internal/audit"
	"github.com/lawsphere/lexgate/internal/catalog"
	"github.com/lawsphere/lexgate/internal/config"
	"github.com/lawsphere/lexgate/internal/router"
)

// Server is the REST surface over the trust routing core. The router is
// swapped atomically on hot reload; the audit logger lives for the whole
// process so in-memory counters survive reloads.
type Server struct {
	cfgPath string
	log     *zap.Logger
	auditor *audit.Logger

	mu  sync.RWMutex
	cfg *config.Config
	rt  *router.Router

	httpSrv *http.Server
}

// New loads configuration, catalog, and policy, and wires the core
// components together.
func New(cfgPath string, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}

	cfg, rt, err := buildRouter(cfgPath)
	if err != nil {
		return nil, err
	}

	auditor, err := audit.New(audit.Config{
		Dir:           cfg.Audit.Dir,
		RetentionDays: cfg.Audit.RetentionDays,
		FileLogging:   cfg.Audit.FileLogging,
	}, log)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfgPath: cfgPath,
		log:     log,
		auditor: auditor,
		cfg:     cfg,
		rt:      rt,
	}
	s.httpSrv = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// buildRouter loads config and catalog and constructs a validated router.
func buildRouter(cfgPath string) (*config.Config, *router.Router, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, nil, err
	}

	rt, err := router.New(router.Config{
		EnableCloud:       cfg.Routing.EnableCloud,
		PreferLocal:       cfg.Routing.PreferLocal,
		CostOptimization:  cfg.Routing.CostOptimization,
		DefaultLocalModel: cfg.Routing.DefaultLocalModel,
		DefaultCloudModel: cfg.Routing.DefaultCloudModel,
		CostBaselineModel: cfg.Routing.CostBaselineModel,
	}, cat)
	if err != nil {
		return nil, nil, err
	}

	return cfg, rt, nil
}

// Reload re-reads config and catalog and swaps the router atomically.
// Called by the hot-reloader on file change. The listen address and audit
// directory are fixed for the process lifetime.
func (s *Server) Reload() error {
	cfg, rt, err := buildRouter(s.cfgPath)
	if err != nil {
		return fmt.Errorf("server: reload: %w", err)
	}

	s.mu.Lock()
	s.cfg = cfg
	s.rt = rt
	s.mu.Unlock()

	return nil
}

// router returns the current router under the read lock.
func (s *Server) router() *router.Router {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rt
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Server.Addr
}

// ConfigPaths returns the files the hot-reloader should watch.
func (s *Server) ConfigPaths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return []string{s.cfgPath, s.cfg.CatalogPath}
}

// SetAddr overrides the configured listen address. Must be called before
// ListenAndServe.
func (s *Server) SetAddr(addr string) {
	s.mu.Lock()
	s.cfg.Server.Addr = addr
	s.mu.Unlock()
	s.httpSrv.Addr = addr
}

// PruneAudit removes audit day files past the retention window.
func (s *Server) PruneAudit() (int, error) {
	return s.auditor.PruneExpired()
}

// ListenAndServe blocks serving HTTP until Shutdown or a listener error.
func (s *Server) ListenAndServe() error {
	s.log.Info("listening", zap.String("addr", s.httpSrv.Addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
