package router

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lawsphere/lexgate/internal/catalog"
	"github.com/lawsphere/lexgate/internal/model"
	"github.com/lawsphere/lexgate/internal/scanner"
)

// Config holds process-wide routing policy, loaded once at startup.
type Config struct {
	EnableCloud      bool
	PreferLocal      bool
	CostOptimization bool

	DefaultLocalModel string
	DefaultCloudModel string

	// CostBaselineModel is the catalog key used as the savings baseline.
	// Explicit config rather than an implicit catalog lookup, so removing
	// the priciest cloud model fails loudly at startup.
	CostBaselineModel string
}

// DefaultConfig mirrors the shipped deployment policy: cloud enabled,
// local-first, cost-optimized.
func DefaultConfig() Config {
	return Config{
		EnableCloud:       true,
		PreferLocal:       true,
		CostOptimization:  true,
		DefaultLocalModel: "qwen2.5-14b",
		DefaultCloudModel: "gemini-flash",
		CostBaselineModel: "gpt-4o",
	}
}

// Router turns a privacy scan plus a complexity estimate into a concrete
// model selection. Stateless after construction; safe for concurrent use.
type Router struct {
	cfg      Config
	cat      *catalog.Catalog
	baseline model.ModelConfig
}

// New validates the policy against the catalog and returns a router.
func New(cfg Config, cat *catalog.Catalog) (*Router, error) {
	local, ok := cat.Lookup(cfg.DefaultLocalModel)
	if !ok {
		return nil, fmt.Errorf("router: default local model %q not in catalog", cfg.DefaultLocalModel)
	}
	if local.Provider != model.ProviderLocal {
		return nil, fmt.Errorf("router: default local model %q has provider %q", cfg.DefaultLocalModel, local.Provider)
	}
	cloud, ok := cat.Lookup(cfg.DefaultCloudModel)
	if !ok {
		return nil, fmt.Errorf("router: default cloud model %q not in catalog", cfg.DefaultCloudModel)
	}
	if cloud.Provider == model.ProviderLocal {
		return nil, fmt.Errorf("router: default cloud model %q is local", cfg.DefaultCloudModel)
	}
	baseline, ok := cat.Lookup(cfg.CostBaselineModel)
	if !ok {
		return nil, fmt.Errorf("router: cost baseline model %q not in catalog", cfg.CostBaselineModel)
	}

	return &Router{cfg: cfg, cat: cat, baseline: baseline}, nil
}

// RouteRequest is one routing call.
type RouteRequest struct {
	Content         string
	FileAttached    bool
	FileName        string
	FileContent     string
	ModelPreference string
	ForceLocal      bool
	EstimatedTokens int
}

// Route scans the request, decides where it may run, selects a model, and
// produces the full transparency record.
//
// Hard rules, first match wins:
//  1. caller force-local, scan force-local, or attachment → LOCAL_REQUIRED
//  2. confidential/secret sensitivity → LOCAL_REQUIRED
//  3. internal sensitivity → LOCAL_PREFERRED
//  4. otherwise → CLOUD_ALLOWED
//
// Route never fails: malformed preferences degrade to policy defaults and
// negative token estimates clamp to zero.
func (r *Router) Route(req RouteRequest) model.RoutingResult {
	start := time.Now()

	if req.EstimatedTokens < 0 {
		req.EstimatedTokens = 0
	}

	scan := scanner.Scan(req.Content, req.FileAttached, req.FileName, req.FileContent)

	var decision model.RoutingDecision
	switch {
	case req.ForceLocal || scan.ForceLocal || req.FileAttached:
		decision = model.LocalRequired
	case scan.Level == model.LevelConfidential || scan.Level == model.LevelSecret:
		decision = model.LocalRequired
	case scan.Level == model.LevelInternal:
		decision = model.LocalPreferred
	default:
		decision = model.CloudAllowed
	}

	complexity := AnalyzeComplexity(req.Content)
	selected := r.selectModel(decision, complexity, req.ModelPreference)

	tokens := float64(req.EstimatedTokens)
	estimatedCost := tokens / 1000 * selected.CostPer1KTokens
	baselineCost := tokens / 1000 * r.baseline.CostPer1KTokens
	costSaved := baselineCost - estimatedCost

	isLocal := selected.IsLocal()
	badge, message, details := trustNarrative(decision, selected, scan, complexity, isLocal, costSaved)

	return model.RoutingResult{
		Decision:         decision,
		SelectedModel:    selected,
		PrivacyScan:      scan,
		IsLocal:          isLocal,
		TrustBadge:       badge,
		TrustMessage:     message,
		TrustDetails:     details,
		EstimatedCost:    estimatedCost,
		CostSavedVsCloud: costSaved,
		RoutingTimeMS:    float64(time.Since(start).Microseconds()) / 1000,
		Timestamp:        time.Now().UTC(),
		AuditID:          newAuditID(),
		CanLogContent:    !scan.ForceLocal,
	}
}

// selectModel applies preference and policy. Under a local decision a cloud
// preference is overridden silently: the privacy invariant outranks explicit
// user choice.
func (r *Router) selectModel(decision model.RoutingDecision, complexity model.Complexity, preference string) model.ModelConfig {
	autoMode := preference == "" || preference == "auto"

	if decision == model.LocalRequired || decision == model.LocalPreferred {
		if m, ok := r.cat.Lookup(preference); ok {
			if m.Provider == model.ProviderLocal {
				return m
			}
			return r.selectLocal(complexity)
		}
		return r.selectLocal(complexity)
	}

	// Cloud allowed.
	if m, ok := r.cat.Lookup(preference); ok && !autoMode {
		return m
	}
	if r.cfg.PreferLocal {
		// Local-first: local is sufficient and free except for complex
		// queries, which escalate to the cheapest capable cloud model.
		if complexity == model.Complex && r.cfg.EnableCloud {
			return r.selectCloud(complexity)
		}
		return r.selectLocal(complexity)
	}
	if r.cfg.CostOptimization {
		return r.selectCloud(complexity)
	}
	if m, ok := r.cat.Lookup(r.cfg.DefaultCloudModel); ok {
		return m
	}
	return r.selectLocal(complexity)
}

func (r *Router) selectLocal(complexity model.Complexity) model.ModelConfig {
	for _, key := range r.cat.LocalPreference(complexity) {
		if m, ok := r.cat.Lookup(key); ok {
			return m
		}
	}
	m, _ := r.cat.Lookup(r.cfg.DefaultLocalModel)
	return m
}

func (r *Router) selectCloud(complexity model.Complexity) model.ModelConfig {
	order := r.cat.CloudCostOrder()
	idx := 0
	if complexity == model.Complex && len(order) > 1 {
		// Complex queries get the next tier up, still cost-aware.
		idx = 1
	}
	for i := idx; i < len(order); i++ {
		if m, ok := r.cat.Lookup(order[i]); ok {
			return m
		}
	}
	m, _ := r.cat.Lookup(r.cfg.DefaultCloudModel)
	return m
}

// AvailableModels lists invocable models, local-only when cloud access is
// disabled process-wide.
func (r *Router) AvailableModels(includeCloud bool) map[string]model.ModelConfig {
	return r.cat.Available(includeCloud && r.cfg.EnableCloud)
}

// Summary is the trust dashboard payload describing routing policy.
type Summary struct {
	LocalModels      []string `json:"local_models"`
	CloudEnabled     bool     `json:"cloud_enabled"`
	PrivacyRules     []string `json:"privacy_rules"`
	CostOptimization bool     `json:"cost_optimization"`
}

// TrustSummary describes the active routing policy for dashboards.
func (r *Router) TrustSummary() Summary {
	var locals []string
	for _, m := range r.cat.Available(false) {
		locals = append(locals, m.DisplayName)
	}
	sort.Strings(locals)

	return Summary{
		LocalModels:  locals,
		CloudEnabled: r.cfg.EnableCloud,
		PrivacyRules: []string{
			"Documents always processed locally",
			"PII never sent to cloud",
			"Legal privilege markers trigger local routing",
			"User can force local processing anytime",
		},
		CostOptimization: r.cfg.CostOptimization,
	}
}

// newAuditID returns a unique id per routing call, prefixed for log greps.
func newAuditID() string {
	return fmt.Sprintf("LR-%s-%s", time.Now().UTC().Format("20060102150405"), uuid.NewString()[:8])
}
