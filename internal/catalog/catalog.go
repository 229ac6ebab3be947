package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/lawsphere/lexgate/internal/model"
)

// Catalog is a read-only registry of invocable models. Safe for concurrent
// use: the model map is never mutated after construction.
type Catalog struct {
	models map[string]model.ModelConfig
}

// builtinModels is the default registry. Local models cost nothing and are
// ordered by priority for speed-vs-quality tradeoffs; cloud models are
// ordered by priority for cost optimization.
var builtinModels = map[string]model.ModelConfig{
	// Local tier. Smaller models first for CPU hosts without a GPU.
	"qwen2.5-3b": {
		ModelID:       "qwen2.5-3b",
		DisplayName:   "Qwen 2.5 3B (Local Fast)",
		Provider:      model.ProviderLocal,
		LatencyMSAvg:  300,
		ContextWindow: 32768,
		Capabilities:  []string{"legal", "quick_query", "simple_tasks"},
		Priority:      1,
	},
	"qwen2.5-7b": {
		ModelID:       "qwen2.5-7b",
		DisplayName:   "Qwen 2.5 7B (Local)",
		Provider:      model.ProviderLocal,
		LatencyMSAvg:  600,
		ContextWindow: 131072,
		Capabilities:  []string{"legal", "summarization", "analysis", "indian_law"},
		Priority:      2,
	},
	"llama3.1-8b": {
		ModelID:       "llama3.1-8b",
		DisplayName:   "Llama 3.1 8B (Local)",
		Provider:      model.ProviderLocal,
		LatencyMSAvg:  500,
		ContextWindow: 131072,
		Capabilities:  []string{"quick_query", "simple_tasks", "legal"},
		Priority:      3,
	},
	"qwen2.5-14b": {
		ModelID:       "qwen2.5-14b",
		DisplayName:   "Qwen 2.5 14B (Local)",
		Provider:      model.ProviderLocal,
		LatencyMSAvg:  400,
		ContextWindow: 131072,
		Capabilities:  []string{"quick_query", "simple_tasks"},
		Priority:      3,
	},

	// Cloud tier. Only reachable for non-sensitive, generic queries.
	"gemini-flash": {
		ModelID:         "gemini-2.0-flash-exp",
		DisplayName:     "Gemini 2.0 Flash",
		Provider:        model.ProviderCloud,
		APIKeyEnv:       "GOOGLE_API_KEY",
		CostPer1KTokens: 0.000075,
		LatencyMSAvg:    500,
		ContextWindow:   1000000,
		Capabilities:    []string{"general", "quick_query"},
		Priority:        1,
	},
	"gpt-4o-mini": {
		ModelID:         "gpt-4o-mini",
		DisplayName:     "GPT-4o Mini",
		Provider:        model.ProviderCloud,
		APIKeyEnv:       "OPENAI_API_KEY",
		CostPer1KTokens: 0.00015,
		LatencyMSAvg:    600,
		ContextWindow:   128000,
		Capabilities:    []string{"general", "analysis"},
		Priority:        2,
	},
	"gpt-4o": {
		ModelID:         "gpt-4o",
		DisplayName:     "GPT-4o",
		Provider:        model.ProviderCloud,
		APIKeyEnv:       "OPENAI_API_KEY",
		CostPer1KTokens: 0.005,
		LatencyMSAvg:    1500,
		ContextWindow:   128000,
		Capabilities:    []string{"complex_analysis", "drafting"},
		Priority:        3,
	},
	"gpt-5-mini": {
		ModelID:         "gpt-5-mini",
		DisplayName:     "GPT-5 Mini",
		Provider:        model.ProviderCloud,
		APIKeyEnv:       "OPENAI_API_KEY",
		CostPer1KTokens: 0.00010,
		LatencyMSAvg:    800,
		ContextWindow:   128000,
		Capabilities:    []string{"general", "analysis", "legal"},
		Priority:        1,
	},
	"claude-3-sonnet": {
		ModelID:         "claude-3-sonnet-20240229",
		DisplayName:     "Claude 3 Sonnet",
		Provider:        model.ProviderCloud,
		APIKeyEnv:       "ANTHROPIC_API_KEY",
		CostPer1KTokens: 0.003,
		LatencyMSAvg:    1200,
		ContextWindow:   200000,
		Capabilities:    []string{"legal", "analysis", "drafting"},
		Priority:        2,
	},
}

// localSimpleOrder and localComplexOrder are fixed preference orders for
// auto-selected local models. First existing entry wins.
var (
	localSimpleOrder  = []string{"qwen2.5-14b", "qwen2.5-7b", "llama3.1-8b"}
	localComplexOrder = []string{"qwen2.5-14b", "qwen2.5-7b", "llama3.1-8b"}
)

// cloudCostOrder lists cloud catalog keys from cheapest to most expensive.
var cloudCostOrder = []string{"gemini-flash", "gpt-4o-mini", "claude-3-sonnet", "gpt-4o"}

// New returns a catalog containing only the built-in models.
func New() *Catalog {
	models := make(map[string]model.ModelConfig, len(builtinModels))
	for k, v := range builtinModels {
		models[k] = v
	}
	return &Catalog{models: models}
}

// overlayFile is the YAML shape of a catalog overlay.
type overlayFile struct {
	Models map[string]overlayEntry `yaml:"models"`
}

type overlayEntry struct {
	ModelID         string   `yaml:"model_id"`
	DisplayName     string   `yaml:"display_name"`
	Provider        string   `yaml:"provider"`
	APIBase         string   `yaml:"api_base"`
	APIKeyEnv       string   `yaml:"api_key_env"`
	CostPer1KTokens float64  `yaml:"cost_per_1k_tokens"`
	LatencyMSAvg    int      `yaml:"latency_ms_avg"`
	ContextWindow   int      `yaml:"context_window"`
	Capabilities    []string `yaml:"capabilities"`
	Priority        int      `yaml:"priority"`
}

// Load returns the built-in catalog with entries from the YAML file at path
// merged over it. Empty path or a missing file returns the builtins.
// Deployments add or retune models without a code change.
func Load(path string) (*Catalog, error) {
	cat := New()
	if path == "" {
		return cat, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cat, nil
		}
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	var overlay overlayFile
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}

	for key, e := range overlay.Models {
		provider, ok := model.ParseProvider(e.Provider)
		if !ok {
			return nil, fmt.Errorf("catalog: model %q: unknown provider %q", key, e.Provider)
		}
		if e.CostPer1KTokens < 0 {
			return nil, fmt.Errorf("catalog: model %q: negative cost", key)
		}
		id := e.ModelID
		if id == "" {
			id = key
		}
		cat.models[key] = model.ModelConfig{
			ModelID:         id,
			DisplayName:     e.DisplayName,
			Provider:        provider,
			APIBase:         e.APIBase,
			APIKeyEnv:       e.APIKeyEnv,
			CostPer1KTokens: e.CostPer1KTokens,
			LatencyMSAvg:    e.LatencyMSAvg,
			ContextWindow:   e.ContextWindow,
			Capabilities:    e.Capabilities,
			Priority:        e.Priority,
		}
	}

	return cat, nil
}

// Lookup returns the model registered under the given catalog key.
func (c *Catalog) Lookup(key string) (model.ModelConfig, bool) {
	m, ok := c.models[key]
	return m, ok
}

// Available returns the catalog filtered to local models unless cloud
// access is included. The returned map is a copy.
func (c *Catalog) Available(includeCloud bool) map[string]model.ModelConfig {
	out := make(map[string]model.ModelConfig, len(c.models))
	for k, v := range c.models {
		if !includeCloud && v.Provider != model.ProviderLocal {
			continue
		}
		out[k] = v
	}
	return out
}

// Keys returns all catalog keys in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.models))
	for k := range c.models {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LocalPreference returns the fixed auto-selection order for local models
// at the given complexity tier.
func (c *Catalog) LocalPreference(complexity model.Complexity) []string {
	if complexity == model.Simple {
		return localSimpleOrder
	}
	return localComplexOrder
}

// CloudCostOrder returns cloud catalog keys from cheapest to priciest.
func (c *Catalog) CloudCostOrder() []string {
	return cloudCostOrder
}
