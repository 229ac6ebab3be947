package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds the REST surface settings.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// RoutingConfig holds the process-wide routing policy.
type RoutingConfig struct {
	EnableCloud       bool   `yaml:"enable_cloud"`
	PreferLocal       bool   `yaml:"prefer_local"`
	CostOptimization  bool   `yaml:"cost_optimization"`
	DefaultLocalModel string `yaml:"default_local_model"`
	DefaultCloudModel string `yaml:"default_cloud_model"`
	CostBaselineModel string `yaml:"cost_baseline_model"`
}

// AuditConfig holds audit log settings.
type AuditConfig struct {
	Dir           string `yaml:"dir"`
	RetentionDays int    `yaml:"retention_days"`
	FileLogging   bool   `yaml:"file_logging"`
}

// Config is the full process configuration, loaded once at startup.
type Config struct {
	Server      ServerConfig  `yaml:"server"`
	Routing     RoutingConfig `yaml:"routing"`
	CatalogPath string        `yaml:"catalog_path"`
	Audit       AuditConfig   `yaml:"audit"`
	LogLevel    string        `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8090",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Routing: RoutingConfig{
			EnableCloud:       true,
			PreferLocal:       true,
			CostOptimization:  true,
			DefaultLocalModel: "qwen2.5-14b",
			DefaultCloudModel: "gemini-flash",
			CostBaselineModel: "gpt-4o",
		},
		Audit: AuditConfig{
			Dir:           "./logs/audit",
			RetentionDays: 365,
			FileLogging:   true,
		},
		LogLevel: "info",
	}
}

// Load reads configuration from a YAML file. Empty path or a missing file
// returns the defaults; YAML overwrites only the fields it specifies.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.Audit.RetentionDays < 0 {
		return nil, fmt.Errorf("config: retention_days must not be negative")
	}

	return cfg, nil
}

// DefaultYAML returns a commented config file for init-config.
func DefaultYAML() string {
	return `# lexgate configuration
# Generated by: lexgate init-config

server:
  addr: ":8090"
  allowed_origins:
    - http://localhost:3000

# Routing policy.
# enable_cloud: false confines every request to local models.
# prefer_local: use local models even when cloud is allowed, escalating to
#   the cheapest capable cloud model only for complex queries.
# cost_optimization: when not local-first, pick the cheapest cloud model.
# cost_baseline_model must exist in the catalog; it anchors the
#   cost_saved_vs_cloud figure reported on every routing decision.
routing:
  enable_cloud: true
  prefer_local: true
  cost_optimization: true
  default_local_model: qwen2.5-14b
  default_cloud_model: gemini-flash
  cost_baseline_model: gpt-4o

# Optional catalog overlay. Entries merge over the built-in registry:
#
# catalog_path: ./models.yaml

# Audit trail. One JSONL file per UTC day under dir; files older than
# retention_days are removed by the retention sweep.
audit:
  dir: ./logs/audit
  retention_days: 365
  file_logging: true

log_level: info
`
}
