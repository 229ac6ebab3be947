package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lawsphere/lexgate/internal/catalog"
	"github.com/lawsphere/lexgate/internal/config"
	"github.com/lawsphere/lexgate/internal/router"
)

// loadRouter builds a validated router from the configured policy and
// catalog.
func loadRouter() (*config.Config, *router.Router, error) {
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

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// readFileArg reads an attachment passed via --file.
func readFileArg(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read attachment %q: %w", path, err)
	}
	return string(data), nil
}
