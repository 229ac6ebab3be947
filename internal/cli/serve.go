package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lawsphere/lexgate/internal/config"
	"github.com/lawsphere/lexgate/internal/server"
)

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides the configured server.addr)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the trust routing REST service",
	Long:  "Serves the /v1/trust endpoints, hot-reloads routing policy on config\nchanges, and sweeps expired audit files at startup.",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	srv, err := server.New(cfgPath, log)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		srv.SetAddr(serveAddr)
	}

	if removed, err := srv.PruneAudit(); err != nil {
		log.Warn("retention sweep failed", zap.Error(err))
	} else if removed > 0 {
		log.Info("retention sweep", zap.Int("files_removed", removed))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reloader, err := server.NewReloader(srv, log)
	if err != nil {
		return err
	}
	go reloader.Run(ctx)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// newLogger builds a production zap logger at the configured level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", level, err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
