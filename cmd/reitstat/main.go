package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/analysis"
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/api"
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/config"
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/database"
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/export"
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/fmp"
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/governance"
	"github.com/joaoFerreiragHub/API-finhub-sub001/internal/worker"
)

func main() {
	app := &cli.App{
		Name:  "reitstat",
		Usage: "REIT valuation and data-quality API",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API with the optional export worker",
				Action: runServe,
			},
			{
				Name:   "export",
				Usage:  "analyze the watchlist once and write the configured exports",
				Action: runExport,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// services bundles everything the commands share.
type services struct {
	analyses *analysis.Service
	exports  *export.Service // nil when no destination is configured
	cleanup  func()
}

func buildServices(ctx context.Context, cfg config.Config) (*services, error) {
	cleanup := func() {}

	var states governance.StateSource
	if cfg.DatabaseURL != "" {
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to governance store: %w", err)
		}
		cleanup = pool.Close
		states = governance.NewPgStateSource(pool)
	} else {
		slog.Warn("DATABASE_URL not set, governance metric states unavailable; scores degrade to low confidence")
		states = &governance.StaticStateSource{}
	}

	client := fmp.NewClient(cfg.FMPBaseURL, cfg.FMPAPIKey, cfg.FMPRetryMax, cfg.FMPRetryBaseDelay)
	analyses := analysis.NewService(client, states, cfg.Features)

	exports, err := buildExportService(ctx, cfg, analyses)
	if err != nil {
		cleanup()
		return nil, err
	}

	return &services{analyses: analyses, exports: exports, cleanup: cleanup}, nil
}

// buildExportService wires every configured destination, or returns nil when
// there is none.
func buildExportService(ctx context.Context, cfg config.Config, analyses *analysis.Service) (*export.Service, error) {
	var writers []export.SheetWriter
	if cfg.ExportXLSXPath != "" {
		writers = append(writers, export.NewExcelWriter(cfg.ExportXLSXPath))
	}
	if cfg.SheetsSpreadsheetID != "" && cfg.SheetsCredentials != "" {
		w, err := export.NewSheetsWriter(ctx, cfg.SheetsSpreadsheetID, cfg.SheetsCredentials)
		if err != nil {
			return nil, fmt.Errorf("configuring sheets writer: %w", err)
		}
		writers = append(writers, w)
	}
	if len(writers) == 0 {
		return nil, nil
	}
	if len(cfg.Watchlist) == 0 {
		return nil, fmt.Errorf("export destinations configured but EXPORT_WATCHLIST is empty")
	}
	return export.NewService(analyses, cfg.Watchlist, writers...), nil
}

func runServe(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	if cfg.FMPAPIKey == "" {
		return fmt.Errorf("FMP_API_KEY is required")
	}

	svcs, err := buildServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svcs.cleanup()

	if svcs.exports != nil && cfg.ExportWorkerInterval > 0 {
		exportWorker := worker.NewExportWorker(svcs.exports, cfg.ExportWorkerInterval)
		go exportWorker.Run(ctx)
	}

	if cfg.AdminAPIKey == "" {
		slog.Warn("ADMIN_API_KEY not set, export endpoint is unprotected")
	}

	var exporter api.Exporter
	if svcs.exports != nil {
		exporter = svcs.exports
	}
	srv := api.NewServer(cfg.HTTPPort, api.NewHandler(svcs.analyses, exporter), cfg.AdminAPIKey)

	go func() {
		slog.Info("HTTP server listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

func runExport(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	if cfg.FMPAPIKey == "" {
		return fmt.Errorf("FMP_API_KEY is required")
	}

	svcs, err := buildServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svcs.cleanup()

	if svcs.exports == nil {
		return fmt.Errorf("no export destination configured: set EXPORT_XLSX_PATH or the sheets variables")
	}
	return svcs.exports.RunOnce(ctx)
}
