package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/enedis-automation/order-extractor/internal/common"
	"github.com/enedis-automation/order-extractor/internal/export"
	"github.com/enedis-automation/order-extractor/internal/extract"
	"github.com/enedis-automation/order-extractor/internal/pdftext"
	"github.com/enedis-automation/order-extractor/internal/rules"
	"github.com/enedis-automation/order-extractor/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The rule set is loaded once and read-only afterwards; a bad file
	// degrades to an empty set, not a startup failure.
	ruleSet := rules.Load(cfg.Rules.Path, logger)
	if ruleSet.Empty() {
		logger.Warn("rule set is empty; general fields will all be null", "path", cfg.Rules.Path)
	}

	extractor := extract.New(
		ruleSet,
		pdftext.NewConverter(logger),
		extract.ParseLocale(cfg.Rules.NumericLocale),
		logger,
	)
	svc := server.NewService(extractor, export.NewService(logger), cfg.Server.MaxUploadBytes, logger)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: svc.Routes(),
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("stopped")
}
