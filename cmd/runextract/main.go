// runextract runs the extraction pipeline over a local PDF without the
// HTTP host and prints the result JSON (or writes the XLSX rendering).
// Given a directory it processes every accepted file under it, writing
// one result JSON per input.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/enedis-automation/order-extractor/internal/batch"
	"github.com/enedis-automation/order-extractor/internal/common"
	"github.com/enedis-automation/order-extractor/internal/export"
	"github.com/enedis-automation/order-extractor/internal/extract"
	"github.com/enedis-automation/order-extractor/internal/pdftext"
	"github.com/enedis-automation/order-extractor/internal/rules"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		logger.Error("usage", "cmd", "runextract <order.pdf|orders-dir> [out.xlsx|out-dir]")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg := common.LoadConfig()
	ruleSet := rules.Load(cfg.Rules.Path, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	extractor := extract.New(
		ruleSet,
		pdftext.NewConverter(logger),
		extract.ParseLocale(cfg.Rules.NumericLocale),
		logger,
	)

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		outDir := ""
		if len(os.Args) > 2 {
			outDir = os.Args[2]
		}
		_, stats, err := batch.NewRunner(extractor, logger).ProcessDirectory(ctx, path, outDir, nil)
		if err != nil {
			logger.Error("batch run failed", "root", path, "error", err)
			os.Exit(1)
		}
		if stats.Failed > 0 {
			os.Exit(1)
		}
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read input", "path", path, "error", err)
		os.Exit(1)
	}

	start := time.Now()
	res := extractor.Extract(ctx, content, path)
	logger.Info("extraction done",
		"method", res.ExtractionMethod,
		"line_items", len(res.LineItems),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if len(os.Args) > 2 {
		book, err := export.NewService(logger).ExportXLSX(res)
		if err != nil {
			logger.Error("export failed", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(os.Args[2], book, 0o644); err != nil {
			logger.Error("write workbook", "path", os.Args[2], "error", err)
			os.Exit(1)
		}
		return
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
