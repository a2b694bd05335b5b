// runocr invokes the OCR wrapper on a local scanned document and prints a
// summary. OCR is a standalone capability here; the extraction pipeline
// itself reads the PDF text layer.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/enedis-automation/order-extractor/internal/common"
	"github.com/enedis-automation/order-extractor/internal/ocr"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "runocr <file.pdf|image>")
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	ocrx := ocr.NewExtractor(ocr.Config{
		Pdftoppm:      cfg.OCR.Pdftoppm,
		Tesseract:     cfg.OCR.Tesseract,
		TesseractLang: cfg.OCR.TesseractLang,
		DPI:           cfg.OCR.DPI,
		MaxPages:      cfg.OCR.MaxPages,
	}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := ocrx.Extract(ctx, os.Args[1])
	if err != nil {
		logger.Error("ocr failed", "path", os.Args[1], "error", err)
		os.Exit(1)
	}

	logger.Info("ocr OK",
		"method", res.Method,
		"pages", res.Pages,
		"bytes", len(res.Text),
		"language", res.Language,
		"warnings", len(res.Warnings),
		"duration_ms", res.Duration.Milliseconds(),
	)
	_, _ = os.Stdout.WriteString(res.Text)
}
