package extract

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/enedis-automation/order-extractor/constants"
	"github.com/enedis-automation/order-extractor/internal/rules"
)

// Extractor sequences the full pipeline: page text, general fields, table
// isolation, item splitting and field recovery.
type Extractor struct {
	rules  *rules.Set
	text   TextExtractor
	locale Locale
	logger *slog.Logger
}

// New builds an Extractor. The rule set is read-only after construction;
// each Extract call builds fresh local state, so one Extractor is safe to
// share across requests.
func New(set *rules.Set, text TextExtractor, locale Locale, logger *slog.Logger) *Extractor {
	if set == nil {
		set = rules.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{rules: set, text: text, locale: locale, logger: logger}
}

// Extract runs the pipeline over one document and assembles the result.
// It never returns an error: an upstream text-extraction failure degrades
// to empty text and an all-null result, not an HTTP-level failure.
func (e *Extractor) Extract(ctx context.Context, content []byte, filename string) Result {
	start := time.Now()

	pages, err := e.text.ExtractPages(ctx, content)
	if err != nil {
		e.logger.Warn("extract.text.failed", "file", filename, "error", err)
		pages = PageText{}
	}
	for _, w := range pages.Warnings {
		e.logger.Warn("extract.text.warning", "file", filename, "warning", w)
	}

	fullText := pages.FullText()
	method := pages.Method
	if strings.TrimSpace(fullText) == "" {
		method = constants.MethodNone
	}

	general := ExtractGeneral(fullText, e.rules, e.locale, e.logger)

	// Header fields often sit in running headers, so general extraction
	// uses the uncropped text; only line items go through isolation.
	tableText, found := IsolateTable(fullText)
	if !found {
		e.logger.Warn("extract.table.no_anchor", "file", filename)
		if method != constants.MethodNone {
			method += constants.DegradedSuffix
		}
	}

	blocks := SplitItems(tableText)
	items := make([]LineItem, 0, len(blocks))
	for _, b := range blocks {
		items = append(items, RecoverFields(b, e.locale, e.logger))
	}

	res := Result{
		Reference:        stringField(general["CMDRefEnedis"]),
		OrderDate:        stringField(general["CMDDateCommande"]),
		TotalHT:          floatField(general["TotalHT"]),
		LineItems:        items,
		Confidence:       constants.DefaultConfidence,
		ExtractedFrom:    filename,
		ExtractionMethod: method,
	}

	e.logger.Info("extract.done",
		"file", filename,
		"method", method,
		"pages", len(pages.Pages),
		"line_items", len(items),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res
}

func stringField(v any) *string {
	if s, ok := v.(string); ok && s != "" {
		return &s
	}
	return nil
}

func floatField(v any) *float64 {
	if f, ok := v.(float64); ok {
		return &f
	}
	return nil
}
