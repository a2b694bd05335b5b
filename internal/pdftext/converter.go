// Package pdftext reads the embedded text layer of a PDF, one string per
// page. Scanned documents with no text layer come back blank here; those
// would need the OCR path.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/ledongthuc/pdf"

	"github.com/enedis-automation/order-extractor/constants"
	"github.com/enedis-automation/order-extractor/internal/extract"
)

// Converter implements extract.TextExtractor over the PDF text layer.
type Converter struct {
	logger *slog.Logger
}

func NewConverter(logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{logger: logger}
}

// ExtractPages returns the per-page text of the document. Pages whose text
// cannot be decoded are kept as empty strings with a warning so page order
// is preserved.
func (c *Converter) ExtractPages(ctx context.Context, content []byte) (res extract.PageText, err error) {
	// The pdf library panics on some malformed documents; turn that into
	// an error so a corrupt upload degrades instead of killing the request.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return extract.PageText{}, fmt.Errorf("open PDF: %w", err)
	}

	res.Method = constants.MethodPDFText
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		if ctx.Err() != nil {
			return extract.PageText{}, ctx.Err()
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			res.Pages = append(res.Pages, "")
			continue
		}
		text, perr := page.GetPlainText(nil)
		if perr != nil {
			c.logger.Warn("pdftext.page_failed", "page", i, "error", perr)
			res.Warnings = append(res.Warnings, fmt.Sprintf("page %d: %v", i, perr))
			text = ""
		}
		res.Pages = append(res.Pages, text)
	}
	return res, nil
}
