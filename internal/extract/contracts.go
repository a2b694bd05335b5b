package extract

import (
	"context"
	"strings"
)

// TextExtractor is the upstream capability: given a byte stream, produce
// ordered page text. PDF-to-text and OCR both satisfy it.
type TextExtractor interface {
	ExtractPages(ctx context.Context, content []byte) (PageText, error)
}

// PageText is the upstream extraction output: one string per page, in page
// order, plus the method label that produced it.
type PageText struct {
	Pages    []string
	Method   string // constants.MethodPDFText | MethodPDFOCR | MethodImageOCR
	Warnings []string
}

// FullText concatenates the pages, page order preserved, newline-joined.
func (p PageText) FullText() string {
	return strings.Join(p.Pages, "\n")
}
