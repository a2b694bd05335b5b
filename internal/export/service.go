// Package export renders an extraction result as an XLSX workbook for the
// downstream order-processing sheet.
package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/enedis-automation/order-extractor/internal/extract"
)

// Service produces XLSX bytes from extraction results.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

var headers = []string{
	"Position",
	"Codet",
	"Désignation",
	"Quantité",
	"Prix unitaire",
	"Montant ligne",
}

// ExportXLSX returns an XLSX workbook with one header block for the order
// fields and one row per extracted line item.
func (s *Service) ExportXLSX(res extract.Result) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Commande"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defIdx, _ := f.GetSheetIndex("Sheet1"); defIdx != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	write := func(col, row int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}

	// Order header block.
	write(1, 1, "Référence")
	write(2, 1, deref(res.Reference))
	write(1, 2, "Date de commande")
	write(2, 2, deref(res.OrderDate))
	write(1, 3, "Total HT")
	if res.TotalHT != nil {
		write(2, 3, *res.TotalHT)
	}
	write(1, 4, "Fichier source")
	write(2, 4, res.ExtractedFrom)

	// Line items table.
	const tableStart = 6
	for i, h := range headers {
		write(i+1, tableStart, h)
	}
	row := tableStart + 1
	for _, it := range res.LineItems {
		write(1, row, it.Position)
		write(2, row, it.ItemCode)
		write(3, row, it.Description)
		if it.Quantity != nil {
			write(4, row, *it.Quantity)
		}
		if it.UnitPrice != nil {
			write(5, row, *it.UnitPrice)
		}
		if it.TotalPrice != nil {
			write(6, row, *it.TotalPrice)
		}
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"file", res.ExtractedFrom,
		"line_items", len(res.LineItems),
		"bytes", buf.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
