package report

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"certlink/internal/linkage"
	"certlink/internal/logging"
)

// WriteWorkbook writes the certificates as an .xlsx workbook: one sheet per
// category plus a summary sheet with the per-category totals. Sheet names
// are truncated to Excel's 31-character limit.
func (r *Renderer) WriteWorkbook(result linkage.Result) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", workbookStatsSheet); err != nil {
		return "", fmt.Errorf("rename summary sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return "", fmt.Errorf("create header style: %w", err)
	}

	if err := r.writeSummarySheet(f, result.Stats, headerStyle); err != nil {
		return "", err
	}

	byCategory := make(map[string][]linkage.Certificate)
	var order []string
	for _, cert := range result.Certificates {
		if _, ok := byCategory[cert.Category]; !ok {
			order = append(order, cert.Category)
		}
		byCategory[cert.Category] = append(byCategory[cert.Category], cert)
	}

	for _, cat := range order {
		sheet := sheetName(cat)
		if _, err := f.NewSheet(sheet); err != nil {
			return "", fmt.Errorf("create sheet %q: %w", sheet, err)
		}
		if err := r.writeCertificateSheet(f, sheet, byCategory[cat], headerStyle); err != nil {
			return "", err
		}
	}

	path := filepath.Join(r.outputDir, workbookFile)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	r.logger.Info("workbook written",
		logging.String("path", path),
		logging.Int("sheets", len(order)+1))
	return path, nil
}

func (r *Renderer) writeSummarySheet(f *excelize.File, stats []linkage.CategoryStats, headerStyle int) error {
	headers := []string{"Curso", "Aprovados", "Certificados"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(workbookStatsSheet, cell, header); err != nil {
			return fmt.Errorf("write summary header: %w", err)
		}
		if err := f.SetCellStyle(workbookStatsSheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("style summary header: %w", err)
		}
	}
	for i, stat := range stats {
		row := i + 2
		f.SetCellValue(workbookStatsSheet, fmt.Sprintf("A%d", row), stat.Category)
		f.SetCellValue(workbookStatsSheet, fmt.Sprintf("B%d", row), stat.Approved)
		f.SetCellValue(workbookStatsSheet, fmt.Sprintf("C%d", row), stat.Certificates)
	}
	if err := f.SetColWidth(workbookStatsSheet, "A", "A", 40); err != nil {
		return fmt.Errorf("size summary columns: %w", err)
	}
	return nil
}

func (r *Renderer) writeCertificateSheet(f *excelize.File, sheet string, certs []linkage.Certificate, headerStyle int) error {
	for i, field := range r.fields {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, field.Key); err != nil {
			return fmt.Errorf("write sheet header: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("style sheet header: %w", err)
		}
	}
	for rowIdx, cert := range certs {
		row := rowIdx + 2
		for colIdx, field := range r.fields {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
			if err := f.SetCellValue(sheet, cell, cert.Fields[field.Key]); err != nil {
				return fmt.Errorf("write certificate cell: %w", err)
			}
		}
	}
	for i := range r.fields {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, 18); err != nil {
			return fmt.Errorf("size sheet columns: %w", err)
		}
	}
	return nil
}

// sheetName trims a category label to a legal Excel sheet name.
func sheetName(category string) string {
	runes := []rune(category)
	if len(runes) > 31 {
		runes = runes[:31]
	}
	return string(runes)
}
