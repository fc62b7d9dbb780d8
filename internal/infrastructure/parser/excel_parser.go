package parser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/catalogo-json/internal/domain/entity"
	"github.com/yourusername/catalogo-json/internal/domain/repository"
)

// ExcelParser reads tables and embedded pictures from xlsx workbooks
type ExcelParser interface {
	repository.TabularSource
	repository.ImageSource
}

type excelParser struct {
	log logrus.FieldLogger
}

// NewExcelParser yangi Excel parser yaratish
func NewExcelParser(log logrus.FieldLogger) ExcelParser {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &excelParser{log: log}
}

// ReadTable sheet ni jadval sifatida o'qish
func (e *excelParser) ReadTable(ctx context.Context, path, sheet string) (*entity.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := openWorkbook(path, sheet)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName, err := resolveSheet(f, path, sheet)
	if err != nil {
		return nil, err
	}

	// Raw values: number formats (currency, thousands) are not applied
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from %s: %w", sheetName, err)
	}

	table := &entity.Table{Path: path, Sheet: sheetName}
	if len(rows) == 0 {
		e.log.WithFields(logrus.Fields{"path": path, "sheet": sheetName}).Warn("⚠️ Sheet is empty")
		return table, nil
	}

	header := rows[0]
	table.Headers = mapColumns(header)
	table.Rows = make([]entity.Record, 0, len(rows)-1)

	blank := 0
	for i := 1; i < len(rows); i++ {
		record := toRecord(table.Headers, rows[i])
		if isEmptyRow(record) {
			blank++
		}
		table.Rows = append(table.Rows, record)
	}

	e.log.WithFields(logrus.Fields{
		"path":    path,
		"sheet":   sheetName,
		"columns": len(table.Headers),
		"rows":    len(table.Rows),
		"blank":   blank,
	}).Debug("📋 Sheet loaded")

	return table, nil
}

// openWorkbook missing or unreadable files become MissingSourceError
func openWorkbook(path, sheet string) (*excelize.File, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &entity.MissingSourceError{Path: path, Sheet: sheet, Err: entity.ErrSourceNotFound}
		}
		return nil, &entity.MissingSourceError{Path: path, Sheet: sheet, Err: err}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &entity.MissingSourceError{Path: path, Sheet: sheet, Err: fmt.Errorf("failed to open excel file: %w", err)}
	}
	return f, nil
}

// resolveSheet empty name picks the first sheet
func resolveSheet(f *excelize.File, path, sheet string) (string, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return "", &entity.MissingSourceError{Path: path, Err: fmt.Errorf("excel file has no sheets: %w", entity.ErrSourceNotFound)}
		}
		return sheets[0], nil
	}

	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return "", &entity.MissingSourceError{Path: path, Sheet: sheet, Err: fmt.Errorf("sheet does not exist: %w", entity.ErrSourceNotFound)}
	}
	return sheet, nil
}

// mapColumns header qatoridan ustun nomlarini olish.
// Blank headers stay "" and their cells are not addressable.
func mapColumns(header []string) []string {
	columns := make([]string, len(header))
	for i, col := range header {
		columns[i] = strings.TrimSpace(col)
	}
	return columns
}

// toRecord short rows are padded; for duplicated header names the first column wins
func toRecord(headers []string, row []string) entity.Record {
	record := make(entity.Record, len(headers))
	for i, col := range headers {
		if col == "" {
			continue
		}
		if _, seen := record[col]; seen {
			continue
		}
		value := ""
		if i < len(row) {
			value = strings.TrimSpace(row[i])
		}
		record[col] = value
	}
	return record
}

// isEmptyRow qator bo'sh yoki yo'qligini tekshirish
func isEmptyRow(row entity.Record) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
