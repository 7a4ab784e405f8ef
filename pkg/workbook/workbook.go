// Package workbook reads the club's Excel workbook into typed records.
// The column headers are German; the header-text to field mapping lives
// in Columns and can be overridden with a YAML file.
package workbook

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Workbook gives sheet-level access to a tabular source. The concrete
// reader is chosen by file extension.
type Workbook interface {
	Rows(sheet string) ([][]string, error)
	Close() error
}

// Open picks the reader for the workbook format.
func Open(path string) (Workbook, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return openXLSX(path)
	case ".xls":
		return openXLS(path)
	default:
		return nil, fmt.Errorf("unsupported workbook format %q", ext)
	}
}

// records maps raw sheet rows into field-keyed records using the header
// table. Columns whose header is not in the table are ignored; cells
// missing at the end of a row read as empty strings.
func records(wb Workbook, sheet string, headerRow int, headers map[string]string) ([]map[string]string, error) {
	rows, err := wb.Rows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < headerRow {
		return nil, fmt.Errorf("sheet %q has no header row", sheet)
	}

	header := rows[headerRow-1]
	fields := make([]string, len(header))
	for i, cell := range header {
		fields[i] = headers[strings.TrimSpace(cell)]
	}

	out := make([]map[string]string, 0, len(rows)-headerRow)
	for _, row := range rows[headerRow:] {
		if isEmptyRow(row) {
			continue
		}
		entry := make(map[string]string, len(fields))
		for i, field := range fields {
			if field == "" {
				continue
			}
			if i < len(row) {
				entry[field] = strings.TrimSpace(row[i])
			} else {
				entry[field] = ""
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
