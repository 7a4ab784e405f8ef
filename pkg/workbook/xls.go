package workbook

import (
	"fmt"

	"github.com/extrame/xls"
)

// xlsWorkbook reads the legacy binary format. The treasurer's older
// exports still come in as .xls.
type xlsWorkbook struct {
	book *xls.WorkBook
}

func openXLS(path string) (*xlsWorkbook, error) {
	// Legacy exports are Windows-encoded; utf-8 would mangle umlauted
	// headers like Gläubiger-ID and leave their columns unmapped.
	book, err := xls.Open(path, "cp1252")
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	return &xlsWorkbook{book: book}, nil
}

func (w *xlsWorkbook) Rows(sheet string) ([][]string, error) {
	for i := 0; i < w.book.NumSheets(); i++ {
		ws := w.book.GetSheet(i)
		if ws == nil || ws.Name != sheet {
			continue
		}
		rows := make([][]string, 0, int(ws.MaxRow)+1)
		for r := 0; r <= int(ws.MaxRow); r++ {
			row := ws.Row(r)
			if row == nil {
				rows = append(rows, nil)
				continue
			}
			cells := make([]string, 0, row.LastCol()+1)
			for c := 0; c <= row.LastCol(); c++ {
				cells = append(cells, row.Col(c))
			}
			rows = append(rows, cells)
		}
		return rows, nil
	}
	return nil, fmt.Errorf("sheet %q not found", sheet)
}

func (w *xlsWorkbook) Close() error {
	return nil
}
