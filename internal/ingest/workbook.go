package ingest

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ErrWorkbookUnreadable is returned when an upload is not a readable workbook.
// It is the only fatal error of an ingestion run.
var ErrWorkbookUnreadable = errors.New("workbook cannot be read")

// Workbook is an uploaded file reduced to text cells.
type Workbook struct {
	Sheets []Sheet
}

// Sheet is one tab: the first row is the header, the rest are data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   []Row
}

// Row is a data row. Number is the spreadsheet row number, so the first data
// row under the header is row 2.
type Row struct {
	Number int
	Cells  []string
}

// Headers returns the union of every sheet's header, in sheet order.
func (w *Workbook) Headers() []string {
	var out []string
	for _, s := range w.Sheets {
		out = append(out, s.Header...)
	}
	return out
}

// ReadWorkbook loads every sheet of an xlsx stream in declared order. Cells
// are read raw, so dates arrive as serial numbers and numbers keep their
// full precision; fully blank rows are dropped but keep their numbering.
func ReadWorkbook(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWorkbookUnreadable, err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", ErrWorkbookUnreadable, name, err)
		}
		wb.Sheets = append(wb.Sheets, NewSheet(name, rows))
	}
	return wb, nil
}

// NewSheet builds a Sheet from raw rows, the first of which is the header.
func NewSheet(name string, rows [][]string) Sheet {
	s := Sheet{Name: name}
	if len(rows) == 0 {
		return s
	}
	s.Header = rows[0]
	for i, cells := range rows[1:] {
		if rowIsBlank(cells) {
			continue
		}
		s.Rows = append(s.Rows, Row{Number: i + 2, Cells: cells})
	}
	return s
}

func rowIsBlank(cells []string) bool {
	for _, c := range cells {
		if !IsBlank(c) {
			return false
		}
	}
	return true
}
