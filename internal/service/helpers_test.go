package service

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"mini-mcu/internal/ingest"
	"mini-mcu/pkg/auditlog"
)

// ── Workbook builders ──

type sheetData struct {
	name string
	rows [][]string
}

func workbook(sheets ...sheetData) *ingest.Workbook {
	wb := &ingest.Workbook{}
	for _, s := range sheets {
		wb.Sheets = append(wb.Sheets, ingest.NewSheet(s.name, s.rows))
	}
	return wb
}

// xlsxFile encodes sheets as a real xlsx stream.
func xlsxFile(t *testing.T, sheets ...sheetData) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
		for r, row := range s.rows {
			cells := make([]any, len(row))
			for c, v := range row {
				cells[c] = v
			}
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			if err := f.SetSheetRow(s.name, cell, &cells); err != nil {
				t.Fatalf("write row: %v", err)
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		t.Fatalf("encode workbook: %v", err)
	}
	return buf
}

func newTestAudit(t *testing.T) *auditlog.Writer {
	t.Helper()
	w, err := auditlog.NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	return w
}

func assertAccounting(t *testing.T, r *ingest.Report) {
	t.Helper()
	if r.Inserted+r.SkippedCount() != r.TotalRows {
		t.Errorf("inserted %d + skipped %d != total rows %d", r.Inserted, r.SkippedCount(), r.TotalRows)
	}
}
