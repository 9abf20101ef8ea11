package ingest

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Skip reasons shared by the reconcilers.
const (
	ReasonMissingUIDAndNama  = "Missing uid and nama"
	ReasonUIDNotFound        = "UID not found in database"
	ReasonUIDMissing         = "UID missing"
	ReasonMissingNamaJabatan = "Missing nama/jabatan for UID mapping"
	ReasonUIDMappingFailed   = "UID mapping failed"
)

// RowRef points at a spreadsheet row, or at a whole sheet ("all").
type RowRef struct {
	n int
}

// RowNumber refers to a single spreadsheet row.
func RowNumber(n int) RowRef { return RowRef{n: n} }

// AllRows refers to every row of a sheet.
func AllRows() RowRef { return RowRef{} }

// IsAll reports whether the reference covers a whole sheet.
func (r RowRef) IsAll() bool { return r.n == 0 }

// Number returns the row number, or 0 for a sheet reference.
func (r RowRef) Number() int { return r.n }

func (r RowRef) String() string {
	if r.IsAll() {
		return "all"
	}
	return strconv.Itoa(r.n)
}

// MarshalJSON writes a row number, or the string "all".
func (r RowRef) MarshalJSON() ([]byte, error) {
	if r.IsAll() {
		return []byte(`"all"`), nil
	}
	return []byte(strconv.Itoa(r.n)), nil
}

// UnmarshalJSON accepts both shapes written by MarshalJSON.
func (r *RowRef) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s != "all" {
			return fmt.Errorf("invalid row reference %q", s)
		}
		r.n = 0
		return nil
	}
	return json.Unmarshal(b, &r.n)
}

// Skip records one rejected row or sheet. Rows is the number of data rows
// the entry covers: 1 for a row skip, the sheet size for a sheet rejection.
type Skip struct {
	Sheet  string `json:"sheet"`
	Row    RowRef `json:"row"`
	Reason string `json:"reason"`
	Rows   int    `json:"rows"`
}

// Report accumulates the outcome of one upload across all sheets.
type Report struct {
	Inserted    int
	Skipped     []Skip
	InsertedIDs []string
	TotalRows   int
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{Skipped: []Skip{}, InsertedIDs: []string{}}
}

// AddSheetRows counts the data rows of a sheet before it is processed.
func (r *Report) AddSheetRows(n int) { r.TotalRows += n }

// AddInserted records a written row.
func (r *Report) AddInserted(id string) {
	r.Inserted++
	r.InsertedIDs = append(r.InsertedIDs, id)
}

// AddSkip records a rejected row.
func (r *Report) AddSkip(sheet string, row int, reason string) {
	r.Skipped = append(r.Skipped, Skip{Sheet: sheet, Row: RowNumber(row), Reason: reason, Rows: 1})
}

// RejectSheet records a whole sheet as skipped with a single "all" entry.
func (r *Report) RejectSheet(sheet string, rows int, reason string) {
	r.Skipped = append(r.Skipped, Skip{Sheet: sheet, Row: AllRows(), Reason: reason, Rows: rows})
}

// SkippedCount is the number of data rows skipped, counting every row a sheet
// rejection covers. Inserted + SkippedCount always equals TotalRows.
func (r *Report) SkippedCount() int {
	n := 0
	for _, s := range r.Skipped {
		n += s.Rows
	}
	return n
}

// Upload kinds, used as audit log filename prefixes.
const (
	KindMaster   = "master"
	KindCheckups = "checkups"
)

// BatchLog is the immutable audit record written once per upload.
type BatchLog struct {
	Kind         string   `json:"kind"`
	Filename     string   `json:"filename"`
	BatchID      string   `json:"batch_id,omitempty"`
	Variant      string   `json:"variant,omitempty"`
	Actor        string   `json:"actor,omitempty"`
	Inserted     int      `json:"inserted"`
	SkippedCount int      `json:"skipped_count"`
	Skipped      []Skip   `json:"skipped"`
	InsertedIDs  []string `json:"inserted_ids"`
	Timestamp    string   `json:"timestamp"`
}

// BatchLog snapshots the report for persistence.
func (r *Report) BatchLog(kind, filename string, at time.Time) BatchLog {
	return BatchLog{
		Kind:         kind,
		Filename:     filename,
		Inserted:     r.Inserted,
		SkippedCount: r.SkippedCount(),
		Skipped:      r.Skipped,
		InsertedIDs:  r.InsertedIDs,
		Timestamp:    at.Format("2006-01-02T15:04:05"),
	}
}
