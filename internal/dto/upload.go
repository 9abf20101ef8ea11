package dto

import "mini-mcu/internal/ingest"

// ── Upload results ──

// MasterUploadResult is returned by a master workbook upload.
type MasterUploadResult struct {
	Inserted    int           `json:"inserted"`
	Created     int           `json:"created"`
	Updated     int           `json:"updated"`
	Skipped     int           `json:"skipped"`
	TotalRows   int           `json:"total_rows"`
	BatchID     string        `json:"batch_id"`
	SkippedRows []ingest.Skip `json:"skipped_rows"`
	LogName     string        `json:"log_name,omitempty"`
}

// CheckupUploadResult is returned by a checkup workbook upload.
type CheckupUploadResult struct {
	Inserted    int           `json:"inserted"`
	Skipped     int           `json:"skipped"`
	TotalRows   int           `json:"total_rows"`
	Variant     string        `json:"variant"`
	SkippedRows []ingest.Skip `json:"skipped_rows"`
	InsertedIDs []int64       `json:"inserted_ids"`
	LogName     string        `json:"log_name,omitempty"`
}

// ── Upload logs ──

// UploadLogSummary is one entry of the upload log listing.
type UploadLogSummary struct {
	Name         string `json:"name"`
	Kind         string `json:"kind"`
	Filename     string `json:"filename"`
	Inserted     int    `json:"inserted"`
	SkippedCount int    `json:"skipped_count"`
	Timestamp    string `json:"timestamp"`
	Undoable     bool   `json:"undoable"`
}

// UploadLogDetail is a stored batch log with its file name.
type UploadLogDetail struct {
	Name string `json:"name"`
	ingest.BatchLog
}

// UndoUploadsRequest selects several logs to undo.
type UndoUploadsRequest struct {
	Names []string `json:"names" binding:"required,min=1,dive,required"`
}

// UndoResult reports one undone batch.
type UndoResult struct {
	Name    string `json:"name"`
	Deleted int64  `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

// PurgeResult reports a purge of every checkup upload.
type PurgeResult struct {
	Logs    int   `json:"logs"`
	Deleted int64 `json:"deleted"`
}
