package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mini-mcu/internal/dto"
	"mini-mcu/internal/ingest"
	"mini-mcu/internal/repository"
	"mini-mcu/pkg/auditlog"
)

// ── Upload errors ──

var (
	ErrWorkbookUnreadable = ingest.ErrWorkbookUnreadable
	ErrEmptyWorkbook      = errors.New("workbook has no sheets")
)

// UploadFile is one submitted workbook.
type UploadFile struct {
	Name   string
	Reader io.Reader
	Actor  string
}

// MasterUploadService upserts employee master records from a workbook.
type MasterUploadService interface {
	Upload(ctx context.Context, file UploadFile) (*dto.MasterUploadResult, error)
	// Reconcile processes an already decoded workbook without writing an
	// audit log.
	Reconcile(ctx context.Context, wb *ingest.Workbook, batchID string) (*ingest.Report, *MasterCounts)
}

// MasterCounts splits the upserted rows into inserts and updates.
type MasterCounts struct {
	Created int
	Updated int
}

type masterUploadService struct {
	repo   *repository.Repository
	audit  *auditlog.Writer
	clock  ingest.Clock
	logger *zap.Logger
}

// NewMasterUploadService creates a MasterUploadService.
func NewMasterUploadService(repo *repository.Repository, audit *auditlog.Writer, clock ingest.Clock, logger *zap.Logger) MasterUploadService {
	return &masterUploadService{repo: repo, audit: audit, clock: clock, logger: logger}
}

// ────────────────────── Upload ──────────────────────

func (s *masterUploadService) Upload(ctx context.Context, file UploadFile) (*dto.MasterUploadResult, error) {
	wb, err := ingest.ReadWorkbook(file.Reader)
	if err != nil {
		return nil, err
	}
	if len(wb.Sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}

	batchID := uuid.NewString()
	report, counts := s.Reconcile(ctx, wb, batchID)

	now := s.clock.Now()
	entry := report.BatchLog(ingest.KindMaster, file.Name, now)
	entry.BatchID = batchID
	entry.Actor = file.Actor
	logName, err := s.audit.Append(auditlog.BatchName(ingest.KindMaster, now, file.Name), entry)
	if err != nil {
		s.logger.Error("write master upload log failed", zap.String("batch_id", batchID), zap.Error(err))
	}

	s.logger.Info("master upload processed",
		zap.String("file", file.Name),
		zap.String("batch_id", batchID),
		zap.Int("inserted", report.Inserted),
		zap.Int("skipped", report.SkippedCount()),
	)

	return &dto.MasterUploadResult{
		Inserted:    report.Inserted,
		Created:     counts.Created,
		Updated:     counts.Updated,
		Skipped:     report.SkippedCount(),
		TotalRows:   report.TotalRows,
		BatchID:     batchID,
		SkippedRows: report.Skipped,
		LogName:     logName,
	}, nil
}

// ────────────────────── Reconcile ──────────────────────

func (s *masterUploadService) Reconcile(ctx context.Context, wb *ingest.Workbook, batchID string) (*ingest.Report, *MasterCounts) {
	report := ingest.NewReport()
	counts := &MasterCounts{}
	columns := s.liveColumns(ctx)
	uploadedAt := s.clock.Now()
	seenLokasi := make(map[string]struct{})

	for i := range wb.Sheets {
		sheet := &wb.Sheets[i]
		report.AddSheetRows(len(sheet.Rows))

		cols := ingest.ResolveColumns(sheet.Header, ingest.MasterAliases)
		fallback := ingest.NormalizeString(sheet.Name)

		for _, row := range sheet.Rows {
			plan, skip := planMasterRow(sheet.Name, fallback, cols, row)
			if skip != nil {
				s.logger.Debug("master row skipped", zap.String("sheet", skip.Sheet), zap.Int("row", row.Number), zap.String("reason", skip.Reason))
				report.AddSkip(skip.Sheet, row.Number, skip.Reason)
				continue
			}

			plan.Fields[fieldUploadedAt] = uploadedAt
			plan.Fields[fieldUploadBatchID] = batchID
			fields := intersectColumns(plan.Fields, columns)

			created, err := s.repo.Employee.Upsert(ctx, plan.UID, fields)
			if err != nil {
				s.logger.Warn("master row write failed", zap.String("sheet", sheet.Name), zap.Int("row", row.Number), zap.Error(err))
				report.AddSkip(sheet.Name, row.Number, err.Error())
				continue
			}
			report.AddInserted(plan.UID)
			if created {
				counts.Created++
			} else {
				counts.Updated++
			}

			if lokasi, ok := fields[ingest.FieldLokasi].(string); ok {
				s.registerLokasi(ctx, lokasi, seenLokasi)
			}
		}
	}
	return report, counts
}

// Columns written by the reconciler itself rather than taken from the sheet.
const (
	fieldUploadedAt    = "uploaded_at"
	fieldUploadBatchID = "upload_batch_id"
)

// masterPlan is the write derived from one master row.
type masterPlan struct {
	UID    string
	Fields map[string]any
}

// planMasterRow turns a row into an upsert plan, or explains why it cannot.
// Only fields with a parsed value are proposed, so blank cells never erase
// stored data.
func planMasterRow(sheet, fallbackLokasi string, cols ingest.ColumnMap, row ingest.Row) (*masterPlan, *ingest.Skip) {
	cell := func(field string) string { return cols.Cell(row.Cells, field) }

	uid := ingest.NormalizeIdentifier(cell(ingest.FieldUID))
	nama := ingest.NormalizeString(cell(ingest.FieldNama))
	jabatan := ingest.NormalizeString(cell(ingest.FieldJabatan))
	if uid == "" && nama == "" {
		return nil, &ingest.Skip{Sheet: sheet, Row: ingest.RowNumber(row.Number), Reason: ingest.ReasonMissingUIDAndNama, Rows: 1}
	}
	if uid == "" {
		uid = ingest.DeriveUID(nama, jabatan)
	}

	lokasi := ingest.NormalizeString(cell(ingest.FieldLokasi))
	if lokasi == "" {
		lokasi = fallbackLokasi
	}

	fields := map[string]any{}
	putString(fields, ingest.FieldNama, nama)
	putString(fields, ingest.FieldJabatan, jabatan)
	putString(fields, ingest.FieldLokasi, lokasi)
	putDate(fields, ingest.FieldTanggalLahir, ingest.SafeDate(cell(ingest.FieldTanggalLahir)))
	putDate(fields, ingest.FieldTanggalMCU, ingest.SafeDate(cell(ingest.FieldTanggalMCU)))
	putDate(fields, ingest.FieldExpiredMCU, ingest.SafeDate(cell(ingest.FieldExpiredMCU)))
	if umur := ingest.ParseAge(cell(ingest.FieldUmur)); umur != nil {
		fields[ingest.FieldUmur] = *umur
	}
	putString(fields, ingest.FieldDerajat, ingest.NormalizeGrade(cell(ingest.FieldDerajat)))
	putFloat(fields, ingest.FieldTinggi, ingest.SafeMeasure(cell(ingest.FieldTinggi)))
	putFloat(fields, ingest.FieldBerat, ingest.SafeMeasure(cell(ingest.FieldBerat)))
	putFloat(fields, ingest.FieldBMI, ingest.SafeMeasure(cell(ingest.FieldBMI)))
	putString(fields, ingest.FieldBMICategory, ingest.NormalizeString(cell(ingest.FieldBMICategory)))

	return &masterPlan{UID: uid, Fields: fields}, nil
}

// liveColumns returns the karyawan columns, or nil when they cannot be read.
// A nil set disables the intersection.
func (s *masterUploadService) liveColumns(ctx context.Context) repository.ColumnSet {
	cols, err := s.repo.Schema.Columns(ctx, employeeTable)
	if err != nil {
		s.logger.Warn("schema introspection failed, writing all proposed fields", zap.Error(err))
		return nil
	}
	if len(cols) == 0 {
		return nil
	}
	return cols
}

func (s *masterUploadService) registerLokasi(ctx context.Context, lokasi string, seen map[string]struct{}) {
	if _, ok := seen[lokasi]; ok {
		return
	}
	seen[lokasi] = struct{}{}
	if err := s.repo.Lokasi.Ensure(ctx, lokasi); err != nil {
		s.logger.Warn("register lokasi failed", zap.String("lokasi", lokasi), zap.Error(err))
	}
}

// ── Field helpers ──

const (
	employeeTable = "karyawan"
	checkupTable  = "checkups"
)

func intersectColumns(fields map[string]any, cols repository.ColumnSet) map[string]any {
	if cols == nil {
		return fields
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if cols.Has(k) {
			out[k] = v
		}
	}
	return out
}

func putString(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

func putDate(m map[string]any, key string, v *time.Time) {
	if v != nil {
		m[key] = *v
	}
}

func putFloat(m map[string]any, key string, v *float64) {
	if v != nil {
		m[key] = *v
	}
}
