package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"mini-mcu/internal/dto"
	"mini-mcu/internal/ingest"
	"mini-mcu/internal/model"
	"mini-mcu/internal/repository"
	"mini-mcu/pkg/auditlog"
)

// CheckupUploadService inserts checkup rows from either workbook variant.
type CheckupUploadService interface {
	Upload(ctx context.Context, file UploadFile, variant ingest.Variant) (*dto.CheckupUploadResult, error)
	// Reconcile processes an already decoded workbook without writing an
	// audit log. variant must already be resolved.
	Reconcile(ctx context.Context, wb *ingest.Workbook, variant ingest.Variant) (*ingest.Report, []int64)
}

type checkupUploadService struct {
	repo   *repository.Repository
	audit  *auditlog.Writer
	clock  ingest.Clock
	logger *zap.Logger
}

// NewCheckupUploadService creates a CheckupUploadService.
func NewCheckupUploadService(repo *repository.Repository, audit *auditlog.Writer, clock ingest.Clock, logger *zap.Logger) CheckupUploadService {
	return &checkupUploadService{repo: repo, audit: audit, clock: clock, logger: logger}
}

// optionalCheckupColumns may be missing from databases that predate them.
var optionalCheckupColumns = []string{
	ingest.FieldTanggalLahir,
	ingest.FieldUmur,
	ingest.FieldTinggi,
	ingest.FieldBerat,
	ingest.FieldBMI,
	ingest.FieldLingkarPerut,
	ingest.FieldGulaPuasa,
	ingest.FieldGulaSewaktu,
	ingest.FieldCholesterol,
	ingest.FieldAsamUrat,
	ingest.FieldTekananDarah,
	ingest.FieldDerajat,
	ingest.FieldLokasi,
	ingest.FieldKeterangan,
	"status",
}

// ────────────────────── Upload ──────────────────────

func (s *checkupUploadService) Upload(ctx context.Context, file UploadFile, variant ingest.Variant) (*dto.CheckupUploadResult, error) {
	wb, err := ingest.ReadWorkbook(file.Reader)
	if err != nil {
		return nil, err
	}
	if len(wb.Sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}

	variant = variant.Resolve(wb)
	report, ids := s.Reconcile(ctx, wb, variant)

	now := s.clock.Now()
	entry := report.BatchLog(ingest.KindCheckups, file.Name, now)
	entry.Variant = string(variant)
	entry.Actor = file.Actor
	logName, err := s.audit.Append(auditlog.BatchName(ingest.KindCheckups, now, file.Name), entry)
	if err != nil {
		// Without the log the batch cannot be undone; the ids are still
		// returned to the caller.
		s.logger.Error("write checkup upload log failed", zap.Int("inserted", len(ids)), zap.Error(err))
	}

	s.logger.Info("checkup upload processed",
		zap.String("file", file.Name),
		zap.String("variant", string(variant)),
		zap.Int("inserted", report.Inserted),
		zap.Int("skipped", report.SkippedCount()),
	)

	return &dto.CheckupUploadResult{
		Inserted:    report.Inserted,
		Skipped:     report.SkippedCount(),
		TotalRows:   report.TotalRows,
		Variant:     string(variant),
		SkippedRows: report.Skipped,
		InsertedIDs: ids,
		LogName:     logName,
	}, nil
}

// ────────────────────── Reconcile ──────────────────────

func (s *checkupUploadService) Reconcile(ctx context.Context, wb *ingest.Workbook, variant ingest.Variant) (*ingest.Report, []int64) {
	report := ingest.NewReport()
	ids := []int64{}
	omit := s.missingColumns(ctx)
	today := ingest.Today(s.clock)
	known := make(map[string]bool)

	for i := range wb.Sheets {
		sheet := &wb.Sheets[i]
		report.AddSheetRows(len(sheet.Rows))
		if len(sheet.Rows) == 0 {
			continue
		}

		cs := s.prepareSheet(ctx, sheet, variant, today, report)
		if cs == nil {
			continue
		}

		for _, row := range sheet.Rows {
			c, skip := cs.plan(row)
			if skip == nil {
				skip = s.checkOwner(ctx, cs.name, row.Number, c.UID, known)
			}
			if skip != nil {
				s.logger.Debug("checkup row skipped", zap.String("sheet", skip.Sheet), zap.Int("row", row.Number), zap.String("reason", skip.Reason))
				report.AddSkip(skip.Sheet, row.Number, skip.Reason)
				continue
			}

			if err := s.repo.Checkup.Create(ctx, c, omit...); err != nil {
				s.logger.Warn("checkup row write failed", zap.String("sheet", cs.name), zap.Int("row", row.Number), zap.Error(err))
				report.AddSkip(cs.name, row.Number, err.Error())
				continue
			}
			report.AddInserted(strconv.FormatInt(c.CheckupID, 10))
			ids = append(ids, c.CheckupID)
		}
	}
	return report, ids
}

// prepareSheet resolves the columns of a sheet and, when it has no uid
// column, maps every row to an employee with one batched lookup. It returns
// nil after rejecting the sheet.
func (s *checkupUploadService) prepareSheet(ctx context.Context, sheet *ingest.Sheet, variant ingest.Variant, today time.Time, report *ingest.Report) *checkupSheet {
	var cols ingest.ColumnMap
	if variant == ingest.VariantAnthropometric {
		cols = ingest.ResolveAnthropometricColumns(sheet.Header, ingest.CheckupAliases)
	} else {
		cols = ingest.ResolveColumns(sheet.Header, ingest.CheckupAliases)
	}

	cs := &checkupSheet{
		name:    sheet.Name,
		cols:    cols,
		lokasi:  ingest.NormalizeString(sheet.Name),
		variant: variant,
		today:   today,
	}
	if cols.Has(ingest.FieldUID) {
		return cs
	}

	if !cols.Has(ingest.FieldNama) || !cols.Has(ingest.FieldJabatan) {
		report.RejectSheet(sheet.Name, len(sheet.Rows), ingest.ReasonMissingNamaJabatan)
		return nil
	}

	keys := make([]ingest.CompositeKey, 0, 2*len(sheet.Rows))
	for _, row := range sheet.Rows {
		keys = append(keys, cs.keys(row)...)
	}
	uids, err := s.repo.Employee.FindUIDsByCompositeKeys(ctx, keys)
	if err != nil {
		s.logger.Error("composite uid lookup failed", zap.String("sheet", sheet.Name), zap.Error(err))
		report.RejectSheet(sheet.Name, len(sheet.Rows), ingest.ReasonUIDMappingFailed+": "+err.Error())
		return nil
	}
	cs.uids = uids
	return cs
}

// checkOwner verifies that uid belongs to an existing employee. Results are
// memoized for the batch.
func (s *checkupUploadService) checkOwner(ctx context.Context, sheet string, row int, uid string, known map[string]bool) *ingest.Skip {
	exists, ok := known[uid]
	if !ok {
		_, err := s.repo.Employee.GetByUID(ctx, uid)
		switch {
		case err == nil:
			exists = true
		case errors.Is(err, gorm.ErrRecordNotFound):
			exists = false
		default:
			return &ingest.Skip{Sheet: sheet, Row: ingest.RowNumber(row), Reason: err.Error(), Rows: 1}
		}
		known[uid] = exists
	}
	if !exists {
		return &ingest.Skip{Sheet: sheet, Row: ingest.RowNumber(row), Reason: ingest.ReasonUIDNotFound, Rows: 1}
	}
	return nil
}

func (s *checkupUploadService) missingColumns(ctx context.Context) []string {
	omit, err := missingCheckupColumns(ctx, s.repo.Schema)
	if err != nil {
		s.logger.Warn("schema introspection failed, writing every checkup column", zap.Error(err))
	}
	return omit
}

// missingCheckupColumns lists the optional checkup columns the live
// database lacks. Nothing is omitted when the schema cannot be read.
func missingCheckupColumns(ctx context.Context, schema repository.SchemaInspector) ([]string, error) {
	cols, err := schema.Columns(ctx, checkupTable)
	if err != nil || len(cols) == 0 {
		return nil, err
	}
	var omit []string
	for _, c := range optionalCheckupColumns {
		if !cols.Has(c) {
			omit = append(omit, c)
		}
	}
	return omit, nil
}

// ── Per-sheet planning ──

// checkupSheet holds what every row of one sheet shares.
type checkupSheet struct {
	name    string
	cols    ingest.ColumnMap
	lokasi  string
	variant ingest.Variant
	today   time.Time
	// uids is set when the sheet is mapped by composite key.
	uids map[ingest.CompositeKey]string
}

func (cs *checkupSheet) cell(row ingest.Row, field string) string {
	return cs.cols.Cell(row.Cells, field)
}

// keys returns the lookup keys of a row, most specific first. A location
// taken from the sheet name is only a hint, so a second key without it is
// tried as well.
func (cs *checkupSheet) keys(row ingest.Row) []ingest.CompositeKey {
	nama := ingest.NormalizeString(cs.cell(row, ingest.FieldNama))
	if nama == "" {
		return nil
	}
	jabatan := ingest.NormalizeString(cs.cell(row, ingest.FieldJabatan))
	birth := ingest.SafeDate(cs.cell(row, ingest.FieldTanggalLahir))

	if lokasi := ingest.NormalizeString(cs.cell(row, ingest.FieldLokasi)); lokasi != "" {
		return []ingest.CompositeKey{ingest.NewCompositeKey(nama, jabatan, lokasi, birth)}
	}
	return []ingest.CompositeKey{
		ingest.NewCompositeKey(nama, jabatan, cs.lokasi, birth),
		ingest.NewCompositeKey(nama, jabatan, "", birth),
	}
}

func (cs *checkupSheet) resolveUID(row ingest.Row) string {
	if cs.uids == nil {
		return ingest.NormalizeIdentifier(cs.cell(row, ingest.FieldUID))
	}
	for _, k := range cs.keys(row) {
		if uid, ok := cs.uids[k]; ok {
			return uid
		}
	}
	return ""
}

// plan builds the checkup for a row, or explains why there is none. It
// does not touch the database.
func (cs *checkupSheet) plan(row ingest.Row) (*model.Checkup, *ingest.Skip) {
	uid := cs.resolveUID(row)
	if uid == "" {
		return nil, &ingest.Skip{Sheet: cs.name, Row: ingest.RowNumber(row.Number), Reason: ingest.ReasonUIDMissing, Rows: 1}
	}

	c := &model.Checkup{
		UID:              uid,
		TanggalCheckup:   cs.checkupDate(row),
		TanggalLahir:     ingest.SafeDate(cs.cell(row, ingest.FieldTanggalLahir)),
		Umur:             ingest.ParseAge(cs.cell(row, ingest.FieldUmur)),
		Tinggi:           ingest.SafeMeasure(cs.cell(row, ingest.FieldTinggi)),
		Berat:            ingest.SafeMeasure(cs.cell(row, ingest.FieldBerat)),
		BMI:              ingest.SafeMeasure(cs.cell(row, ingest.FieldBMI)),
		LingkarPerut:     ingest.SafeMeasure(cs.cell(row, ingest.FieldLingkarPerut)),
		GulaDarahPuasa:   ingest.SafeMeasure(cs.cell(row, ingest.FieldGulaPuasa)),
		GulaDarahSewaktu: ingest.SafeMeasure(cs.cell(row, ingest.FieldGulaSewaktu)),
		Cholesterol:      ingest.SafeMeasure(cs.cell(row, ingest.FieldCholesterol)),
		AsamUrat:         ingest.SafeMeasure(cs.cell(row, ingest.FieldAsamUrat)),
		TekananDarah:     ingest.Nullable(ingest.NormalizeText(cs.cell(row, ingest.FieldTekananDarah))),
		DerajatKesehatan: ingest.Nullable(ingest.NormalizeGrade(cs.cell(row, ingest.FieldDerajat))),
		Keterangan:       ingest.Nullable(ingest.NormalizeText(cs.cell(row, ingest.FieldKeterangan))),
		Lokasi:           ingest.Nullable(ingest.NormalizeString(cs.cell(row, ingest.FieldLokasi))),
	}
	if c.Lokasi == nil {
		c.Lokasi = ingest.Nullable(cs.lokasi)
	}
	c.Status = ingest.ComputeStatus(ingest.Vitals{
		GulaDarahPuasa:   c.GulaDarahPuasa,
		GulaDarahSewaktu: c.GulaDarahSewaktu,
		Cholesterol:      c.Cholesterol,
		AsamUrat:         c.AsamUrat,
		BMI:              c.BMI,
	})
	return c, nil
}

// checkupDate is the row's checkup date, then (anthropometric sheets only)
// its MCU date, then today.
func (cs *checkupSheet) checkupDate(row ingest.Row) time.Time {
	if d := ingest.SafeDate(cs.cell(row, ingest.FieldTanggalCheckup)); d != nil {
		return *d
	}
	if cs.variant == ingest.VariantAnthropometric {
		if d := ingest.SafeDate(cs.cell(row, ingest.FieldTanggalMCU)); d != nil {
			return *d
		}
	}
	return cs.today
}
