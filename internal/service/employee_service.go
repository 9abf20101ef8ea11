package service

import (
	"context"
	"errors"
	"regexp"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"mini-mcu/internal/dto"
	"mini-mcu/internal/ingest"
	"mini-mcu/internal/repository"
	"mini-mcu/pkg/auditlog"
)

// ── Employee errors ──

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidAge       = errors.New("invalid age")
	ErrInvalidDerajat   = errors.New("derajat_kesehatan must be P1..P7")
)

var derajatPattern = regexp.MustCompile(`^P[1-7]$`)

// EmployeeService reads and manually edits master records.
type EmployeeService interface {
	Get(ctx context.Context, uid string) (*dto.EmployeeResponse, error)
	List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, error)
	// Update writes only the provided fields and records the edit in a
	// manual audit log.
	Update(ctx context.Context, uid string, req *dto.UpdateEmployeeRequest, caller Caller) (*dto.ManualEditResult, error)
}

type employeeService struct {
	repo   *repository.Repository
	audit  *auditlog.Writer
	clock  ingest.Clock
	logger *zap.Logger
}

// NewEmployeeService creates an EmployeeService.
func NewEmployeeService(repo *repository.Repository, audit *auditlog.Writer, clock ingest.Clock, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, audit: audit, clock: clock, logger: logger}
}

// ────────────────────── Get ──────────────────────

func (s *employeeService) Get(ctx context.Context, uid string) (*dto.EmployeeResponse, error) {
	emp, err := s.repo.Employee.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("get employee failed", zap.String("uid", uid), zap.Error(err))
		return nil, err
	}
	resp := toEmployeeResponse(emp)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *employeeService) List(ctx context.Context, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, error) {
	emps, err := s.repo.Employee.List(ctx, ingest.NormalizeString(req.Lokasi))
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.EmployeeResponse, 0, len(emps))
	for i := range emps {
		result = append(result, toEmployeeResponse(&emps[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *employeeService) Update(ctx context.Context, uid string, req *dto.UpdateEmployeeRequest, caller Caller) (*dto.ManualEditResult, error) {
	if _, err := s.repo.Employee.GetByUID(ctx, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("get employee failed", zap.String("uid", uid), zap.Error(err))
		return nil, err
	}

	fields, err := employeeEditFields(req)
	if err != nil {
		return nil, err
	}
	if cols, err := s.repo.Schema.Columns(ctx, employeeTable); err == nil && len(cols) > 0 {
		fields = intersectColumns(fields, cols)
	}
	if len(fields) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	if _, err := s.repo.Employee.Upsert(ctx, uid, fields); err != nil {
		s.logger.Error("update employee failed", zap.String("uid", uid), zap.Error(err))
		return nil, err
	}

	now := s.clock.Now()
	entry := newManualLog(uid, caller, EventEditMaster, now, fields)
	logName, err := writeManualLog(s.audit, entry, now)
	if err != nil {
		s.logger.Error("write manual edit log failed", zap.String("uid", uid), zap.Error(err))
	}

	emp, err := s.repo.Employee.GetByUID(ctx, uid)
	if err != nil {
		s.logger.Error("reload employee failed", zap.String("uid", uid), zap.Error(err))
		return nil, err
	}

	s.logger.Info("employee edited", zap.String("uid", uid), zap.String("actor", caller.ID), zap.Strings("fields", entry.ChangedFields))
	return &dto.ManualEditResult{
		Employee:      toEmployeeResponse(emp),
		ChangedFields: entry.ChangedFields,
		LogName:       logName,
	}, nil
}

// employeeEditFields parses a manual edit with the same normalizers the
// master upload uses. Blank values are treated as not provided.
func employeeEditFields(req *dto.UpdateEmployeeRequest) (map[string]any, error) {
	fields := map[string]any{}
	if req.Nama != nil {
		putString(fields, ingest.FieldNama, ingest.NormalizeString(*req.Nama))
	}
	if req.Jabatan != nil {
		putString(fields, ingest.FieldJabatan, ingest.NormalizeString(*req.Jabatan))
	}
	if req.Lokasi != nil {
		putString(fields, ingest.FieldLokasi, ingest.NormalizeString(*req.Lokasi))
	}

	dates := []struct {
		field string
		value *string
	}{
		{ingest.FieldTanggalLahir, req.TanggalLahir},
		{ingest.FieldTanggalMCU, req.TanggalMCU},
		{ingest.FieldExpiredMCU, req.ExpiredMCU},
	}
	for _, d := range dates {
		if d.value == nil || ingest.IsBlank(*d.value) {
			continue
		}
		t := ingest.SafeDate(*d.value)
		if t == nil {
			return nil, ErrInvalidDate
		}
		fields[d.field] = *t
	}

	if req.Umur != nil && !ingest.IsBlank(*req.Umur) {
		umur := ingest.ParseAge(*req.Umur)
		if umur == nil {
			return nil, ErrInvalidAge
		}
		fields[ingest.FieldUmur] = *umur
	}
	if req.DerajatKesehatan != nil && !ingest.IsBlank(*req.DerajatKesehatan) {
		grade := ingest.NormalizeGrade(*req.DerajatKesehatan)
		if !derajatPattern.MatchString(grade) {
			return nil, ErrInvalidDerajat
		}
		fields[ingest.FieldDerajat] = grade
	}
	putFloat(fields, ingest.FieldTinggi, ingest.RoundMeasure(req.Tinggi))
	putFloat(fields, ingest.FieldBerat, ingest.RoundMeasure(req.Berat))
	putFloat(fields, ingest.FieldBMI, ingest.RoundMeasure(req.BMI))
	if req.BMICategory != nil {
		putString(fields, ingest.FieldBMICategory, ingest.NormalizeString(*req.BMICategory))
	}
	return fields, nil
}
