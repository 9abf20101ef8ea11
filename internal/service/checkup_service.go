package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"mini-mcu/internal/dto"
	"mini-mcu/internal/ingest"
	"mini-mcu/internal/model"
	"mini-mcu/internal/repository"
	"mini-mcu/pkg/auditlog"
)

// ── Checkup errors ──

var (
	ErrCheckupNotFound = errors.New("checkup not found")
)

// CheckupService serves checkup history and manual single-row entry.
type CheckupService interface {
	CreateManual(ctx context.Context, uid string, req *dto.CreateCheckupRequest, caller Caller) (*dto.CreateCheckupResult, error)
	// History returns the checkups of uid, newest first, merged with the
	// employee baseline.
	History(ctx context.Context, uid string) ([]dto.CheckupView, error)
	Latest(ctx context.Context, uid string) (*dto.CheckupView, error)
}

type checkupService struct {
	repo       *repository.Repository
	audit      *auditlog.Writer
	clock      ingest.Clock
	precedence string
	logger     *zap.Logger
}

// NewCheckupService creates a CheckupService. precedence decides which
// location wins in merged views.
func NewCheckupService(repo *repository.Repository, audit *auditlog.Writer, clock ingest.Clock, precedence string, logger *zap.Logger) CheckupService {
	return &checkupService{repo: repo, audit: audit, clock: clock, precedence: precedence, logger: logger}
}

// ────────────────────── CreateManual ──────────────────────

func (s *checkupService) CreateManual(ctx context.Context, uid string, req *dto.CreateCheckupRequest, caller Caller) (*dto.CreateCheckupResult, error) {
	emp, err := s.employee(ctx, uid)
	if err != nil {
		return nil, err
	}

	date := ingest.Today(s.clock)
	if !ingest.IsBlank(req.TanggalCheckup) {
		d := ingest.SafeDate(req.TanggalCheckup)
		if d == nil {
			return nil, ErrInvalidDate
		}
		date = *d
	}

	c := &model.Checkup{
		UID:              uid,
		TanggalCheckup:   date,
		TanggalLahir:     emp.TanggalLahir,
		Umur:             req.Umur,
		Tinggi:           ingest.RoundMeasure(req.Tinggi),
		Berat:            ingest.RoundMeasure(req.Berat),
		LingkarPerut:     ingest.RoundMeasure(req.LingkarPerut),
		BMI:              ingest.RoundMeasure(req.BMI),
		GulaDarahPuasa:   ingest.RoundMeasure(req.GulaDarahPuasa),
		GulaDarahSewaktu: ingest.RoundMeasure(req.GulaDarahSewaktu),
		Cholesterol:      ingest.RoundMeasure(req.Cholesterol),
		AsamUrat:         ingest.RoundMeasure(req.AsamUrat),
		TekananDarah:     ingest.Nullable(ingest.NormalizeText(req.TekananDarah)),
		DerajatKesehatan: ingest.Nullable(ingest.NormalizeGrade(req.DerajatKesehatan)),
		Keterangan:       ingest.Nullable(ingest.NormalizeText(req.Keterangan)),
		Lokasi:           ingest.Nullable(ingest.NormalizeString(req.Lokasi)),
	}
	if c.DerajatKesehatan != nil && !derajatPattern.MatchString(*c.DerajatKesehatan) {
		return nil, ErrInvalidDerajat
	}
	if c.Lokasi == nil {
		c.Lokasi = ingest.Nullable(emp.Lokasi)
	}
	c.Status = ingest.ComputeStatus(ingest.Vitals{
		GulaDarahPuasa:   c.GulaDarahPuasa,
		GulaDarahSewaktu: c.GulaDarahSewaktu,
		Cholesterol:      c.Cholesterol,
		AsamUrat:         c.AsamUrat,
		BMI:              c.BMI,
	})

	if err := s.repo.Checkup.Create(ctx, c, s.missingColumns(ctx)...); err != nil {
		s.logger.Error("create checkup failed", zap.String("uid", uid), zap.Error(err))
		return nil, err
	}

	now := s.clock.Now()
	entry := newManualLog(uid, caller, EventManualCheckupInput, now, checkupValues(c))
	entry.CheckupID = &c.CheckupID
	logName, err := writeManualLog(s.audit, entry, now)
	if err != nil {
		s.logger.Error("write manual checkup log failed", zap.Int64("checkup_id", c.CheckupID), zap.Error(err))
	}

	s.logger.Info("manual checkup created", zap.String("uid", uid), zap.Int64("checkup_id", c.CheckupID), zap.String("actor", caller.ID))
	return &dto.CreateCheckupResult{
		Checkup: mergeCheckup(c, emp, s.precedence),
		LogName: logName,
	}, nil
}

// ────────────────────── History / Latest ──────────────────────

func (s *checkupService) History(ctx context.Context, uid string) ([]dto.CheckupView, error) {
	emp, err := s.employee(ctx, uid)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.Checkup.ListByUID(ctx, uid)
	if err != nil {
		s.logger.Error("list checkups failed", zap.String("uid", uid), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CheckupView, 0, len(list))
	for i := range list {
		result = append(result, mergeCheckup(&list[i], emp, s.precedence))
	}
	return result, nil
}

func (s *checkupService) Latest(ctx context.Context, uid string) (*dto.CheckupView, error) {
	history, err := s.History(ctx, uid)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, ErrCheckupNotFound
	}
	return &history[0], nil
}

// ── Helpers ──

func (s *checkupService) employee(ctx context.Context, uid string) (*model.Employee, error) {
	emp, err := s.repo.Employee.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("get employee failed", zap.String("uid", uid), zap.Error(err))
		return nil, err
	}
	return emp, nil
}

func (s *checkupService) missingColumns(ctx context.Context) []string {
	omit, _ := missingCheckupColumns(ctx, s.repo.Schema)
	return omit
}

// checkupValues lists the values a manual checkup actually carries.
func checkupValues(c *model.Checkup) map[string]any {
	m := map[string]any{
		ingest.FieldTanggalCheckup: c.TanggalCheckup,
		"status":                   c.Status,
	}
	if c.Umur != nil {
		m[ingest.FieldUmur] = *c.Umur
	}
	putFloat(m, ingest.FieldTinggi, c.Tinggi)
	putFloat(m, ingest.FieldBerat, c.Berat)
	putFloat(m, ingest.FieldLingkarPerut, c.LingkarPerut)
	putFloat(m, ingest.FieldBMI, c.BMI)
	putFloat(m, ingest.FieldGulaPuasa, c.GulaDarahPuasa)
	putFloat(m, ingest.FieldGulaSewaktu, c.GulaDarahSewaktu)
	putFloat(m, ingest.FieldCholesterol, c.Cholesterol)
	putFloat(m, ingest.FieldAsamUrat, c.AsamUrat)
	putString(m, ingest.FieldTekananDarah, stringOf(c.TekananDarah))
	putString(m, ingest.FieldDerajat, stringOf(c.DerajatKesehatan))
	putString(m, ingest.FieldKeterangan, stringOf(c.Keterangan))
	putString(m, ingest.FieldLokasi, stringOf(c.Lokasi))
	return m
}
