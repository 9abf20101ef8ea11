package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"mini-mcu/internal/ingest"
	"mini-mcu/internal/model"
	"mini-mcu/internal/repository"
)

// ── Template errors ──

var (
	ErrTemplateGenerateFail = errors.New("failed to generate checkup template")
)

// templateColumns is the header of a checkup template. The first five
// columns are prefilled from the directory.
var templateColumns = []string{
	ingest.FieldUID,
	ingest.FieldNama,
	ingest.FieldJabatan,
	ingest.FieldLokasi,
	ingest.FieldTanggalLahir,
	ingest.FieldTanggalCheckup,
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
	ingest.FieldKeterangan,
}

const defaultTemplateSheet = "checkups"

// TemplateService produces checkup upload templates.
type TemplateService interface {
	// CheckupTemplate returns an xlsx with one sheet per location, each
	// listing that location's employees. An empty lokasi covers every site.
	CheckupTemplate(ctx context.Context, lokasi string) (*bytes.Buffer, string, error)
}

type templateService struct {
	repo   *repository.Repository
	clock  ingest.Clock
	logger *zap.Logger
}

// NewTemplateService creates a TemplateService.
func NewTemplateService(repo *repository.Repository, clock ingest.Clock, logger *zap.Logger) TemplateService {
	return &templateService{repo: repo, clock: clock, logger: logger}
}

// ────────────────────── CheckupTemplate ──────────────────────

func (s *templateService) CheckupTemplate(ctx context.Context, lokasi string) (*bytes.Buffer, string, error) {
	lokasi = ingest.NormalizeString(lokasi)
	emps, err := s.repo.Employee.List(ctx, lokasi)
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return nil, "", err
	}

	// Employees arrive ordered by lokasi, so sheets follow that order.
	var order []string
	bySheet := make(map[string][]model.Employee)
	for _, e := range emps {
		name := sheetName(e.Lokasi)
		if _, ok := bySheet[name]; !ok {
			order = append(order, name)
		}
		bySheet[name] = append(bySheet[name], e)
	}
	if len(order) == 0 {
		order = []string{sheetName(lokasi)}
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, name := range order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, "", s.fail(err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, "", s.fail(err)
		}
		if err := writeTemplateSheet(f, name, bySheet[name], headerStyle); err != nil {
			return nil, "", s.fail(err)
		}
	}
	f.SetActiveSheet(0)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", s.fail(err)
	}

	suffix := "all"
	if lokasi != "" {
		suffix = sheetName(lokasi)
	}
	filename := fmt.Sprintf("checkup_template_%s_%s.xlsx", suffix, s.clock.Now().Format("20060102"))
	return buf, filename, nil
}

func (s *templateService) fail(err error) error {
	s.logger.Error("write checkup template failed", zap.Error(err))
	return ErrTemplateGenerateFail
}

func writeTemplateSheet(f *excelize.File, sheet string, emps []model.Employee, headerStyle int) error {
	header := make([]any, len(templateColumns))
	for i, c := range templateColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, _ := excelize.ColumnNumberToName(len(templateColumns))
	f.SetCellStyle(sheet, "A1", last+"1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 38)
	f.SetColWidth(sheet, "B", last, 16)

	for i, e := range emps {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{e.UID, e.Nama, e.Jabatan, e.Lokasi, formatDate(e.TanggalLahir)}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// sheetName makes a location usable as a worksheet name.
func sheetName(lokasi string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '_'
		}
		return r
	}, strings.TrimSpace(lokasi))
	name = strings.Trim(name, "'")
	if name == "" {
		return defaultTemplateSheet
	}
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	return name
}
