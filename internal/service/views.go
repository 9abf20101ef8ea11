package service

import (
	"time"

	"mini-mcu/config"
	"mini-mcu/internal/dto"
	"mini-mcu/internal/ingest"
	"mini-mcu/internal/model"
)

// ── Read-time merge ──

// mergeCheckup builds the client view of a checkup. BMI and derajat fall
// back to the employee baseline, bmi_category comes from the employee or
// is computed from the effective BMI, and status is recomputed from the
// effective values. emp may be nil.
func mergeCheckup(c *model.Checkup, emp *model.Employee, precedence string) dto.CheckupView {
	v := dto.CheckupView{
		CheckupID:        c.CheckupID,
		UID:              c.UID,
		TanggalCheckup:   c.TanggalCheckup.Format(time.DateOnly),
		TanggalLahir:     formatDate(c.TanggalLahir),
		Umur:             c.Umur,
		Tinggi:           c.Tinggi,
		Berat:            c.Berat,
		LingkarPerut:     c.LingkarPerut,
		BMI:              c.BMI,
		GulaDarahPuasa:   c.GulaDarahPuasa,
		GulaDarahSewaktu: c.GulaDarahSewaktu,
		Cholesterol:      c.Cholesterol,
		AsamUrat:         c.AsamUrat,
		TekananDarah:     stringOf(c.TekananDarah),
		DerajatKesehatan: stringOf(c.DerajatKesehatan),
		Keterangan:       stringOf(c.Keterangan),
		Lokasi:           stringOf(c.Lokasi),
	}

	if emp != nil {
		v.Nama = emp.Nama
		v.Jabatan = emp.Jabatan
		if v.BMI == nil {
			v.BMI = emp.BMI
		}
		if v.DerajatKesehatan == "" {
			v.DerajatKesehatan = emp.DerajatKesehatan
		}
		if v.TanggalLahir == "" {
			v.TanggalLahir = formatDate(emp.TanggalLahir)
		}
		v.BMICategory = emp.BMICategory
		v.Lokasi = pickLokasi(emp.Lokasi, v.Lokasi, precedence)
	}
	if v.BMICategory == "" {
		v.BMICategory = ingest.ComputeBMICategory(v.BMI)
	}

	v.Status = ingest.ComputeStatus(ingest.Vitals{
		GulaDarahPuasa:   v.GulaDarahPuasa,
		GulaDarahSewaktu: v.GulaDarahSewaktu,
		Cholesterol:      v.Cholesterol,
		AsamUrat:         v.AsamUrat,
		BMI:              v.BMI,
	})
	return v
}

func stringOf(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// pickLokasi applies the configured precedence; the other source fills in
// when the preferred one is empty.
func pickLokasi(master, checkup, precedence string) string {
	first, second := master, checkup
	if precedence == config.LocationFromCheckup {
		first, second = checkup, master
	}
	if first != "" {
		return first
	}
	return second
}

func toEmployeeResponse(e *model.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		UID:              e.UID,
		Nama:             e.Nama,
		Jabatan:          e.Jabatan,
		Lokasi:           e.Lokasi,
		TanggalLahir:     formatDate(e.TanggalLahir),
		Umur:             e.Umur,
		TanggalMCU:       formatDate(e.TanggalMCU),
		ExpiredMCU:       formatDate(e.ExpiredMCU),
		DerajatKesehatan: e.DerajatKesehatan,
		Tinggi:           e.Tinggi,
		Berat:            e.Berat,
		BMI:              e.BMI,
		BMICategory:      e.BMICategory,
		UploadBatchID:    e.UploadBatchID,
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}
