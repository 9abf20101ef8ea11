package dto

// ── Checkup DTOs ──

// CreateCheckupRequest is a single manually entered checkup.
type CreateCheckupRequest struct {
	TanggalCheckup   string   `json:"tanggal_checkup"`
	Umur             *int     `json:"umur"               binding:"omitempty,min=0,max=150"`
	Tinggi           *float64 `json:"tinggi"`
	Berat            *float64 `json:"berat"`
	LingkarPerut     *float64 `json:"lingkar_perut"`
	BMI              *float64 `json:"bmi"`
	GulaDarahPuasa   *float64 `json:"gula_darah_puasa"`
	GulaDarahSewaktu *float64 `json:"gula_darah_sewaktu"`
	Cholesterol      *float64 `json:"cholesterol"`
	AsamUrat         *float64 `json:"asam_urat"`
	TekananDarah     string   `json:"tekanan_darah"      binding:"omitempty,max=20"`
	DerajatKesehatan string   `json:"derajat_kesehatan"  binding:"omitempty,max=10"`
	Lokasi           string   `json:"lokasi"             binding:"omitempty,max=100"`
	Keterangan       string   `json:"keterangan"`
}

// CheckupView is a checkup merged with its employee baseline.
type CheckupView struct {
	CheckupID        int64    `json:"checkup_id"`
	UID              string   `json:"uid"`
	Nama             string   `json:"nama"`
	Jabatan          string   `json:"jabatan"`
	Lokasi           string   `json:"lokasi"`
	TanggalCheckup   string   `json:"tanggal_checkup"`
	TanggalLahir     string   `json:"tanggal_lahir,omitempty"`
	Umur             *int     `json:"umur"`
	Tinggi           *float64 `json:"tinggi"`
	Berat            *float64 `json:"berat"`
	LingkarPerut     *float64 `json:"lingkar_perut"`
	BMI              *float64 `json:"bmi"`
	BMICategory      string   `json:"bmi_category,omitempty"`
	GulaDarahPuasa   *float64 `json:"gula_darah_puasa"`
	GulaDarahSewaktu *float64 `json:"gula_darah_sewaktu"`
	Cholesterol      *float64 `json:"cholesterol"`
	AsamUrat         *float64 `json:"asam_urat"`
	TekananDarah     string   `json:"tekanan_darah,omitempty"`
	DerajatKesehatan string   `json:"derajat_kesehatan,omitempty"`
	Keterangan       string   `json:"keterangan,omitempty"`
	Status           string   `json:"status"`
}

// CreateCheckupResult is returned by a manual checkup entry.
type CreateCheckupResult struct {
	Checkup CheckupView `json:"checkup"`
	LogName string      `json:"log_name,omitempty"`
}

// ── Metrics ──

// StatusRequest is an ad hoc record to classify.
type StatusRequest struct {
	GulaDarahPuasa   *float64 `json:"gula_darah_puasa"`
	GulaDarahSewaktu *float64 `json:"gula_darah_sewaktu"`
	Cholesterol      *float64 `json:"cholesterol"`
	AsamUrat         *float64 `json:"asam_urat"`
	BMI              *float64 `json:"bmi"`
}

// StatusResponse carries the derived labels.
type StatusResponse struct {
	Status      string `json:"status"`
	BMICategory string `json:"bmi_category,omitempty"`
}
