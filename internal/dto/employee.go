package dto

// ── Employee DTOs ──

// EmployeeListRequest filters the employee listing.
type EmployeeListRequest struct {
	Lokasi string `form:"lokasi"`
}

// UpdateEmployeeRequest is a manual master edit. Nil fields are left as
// they are; uid never changes.
type UpdateEmployeeRequest struct {
	Nama             *string  `json:"nama"              binding:"omitempty,min=1,max=255"`
	Jabatan          *string  `json:"jabatan"           binding:"omitempty,max=255"`
	Lokasi           *string  `json:"lokasi"            binding:"omitempty,max=255"`
	TanggalLahir     *string  `json:"tanggal_lahir"`
	Umur             *string  `json:"umur"`
	TanggalMCU       *string  `json:"tanggal_mcu"`
	ExpiredMCU       *string  `json:"expired_mcu"`
	DerajatKesehatan *string  `json:"derajat_kesehatan" binding:"omitempty,max=10"`
	Tinggi           *float64 `json:"tinggi"`
	Berat            *float64 `json:"berat"`
	BMI              *float64 `json:"bmi"`
	BMICategory      *string  `json:"bmi_category"      binding:"omitempty,max=64"`
}

// EmployeeResponse is the master record as served to clients.
type EmployeeResponse struct {
	UID              string   `json:"uid"`
	Nama             string   `json:"nama"`
	Jabatan          string   `json:"jabatan"`
	Lokasi           string   `json:"lokasi"`
	TanggalLahir     string   `json:"tanggal_lahir,omitempty"`
	Umur             *int     `json:"umur"`
	TanggalMCU       string   `json:"tanggal_mcu,omitempty"`
	ExpiredMCU       string   `json:"expired_mcu,omitempty"`
	DerajatKesehatan string   `json:"derajat_kesehatan,omitempty"`
	Tinggi           *float64 `json:"tinggi"`
	Berat            *float64 `json:"berat"`
	BMI              *float64 `json:"bmi"`
	BMICategory      string   `json:"bmi_category,omitempty"`
	UploadBatchID    string   `json:"upload_batch_id,omitempty"`
}

// ManualEditResult is returned by a manual master edit.
type ManualEditResult struct {
	Employee      EmployeeResponse `json:"employee"`
	ChangedFields []string         `json:"changed_fields"`
	LogName       string           `json:"log_name,omitempty"`
}
