package model

import "time"

// Employee is the master record (karyawan). Identity is uid; every other column is
// optional because master workbooks supply them piecemeal.
type Employee struct {
	UID              string     `gorm:"column:uid;type:varchar(64);primaryKey"   json:"uid"`
	Nama             string     `gorm:"column:nama;type:varchar(255)"            json:"nama"`
	Jabatan          string     `gorm:"column:jabatan;type:varchar(255)"         json:"jabatan"`
	Lokasi           string     `gorm:"column:lokasi;type:varchar(255);index"    json:"lokasi"`
	TanggalLahir     *time.Time `gorm:"column:tanggal_lahir;type:date"           json:"tanggal_lahir"`
	Umur             *int       `gorm:"column:umur"                              json:"umur"`
	TanggalMCU       *time.Time `gorm:"column:tanggal_mcu;type:date"             json:"tanggal_mcu"`
	ExpiredMCU       *time.Time `gorm:"column:expired_mcu;type:date"             json:"expired_mcu"`
	UploadedAt       *time.Time `gorm:"column:uploaded_at"                       json:"uploaded_at"`
	UploadBatchID    string     `gorm:"column:upload_batch_id;type:varchar(64)"  json:"upload_batch_id,omitempty"`
	DerajatKesehatan string     `gorm:"column:derajat_kesehatan;type:varchar(64)" json:"derajat_kesehatan,omitempty"`
	Tinggi           *float64   `gorm:"column:tinggi;type:numeric(5,2)"          json:"tinggi"`
	Berat            *float64   `gorm:"column:berat;type:numeric(5,2)"           json:"berat"`
	BMI              *float64   `gorm:"column:bmi;type:numeric(5,2)"             json:"bmi"`
	BMICategory      string     `gorm:"column:bmi_category;type:varchar(64)"     json:"bmi_category,omitempty"`
}

// TableName returns the table name.
func (Employee) TableName() string { return "karyawan" }
