package model

import "time"

// Checkup is a periodic measurement (checkups). Rows are append-only; a row belongs to
// exactly one Employee through uid.
type Checkup struct {
	CheckupID        int64      `gorm:"column:checkup_id;primaryKey;autoIncrement" json:"checkup_id"`
	UID              string     `gorm:"column:uid;type:varchar(64);not null;index" json:"uid"`
	TanggalCheckup   time.Time  `gorm:"column:tanggal_checkup;type:date;not null"  json:"tanggal_checkup"`
	TanggalLahir     *time.Time `gorm:"column:tanggal_lahir;type:date"             json:"tanggal_lahir"`
	Umur             *int       `gorm:"column:umur"                                json:"umur"`
	Tinggi           *float64   `gorm:"column:tinggi;type:numeric(6,2)"            json:"tinggi"`
	Berat            *float64   `gorm:"column:berat;type:numeric(6,2)"             json:"berat"`
	LingkarPerut     *float64   `gorm:"column:lingkar_perut;type:numeric(6,2)"     json:"lingkar_perut"`
	BMI              *float64   `gorm:"column:bmi;type:numeric(6,2)"               json:"bmi"`
	GulaDarahPuasa   *float64   `gorm:"column:gula_darah_puasa;type:numeric(6,2)"  json:"gula_darah_puasa"`
	GulaDarahSewaktu *float64   `gorm:"column:gula_darah_sewaktu;type:numeric(6,2)" json:"gula_darah_sewaktu"`
	Cholesterol      *float64   `gorm:"column:cholesterol;type:numeric(6,2)"       json:"cholesterol"`
	AsamUrat         *float64   `gorm:"column:asam_urat;type:numeric(6,2)"         json:"asam_urat"`
	TekananDarah     *string    `gorm:"column:tekanan_darah;type:varchar(20)"      json:"tekanan_darah,omitempty"`
	Status           string     `gorm:"column:status;type:varchar(50)"             json:"status"`
	Lokasi           *string    `gorm:"column:lokasi;type:varchar(100)"            json:"lokasi,omitempty"`
	DerajatKesehatan *string    `gorm:"column:derajat_kesehatan;type:varchar(10)"  json:"derajat_kesehatan,omitempty"`
	Keterangan       *string    `gorm:"column:keterangan;type:text"                json:"keterangan,omitempty"`

	// associations
	Employee *Employee `gorm:"foreignKey:UID;references:UID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName returns the table name.
func (Checkup) TableName() string { return "checkups" }
