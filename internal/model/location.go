package model

// Lokasi is the workplace site directory. The normalized name is the key, matching the
// free-text lokasi written on karyawan and checkups.
type Lokasi struct {
	Nama string `gorm:"column:nama;type:text;primaryKey" json:"nama"`
}

// TableName returns the table name.
func (Lokasi) TableName() string { return "lokasi" }
