package repository

import "gorm.io/gorm"

// Repository aggregates every repository.
type Repository struct {
	Employee EmployeeRepository
	Checkup  CheckupRepository
	Lokasi   LokasiRepository
	Schema   SchemaInspector
}

// NewRepository wires the gorm implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Employee: NewEmployeeRepo(db),
		Checkup:  NewCheckupRepo(db),
		Lokasi:   NewLokasiRepo(db),
		Schema:   NewSchemaInspector(db),
	}
}
