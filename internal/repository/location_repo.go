package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mini-mcu/internal/model"
)

// LokasiRepository is the site directory.
type LokasiRepository interface {
	List(ctx context.Context) ([]model.Lokasi, error)
	// Ensure inserts nama if it is not registered yet.
	Ensure(ctx context.Context, nama string) error
	Exists(ctx context.Context, nama string) (bool, error)
	Delete(ctx context.Context, nama string) error
}

type lokasiRepo struct {
	db *gorm.DB
}

// NewLokasiRepo creates a LokasiRepository.
func NewLokasiRepo(db *gorm.DB) LokasiRepository {
	return &lokasiRepo{db: db}
}

func (r *lokasiRepo) List(ctx context.Context) ([]model.Lokasi, error) {
	var list []model.Lokasi
	err := r.db.WithContext(ctx).Order("nama ASC").Find(&list).Error
	return list, err
}

func (r *lokasiRepo) Ensure(ctx context.Context, nama string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Lokasi{Nama: nama}).Error
}

func (r *lokasiRepo) Exists(ctx context.Context, nama string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Lokasi{}).Where("nama = ?", nama).Count(&n).Error
	return n > 0, err
}

func (r *lokasiRepo) Delete(ctx context.Context, nama string) error {
	return r.db.WithContext(ctx).Where("nama = ?", nama).Delete(&model.Lokasi{}).Error
}
