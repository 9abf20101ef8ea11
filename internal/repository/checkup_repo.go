package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mini-mcu/internal/model"
)

// CheckupRepository is the checkup store.
type CheckupRepository interface {
	// Create inserts c and fills CheckupID. Columns named in omit are not
	// written, for databases that predate them.
	Create(ctx context.Context, c *model.Checkup, omit ...string) error
	GetByID(ctx context.Context, id int64) (*model.Checkup, error)
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
	ListByUID(ctx context.Context, uid string) ([]model.Checkup, error)
	// ListBetween returns checkups dated in [from, to), employees preloaded.
	// A nil bound is open.
	ListBetween(ctx context.Context, from, to *time.Time) ([]model.Checkup, error)
}

type checkupRepo struct {
	db *gorm.DB
}

// NewCheckupRepo creates a CheckupRepository.
func NewCheckupRepo(db *gorm.DB) CheckupRepository {
	return &checkupRepo{db: db}
}

func (r *checkupRepo) Create(ctx context.Context, c *model.Checkup, omit ...string) error {
	cols := make([]string, 0, len(omit)+1)
	cols = append(cols, omit...)
	cols = append(cols, clause.Associations)
	return r.db.WithContext(ctx).Omit(cols...).Create(c).Error
}

func (r *checkupRepo) GetByID(ctx context.Context, id int64) (*model.Checkup, error) {
	var c model.Checkup
	err := r.db.WithContext(ctx).
		Where("checkup_id = ?", id).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *checkupRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("checkup_id IN ?", ids).
		Delete(&model.Checkup{})
	return res.RowsAffected, res.Error
}

func (r *checkupRepo) ListByUID(ctx context.Context, uid string) ([]model.Checkup, error) {
	var list []model.Checkup
	err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("tanggal_checkup DESC, checkup_id DESC").
		Find(&list).Error
	return list, err
}

func (r *checkupRepo) ListBetween(ctx context.Context, from, to *time.Time) ([]model.Checkup, error) {
	var list []model.Checkup
	db := r.db.WithContext(ctx).Preload("Employee")
	if from != nil {
		db = db.Where("tanggal_checkup >= ?", *from)
	}
	if to != nil {
		db = db.Where("tanggal_checkup < ?", *to)
	}
	err := db.Order("tanggal_checkup ASC, checkup_id ASC").Find(&list).Error
	return list, err
}
