package repository

import (
	"context"

	"gorm.io/gorm"

	"mini-mcu/internal/ingest"
	"mini-mcu/internal/model"
)

// EmployeeRepository is the employee directory.
type EmployeeRepository interface {
	GetByUID(ctx context.Context, uid string) (*model.Employee, error)
	// FindUIDsByCompositeKeys resolves many keys with one query. Keys with
	// no matching employee are absent from the result.
	FindUIDsByCompositeKeys(ctx context.Context, keys []ingest.CompositeKey) (map[ingest.CompositeKey]string, error)
	// Upsert updates the given columns of uid, or inserts uid with them.
	// fields holds column names; only those columns are written.
	Upsert(ctx context.Context, uid string, fields map[string]any) (created bool, err error)
	List(ctx context.Context, lokasi string) ([]model.Employee, error)
	ListWithMCUExpiry(ctx context.Context) ([]model.Employee, error)
}

type employeeRepo struct {
	db *gorm.DB
}

// NewEmployeeRepo creates an EmployeeRepository.
func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) GetByUID(ctx context.Context, uid string) (*model.Employee, error) {
	var emp model.Employee
	err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepo) FindUIDsByCompositeKeys(ctx context.Context, keys []ingest.CompositeKey) (map[ingest.CompositeKey]string, error) {
	result := make(map[ingest.CompositeKey]string, len(keys))
	names := distinctNames(keys)
	if len(names) == 0 {
		return result, nil
	}

	var candidates []model.Employee
	err := r.db.WithContext(ctx).
		Select("uid", "nama", "jabatan", "lokasi", "tanggal_lahir").
		Where("nama IN ?", names).
		Order("uid").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	MatchCompositeKeys(keys, candidates, result)
	return result, nil
}

// MatchCompositeKeys assigns each key the first candidate it matches.
func MatchCompositeKeys(keys []ingest.CompositeKey, candidates []model.Employee, into map[ingest.CompositeKey]string) {
	for _, k := range keys {
		if _, done := into[k]; done {
			continue
		}
		for i := range candidates {
			c := &candidates[i]
			if k.Matches(c.Nama, c.Jabatan, c.Lokasi, c.TanggalLahir) {
				into[k] = c.UID
				break
			}
		}
	}
}

func distinctNames(keys []ingest.CompositeKey) []string {
	seen := make(map[string]struct{}, len(keys))
	var names []string
	for _, k := range keys {
		if k.Nama == "" {
			continue
		}
		if _, ok := seen[k.Nama]; ok {
			continue
		}
		seen[k.Nama] = struct{}{}
		names = append(names, k.Nama)
	}
	return names
}

func (r *employeeRepo) Upsert(ctx context.Context, uid string, fields map[string]any) (bool, error) {
	db := r.db.WithContext(ctx)

	var n int64
	if err := db.Model(&model.Employee{}).Where("uid = ?", uid).Count(&n).Error; err != nil {
		return false, err
	}

	if n > 0 {
		if len(fields) == 0 {
			return false, nil
		}
		updates := make(map[string]any, len(fields))
		for k, v := range fields {
			if k != ingest.FieldUID {
				updates[k] = v
			}
		}
		return false, db.Table(model.Employee{}.TableName()).Where("uid = ?", uid).Updates(updates).Error
	}

	row := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		row[k] = v
	}
	row[ingest.FieldUID] = uid
	return true, db.Table(model.Employee{}.TableName()).Create(row).Error
}

func (r *employeeRepo) List(ctx context.Context, lokasi string) ([]model.Employee, error) {
	var emps []model.Employee
	db := r.db.WithContext(ctx)
	if lokasi != "" {
		db = db.Where("lokasi = ?", lokasi)
	}
	err := db.Order("lokasi ASC, nama ASC").Find(&emps).Error
	return emps, err
}

func (r *employeeRepo) ListWithMCUExpiry(ctx context.Context) ([]model.Employee, error) {
	var emps []model.Employee
	err := r.db.WithContext(ctx).
		Where("expired_mcu IS NOT NULL").
		Order("expired_mcu ASC").
		Find(&emps).Error
	return emps, err
}
