package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"mini-mcu/internal/ingest"
	"mini-mcu/internal/model"
	"mini-mcu/internal/repository"
)

// ── Mock EmployeeRepository ──

type mockEmployeeRepo struct {
	employees   map[string]*model.Employee
	upserts     []map[string]any
	failUpsert  map[string]error
	lookupCalls int
	getCalls    int
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{
		employees:  make(map[string]*model.Employee),
		failUpsert: make(map[string]error),
	}
}

func (m *mockEmployeeRepo) GetByUID(_ context.Context, uid string) (*model.Employee, error) {
	m.getCalls++
	if e, ok := m.employees[uid]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) FindUIDsByCompositeKeys(_ context.Context, keys []ingest.CompositeKey) (map[ingest.CompositeKey]string, error) {
	m.lookupCalls++
	result := make(map[ingest.CompositeKey]string)
	repository.MatchCompositeKeys(keys, m.sorted(), result)
	return result, nil
}

func (m *mockEmployeeRepo) Upsert(_ context.Context, uid string, fields map[string]any) (bool, error) {
	if err, ok := m.failUpsert[uid]; ok {
		return false, err
	}
	m.upserts = append(m.upserts, fields)

	e, exists := m.employees[uid]
	if !exists {
		e = &model.Employee{UID: uid}
		m.employees[uid] = e
	}
	applyEmployeeFields(e, fields)
	return !exists, nil
}

func (m *mockEmployeeRepo) List(_ context.Context, lokasi string) ([]model.Employee, error) {
	var result []model.Employee
	for _, e := range m.sorted() {
		if lokasi != "" && e.Lokasi != lokasi {
			continue
		}
		result = append(result, e)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Lokasi < result[j].Lokasi })
	return result, nil
}

func (m *mockEmployeeRepo) ListWithMCUExpiry(_ context.Context) ([]model.Employee, error) {
	var result []model.Employee
	for _, e := range m.sorted() {
		if e.ExpiredMCU != nil {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockEmployeeRepo) sorted() []model.Employee {
	list := make([]model.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		list = append(list, *e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].UID < list[j].UID })
	return list
}

func applyEmployeeFields(e *model.Employee, fields map[string]any) {
	for k, v := range fields {
		switch k {
		case ingest.FieldNama:
			e.Nama = v.(string)
		case ingest.FieldJabatan:
			e.Jabatan = v.(string)
		case ingest.FieldLokasi:
			e.Lokasi = v.(string)
		case ingest.FieldTanggalLahir:
			e.TanggalLahir = timePtr(v.(time.Time))
		case ingest.FieldTanggalMCU:
			e.TanggalMCU = timePtr(v.(time.Time))
		case ingest.FieldExpiredMCU:
			e.ExpiredMCU = timePtr(v.(time.Time))
		case ingest.FieldUmur:
			n := v.(int)
			e.Umur = &n
		case ingest.FieldDerajat:
			e.DerajatKesehatan = v.(string)
		case ingest.FieldTinggi:
			e.Tinggi = floatPtr(v.(float64))
		case ingest.FieldBerat:
			e.Berat = floatPtr(v.(float64))
		case ingest.FieldBMI:
			e.BMI = floatPtr(v.(float64))
		case ingest.FieldBMICategory:
			e.BMICategory = v.(string)
		case fieldUploadBatchID:
			e.UploadBatchID = v.(string)
		case fieldUploadedAt:
			e.UploadedAt = timePtr(v.(time.Time))
		}
	}
}

// ── Mock CheckupRepository ──

type mockCheckupRepo struct {
	checkups map[int64]*model.Checkup
	nextID   int64
	omits    [][]string
	failWhen func(c *model.Checkup) error
}

func newMockCheckupRepo() *mockCheckupRepo {
	return &mockCheckupRepo{checkups: make(map[int64]*model.Checkup), nextID: 100}
}

func (m *mockCheckupRepo) Create(_ context.Context, c *model.Checkup, omit ...string) error {
	if m.failWhen != nil {
		if err := m.failWhen(c); err != nil {
			return err
		}
	}
	m.nextID++
	c.CheckupID = m.nextID
	cp := *c
	m.checkups[c.CheckupID] = &cp
	m.omits = append(m.omits, omit)
	return nil
}

func (m *mockCheckupRepo) GetByID(_ context.Context, id int64) (*model.Checkup, error) {
	if c, ok := m.checkups[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCheckupRepo) DeleteByIDs(_ context.Context, ids []int64) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := m.checkups[id]; ok {
			delete(m.checkups, id)
			n++
		}
	}
	return n, nil
}

func (m *mockCheckupRepo) ListByUID(_ context.Context, uid string) ([]model.Checkup, error) {
	var result []model.Checkup
	for _, c := range m.checkups {
		if c.UID == uid {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].TanggalCheckup.Equal(result[j].TanggalCheckup) {
			return result[i].TanggalCheckup.After(result[j].TanggalCheckup)
		}
		return result[i].CheckupID > result[j].CheckupID
	})
	return result, nil
}

func (m *mockCheckupRepo) ListBetween(_ context.Context, from, to *time.Time) ([]model.Checkup, error) {
	var result []model.Checkup
	for _, c := range m.checkups {
		if from != nil && c.TanggalCheckup.Before(*from) {
			continue
		}
		if to != nil && !c.TanggalCheckup.Before(*to) {
			continue
		}
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CheckupID < result[j].CheckupID })
	return result, nil
}

// all returns the stored checkups ordered by id.
func (m *mockCheckupRepo) all() []model.Checkup {
	list, _ := m.ListBetween(context.Background(), nil, nil)
	return list
}

// ── Mock LokasiRepository ──

type mockLokasiRepo struct {
	names map[string]bool
}

func newMockLokasiRepo() *mockLokasiRepo {
	return &mockLokasiRepo{names: make(map[string]bool)}
}

func (m *mockLokasiRepo) List(_ context.Context) ([]model.Lokasi, error) {
	var result []model.Lokasi
	for n := range m.names {
		result = append(result, model.Lokasi{Nama: n})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Nama < result[j].Nama })
	return result, nil
}

func (m *mockLokasiRepo) Ensure(_ context.Context, nama string) error {
	m.names[nama] = true
	return nil
}

func (m *mockLokasiRepo) Exists(_ context.Context, nama string) (bool, error) {
	return m.names[nama], nil
}

func (m *mockLokasiRepo) Delete(_ context.Context, nama string) error {
	delete(m.names, nama)
	return nil
}

// ── Mock SchemaInspector ──

type mockSchema struct {
	tables map[string]repository.ColumnSet
	err    error
}

func newMockSchema() *mockSchema {
	return &mockSchema{tables: map[string]repository.ColumnSet{
		employeeTable: columnSet(
			"uid", "nama", "jabatan", "lokasi", "tanggal_lahir", "umur", "tanggal_mcu",
			"expired_mcu", "uploaded_at", "upload_batch_id", "derajat_kesehatan",
			"tinggi", "berat", "bmi", "bmi_category",
		),
		checkupTable: columnSet(
			"checkup_id", "uid", "tanggal_checkup", "tanggal_lahir", "umur", "tinggi", "berat",
			"lingkar_perut", "bmi", "gula_darah_puasa", "gula_darah_sewaktu", "cholesterol",
			"asam_urat", "tekanan_darah", "status", "lokasi", "derajat_kesehatan", "keterangan",
		),
	}}
}

func (m *mockSchema) Columns(_ context.Context, table string) (repository.ColumnSet, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tables[table], nil
}

func (m *mockSchema) drop(table string, cols ...string) {
	for _, c := range cols {
		delete(m.tables[table], c)
	}
}

func columnSet(names ...string) repository.ColumnSet {
	s := make(repository.ColumnSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// ── Shared helpers ──

type mockRepos struct {
	employee *mockEmployeeRepo
	checkup  *mockCheckupRepo
	lokasi   *mockLokasiRepo
	schema   *mockSchema
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		employee: newMockEmployeeRepo(),
		checkup:  newMockCheckupRepo(),
		lokasi:   newMockLokasiRepo(),
		schema:   newMockSchema(),
	}
	repo := &repository.Repository{
		Employee: m.employee,
		Checkup:  m.checkup,
		Lokasi:   m.lokasi,
		Schema:   m.schema,
	}
	return repo, m
}

var errDB = errors.New("pq: value too long for type character varying(64)")

var testNow = time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

func testClock() ingest.Clock { return ingest.FixedClock(testNow) }

func timePtr(t time.Time) *time.Time { return &t }

func floatPtr(f float64) *float64 { return &f }

func intPtr(n int) *int { return &n }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
