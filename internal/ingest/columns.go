package ingest

import (
	"strings"
	"unicode"
)

// Canonical field names. They double as column names in karyawan and
// checkups, which keeps the schema-adaptive write a plain key intersection.
const (
	FieldUID            = "uid"
	FieldNama           = "nama"
	FieldJabatan        = "jabatan"
	FieldLokasi         = "lokasi"
	FieldTanggalLahir   = "tanggal_lahir"
	FieldUmur           = "umur"
	FieldTanggalMCU     = "tanggal_mcu"
	FieldExpiredMCU     = "expired_mcu"
	FieldDerajat        = "derajat_kesehatan"
	FieldTinggi         = "tinggi"
	FieldBerat          = "berat"
	FieldBMI            = "bmi"
	FieldBMICategory    = "bmi_category"
	FieldTanggalCheckup = "tanggal_checkup"
	FieldLingkarPerut   = "lingkar_perut"
	FieldGulaPuasa      = "gula_darah_puasa"
	FieldGulaSewaktu    = "gula_darah_sewaktu"
	FieldCholesterol    = "cholesterol"
	FieldAsamUrat       = "asam_urat"
	FieldTekananDarah   = "tekanan_darah"
	FieldKeterangan     = "keterangan"
)

// FieldAliases lists the header spellings accepted for one canonical field,
// in priority order.
type FieldAliases struct {
	Field   string
	Aliases []string
}

// AliasTable is an ordered set of canonical fields. Order decides which
// field claims a header when more than one could.
type AliasTable []FieldAliases

// Fields returns the canonical field names in table order.
func (t AliasTable) Fields() []string {
	out := make([]string, 0, len(t))
	for _, fa := range t {
		out = append(out, fa.Field)
	}
	return out
}

// Expiry and BMI category headers share tokens with tanggal_mcu and bmi
// ("Tanggal Expired MCU", "BMI Category"), so both tables list them ahead
// of those fields.
var (
	expiredMCUAliases  = []string{"expired_mcu", "mcu_expired", "expiry_date", "mcu_expiry", "expired MCU"}
	bmiCategoryAliases = []string{"bmi_category", "bmi_kategori", "kategori_bmi", "bmi category"}
)

// MasterAliases is the alias table for employee master workbooks.
var MasterAliases = AliasTable{
	{FieldUID, []string{"uid", "employee_id", "karyawan_uid", "id karyawan"}},
	{FieldNama, []string{"nama", "name", "nama karyawan", "employee name"}},
	{FieldJabatan, []string{"jabatan", "position", "posisi", "job title"}},
	{FieldLokasi, []string{"lokasi", "location", "site"}},
	{FieldTanggalLahir, []string{"tanggal_lahir", "tgl_lahir", "birthdate", "birth date", "date of birth", "dob"}},
	{FieldUmur, []string{"umur", "age", "usia"}},
	{FieldExpiredMCU, expiredMCUAliases},
	{FieldTanggalMCU, []string{"tanggal_mcu", "tgl_mcu", "mcu_date", "tanggal MCU", "last mcu"}},
	{FieldDerajat, []string{"derajat_kesehatan", "derajat kesehatan", "derajat", "health grade"}},
	{FieldTinggi, []string{"tinggi", "tinggi_badan", "height", "tb"}},
	{FieldBerat, []string{"berat", "berat_badan", "weight", "bb"}},
	{FieldBMICategory, bmiCategoryAliases},
	{FieldBMI, []string{"bmi", "body_mass_index", "imt"}},
}

// CheckupAliases is the alias table for checkup workbooks of either variant.
// Specific date fields precede tanggal_checkup so its generic "date" alias
// cannot take an MCU, expiry or birth date header in the fuzzy pass.
// expired_mcu and bmi_category are never stored on a checkup; they only keep
// their headers away from the fields above.
var CheckupAliases = AliasTable{
	{FieldUID, []string{"uid", "employee_id", "karyawan_uid", "id karyawan"}},
	{FieldNama, []string{"nama", "name", "nama karyawan", "employee name"}},
	{FieldJabatan, []string{"jabatan", "position", "posisi", "job title"}},
	{FieldLokasi, []string{"lokasi", "location", "site"}},
	{FieldTanggalLahir, []string{"tanggal_lahir", "tgl_lahir", "birthdate", "birth date", "date of birth", "dob"}},
	{FieldExpiredMCU, expiredMCUAliases},
	{FieldTanggalMCU, []string{"tanggal_mcu", "tgl_mcu", "mcu_date", "tanggal MCU", "last mcu"}},
	{FieldTanggalCheckup, []string{"tanggal_checkup", "tgl_checkup", "checkup_date", "tanggal pemeriksaan", "date"}},
	{FieldUmur, []string{"umur", "age", "usia"}},
	{FieldTinggi, []string{"tinggi", "tinggi_badan", "height", "tb"}},
	{FieldBerat, []string{"berat", "berat_badan", "weight", "bb"}},
	{FieldBMICategory, bmiCategoryAliases},
	{FieldBMI, []string{"bmi", "body_mass_index", "imt"}},
	{FieldLingkarPerut, []string{"lingkar_perut", "waist", "lp"}},
	{FieldGulaPuasa, []string{"gula_darah_puasa", "gdp", "blood_sugar_fasting"}},
	{FieldGulaSewaktu, []string{"gula_darah_sewaktu", "gds", "blood_sugar_random"}},
	{FieldCholesterol, []string{"cholesterol", "kolesterol", "chol"}},
	{FieldAsamUrat, []string{"asam_urat", "urat", "uric_acid"}},
	{FieldTekananDarah, []string{"tekanan_darah", "tekanan darah", "blood_pressure", "td", "tensi"}},
	{FieldDerajat, []string{"derajat_kesehatan", "derajat kesehatan", "derajat", "health grade"}},
	{FieldKeterangan, []string{"keterangan", "notes", "remark", "catatan"}},
}

// anthropometricHints drive the substring pass used for anthropometric
// workbooks, whose headers are often run together ("TinggiBadan(cm)").
var anthropometricHints = []struct {
	field    string
	contains []string
	prefixes []string
}{
	{FieldTinggi, []string{"tinggi", "height"}, []string{"tb"}},
	{FieldBerat, []string{"berat", "weight"}, []string{"bb"}},
	{FieldBMI, []string{"bmi", "imt", "body mass index"}, nil},
}

// ColumnMap maps a canonical field to the index of the header that carries it.
// Fields missing from the map are absent from the sheet.
type ColumnMap map[string]int

// Has reports whether the sheet carries the field.
func (m ColumnMap) Has(field string) bool {
	_, ok := m[field]
	return ok
}

// Cell returns the raw cell for field, or "" when the field is absent or the
// row is shorter than the header.
func (m ColumnMap) Cell(cells []string, field string) string {
	i, ok := m[field]
	if !ok || i >= len(cells) {
		return ""
	}
	return cells[i]
}

// NormalizeHeader trims and lower-cases a header and collapses every run of
// non-alphanumeric characters to a single space.
func NormalizeHeader(h string) string {
	var b strings.Builder
	pendingSpace := false
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		pendingSpace = true
	}
	return b.String()
}

// ResolveColumns maps the canonical fields of table onto header.
//
// Every field first gets an exact pass over its aliases; fields still
// unresolved then get a token-subset pass, where all tokens of an alias must
// appear among a header's tokens. A header claimed by one field is never
// handed to another.
func ResolveColumns(header []string, table AliasTable) ColumnMap {
	return resolve(header, table).cols
}

// ResolveAnthropometricColumns is ResolveColumns followed by a substring pass
// for height, weight and BMI headers.
func ResolveAnthropometricColumns(header []string, table AliasTable) ColumnMap {
	r := resolve(header, table)
	for _, hint := range anthropometricHints {
		if r.cols.Has(hint.field) {
			continue
		}
		for i, h := range r.normalized {
			if r.claimed[i] || h == "" {
				continue
			}
			if containsAny(h, hint.contains) || hasAnyPrefix(h, hint.prefixes) {
				r.claim(hint.field, i)
				break
			}
		}
	}
	return r.cols
}

func resolve(header []string, table AliasTable) *resolver {
	r := newResolver(header)
	for _, fa := range table {
		r.exact(fa)
	}
	for _, fa := range table {
		r.tokenSubset(fa)
	}
	return r
}

type resolver struct {
	normalized []string
	tokens     [][]string
	claimed    []bool
	cols       ColumnMap
}

func newResolver(header []string) *resolver {
	r := &resolver{
		normalized: make([]string, len(header)),
		tokens:     make([][]string, len(header)),
		claimed:    make([]bool, len(header)),
		cols:       make(ColumnMap),
	}
	for i, h := range header {
		r.normalized[i] = NormalizeHeader(h)
		r.tokens[i] = strings.Fields(r.normalized[i])
	}
	return r
}

func (r *resolver) claim(field string, i int) {
	r.cols[field] = i
	r.claimed[i] = true
}

func (r *resolver) exact(fa FieldAliases) {
	if r.cols.Has(fa.Field) {
		return
	}
	for _, alias := range fa.Aliases {
		want := NormalizeHeader(alias)
		for i, h := range r.normalized {
			if !r.claimed[i] && h != "" && h == want {
				r.claim(fa.Field, i)
				return
			}
		}
	}
}

func (r *resolver) tokenSubset(fa FieldAliases) {
	if r.cols.Has(fa.Field) {
		return
	}
	for _, alias := range fa.Aliases {
		want := strings.Fields(NormalizeHeader(alias))
		if len(want) == 0 {
			continue
		}
		for i, have := range r.tokens {
			if !r.claimed[i] && isTokenSubset(want, have) {
				r.claim(fa.Field, i)
				return
			}
		}
	}
}

func isTokenSubset(want, have []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
