package ingest

import (
	"time"

	"github.com/google/uuid"
)

// DeriveUID returns the stable identifier for an employee that has none:
// a name-based UUID (SHA-1, DNS namespace) over "name-position". Keying on
// position rather than location keeps the identity across transfers.
func DeriveUID(name, position string) string {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(name+"-"+position)).String()
}

// CompositeKey identifies an employee when a checkup sheet carries no uid.
// Nama is required; an empty Jabatan, Lokasi or TanggalLahir matches anything.
type CompositeKey struct {
	Nama         string
	Jabatan      string
	Lokasi       string
	TanggalLahir string // YYYY-MM-DD or ""
}

// NewCompositeKey builds a key from normalized values.
func NewCompositeKey(nama, jabatan, lokasi string, birth *time.Time) CompositeKey {
	k := CompositeKey{Nama: nama, Jabatan: jabatan, Lokasi: lokasi}
	if birth != nil {
		k.TanggalLahir = birth.Format(time.DateOnly)
	}
	return k
}

// Matches reports whether an employee with the given attributes satisfies k.
func (k CompositeKey) Matches(nama, jabatan, lokasi string, birth *time.Time) bool {
	if k.Nama == "" || k.Nama != nama {
		return false
	}
	if k.Jabatan != "" && k.Jabatan != jabatan {
		return false
	}
	if k.Lokasi != "" && k.Lokasi != lokasi {
		return false
	}
	if k.TanggalLahir != "" {
		if birth == nil || birth.Format(time.DateOnly) != k.TanggalLahir {
			return false
		}
	}
	return true
}
