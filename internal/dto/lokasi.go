package dto

// ── Lokasi DTOs ──

// CreateLokasiRequest registers a site.
type CreateLokasiRequest struct {
	Nama string `json:"nama" binding:"required,min=1,max=100"`
}

// LokasiResponse is a registered site.
type LokasiResponse struct {
	Nama string `json:"nama"`
}
