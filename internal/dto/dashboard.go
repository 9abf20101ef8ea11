package dto

// ── Dashboard DTOs ──

// WellUnwellRequest filters the wellness summary. Month is YYYY-MM.
type WellUnwellRequest struct {
	Month  string `form:"month"  binding:"omitempty,datetime=2006-01"`
	Lokasi string `form:"lokasi"`
}

// WellUnwellRow counts checkups of one month at one location.
type WellUnwellRow struct {
	Month  string `json:"month"`
	Lokasi string `json:"lokasi"`
	Well   int    `json:"well"`
	Unwell int    `json:"unwell"`
	Total  int    `json:"total"`
}

// MCUExpiryRequest overrides the configured alert window.
type MCUExpiryRequest struct {
	WindowDays int `form:"window_days" binding:"omitempty,min=1,max=365"`
}

// MCUExpiryItem is an employee whose MCU has expired or will soon.
type MCUExpiryItem struct {
	UID        string `json:"uid"`
	Nama       string `json:"nama"`
	Lokasi     string `json:"lokasi"`
	ExpiredMCU string `json:"expired_mcu"`
	DaysLeft   int    `json:"days_left"`
}

// MCUExpiryResponse summarizes MCU validity across the directory.
type MCUExpiryResponse struct {
	WindowDays int             `json:"window_days"`
	Expired    int             `json:"expired"`
	DueSoon    int             `json:"due_soon"`
	Total      int             `json:"total"`
	Items      []MCUExpiryItem `json:"items"`
}
