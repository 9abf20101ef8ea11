package handler

import "mini-mcu/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Upload    *UploadHandler
	UploadLog *UploadLogHandler
	Employee  *EmployeeHandler
	Dashboard *DashboardHandler
	Lokasi    *LokasiHandler
	Template  *TemplateHandler
	Metrics   *MetricsHandler
}

// NewHandler wires the handlers to their services.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Upload:    NewUploadHandler(svc.MasterUpload, svc.CheckupUpload),
		UploadLog: NewUploadLogHandler(svc.UploadLog),
		Employee:  NewEmployeeHandler(svc.Employee, svc.Checkup),
		Dashboard: NewDashboardHandler(svc.Dashboard),
		Lokasi:    NewLokasiHandler(svc.Lokasi),
		Template:  NewTemplateHandler(svc.Template),
		Metrics:   NewMetricsHandler(svc.Metrics),
	}
}
