package service

import (
	"go.uber.org/zap"

	"mini-mcu/config"
	"mini-mcu/internal/ingest"
	"mini-mcu/internal/repository"
	"mini-mcu/pkg/auditlog"
)

// Service aggregates every service.
type Service struct {
	MasterUpload  MasterUploadService
	CheckupUpload CheckupUploadService
	UploadLog     UploadLogService
	Employee      EmployeeService
	Checkup       CheckupService
	Dashboard     DashboardService
	Lokasi        LokasiService
	Template      TemplateService
	Metrics       MetricsService
}

// NewService wires the services.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	audit *auditlog.Writer,
	clock ingest.Clock,
	logger *zap.Logger,
) *Service {
	precedence := cfg.MCU.LocationPrecedence
	return &Service{
		MasterUpload:  NewMasterUploadService(repo, audit, clock, logger),
		CheckupUpload: NewCheckupUploadService(repo, audit, clock, logger),
		UploadLog:     NewUploadLogService(repo, audit, logger),
		Employee:      NewEmployeeService(repo, audit, clock, logger),
		Checkup:       NewCheckupService(repo, audit, clock, precedence, logger),
		Dashboard:     NewDashboardService(repo, clock, precedence, cfg.MCU.ExpiryWindowDays, logger),
		Lokasi:        NewLokasiService(repo, logger),
		Template:      NewTemplateService(repo, clock, logger),
		Metrics:       NewMetricsService(),
	}
}
