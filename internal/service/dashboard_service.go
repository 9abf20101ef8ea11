package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"mini-mcu/internal/dto"
	"mini-mcu/internal/ingest"
	"mini-mcu/internal/repository"
)

// ── Dashboard errors ──

var (
	ErrInvalidMonth = errors.New("month must be YYYY-MM")
)

const monthLayout = "2006-01"

// DashboardService aggregates checkups and MCU validity.
type DashboardService interface {
	// WellUnwell counts Well and Unwell checkups per month and location.
	// An empty month covers every checkup; an empty lokasi every site.
	WellUnwell(ctx context.Context, req *dto.WellUnwellRequest) ([]dto.WellUnwellRow, error)
	// MCUExpiry counts employees whose MCU has expired or expires within
	// windowDays. A non-positive window uses the configured default.
	MCUExpiry(ctx context.Context, windowDays int) (*dto.MCUExpiryResponse, error)
}

type dashboardService struct {
	repo          *repository.Repository
	clock         ingest.Clock
	precedence    string
	defaultWindow int
	logger        *zap.Logger
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(repo *repository.Repository, clock ingest.Clock, precedence string, defaultWindow int, logger *zap.Logger) DashboardService {
	return &dashboardService{
		repo:          repo,
		clock:         clock,
		precedence:    precedence,
		defaultWindow: defaultWindow,
		logger:        logger,
	}
}

// ────────────────────── WellUnwell ──────────────────────

func (s *dashboardService) WellUnwell(ctx context.Context, req *dto.WellUnwellRequest) ([]dto.WellUnwellRow, error) {
	var from, to *time.Time
	if req.Month != "" {
		start, err := time.Parse(monthLayout, req.Month)
		if err != nil {
			return nil, ErrInvalidMonth
		}
		end := start.AddDate(0, 1, 0)
		from, to = &start, &end
	}
	lokasi := ingest.NormalizeString(req.Lokasi)

	list, err := s.repo.Checkup.ListBetween(ctx, from, to)
	if err != nil {
		s.logger.Error("list checkups failed", zap.Error(err))
		return nil, err
	}

	type groupKey struct{ month, lokasi string }
	groups := make(map[groupKey]*dto.WellUnwellRow)
	for i := range list {
		v := mergeCheckup(&list[i], list[i].Employee, s.precedence)
		if lokasi != "" && v.Lokasi != lokasi {
			continue
		}
		k := groupKey{month: list[i].TanggalCheckup.Format(monthLayout), lokasi: v.Lokasi}
		row, ok := groups[k]
		if !ok {
			row = &dto.WellUnwellRow{Month: k.month, Lokasi: k.lokasi}
			groups[k] = row
		}
		if v.Status == ingest.StatusUnwell {
			row.Unwell++
		} else {
			row.Well++
		}
		row.Total++
	}

	result := make([]dto.WellUnwellRow, 0, len(groups))
	for _, row := range groups {
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Month != result[j].Month {
			return result[i].Month < result[j].Month
		}
		return result[i].Lokasi < result[j].Lokasi
	})
	return result, nil
}

// ────────────────────── MCUExpiry ──────────────────────

func (s *dashboardService) MCUExpiry(ctx context.Context, windowDays int) (*dto.MCUExpiryResponse, error) {
	if windowDays <= 0 {
		windowDays = s.defaultWindow
	}
	emps, err := s.repo.Employee.ListWithMCUExpiry(ctx)
	if err != nil {
		s.logger.Error("list mcu expiry failed", zap.Error(err))
		return nil, err
	}

	today := ingest.Today(s.clock)
	resp := &dto.MCUExpiryResponse{WindowDays: windowDays, Items: []dto.MCUExpiryItem{}}
	for i := range emps {
		e := &emps[i]
		if e.ExpiredMCU == nil {
			continue
		}
		resp.Total++

		days := int(ingest.DateOf(*e.ExpiredMCU).Sub(today).Hours() / 24)
		switch {
		case days < 0:
			resp.Expired++
		case days <= windowDays:
			resp.DueSoon++
		default:
			continue
		}
		resp.Items = append(resp.Items, dto.MCUExpiryItem{
			UID:        e.UID,
			Nama:       e.Nama,
			Lokasi:     e.Lokasi,
			ExpiredMCU: formatDate(e.ExpiredMCU),
			DaysLeft:   days,
		})
	}
	return resp, nil
}
