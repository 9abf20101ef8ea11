package service

import (
	"mini-mcu/internal/dto"
	"mini-mcu/internal/ingest"
)

// MetricsService exposes the derived metric functions.
type MetricsService interface {
	Status(req *dto.StatusRequest) *dto.StatusResponse
}

type metricsService struct{}

// NewMetricsService creates a MetricsService.
func NewMetricsService() MetricsService {
	return metricsService{}
}

func (metricsService) Status(req *dto.StatusRequest) *dto.StatusResponse {
	return &dto.StatusResponse{
		Status: ingest.ComputeStatus(ingest.Vitals{
			GulaDarahPuasa:   req.GulaDarahPuasa,
			GulaDarahSewaktu: req.GulaDarahSewaktu,
			Cholesterol:      req.Cholesterol,
			AsamUrat:         req.AsamUrat,
			BMI:              req.BMI,
		}),
		BMICategory: ingest.ComputeBMICategory(req.BMI),
	}
}
