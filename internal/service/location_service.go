package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"mini-mcu/internal/dto"
	"mini-mcu/internal/ingest"
	"mini-mcu/internal/repository"
)

// ── Lokasi errors ──

var (
	ErrLokasiNotFound = errors.New("lokasi not found")
	ErrLokasiInvalid  = errors.New("lokasi name is empty")
)

// LokasiService manages the site directory. Master uploads also register
// sites as they see them.
type LokasiService interface {
	List(ctx context.Context) ([]dto.LokasiResponse, error)
	Create(ctx context.Context, req *dto.CreateLokasiRequest) (*dto.LokasiResponse, error)
	Delete(ctx context.Context, nama string) error
}

type lokasiService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLokasiService creates a LokasiService.
func NewLokasiService(repo *repository.Repository, logger *zap.Logger) LokasiService {
	return &lokasiService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *lokasiService) List(ctx context.Context) ([]dto.LokasiResponse, error) {
	list, err := s.repo.Lokasi.List(ctx)
	if err != nil {
		s.logger.Error("list lokasi failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.LokasiResponse, 0, len(list))
	for _, l := range list {
		result = append(result, dto.LokasiResponse{Nama: l.Nama})
	}
	return result, nil
}

// ────────────────────── Create ──────────────────────

func (s *lokasiService) Create(ctx context.Context, req *dto.CreateLokasiRequest) (*dto.LokasiResponse, error) {
	nama := ingest.NormalizeString(req.Nama)
	if nama == "" {
		return nil, ErrLokasiInvalid
	}
	if err := s.repo.Lokasi.Ensure(ctx, nama); err != nil {
		s.logger.Error("create lokasi failed", zap.String("nama", nama), zap.Error(err))
		return nil, err
	}
	return &dto.LokasiResponse{Nama: nama}, nil
}

// ────────────────────── Delete ──────────────────────

func (s *lokasiService) Delete(ctx context.Context, nama string) error {
	nama = ingest.NormalizeString(nama)
	ok, err := s.repo.Lokasi.Exists(ctx, nama)
	if err != nil {
		s.logger.Error("get lokasi failed", zap.String("nama", nama), zap.Error(err))
		return err
	}
	if !ok {
		return ErrLokasiNotFound
	}

	if err := s.repo.Lokasi.Delete(ctx, nama); err != nil {
		s.logger.Error("delete lokasi failed", zap.String("nama", nama), zap.Error(err))
		return err
	}
	return nil
}
