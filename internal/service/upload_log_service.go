package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"mini-mcu/internal/dto"
	"mini-mcu/internal/ingest"
	"mini-mcu/internal/repository"
	"mini-mcu/pkg/auditlog"
	pkgerrors "mini-mcu/pkg/errors"
)

// ── Upload log errors ──

var (
	ErrUploadLogNotFound    = errors.New("upload log not found")
	ErrUploadLogNotUndoable = errors.New("only checkup upload logs can be undone")
	ErrInvalidLogName       = pkgerrors.ErrInvalidLogName
)

// UploadLogService lists stored batch logs and undoes checkup batches.
type UploadLogService interface {
	List(ctx context.Context, kind string) ([]dto.UploadLogSummary, error)
	Get(ctx context.Context, name string) (*dto.UploadLogDetail, error)
	// Undo deletes every checkup the batch created, then the log itself.
	Undo(ctx context.Context, name string) (*dto.UndoResult, error)
	UndoMany(ctx context.Context, names []string) ([]dto.UndoResult, error)
	// PurgeCheckupLogs undoes every stored checkup batch.
	PurgeCheckupLogs(ctx context.Context) (*dto.PurgeResult, error)
}

type uploadLogService struct {
	repo   *repository.Repository
	audit  *auditlog.Writer
	logger *zap.Logger
}

// NewUploadLogService creates an UploadLogService.
func NewUploadLogService(repo *repository.Repository, audit *auditlog.Writer, logger *zap.Logger) UploadLogService {
	return &uploadLogService{repo: repo, audit: audit, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *uploadLogService) List(ctx context.Context, kind string) ([]dto.UploadLogSummary, error) {
	prefixes := []string{ingest.KindCheckups + "-", ingest.KindMaster + "-"}
	if kind != "" {
		prefixes = []string{kind + "-"}
	}

	var entries []auditlog.Entry
	for _, p := range prefixes {
		list, err := s.audit.List(p)
		if err != nil {
			s.logger.Error("list upload logs failed", zap.Error(err))
			return nil, err
		}
		entries = append(entries, list...)
	}

	result := make([]dto.UploadLogSummary, 0, len(entries))
	for _, e := range entries {
		var entry ingest.BatchLog
		if err := s.audit.Read(e.Name, &entry); err != nil {
			s.logger.Warn("unreadable upload log", zap.String("name", e.Name), zap.Error(err))
			continue
		}
		result = append(result, dto.UploadLogSummary{
			Name:         e.Name,
			Kind:         kindOf(e.Name, entry.Kind),
			Filename:     entry.Filename,
			Inserted:     entry.Inserted,
			SkippedCount: entry.SkippedCount,
			Timestamp:    entry.Timestamp,
			Undoable:     isCheckupLog(e.Name),
		})
	}
	return result, nil
}

// ────────────────────── Get ──────────────────────

func (s *uploadLogService) Get(ctx context.Context, name string) (*dto.UploadLogDetail, error) {
	entry, err := s.read(name)
	if err != nil {
		return nil, err
	}
	return &dto.UploadLogDetail{Name: name, BatchLog: *entry}, nil
}

// ────────────────────── Undo ──────────────────────

func (s *uploadLogService) Undo(ctx context.Context, name string) (*dto.UndoResult, error) {
	if !isCheckupLog(name) {
		return nil, ErrUploadLogNotUndoable
	}
	entry, err := s.read(name)
	if err != nil {
		return nil, err
	}

	ids, err := parseCheckupIDs(entry.InsertedIDs)
	if err != nil {
		s.logger.Error("corrupt upload log", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	deleted, err := s.repo.Checkup.DeleteByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("undo upload failed", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	if err := s.audit.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Error("remove upload log failed", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("upload undone", zap.String("name", name), zap.Int64("deleted", deleted))
	return &dto.UndoResult{Name: name, Deleted: deleted}, nil
}

func (s *uploadLogService) UndoMany(ctx context.Context, names []string) ([]dto.UndoResult, error) {
	results := make([]dto.UndoResult, 0, len(names))
	for _, name := range names {
		res, err := s.Undo(ctx, name)
		if err != nil {
			results = append(results, dto.UndoResult{Name: name, Error: err.Error()})
			continue
		}
		results = append(results, *res)
	}
	return results, nil
}

// ────────────────────── PurgeCheckupLogs ──────────────────────

func (s *uploadLogService) PurgeCheckupLogs(ctx context.Context) (*dto.PurgeResult, error) {
	entries, err := s.audit.List(ingest.KindCheckups + "-")
	if err != nil {
		s.logger.Error("list upload logs failed", zap.Error(err))
		return nil, err
	}

	result := &dto.PurgeResult{}
	for _, e := range entries {
		res, err := s.Undo(ctx, e.Name)
		if err != nil {
			return result, fmt.Errorf("purge %s: %w", e.Name, err)
		}
		result.Logs++
		result.Deleted += res.Deleted
	}
	return result, nil
}

// ── Helpers ──

func (s *uploadLogService) read(name string) (*ingest.BatchLog, error) {
	var entry ingest.BatchLog
	if err := s.audit.Read(name, &entry); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, ErrUploadLogNotFound
		case errors.Is(err, pkgerrors.ErrInvalidLogName):
			return nil, ErrInvalidLogName
		}
		s.logger.Error("read upload log failed", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return &entry, nil
}

func isCheckupLog(name string) bool {
	return strings.HasPrefix(name, ingest.KindCheckups+"-")
}

func kindOf(name, recorded string) string {
	if recorded != "" {
		return recorded
	}
	if i := strings.IndexByte(name, '-'); i > 0 {
		return name[:i]
	}
	return ""
}

func parseCheckupIDs(raw []string) ([]int64, error) {
	ids := make([]int64, 0, len(raw))
	for _, r := range raw {
		id, err := strconv.ParseInt(r, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid checkup id %q: %w", r, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
