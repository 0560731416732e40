package report

import (
	"context"
	"errors"
	"slot_math/internal/model"
	"slot_math/internal/repository"
	"slot_math/internal/service"
)

var ErrNoRun = errors.New("no finished run yet")

type serv struct {
	pipeline  service.PipelineService
	bookRepo  repository.BookRepository
	statsRepo repository.StatsRepository
}

// NewReportService чтение результатов прогона для API оператора
func NewReportService(
	pipeline service.PipelineService,
	bookRepo repository.BookRepository,
	statsRepo repository.StatsRepository,
) service.ReportService {
	return &serv{
		pipeline:  pipeline,
		bookRepo:  bookRepo,
		statsRepo: statsRepo,
	}
}

func (s *serv) Summary() (*model.RunSummary, error) {
	summary, ok := s.pipeline.LastSummary()
	if !ok {
		return nil, ErrNoRun
	}
	return summary, nil
}

// Mode строка сводки режима и счетчики симуляции
func (s *serv) Mode(name string) (*model.ModeReport, model.ModeStats, error) {
	summary, err := s.Summary()
	if err != nil {
		return nil, model.ModeStats{}, err
	}
	for i := range summary.Modes {
		if summary.Modes[i].Mode == name {
			return &summary.Modes[i], s.statsRepo.ModeStats(name), nil
		}
	}
	return nil, model.ModeStats{}, model.ErrModeNotFound
}

func (s *serv) Book(ctx context.Context, mode string, id int) (*model.Book, error) {
	return s.bookRepo.Book(ctx, mode, id)
}
