package simulation

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slot_math/internal/model"
	"slot_math/pkg/sampler"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultBatchSize = 1000

// batch диапазон id [first, last] и его номер подпотока
type batch struct {
	index int
	first int
	last  int
}

// Run заполняет Book Store раундами режима.
// Раунд с id i всегда получает criteria plan[i-1] и подпоток своей пачки,
// поэтому содержимое хранилища не зависит от числа воркеров.
func (s *serv) Run(ctx context.Context, req model.SimulationRequest) (*model.SimulationResult, error) {
	if req.Count <= 0 {
		return nil, model.NewConfigurationError(req.Mode, "round count must be > 0, got %d", req.Count)
	}
	mode := s.game.Mode(req.Mode)
	if mode == nil {
		return nil, &model.ConfigurationError{Mode: req.Mode, Err: model.ErrModeNotFound}
	}
	if err := s.round.Validate(req.Mode); err != nil {
		return nil, err
	}

	workers := req.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	batchSize := req.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	modeSeed := req.Seed ^ sampler.Hash64(req.Mode)
	plan, err := s.criteria.Plan(req.Mode, req.Count, modeSeed)
	if err != nil {
		return nil, err
	}

	// Повторный прогон режима начинается с чистого хранилища
	if err = s.bookRepo.Reset(ctx, req.Mode); err != nil {
		return nil, fmt.Errorf("reset books of mode %s: %w", req.Mode, err)
	}
	s.statsRepo.Reset(req.Mode)

	batches := (req.Count + batchSize - 1) / batchSize
	workers = min(workers, batches)

	s.log.Info("simulation started",
		zap.String("mode", req.Mode),
		zap.Int("rounds", req.Count),
		zap.Int("batches", batches),
		zap.Int("workers", workers),
		zap.Uint64("seed", req.Seed),
	)
	started := time.Now()

	var next atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for range workers {
		g.Go(func() error {
			for {
				b := int(next.Add(1) - 1)
				if b >= batches {
					return nil
				}
				if err := gctx.Err(); err != nil {
					return err
				}
				first := b*batchSize + 1
				bt := batch{index: b, first: first, last: min(first+batchSize-1, req.Count)}
				if err := s.runBatch(gctx, mode, plan, modeSeed, bt); err != nil {
					return err
				}
			}
		})
	}
	if err = g.Wait(); err != nil {
		var cfgErr *model.ConfigurationError
		if errors.As(err, &cfgErr) {
			s.log.Error("simulation aborted", zap.String("mode", req.Mode), zap.Error(err))
		}
		return nil, err
	}

	stats := s.statsRepo.ModeStats(req.Mode)
	res := &model.SimulationResult{
		Mode:        req.Mode,
		Rounds:      stats.Rounds,
		Discarded:   stats.Discarded,
		Unsatisfied: stats.Unsatisfied,
		PerCriteria: stats.PerCriteria,
	}

	s.log.Info("simulation finished",
		zap.String("mode", req.Mode),
		zap.Int("rounds", res.Rounds),
		zap.Int("discarded", res.Discarded),
		zap.Int("unsatisfied", len(res.Unsatisfied)),
		zap.Float64("raw_rtp", stats.RawRTP),
		zap.Duration("elapsed", time.Since(started)),
	)
	return res, nil
}

// runBatch разыгрывает пачку в локальный срез и сливает ее в хранилище одной операцией
func (s *serv) runBatch(ctx context.Context, mode *model.Mode, plan []string, modeSeed uint64, bt batch) error {
	rng := sampler.Stream(modeSeed, uint64(bt.index))

	books := make([]model.Book, 0, bt.last-bt.first+1)
	stats := model.BatchStats{PerCriteria: make(map[string]int)}

	for id := bt.first; id <= bt.last; id++ {
		criteria := plan[id-1]
		dist := mode.Distribution(criteria)
		if dist == nil {
			return model.NewConfigurationError(mode.Name, "unknown criteria %q", criteria)
		}

		book, discarded, err := s.generate(mode.Name, dist, rng)
		stats.Discarded += discarded
		if err != nil {
			var unsat *model.ForceUnsatisfiable
			if !errors.As(err, &unsat) {
				return err
			}
			// id остается без записи, режим получит статус partial
			stats.Unsatisfied = append(stats.Unsatisfied, id)
			continue
		}

		book.ID = id
		books = append(books, *book)
		stats.Rounds++
		stats.Payout += book.PayoutMultiple
		if book.PayoutMultiplier > 0 {
			stats.Hits++
		}
		stats.PerCriteria[criteria]++
	}

	if err := s.bookRepo.AppendBatch(ctx, mode.Name, books); err != nil {
		return fmt.Errorf("merge batch %d of mode %s: %w", bt.index, mode.Name, err)
	}
	s.statsRepo.UpdateState(mode.Name, stats)
	return nil
}

// generate повторяет форсированный раунд до forceRetryRounds раз
func (s *serv) generate(mode string, dist *model.Distribution, rng sampler.Source) (*model.Book, int, error) {
	var (
		total int
		err   error
	)
	for range s.forceRetryRounds {
		var (
			book      *model.Book
			discarded int
		)
		book, discarded, err = s.criteria.Generate(mode, dist, rng)
		total += discarded
		if err == nil {
			return book, total, nil
		}
		var unsat *model.ForceUnsatisfiable
		if !errors.As(err, &unsat) {
			return nil, total, err
		}
	}
	return nil, total, err
}
