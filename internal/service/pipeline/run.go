package pipeline

import (
	"context"
	"fmt"
	"slot_math/internal/model"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Run прогоняет режимы по очереди. Ошибка режима помечает его failed и не останавливает остальные.
// Ошибка возвращается только если не удалось записать сводку.
func (s *serv) Run(ctx context.Context) (*model.RunSummary, error) {
	summary := &model.RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	log := s.log.With(zap.String("run_id", summary.RunID))

	modes := s.runCfg.Modes()
	if len(modes) == 0 {
		for _, m := range s.game.Modes {
			modes = append(modes, m.Name)
		}
	}

	var published []model.ModeArtifacts
	for _, name := range modes {
		report, art := s.runMode(ctx, name)
		if report.Status == model.StatusFailed {
			log.Error("mode failed", zap.String("mode", name), zap.String("error", report.Error))
		}
		if art != nil {
			published = append(published, *art)
		}
		summary.Modes = append(summary.Modes, report)
	}

	if len(published) > 0 {
		manifest, err := s.publish.WriteManifest(ctx, published)
		if err != nil {
			log.Error("manifest not written", zap.Error(err))
			for i := range summary.Modes {
				if summary.Modes[i].Status != model.StatusFailed {
					summary.Modes[i].Status = model.StatusPartial
					summary.Modes[i].Violations = append(summary.Modes[i].Violations, "manifest not written: "+err.Error())
				}
			}
		} else {
			summary.BuildID = manifest.BuildID
		}
	}

	summary.FinishedAt = time.Now().UTC()
	s.mtx.Lock()
	s.last = summary
	s.mtx.Unlock()

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return summary, err
	}
	if err = s.artifacts.Put(ctx, SummaryName, data); err != nil {
		return summary, &model.IOError{Path: s.artifacts.Location(SummaryName), Err: err}
	}

	log.Info("run finished",
		zap.Int("modes", len(summary.Modes)),
		zap.String("build_id", summary.BuildID),
		zap.Duration("elapsed", summary.FinishedAt.Sub(summary.StartedAt)),
	)
	return summary, nil
}

// runMode симуляция, веса и публикация одного режима
func (s *serv) runMode(ctx context.Context, name string) (model.ModeReport, *model.ModeArtifacts) {
	report := model.ModeReport{Mode: name, Status: model.StatusFailed}
	mode := s.game.Mode(name)
	if mode == nil {
		report.Error = (&model.ConfigurationError{Mode: name, Err: model.ErrModeNotFound}).Error()
		return report, nil
	}
	report.TargetRTP = mode.RTP
	if report.TargetRTP <= 0 {
		report.TargetRTP = s.game.RTP
	}

	res, err := s.sim.Run(ctx, model.SimulationRequest{
		Mode:      name,
		Count:     s.runCfg.RoundsFor(name),
		Workers:   s.runCfg.Workers(),
		BatchSize: s.runCfg.BatchSize(),
		Seed:      s.runCfg.Seed(),
	})
	if err != nil {
		report.Error = fmt.Sprintf("simulate: %v", err)
		return report, nil
	}
	report.Rounds = res.Rounds
	report.Discarded = res.Discarded
	report.Unsatisfied = res.Unsatisfied

	books, err := s.bookRepo.Books(ctx, name)
	if err != nil {
		report.Error = fmt.Sprintf("load books: %v", err)
		return report, nil
	}

	weights, err := s.optimizer.SolveMode(ctx, name, books)
	if err != nil {
		report.Error = fmt.Sprintf("optimize: %v", err)
		return report, nil
	}
	report.RealizedRTP = weights.RealizedRTP
	report.HitRate = weights.HitRate
	report.Violations = weights.Violations
	for _, b := range weights.Buckets {
		report.Buckets = append(report.Buckets, model.BucketReport{
			Criteria:    b.Criteria,
			Count:       len(b.IDs),
			Target:      b.Target,
			RealizedAvg: b.RealizedAvg,
			HitRate:     b.HitRate,
			Mass:        b.Mass,
		})
	}

	art, err := s.publish.PublishMode(ctx, name, books, weights)
	if err != nil {
		report.Error = fmt.Sprintf("publish: %v", err)
		return report, nil
	}

	report.Status = model.StatusSuccess
	if len(report.Unsatisfied) > 0 || len(report.Violations) > 0 {
		report.Status = model.StatusPartial
	}
	return report, art
}
