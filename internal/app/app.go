package app

import (
	"context"
	"fmt"
	"net/http"
	"slot_math/internal/config"
	"slot_math/internal/model"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
)

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

// Run прогоняет режимы и публикует артефакты. Если задан HTTP_ADDR,
// после прогона поднимает API отчетов.
func (s *App) Run() error {
	envErr := config.Load(".env")
	s.initServiceProvider()

	logger := s.ServiceProvider.Logger()
	defer logger.Sync()
	if envErr != nil {
		logger.Info(".env not loaded, using process environment", zap.Error(envErr))
	}

	undo, err := maxprocs.Set(maxprocs.Logger(logger.Sugar().Infof))
	if err != nil {
		logger.Warn("failed to set GOMAXPROCS", zap.Error(err))
	}
	defer undo()

	ctx := context.Background()
	summary, err := s.ServiceProvider.PipelineService(ctx).Run(ctx)
	if err != nil {
		return err
	}

	var failed int
	for _, m := range summary.Modes {
		logger.Info("mode status",
			zap.String("mode", m.Mode),
			zap.String("status", string(m.Status)),
			zap.Int("rounds", m.Rounds),
			zap.Float64("realized_rtp", m.RealizedRTP),
			zap.Float64("hit_rate", m.HitRate),
			zap.Strings("violations", m.Violations),
		)
		if m.Status == model.StatusFailed {
			failed++
		}
	}

	if httpCfg, ok := s.ServiceProvider.HTTPCfg(); ok {
		r := s.ServiceProvider.Router(ctx)
		logger.Info("starting server", zap.String("address", httpCfg.Address()))
		return http.ListenAndServe(httpCfg.Address(), r)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d modes failed", failed, len(summary.Modes))
	}
	return nil
}
