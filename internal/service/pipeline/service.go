package pipeline

import (
	"slot_math/internal/config"
	"slot_math/internal/model"
	"slot_math/internal/repository"
	"slot_math/internal/service"
	"sync"

	"go.uber.org/zap"
)

// SummaryName файл сводки прогона в корне хранилища артефактов
const SummaryName = "run_summary.json"

type serv struct {
	game      *model.Game
	runCfg    config.RunConfig
	sim       service.SimulationService
	optimizer service.OptimizerService
	publish   service.PublishService
	bookRepo  repository.BookRepository
	artifacts repository.ArtifactRepository
	log       *zap.Logger

	mtx  sync.RWMutex
	last *model.RunSummary
}

// NewPipelineService прогон режимов: симуляция, подбор весов, публикация, сводка
func NewPipelineService(
	game *model.Game,
	runCfg config.RunConfig,
	sim service.SimulationService,
	optimizer service.OptimizerService,
	publish service.PublishService,
	bookRepo repository.BookRepository,
	artifacts repository.ArtifactRepository,
	log *zap.Logger,
) service.PipelineService {
	if log == nil {
		log = zap.NewNop()
	}
	return &serv{
		game:      game,
		runCfg:    runCfg,
		sim:       sim,
		optimizer: optimizer,
		publish:   publish,
		bookRepo:  bookRepo,
		artifacts: artifacts,
		log:       log,
	}
}

// LastSummary сводка последнего завершенного прогона
func (s *serv) LastSummary() (*model.RunSummary, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.last, s.last != nil
}
