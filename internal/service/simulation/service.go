package simulation

import (
	"slot_math/internal/model"
	"slot_math/internal/repository"
	"slot_math/internal/service"

	"go.uber.org/zap"
)

// DefaultForceRetryRounds сколько раз планировщик повторяет форсированный раунд после ForceUnsatisfiable
const DefaultForceRetryRounds = 5

type serv struct {
	game      *model.Game
	round     service.RoundService
	criteria  service.CriteriaService
	bookRepo  repository.BookRepository
	statsRepo repository.StatsRepository
	log       *zap.Logger

	forceRetryRounds int
}

// NewSimulationService планировщик прогонов: пачки раундов на пуле воркеров
func NewSimulationService(
	game *model.Game,
	round service.RoundService,
	criteria service.CriteriaService,
	bookRepo repository.BookRepository,
	statsRepo repository.StatsRepository,
	forceRetryRounds int,
	log *zap.Logger,
) service.SimulationService {
	if forceRetryRounds <= 0 {
		forceRetryRounds = DefaultForceRetryRounds
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &serv{
		game:             game,
		round:            round,
		criteria:         criteria,
		bookRepo:         bookRepo,
		statsRepo:        statsRepo,
		log:              log,
		forceRetryRounds: forceRetryRounds,
	}
}
