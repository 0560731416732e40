package criteria

import (
	"math"
	"slot_math/internal/model"
	"slot_math/internal/service"
	"slot_math/pkg/sampler"
	"sync"

	"go.uber.org/zap"
)

// DefaultMaxRetries лимит перегенераций одного форсированного раунда
const DefaultMaxRetries = 1000

const quotaTolerance = 1e-6

type serv struct {
	game       *model.Game
	round      service.RoundService
	maxRetries int
	log        *zap.Logger

	mtx       sync.RWMutex
	selectors map[string]*sampler.Weighted[string]
}

// NewCriteriaService выбор профиля форсирования и генерация раунда под его условия
func NewCriteriaService(
	game *model.Game,
	round service.RoundService,
	maxRetries int,
	log *zap.Logger,
) service.CriteriaService {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &serv{
		game:       game,
		round:      round,
		maxRetries: maxRetries,
		log:        log,
		selectors:  make(map[string]*sampler.Weighted[string]),
	}
}

// mode возвращает режим с проверенными квотами
func (s *serv) mode(name string) (*model.Mode, error) {
	mode := s.game.Mode(name)
	if mode == nil {
		return nil, &model.ConfigurationError{Mode: name, Err: model.ErrModeNotFound}
	}
	if len(mode.Distributions) == 0 {
		return nil, model.NewConfigurationError(name, "no distributions")
	}
	var sum float64
	for _, d := range mode.Distributions {
		if d.Quota < 0 {
			return nil, model.NewConfigurationError(name, "criteria %q: negative quota %v", d.Criteria, d.Quota)
		}
		sum += d.Quota
	}
	if math.Abs(sum-1) > quotaTolerance {
		return nil, model.NewConfigurationError(name, "quotas sum to %v, want 1", sum)
	}
	return mode, nil
}

func (s *serv) selector(mode *model.Mode) (*sampler.Weighted[string], error) {
	s.mtx.RLock()
	w, ok := s.selectors[mode.Name]
	s.mtx.RUnlock()
	if ok {
		return w, nil
	}

	table := make(map[string]float64, len(mode.Distributions))
	for _, d := range mode.Distributions {
		table[d.Criteria] += d.Quota
	}
	w, err := sampler.New(table)
	if err != nil {
		return nil, model.NewConfigurationError(mode.Name, "quotas: %v", err)
	}

	s.mtx.Lock()
	s.selectors[mode.Name] = w
	s.mtx.Unlock()
	return w, nil
}
