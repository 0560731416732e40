package round

import (
	"slot_math/internal/model"
	"slot_math/internal/service"
	"slot_math/pkg/sampler"
	"sync"

	"go.uber.org/zap"
)

type serv struct {
	game *model.Game
	log  *zap.Logger

	mtx    sync.RWMutex
	tables map[string]*modeTables
	errs   map[string]error
}

// NewRoundService движок одного раунда. Таблицы режимов компилируются лениво,
// ошибка конфигурации режима не мешает остальным режимам.
func NewRoundService(game *model.Game, log *zap.Logger) service.RoundService {
	if log == nil {
		log = zap.NewNop()
	}
	return &serv{
		game:   game,
		log:    log,
		tables: make(map[string]*modeTables),
		errs:   make(map[string]error),
	}
}

// Validate компилирует таблицы режима и возвращает ConfigurationError, если чего-то не хватает
func (s *serv) Validate(mode string) error {
	_, err := s.modeTables(mode)
	return err
}

// Play разыгрывает один раунд без проверки условий форсирования
func (s *serv) Play(modeName string, dist *model.Distribution, state *model.SessionState, rng sampler.Source) (*model.Book, error) {
	mt, err := s.modeTables(modeName)
	if err != nil {
		return nil, err
	}
	if dist == nil {
		return nil, model.NewConfigurationError(modeName, "distribution is nil")
	}
	dt, ok := mt.dists[dist.Criteria]
	if !ok {
		return nil, model.NewConfigurationError(modeName, "unknown criteria %q", dist.Criteria)
	}
	if state == nil {
		state = model.NewSessionState()
	}

	r := newRound(s, mt, dist, dt, state, rng)

	switch mt.mode.Kind {
	case model.KindLines:
		r.playLines()
	case model.KindSuperSpin:
		r.playSuperSpin()
	case model.KindHold:
		r.playHold()
	default:
		return nil, model.NewConfigurationError(modeName, "unknown mode kind %q", mt.mode.Kind)
	}

	return r.finish(), nil
}

func (s *serv) modeTables(name string) (*modeTables, error) {
	s.mtx.RLock()
	mt, ok := s.tables[name]
	err := s.errs[name]
	s.mtx.RUnlock()
	if ok {
		return mt, nil
	}
	if err != nil {
		return nil, err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()
	if mt, ok := s.tables[name]; ok {
		return mt, nil
	}
	mt, err = compileMode(s.game, name)
	if err != nil {
		s.log.Error("mode configuration rejected", zap.String("mode", name), zap.Error(err))
		s.errs[name] = err
		return nil, err
	}
	s.tables[name] = mt
	return mt, nil
}
