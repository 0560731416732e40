package optimizer

import (
	"slot_math/internal/model"
	"slot_math/internal/service"

	"go.uber.org/zap"
)

// Значения границ по умолчанию, если в optimization.bounds поле не задано
const (
	DefaultMinWeight    = 1
	DefaultMaxWeight    = 10_000_000
	DefaultTolerance    = 1e-4
	DefaultRefinePasses = 10
	DefaultLookupTotal  = 1 << 40
)

type serv struct {
	game *model.Game
	log  *zap.Logger
}

// NewOptimizerService подбор целочисленных весов записей под целевой RTP корзин и режима
func NewOptimizerService(game *model.Game, log *zap.Logger) service.OptimizerService {
	if log == nil {
		log = zap.NewNop()
	}
	return &serv{
		game: game,
		log:  log,
	}
}

func (s *serv) mode(name string) (*model.Mode, model.SolverBounds, error) {
	mode := s.game.Mode(name)
	if mode == nil {
		return nil, model.SolverBounds{}, &model.ConfigurationError{Mode: name, Err: model.ErrModeNotFound}
	}
	b, err := withDefaults(name, mode.Optimization.Bounds)
	if err != nil {
		return nil, model.SolverBounds{}, err
	}
	return mode, b, nil
}

// modeRTP целевой RTP режима, по умолчанию RTP игры.
// Для режима без стоимости это средний выигрыш в ставках.
func (s *serv) modeRTP(mode *model.Mode) float64 {
	if mode.RTP > 0 {
		return mode.RTP
	}
	return s.game.RTP
}

func withDefaults(mode string, b model.SolverBounds) (model.SolverBounds, error) {
	if b.MinWeight == 0 {
		b.MinWeight = DefaultMinWeight
	}
	if b.MaxWeight == 0 {
		b.MaxWeight = DefaultMaxWeight
	}
	if b.Tolerance <= 0 {
		b.Tolerance = DefaultTolerance
	}
	if b.RefinePasses <= 0 {
		b.RefinePasses = DefaultRefinePasses
	}
	if b.LookupTotal <= 0 {
		b.LookupTotal = DefaultLookupTotal
	}
	if b.MaxWeight < b.MinWeight {
		return b, model.NewConfigurationError(mode, "bounds: max_weight %d < min_weight %d", b.MaxWeight, b.MinWeight)
	}
	return b, nil
}

// target цель корзины, выведенная из rtp/hr/av_win
type target struct {
	avg     float64
	hasAvg  bool
	mass    float64
	hasMass bool
	// rtp без второй величины: масса считается по фактическому среднему
	rtp     float64
	hitRate float64
}

// resolveTarget переводит цель корзины в единицы payout multiple.
// av_win задан в ставках, как выплаты в конфигурации, и делится на стоимость режима.
func resolveTarget(bt model.BucketTarget, divisor float64) target {
	t := target{hitRate: bt.HitRate}
	if bt.AvWin > 0 {
		t.avg, t.hasAvg = bt.AvWin/divisor, true
	}
	if bt.HR > 0 {
		t.mass, t.hasMass = 1/bt.HR, true
	}
	switch {
	case bt.RTP <= 0:
	case t.hasMass && !t.hasAvg:
		t.avg, t.hasAvg = bt.RTP/t.mass, true
	case t.hasAvg && !t.hasMass:
		t.mass, t.hasMass = bt.RTP/t.avg, true
	case !t.hasAvg && !t.hasMass:
		t.rtp = bt.RTP
	}
	return t
}
