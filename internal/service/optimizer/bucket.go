package optimizer

import (
	"context"
	"errors"
	"slot_math/internal/model"

	"go.uber.org/zap"
)

// SolveBucket веса одной корзины (mode, criteria). books упорядочены по id.
func (s *serv) SolveBucket(ctx context.Context, modeName, criteria string, books []model.Book) (*model.WeightAssignment, error) {
	return s.solveBucket(ctx, modeName, criteria, books, nil)
}

// solveBucket avg != nil задает целевое среднее вместо цели из конфигурации
func (s *serv) solveBucket(ctx context.Context, modeName, criteria string, books []model.Book, avg *float64) (*model.WeightAssignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mode, bounds, err := s.mode(modeName)
	if err != nil {
		return nil, err
	}

	opt := mode.Optimization
	tg := resolveTarget(opt.Conditions[criteria], mode.Divisor())
	if avg != nil {
		tg.avg, tg.hasAvg = *avg, true
	}

	payouts := make([]float64, len(books))
	ids := make([]int, len(books))
	for i, b := range books {
		payouts[i] = b.PayoutMultiple
		ids[i] = b.ID
	}
	scale, err := scaleFactors(modeName, criteria, payouts, opt.Scaling)
	if err != nil {
		return nil, err
	}

	weights, err := solveWeights(problem{
		payouts: payouts,
		scale:   scale,
		target:  tg.avg,
		tilt:    tg.hasAvg,
		hitRate: tg.hitRate,
		bounds:  bounds,
	})
	if err != nil {
		var inf *model.InfeasibleTarget
		if errors.As(err, &inf) {
			inf.Mode, inf.Criteria = modeName, criteria
		}
		s.log.Warn("bucket target infeasible",
			zap.String("mode", modeName),
			zap.String("criteria", criteria),
			zap.Error(err),
		)
		return nil, err
	}

	wa := &model.WeightAssignment{
		Mode:        modeName,
		Criteria:    criteria,
		IDs:         ids,
		Weights:     weights,
		RealizedAvg: mean(weights, payouts),
		HitRate:     hitRate(weights, payouts),
	}
	wa.Target = wa.RealizedAvg
	if tg.hasAvg {
		wa.Target = tg.avg
	}

	switch {
	case tg.hasMass:
		wa.Mass = tg.mass
	case tg.rtp > 0:
		if wa.RealizedAvg <= 0 {
			return nil, &model.InfeasibleTarget{
				Mode:     modeName,
				Criteria: criteria,
				Target:   tg.rtp,
				Reason:   "rtp target on a bucket without wins",
			}
		}
		wa.Mass = tg.rtp / wa.RealizedAvg
	}

	s.log.Debug("bucket solved",
		zap.String("mode", modeName),
		zap.String("criteria", criteria),
		zap.Int("records", len(books)),
		zap.Float64("target", wa.Target),
		zap.Float64("realized", wa.RealizedAvg),
		zap.Float64("hit_rate", wa.HitRate),
	)
	return wa, nil
}

// scaleFactors стартовые масштабы записей по правилам scaling.
// probability задает долю применения правила: множитель 1 + (scale_factor-1)*probability.
func scaleFactors(mode, criteria string, payouts []float64, rules []model.ScalingRule) ([]float64, error) {
	scale := make([]float64, len(payouts))
	for i := range scale {
		scale[i] = 1
	}
	for _, r := range rules {
		if r.Criteria != "" && r.Criteria != criteria {
			continue
		}
		if r.ScaleFactor <= 0 {
			return nil, model.NewConfigurationError(mode, "scaling %s: scale_factor must be > 0", r.Criteria)
		}
		prob := r.Probability
		if prob == 0 {
			prob = 1
		}
		if prob < 0 || prob > 1 {
			return nil, model.NewConfigurationError(mode, "scaling %s: probability must be in (0,1]", r.Criteria)
		}
		f := 1 + (r.ScaleFactor-1)*prob
		for i, p := range payouts {
			if p >= r.WinRange[0] && p <= r.WinRange[1] {
				scale[i] *= f
			}
		}
	}
	return scale, nil
}
