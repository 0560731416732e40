package optimizer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"slices"
	"slot_math/internal/model"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SolveMode решает корзины режима параллельно, затем согласует их массы
// с целевым RTP режима и строит lookup таблицу
func (s *serv) SolveMode(ctx context.Context, modeName string, books []model.Book) (*model.ModeWeights, error) {
	mode, bounds, err := s.mode(modeName)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, &model.InfeasibleTarget{Mode: modeName, Target: s.modeRTP(mode), Reason: "no books to solve"}
	}

	groups := make(map[string][]model.Book)
	for _, b := range books {
		groups[b.Criteria] = append(groups[b.Criteria], b)
	}
	names := make([]string, 0, len(groups))
	for c := range groups {
		names = append(names, c)
	}
	slices.Sort(names)

	buckets := make([]model.WeightAssignment, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, c := range names {
		g.Go(func() error {
			wa, err := s.SolveBucket(gctx, modeName, c, groups[c])
			if err != nil {
				return err
			}
			buckets[i] = *wa
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	rtp := s.modeRTP(mode)
	violations, err := s.balance(ctx, mode, groups, buckets, rtp, bounds.Tolerance)
	if err != nil {
		return nil, err
	}

	payout := make(map[int]int64, len(books))
	for _, b := range books {
		payout[b.ID] = b.PayoutMultiplier
	}
	divisor := mode.Divisor()

	res := &model.ModeWeights{
		Mode:       modeName,
		Rows:       make([]model.LookupRow, 0, len(books)),
		Buckets:    buckets,
		Violations: violations,
	}
	var sw, sp, hits float64
	for _, wa := range buckets {
		var total float64
		for _, w := range wa.Weights {
			total += float64(w)
		}
		for k, id := range wa.IDs {
			lw := uint64(max(math.Round(wa.Mass*float64(wa.Weights[k])/total*bounds.LookupTotal), 1))
			pm := payout[id]
			res.Rows = append(res.Rows, model.LookupRow{ID: id, Weight: lw, PayoutMultiplier: pm})

			sw += float64(lw)
			sp += float64(lw) * float64(pm) / 100 / divisor
			if pm > 0 {
				hits += float64(lw)
			}
		}
	}
	slices.SortFunc(res.Rows, func(a, b model.LookupRow) int { return a.ID - b.ID })

	res.RealizedRTP = sp / sw
	res.HitRate = hits / sw
	if math.Abs(res.RealizedRTP-rtp) > bounds.Tolerance {
		res.Violations = append(res.Violations,
			fmt.Sprintf("realized rtp %.6f outside %.6f ± %g", res.RealizedRTP, rtp, bounds.Tolerance))
	}

	s.log.Info("mode solved",
		zap.String("mode", modeName),
		zap.Int("buckets", len(buckets)),
		zap.Float64("target_rtp", rtp),
		zap.Float64("realized_rtp", res.RealizedRTP),
		zap.Float64("hit_rate", res.HitRate),
		zap.Strings("violations", res.Violations),
	)
	return res, nil
}

// balance раскладывает массы корзин под rtp режима. Корзины без своей цели закрывают разрыв
// между rtp и вкладом корзин с целью: они получают массу по квотам и пересчитываются под общее среднее.
// Если разрыв наклоном не закрыть, массы масштабируются как в normalize, причина уходит в нарушения.
func (s *serv) balance(ctx context.Context, mode *model.Mode, groups map[string][]model.Book, buckets []model.WeightAssignment, rtp, tol float64) ([]string, error) {
	flex, avg, err := flexTarget(mode, buckets, rtp)
	if err != nil {
		return nil, err
	}
	if len(flex) == 0 {
		return nil, normalize(mode, buckets, rtp, tol)
	}

	err = s.retarget(ctx, mode.Name, groups, buckets, flex, avg)
	var inf *model.InfeasibleTarget
	switch {
	case err == nil:
		return nil, absorb(mode, buckets, rtp, tol)
	case errors.As(err, &inf):
		for _, i := range flex {
			buckets[i].Mass = 0
		}
		return []string{fmt.Sprintf("rtp gap not closed: %v", err)}, normalize(mode, buckets, rtp, tol)
	default:
		return nil, err
	}
}

// flexTarget находит корзины без своей цели (масса 0 после SolveBucket), выставляет им массы
// по квотам и возвращает общее среднее, при котором sum(mass*avg) = rtp
func flexTarget(mode *model.Mode, buckets []model.WeightAssignment, rtp float64) ([]int, float64, error) {
	quota := quotas(mode)

	var (
		flex                  []int
		zeros                 bool
		pinnedMass, pinnedRTP float64
		flexQuota             float64
	)
	for i := range buckets {
		wa := &buckets[i]
		switch {
		case wa.RealizedAvg <= 0:
			zeros = true
		case wa.Mass == 0:
			flex = append(flex, i)
			flexQuota += quota[wa.Criteria]
		default:
			pinnedMass += wa.Mass
			pinnedRTP += wa.Mass * wa.RealizedAvg
		}
	}
	if len(flex) == 0 {
		return nil, 0, nil
	}

	free := 1 - pinnedMass
	if zeros {
		free = min(free, flexQuota)
	}
	if free <= 0 {
		return nil, 0, &model.InfeasibleTarget{
			Mode:   mode.Name,
			Target: rtp,
			Reason: fmt.Sprintf("buckets with targets need mass %.6f, nothing left for the rest", pinnedMass),
		}
	}
	avg := (rtp - pinnedRTP) / free
	if avg <= 0 {
		return nil, 0, &model.InfeasibleTarget{
			Mode:   mode.Name,
			Target: rtp,
			Reason: fmt.Sprintf("buckets with targets already return %.6f", pinnedRTP),
		}
	}

	for _, i := range flex {
		share := 1 / float64(len(flex))
		if flexQuota > 0 {
			share = quota[buckets[i].Criteria] / flexQuota
		}
		buckets[i].Mass = free * share
	}
	return flex, avg, nil
}

// retarget пересчитывает веса корзин flex под среднее avg. Массы сохраняются,
// buckets меняются только если решены все корзины.
func (s *serv) retarget(ctx context.Context, modeName string, groups map[string][]model.Book, buckets []model.WeightAssignment, flex []int, avg float64) error {
	solved := make([]*model.WeightAssignment, len(flex))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for k, i := range flex {
		c := buckets[i].Criteria
		g.Go(func() error {
			wa, err := s.solveBucket(gctx, modeName, c, groups[c], &avg)
			if err != nil {
				return err
			}
			wa.Mass = buckets[i].Mass
			solved[k] = wa
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for k, i := range flex {
		buckets[i] = *solved[k]
	}
	return nil
}

func quotas(mode *model.Mode) map[string]float64 {
	quota := make(map[string]float64, len(mode.Distributions))
	for _, d := range mode.Distributions {
		quota[d.Criteria] += d.Quota
	}
	return quota
}

// normalize приводит массы корзин к sum(mass*avg) = rtp общим множителем выигрышных корзин.
// Корзины без массы берут ее из квоты.
func normalize(mode *model.Mode, buckets []model.WeightAssignment, rtp, tol float64) error {
	quota := quotas(mode)

	var contribution float64
	for i := range buckets {
		wa := &buckets[i]
		if wa.RealizedAvg <= 0 {
			continue
		}
		if wa.Mass == 0 {
			wa.Mass = quota[wa.Criteria]
		}
		contribution += wa.Mass * wa.RealizedAvg
	}
	if contribution == 0 {
		return &model.InfeasibleTarget{Mode: mode.Name, Target: rtp, Reason: "no winning bucket carries mass"}
	}

	k := rtp / contribution
	for i := range buckets {
		if buckets[i].RealizedAvg > 0 {
			buckets[i].Mass *= k
		}
	}
	return absorb(mode, buckets, rtp, tol)
}

// absorb доводит сумму масс до 1: нулевые корзины делят остаток по квотам.
// Без нулевых корзин массы нормируются к единице, расхождение RTP остается нарушением.
func absorb(mode *model.Mode, buckets []model.WeightAssignment, rtp, tol float64) error {
	var (
		positive float64
		zeros    []int
	)
	for i := range buckets {
		if buckets[i].RealizedAvg > 0 {
			positive += buckets[i].Mass
		} else {
			zeros = append(zeros, i)
		}
	}

	if len(zeros) == 0 {
		for i := range buckets {
			buckets[i].Mass /= positive
		}
		return nil
	}

	remainder := 1 - positive
	if remainder < -tol {
		names := make([]string, 0, len(zeros))
		for _, i := range zeros {
			names = append(names, buckets[i].Criteria)
		}
		return &model.InfeasibleTarget{
			Mode:     mode.Name,
			Criteria: strings.Join(names, ","),
			Target:   rtp,
			Reason:   fmt.Sprintf("winning buckets need mass %.6f > 1, nothing left for zero buckets", positive),
		}
	}
	remainder = max(remainder, 0)

	quota := quotas(mode)
	var zq float64
	for _, i := range zeros {
		zq += quota[buckets[i].Criteria]
	}
	for _, i := range zeros {
		share := 1 / float64(len(zeros))
		if zq > 0 {
			share = quota[buckets[i].Criteria] / zq
		}
		buckets[i].Mass = remainder * share
	}
	return nil
}
