package optimizer

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"slot_math/internal/model"
)

const (
	// Границы параметра наклона. На границе записи, отстоящие от крайней дальше spread/6000,
	// уже получают min или max вес, так что достижим почти весь диапазон [min, max] выплат.
	lambdaLimit      = 1e5
	bisectIterations = 100
)

// problem одна корзина: выплаты записей, стартовые масштабы и цель
type problem struct {
	payouts []float64
	scale   []float64
	// Целевое среднее. tilt=false - веса остаются пропорциональны масштабам.
	target  float64
	tilt    bool
	hitRate float64
	bounds  model.SolverBounds
}

// solveWeights подбирает целочисленные веса в [min,max]. Ошибка всегда *model.InfeasibleTarget
// без заполненных Mode/Criteria.
func solveWeights(p problem) ([]uint64, error) {
	if len(p.payouts) == 0 {
		return nil, &model.InfeasibleTarget{Target: p.target, Reason: "bucket is empty"}
	}
	if p.hitRate > 0 {
		return solveWithHitRate(p)
	}
	return solveTilt(p)
}

// solveTilt: w_i = s_i * exp(lambda * (p_i - T) / spread), lambda ищется бисекцией,
// затем точечные поправки отдельных записей
func solveTilt(p problem) ([]uint64, error) {
	n := len(p.payouts)
	w := make([]uint64, n)
	buf := make([]float64, n)

	if !p.tilt {
		applyTilt(w, buf, p, 0, 1)
		return w, nil
	}

	lo, hi := slices.Min(p.payouts), slices.Max(p.payouts)
	spread := hi - lo
	tol := p.bounds.Tolerance
	if spread == 0 {
		if math.Abs(lo-p.target) > tol {
			return nil, &model.InfeasibleTarget{Target: p.target, Low: lo, High: hi}
		}
		applyTilt(w, buf, p, 0, 1)
		return w, nil
	}

	eval := func(lambda float64) float64 {
		applyTilt(w, buf, p, lambda, spread)
		return mean(w, p.payouts)
	}

	fLo, fHi := eval(-lambdaLimit), eval(lambdaLimit)
	if p.target < fLo-tol || p.target > fHi+tol {
		return nil, &model.InfeasibleTarget{Target: p.target, Low: fLo, High: fHi}
	}

	a, c := -lambdaLimit, lambdaLimit
	for range bisectIterations {
		mid := (a + c) / 2
		f := eval(mid)
		if math.Abs(f-p.target) <= tol/10 {
			break
		}
		if f < p.target {
			a = mid
		} else {
			c = mid
		}
	}

	refine(w, p)

	if got := mean(w, p.payouts); math.Abs(got-p.target) > tol {
		return nil, &model.InfeasibleTarget{
			Target: p.target,
			Low:    fLo,
			High:   fHi,
			Reason: fmt.Sprintf("weighted average %.6f outside tolerance %g after refinement", got, tol),
		}
	}
	return w, nil
}

// solveWithHitRate подбирает веса выигрышных записей под T/h, а нулевым записям
// отдает остаток массы в закрытой форме
func solveWithHitRate(p problem) ([]uint64, error) {
	h := p.hitRate
	var pos, zero []int
	for i, v := range p.payouts {
		if v > 0 {
			pos = append(pos, i)
		} else {
			zero = append(zero, i)
		}
	}
	if len(pos) == 0 {
		return nil, &model.InfeasibleTarget{Target: p.target, Reason: "hit rate target on a bucket without wins"}
	}
	if h >= 1 || len(zero) == 0 {
		if len(zero) > 0 || h < 1-p.bounds.Tolerance {
			return nil, &model.InfeasibleTarget{
				Target: p.target,
				Reason: fmt.Sprintf("hit rate %.6f not reachable with %d zero-payout records", h, len(zero)),
			}
		}
		p.hitRate = 0
		return solveTilt(p)
	}

	sub := problem{
		payouts: pick(p.payouts, pos),
		scale:   pick(p.scale, pos),
		target:  p.target / h,
		tilt:    p.tilt,
		bounds:  p.bounds,
	}
	wp, err := solveTilt(sub)
	if err != nil {
		return nil, err
	}

	var sumPos float64
	for _, v := range wp {
		sumPos += float64(v)
	}
	zw := clampWeight(sumPos*(1-h)/h/float64(len(zero)), p.bounds)

	w := make([]uint64, len(p.payouts))
	for k, i := range pos {
		w[i] = wp[k]
	}
	for _, i := range zero {
		w[i] = zw
	}

	if got := hitRate(w, p.payouts); math.Abs(got-h) > p.bounds.Tolerance {
		return nil, &model.InfeasibleTarget{
			Target: p.target,
			Reason: fmt.Sprintf("hit rate %.6f not reachable within weight bounds, got %.6f", h, got),
		}
	}
	if p.tilt {
		if got := mean(w, p.payouts); math.Abs(got-p.target) > p.bounds.Tolerance {
			return nil, &model.InfeasibleTarget{
				Target: p.target,
				Reason: fmt.Sprintf("weighted average %.6f outside tolerance with hit rate %.6f", got, h),
			}
		}
	}
	return w, nil
}

// applyTilt пересчитывает веса для lambda. Веса нормированы так, что наибольший равен max_weight.
func applyTilt(w []uint64, buf []float64, p problem, lambda, spread float64) {
	maxLog := math.Inf(-1)
	for i, v := range p.payouts {
		l := math.Log(p.scale[i])
		if lambda != 0 {
			l += lambda * (v - p.target) / spread
		}
		buf[i] = l
		maxLog = max(maxLog, l)
	}
	for i, l := range buf {
		w[i] = clampWeight(math.Exp(l-maxLog)*float64(p.bounds.MaxWeight), p.bounds)
	}
}

// refine до refine_passes поправок: вес одной записи меняется так, чтобы среднее попало в цель.
// Сначала пробуются записи с наибольшим |p_i - T|, им нужна наименьшая поправка,
// остаток меньше шага их веса добирают записи ближе к цели.
func refine(w []uint64, p problem) {
	order := make([]int, len(w))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(math.Abs(p.payouts[b]-p.target), math.Abs(p.payouts[a]-p.target))
	})

	for range p.bounds.RefinePasses {
		var sw, sp float64
		for i, v := range w {
			sw += float64(v)
			sp += float64(v) * p.payouts[i]
		}
		dev := sp - p.target*sw
		if math.Abs(dev/sw) <= p.bounds.Tolerance/10 {
			return
		}

		moved := false
		for _, j := range order {
			d := p.payouts[j] - p.target
			if d == 0 {
				break
			}
			nw := math.Round(float64(w[j]) - dev/d)
			// поправка меньше единицы веса: нужна запись ближе к цели
			if nw == float64(w[j]) || nw < float64(p.bounds.MinWeight) || nw > float64(p.bounds.MaxWeight) {
				continue
			}
			w[j] = uint64(nw)
			moved = true
			break
		}
		if !moved {
			// частичная поправка до границы
			j := order[0]
			if d := p.payouts[j] - p.target; d != 0 {
				w[j] = clampWeight(float64(w[j])-dev/d, p.bounds)
			}
		}
	}
}

func clampWeight(x float64, b model.SolverBounds) uint64 {
	x = math.Round(x)
	if math.IsNaN(x) || x < float64(b.MinWeight) {
		return b.MinWeight
	}
	if x > float64(b.MaxWeight) {
		return b.MaxWeight
	}
	return uint64(x)
}

func mean(w []uint64, payouts []float64) float64 {
	var sw, sp float64
	for i, v := range w {
		sw += float64(v)
		sp += float64(v) * payouts[i]
	}
	if sw == 0 {
		return 0
	}
	return sp / sw
}

func hitRate(w []uint64, payouts []float64) float64 {
	var sw, hits float64
	for i, v := range w {
		sw += float64(v)
		if payouts[i] > 0 {
			hits += float64(v)
		}
	}
	if sw == 0 {
		return 0
	}
	return hits / sw
}

func pick(values []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for k, i := range idx {
		out[k] = values[i]
	}
	return out
}
