package criteria

import (
	"math"
	"slices"
	"slot_math/internal/model"
	"slot_math/pkg/sampler"
)

// Select выбирает distribution режима пропорционально квотам
func (s *serv) Select(modeName string, rng sampler.Source) (*model.Distribution, error) {
	mode, err := s.mode(modeName)
	if err != nil {
		return nil, err
	}
	w, err := s.selector(mode)
	if err != nil {
		return nil, err
	}
	return mode.Distribution(w.Draw(rng)), nil
}

// Plan раскладывает total раундов по criteria: round(quota*total) методом наибольших остатков,
// порядок перемешивается детерминированно от seed. i-й элемент - criteria раунда с id i+1.
func (s *serv) Plan(modeName string, total int, seed uint64) ([]string, error) {
	mode, err := s.mode(modeName)
	if err != nil {
		return nil, err
	}
	if total <= 0 {
		return nil, nil
	}

	type share struct {
		criteria string
		count    int
		rest     float64
	}
	shares := make([]share, len(mode.Distributions))
	assigned := 0
	for i, d := range mode.Distributions {
		exact := d.Quota * float64(total)
		n := int(math.Floor(exact))
		shares[i] = share{criteria: d.Criteria, count: n, rest: exact - float64(n)}
		assigned += n
	}

	order := make([]int, len(shares))
	for i := range order {
		order[i] = i
	}
	// Остаток по убыванию дробной части, при равенстве - порядок из конфигурации
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case shares[a].rest > shares[b].rest:
			return -1
		case shares[a].rest < shares[b].rest:
			return 1
		}
		return 0
	})
	for i := 0; assigned < total; i = (i + 1) % len(order) {
		shares[order[i]].count++
		assigned++
	}

	plan := make([]string, 0, total)
	for _, sh := range shares {
		for range sh.count {
			plan = append(plan, sh.criteria)
		}
	}
	rng := sampler.Stream(seed, sampler.Hash64(modeName))
	rng.Shuffle(len(plan), func(i, j int) { plan[i], plan[j] = plan[j], plan[i] })
	return plan, nil
}
