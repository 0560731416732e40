package run_stats_repo

import (
	"maps"
	"slices"
	"slot_math/internal/model"
	"sync"
)

// StateRepo счетчики прогона в памяти. Обновляется пачками из воркеров симуляции.
type StateRepo struct {
	mtx   sync.RWMutex
	state map[string]*model.ModeStats
}

// NewRunStatsRepository Конструктор репозитория с пустым состоянием
func NewRunStatsRepository() *StateRepo {
	return &StateRepo{
		state: make(map[string]*model.ModeStats),
	}
}

// UpdateState Обновление счетчиков режима после пачки раундов
func (r *StateRepo) UpdateState(mode string, batch model.BatchStats) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	st, ok := r.state[mode]
	if !ok {
		st = &model.ModeStats{PerCriteria: make(map[string]int)}
		r.state[mode] = st
	}

	st.Rounds += batch.Rounds
	st.Discarded += batch.Discarded
	st.Hits += batch.Hits
	st.TotalPayout += batch.Payout
	for c, n := range batch.PerCriteria {
		st.PerCriteria[c] += n
	}
	st.Unsatisfied = append(st.Unsatisfied, batch.Unsatisfied...)

	if st.Rounds > 0 {
		st.RawRTP = st.TotalPayout / float64(st.Rounds)
		st.HitRate = float64(st.Hits) / float64(st.Rounds)
	}
}

// ModeStats Получение копии счетчиков режима. Id неудовлетворенных раундов отсортированы.
func (r *StateRepo) ModeStats(mode string) model.ModeStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	st, ok := r.state[mode]
	if !ok {
		return model.ModeStats{PerCriteria: map[string]int{}}
	}
	out := *st
	out.PerCriteria = maps.Clone(st.PerCriteria)
	out.Unsatisfied = slices.Sorted(slices.Values(st.Unsatisfied))
	return out
}

// Reset Сброс счетчиков режима перед повторным прогоном
func (r *StateRepo) Reset(mode string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	delete(r.state, mode)
}
