package model

// WeightAssignment веса записей одной корзины, результат оптимизатора
type WeightAssignment struct {
	Mode     string
	Criteria string
	IDs      []int
	Weights  []uint64

	Target      float64
	RealizedAvg float64
	HitRate     float64
	Mass        float64
}

// LookupRow строка lookup таблицы
type LookupRow struct {
	ID               int
	Weight           uint64
	PayoutMultiplier int64
}

// ModeWeights итоговые веса режима для публикации
type ModeWeights struct {
	Mode        string
	Rows        []LookupRow
	Buckets     []WeightAssignment
	RealizedRTP float64
	HitRate     float64
	Violations  []string
}
