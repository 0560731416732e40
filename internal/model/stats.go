package model

// BatchStats итог одной пачки раундов
type BatchStats struct {
	Rounds      int
	Discarded   int
	Hits        int
	Payout      float64
	PerCriteria map[string]int
	Unsatisfied []int
}

// ModeStats накопленные счетчики режима за прогон
type ModeStats struct {
	Rounds      int
	Discarded   int
	Hits        int
	TotalPayout float64
	// Невзвешенный RTP симуляции: TotalPayout / Rounds (в payout multiple)
	RawRTP      float64
	HitRate     float64
	PerCriteria map[string]int
	Unsatisfied []int
}
