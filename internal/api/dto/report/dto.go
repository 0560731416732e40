package report

type BucketResponse struct {
	Criteria    string  `json:"criteria"`
	Count       int     `json:"count"`
	Target      float64 `json:"target"`       // Целевой средний выигрыш корзины
	RealizedAvg float64 `json:"realized_avg"` // Фактический взвешенный средний выигрыш
	HitRate     float64 `json:"hit_rate"`
	Mass        float64 `json:"mass"` // Доля корзины в lookup таблице
}

type ModeResponse struct {
	Mode        string           `json:"mode"`
	Status      string           `json:"status"` // success, partial, failed
	Rounds      int              `json:"rounds"`
	Discarded   int              `json:"discarded"`
	Unsatisfied []int            `json:"unsatisfied,omitempty"`
	TargetRTP   float64          `json:"target_rtp"`
	RealizedRTP float64          `json:"realized_rtp"`
	RawRTP      float64          `json:"raw_rtp"` // RTP симуляции без весов
	HitRate     float64          `json:"hit_rate"`
	PerCriteria map[string]int   `json:"per_criteria,omitempty"`
	Violations  []string         `json:"violations,omitempty"`
	Buckets     []BucketResponse `json:"buckets,omitempty"`
	Error       string           `json:"error,omitempty"`
}

type SummaryResponse struct {
	RunID      string         `json:"run_id"`
	BuildID    string         `json:"build_id,omitempty"`
	StartedAt  string         `json:"started_at"`
	FinishedAt string         `json:"finished_at"`
	Modes      []ModeResponse `json:"modes"`
}

type BookResponse struct {
	ID               int             `json:"id"`
	Mode             string          `json:"mode"`
	Criteria         string          `json:"criteria"`
	Win              float64         `json:"win"`
	PayoutMultiple   float64         `json:"payout_multiple"`
	PayoutMultiplier int64           `json:"payout_multiplier"`
	BaseGameWins     float64         `json:"base_game_wins"`
	FreeGameWins     float64         `json:"free_game_wins"`
	Flags            map[string]bool `json:"flags"`
	Events           any             `json:"events"` // Трасса событий как в round log
}
