package model

import "time"

// ModeStatus итоговый статус режима
type ModeStatus string

const (
	StatusSuccess ModeStatus = "success"
	StatusPartial ModeStatus = "partial"
	StatusFailed  ModeStatus = "failed"
)

// BucketReport статистика корзины для сводки
type BucketReport struct {
	Criteria    string  `json:"criteria"`
	Count       int     `json:"count"`
	Target      float64 `json:"target"`
	RealizedAvg float64 `json:"realizedAvg"`
	HitRate     float64 `json:"hitRate"`
	Mass        float64 `json:"mass"`
}

// ModeReport строка сводки по режиму
type ModeReport struct {
	Mode        string         `json:"mode"`
	Status      ModeStatus     `json:"status"`
	Rounds      int            `json:"rounds"`
	Discarded   int            `json:"discarded"`
	Unsatisfied []int          `json:"unsatisfied,omitempty"`
	TargetRTP   float64        `json:"targetRtp"`
	RealizedRTP float64        `json:"realizedRtp"`
	HitRate     float64        `json:"hitRate"`
	Violations  []string       `json:"violations,omitempty"`
	Buckets     []BucketReport `json:"buckets,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// RunSummary сводка прогона
type RunSummary struct {
	RunID      string       `json:"runId"`
	StartedAt  time.Time    `json:"startedAt"`
	FinishedAt time.Time    `json:"finishedAt"`
	Modes      []ModeReport `json:"modes"`
	BuildID    string       `json:"buildId,omitempty"`
}
