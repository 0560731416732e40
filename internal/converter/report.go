package converter

import (
	"slot_math/internal/api/dto/report"
	"slot_math/internal/model"
	"time"
)

func ToSummaryResponse(s model.RunSummary) report.SummaryResponse {
	modes := make([]report.ModeResponse, 0, len(s.Modes))
	for _, m := range s.Modes {
		modes = append(modes, ToModeResponse(m, model.ModeStats{}))
	}
	return report.SummaryResponse{
		RunID:      s.RunID,
		BuildID:    s.BuildID,
		StartedAt:  s.StartedAt.Format(time.RFC3339),
		FinishedAt: s.FinishedAt.Format(time.RFC3339),
		Modes:      modes,
	}
}

func ToModeResponse(m model.ModeReport, stats model.ModeStats) report.ModeResponse {
	return report.ModeResponse{
		Mode:        m.Mode,
		Status:      string(m.Status),
		Rounds:      m.Rounds,
		Discarded:   m.Discarded,
		Unsatisfied: m.Unsatisfied,
		TargetRTP:   m.TargetRTP,
		RealizedRTP: m.RealizedRTP,
		RawRTP:      stats.RawRTP,
		HitRate:     m.HitRate,
		PerCriteria: stats.PerCriteria,
		Violations:  m.Violations,
		Buckets:     toBuckets(m.Buckets),
		Error:       m.Error,
	}
}

func ToBookResponse(b model.Book) report.BookResponse {
	return report.BookResponse{
		ID:               b.ID,
		Mode:             b.Mode,
		Criteria:         b.Criteria,
		Win:              b.Win,
		PayoutMultiple:   b.PayoutMultiple,
		PayoutMultiplier: b.PayoutMultiplier,
		BaseGameWins:     b.BaseGameWins,
		FreeGameWins:     b.FreeGameWins,
		Flags: map[string]bool{
			"freeGame":   b.Flags.FreeGame,
			"wincap":     b.Flags.Wincap,
			"holdAndWin": b.Flags.HoldAndWin,
			"jackpot":    b.Flags.Jackpot,
			"fury":       b.Flags.Fury,
		},
		Events: b.Events,
	}
}

func toBuckets(buckets []model.BucketReport) []report.BucketResponse {
	res := make([]report.BucketResponse, 0, len(buckets))
	for _, b := range buckets {
		res = append(res, report.BucketResponse{
			Criteria:    b.Criteria,
			Count:       b.Count,
			Target:      b.Target,
			RealizedAvg: b.RealizedAvg,
			HitRate:     b.HitRate,
			Mass:        b.Mass,
		})
	}
	return res
}
