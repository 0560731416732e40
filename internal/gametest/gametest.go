// Package gametest holds a small game configuration shared by package tests.
package gametest

import (
	"slot_math/internal/model"
)

const Wincap = 1000

var baseStrip = []string{"L1", "L2", "H1", "L2", "S", "L1", "GC", "L2", "H1", "L1", "W", "L2", "L1", "GC", "L2"}
var freeStrip = []string{
	"L1", "W", "H1", "L2", "S", "L1", "GC", "L2", "H1", "L1", "L2", "H1", "GC", "L2", "L1",
	"L2", "L1", "H1", "L2", "L1", "GC", "L2", "H1", "L1", "L2", "W", "L1", "L2", "H1", "L2",
}

func reels(strip []string) [][]string {
	out := make([][]string, 5)
	for i := range out {
		out[i] = append([]string(nil), strip...)
	}
	return out
}

func ptr(v float64) *float64 { return &v }

// Game returns a fresh 5x5 game with base, superspin and dragons_lair modes.
func Game() *model.Game {
	return &model.Game{
		ID:       "test_game",
		Name:     "Test Game",
		Wincap:   Wincap,
		RTP:      0.96,
		NumReels: 5,
		NumRows:  []int{5, 5, 5, 5, 5},
		Paytable: map[string]map[int]float64{
			"W":  {3: 10, 4: 20, 5: 50},
			"H1": {3: 5, 4: 10, 5: 20},
			"L1": {3: 1, 4: 2, 5: 4},
			"L2": {3: 0.5, 4: 1, 5: 2},
		},
		Paylines: [][]int{
			{0, 0, 0, 0, 0},
			{1, 1, 1, 1, 1},
			{2, 2, 2, 2, 2},
			{3, 3, 3, 3, 3},
			{4, 4, 4, 4, 4},
		},
		Special: model.SpecialSymbols{
			Wild:     "W",
			MegaWild: "MW",
			Scatter:  "S",
			Prize:    "P",
			GoldCoin: "GC",
			Empty:    "X",
		},
		FreeSpinTriggers: map[string]map[int]int{
			model.GameTypeBase: {3: 10, 4: 15, 5: 20},
			model.GameTypeFree: {3: 5, 4: 8, 5: 12},
		},
		Reels: map[string][][]string{
			"BR0":  reels(baseStrip),
			"FR0":  reels(freeStrip),
			"WCAP": reels([]string{"W"}),
			"DLR0": reels([]string{"P", "X", "X", "L1", "X", "P", "X", "X", "L2", "X"}),
			"SSR":  reels([]string{"P", "L1", "X", "L2", "X"}),
		},
		DefaultReels: map[string]string{
			model.GameTypeBase: "BR0",
			model.GameTypeFree: "FR0",
			model.GameTypeLair: "DLR0",
		},
		ExpandingWild: model.ExpandingWildConfig{
			MultiplierReels:  []int{1, 2, 3},
			MultiplierValues: map[int]float64{2: 0.7, 3: 0.3},
			BaseMultiplier:   2,
			MegaThreshold:    50,
			MultValues: map[string]map[int]float64{
				model.GameTypeBase: {2: 0.6, 3: 0.3, 5: 0.1},
				model.GameTypeFree: {2: 0.5, 3: 0.3, 5: 0.2},
			},
			LandingWilds:   map[int]float64{0: 0.6, 1: 0.3, 2: 0.1},
			MaxProgression: 8,
			MaxBonusWilds:  2,
		},
		Cascade:   model.CascadeConfig{FreeChance: 0.3, BaseMinWin: 5, MaxMultiplier: 5, MaxSteps: 10},
		Collector: model.CollectorConfig{Max: 15},
		HoldAndWin: model.HoldAndWinConfig{
			InitialRespins:   3,
			JackpotThreshold: 0.8,
			PrizeValues:      map[int]float64{1: 0.5, 5: 0.3, 25: 0.2},
		},
		Fury: model.FuryConfig{Chance: 0.08, HighSymbols: []string{"H1"}, CoinsMin: 3, CoinsMax: 6},
		Modes: []model.Mode{
			{
				Name: "base",
				Kind: model.KindLines,
				Cost: 1,
				RTP:  0.96,
				Distributions: []model.Distribution{
					{Criteria: "0", Quota: 0.4, WinCriteria: ptr(0)},
					{Criteria: "basegame", Quota: 0.5},
					{
						Criteria: "freegame",
						Quota:    0.09,
						Conditions: model.Conditions{
							ScatterTriggers: map[int]float64{3: 0.8, 4: 0.2},
							ForceFreegame:   true,
						},
					},
					{
						Criteria:    "wincap",
						Quota:       0.01,
						WinCriteria: ptr(Wincap),
						Conditions: model.Conditions{
							ReelWeights: map[string]map[string]float64{model.GameTypeBase: {"WCAP": 1}},
							MultValues: map[string]map[int]float64{
								model.GameTypeBase: {10: 1},
								model.GameTypeFree: {10: 1},
							},
							ForceWincap: true,
						},
					},
				},
				Optimization: model.Optimization{
					Conditions: map[string]model.BucketTarget{
						"wincap":   {RTP: 0.01, AvWin: Wincap},
						"0":        {},
						"freegame": {RTP: 0.37},
						"basegame": {},
					},
					Bounds: model.SolverBounds{MinWeight: 1, MaxWeight: 10_000_000, Tolerance: 0.001, RefinePasses: 10, LookupTotal: 1 << 40},
				},
			},
			{
				Name: "superspin",
				Kind: model.KindSuperSpin,
				Cost: 25,
				RTP:  0.96,
				Distributions: []model.Distribution{
					{
						Criteria: "basegame",
						Quota:    1,
						Conditions: model.Conditions{
							ReelWeights: map[string]map[string]float64{model.GameTypeBase: {"SSR": 1}},
						},
					},
				},
			},
			{
				Name: "dragons_lair",
				Kind: model.KindHold,
				Cost: 0,
				RTP:  0.96,
				Distributions: []model.Distribution{
					{Criteria: "basegame", Quota: 1},
				},
			},
		},
	}
}
