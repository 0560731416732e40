package optimizer

import (
	"context"
	"errors"
	"math"
	"slot_math/internal/gametest"
	"slot_math/internal/model"
	"strings"
	"testing"
)

func booksFor(criteria string, firstID int, payouts ...float64) []model.Book {
	out := make([]model.Book, len(payouts))
	for i, p := range payouts {
		out[i] = model.Book{
			ID:               firstID + i,
			Criteria:         criteria,
			Win:              p,
			PayoutMultiple:   p,
			PayoutMultiplier: int64(math.Round(p * 100)),
		}
	}
	return out
}

// gameWith режим base с заданными целями корзин
func gameWith(conditions map[string]model.BucketTarget) *model.Game {
	game := gametest.Game()
	game.Mode("base").Optimization.Conditions = conditions
	return game
}

func checkBounds(t *testing.T, wa *model.WeightAssignment, b model.SolverBounds) {
	t.Helper()
	for i, w := range wa.Weights {
		if w < b.MinWeight || w > b.MaxWeight {
			t.Fatalf("weight of id %d = %d outside [%d, %d]", wa.IDs[i], w, b.MinWeight, b.MaxWeight)
		}
	}
}

func TestSolveBucketScenario(t *testing.T) {
	game := gameWith(map[string]model.BucketTarget{"basegame": {AvWin: 4.5}})
	s := NewOptimizerService(game, nil)
	bounds := game.Mode("base").Optimization.Bounds

	books := booksFor("basegame", 1, 0, 0, 0, 5, 0, 0, 10, 0, 0, 0)
	wa, err := s.SolveBucket(context.Background(), "base", "basegame", books)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if math.Abs(wa.RealizedAvg-4.5) > bounds.Tolerance {
		t.Fatalf("weighted average %v, want 4.5 ± %v", wa.RealizedAvg, bounds.Tolerance)
	}
	checkBounds(t, wa, bounds)
	for _, zero := range []int{0, 1, 2, 4, 5, 7, 8, 9} {
		if wa.Weights[3] <= wa.Weights[zero] || wa.Weights[6] <= wa.Weights[zero] {
			t.Fatalf("winning records must outweigh zero records: %v", wa.Weights)
		}
	}
}

func TestSolveBucketInfeasible(t *testing.T) {
	s := NewOptimizerService(gameWith(map[string]model.BucketTarget{"basegame": {AvWin: 20}}), nil)

	_, err := s.SolveBucket(context.Background(), "base", "basegame", booksFor("basegame", 1, 0, 5, 10))
	var inf *model.InfeasibleTarget
	if !errors.As(err, &inf) {
		t.Fatalf("expected infeasible target, got %v", err)
	}
	if inf.Criteria != "basegame" || inf.High > 10 || inf.Target != 20 {
		t.Fatalf("unexpected infeasible report %+v", inf)
	}
}

func TestSolveBucketTightBoundsNarrowRange(t *testing.T) {
	game := gameWith(map[string]model.BucketTarget{"basegame": {AvWin: 9}})
	game.Mode("base").Optimization.Bounds = model.SolverBounds{MinWeight: 1, MaxWeight: 2, Tolerance: 0.001}
	s := NewOptimizerService(game, nil)

	// при весах не больше 2 среднее не выше (2*10)/(2+1+1)
	_, err := s.SolveBucket(context.Background(), "base", "basegame", booksFor("basegame", 1, 0, 0, 10))
	var inf *model.InfeasibleTarget
	if !errors.As(err, &inf) {
		t.Fatalf("expected infeasible target, got %v", err)
	}
}

func TestSolveBucketHitRate(t *testing.T) {
	game := gameWith(map[string]model.BucketTarget{"basegame": {AvWin: 1.5, HitRate: 0.5}})
	s := NewOptimizerService(game, nil)
	bounds := game.Mode("base").Optimization.Bounds

	wa, err := s.SolveBucket(context.Background(), "base", "basegame", booksFor("basegame", 1, 0, 0, 0, 0, 2, 4))
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if math.Abs(wa.HitRate-0.5) > bounds.Tolerance {
		t.Fatalf("hit rate %v, want 0.5", wa.HitRate)
	}
	if math.Abs(wa.RealizedAvg-1.5) > bounds.Tolerance {
		t.Fatalf("weighted average %v, want 1.5", wa.RealizedAvg)
	}
	checkBounds(t, wa, bounds)
}

func TestSolveBucketScaling(t *testing.T) {
	game := gameWith(map[string]model.BucketTarget{"basegame": {}})
	game.Mode("base").Optimization.Scaling = []model.ScalingRule{
		{Criteria: "basegame", ScaleFactor: 3, WinRange: [2]float64{5, 20}, Probability: 1},
	}
	s := NewOptimizerService(game, nil)

	wa, err := s.SolveBucket(context.Background(), "base", "basegame", booksFor("basegame", 1, 1, 10))
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if ratio := float64(wa.Weights[1]) / float64(wa.Weights[0]); math.Abs(ratio-3) > 1e-6 {
		t.Fatalf("scaled record must weigh 3x: %v", wa.Weights)
	}
}

func TestSolveModeNormalizesMasses(t *testing.T) {
	game := gameWith(map[string]model.BucketTarget{
		"0":        {},
		"basegame": {},
		"wincap":   {RTP: 0.01, AvWin: gametest.Wincap},
	})
	s := NewOptimizerService(game, nil)

	var books []model.Book
	books = append(books, booksFor("0", 1, 0, 0, 0, 0, 0)...)
	books = append(books, booksFor("basegame", 6, 1, 2, 3)...)
	books = append(books, booksFor("wincap", 9, gametest.Wincap)...)

	mw, err := s.SolveMode(context.Background(), "base", books)
	if err != nil {
		t.Fatalf("solve mode: %v", err)
	}
	if math.Abs(mw.RealizedRTP-0.96) > 1e-3 {
		t.Fatalf("realized rtp %v, want 0.96", mw.RealizedRTP)
	}
	if len(mw.Violations) != 0 {
		t.Fatalf("unexpected violations %v", mw.Violations)
	}
	if len(mw.Rows) != 9 {
		t.Fatalf("expected 9 lookup rows, got %d", len(mw.Rows))
	}
	for i, row := range mw.Rows {
		if row.ID != i+1 || row.Weight < 1 {
			t.Fatalf("row %d: %+v", i, row)
		}
	}

	var mass float64
	for _, b := range mw.Buckets {
		mass += b.Mass
		if b.Criteria == "0" && b.Mass <= 0 {
			t.Fatalf("zero bucket must absorb the remainder")
		}
	}
	if math.Abs(mass-1) > 1e-9 {
		t.Fatalf("bucket masses sum to %v", mass)
	}
}

func TestSolveModeNegativeRemainder(t *testing.T) {
	s := NewOptimizerService(gameWith(map[string]model.BucketTarget{"0": {}, "basegame": {}}), nil)

	var books []model.Book
	books = append(books, booksFor("0", 1, 0, 0)...)
	books = append(books, booksFor("basegame", 3, 0.1, 0.1)...)

	_, err := s.SolveMode(context.Background(), "base", books)
	var inf *model.InfeasibleTarget
	if !errors.As(err, &inf) {
		t.Fatalf("expected infeasible target, got %v", err)
	}
}

// costBooks записи режима со стоимостью cost: выигрыши wins в ставках
func costBooks(criteria string, firstID int, cost float64, wins ...float64) []model.Book {
	out := make([]model.Book, len(wins))
	for i, w := range wins {
		out[i] = model.Book{
			ID:               firstID + i,
			Criteria:         criteria,
			Win:              w,
			PayoutMultiple:   w / cost,
			PayoutMultiplier: int64(math.Round(w * 100)),
		}
	}
	return out
}

func TestSolveBucketWincapForCostlyMode(t *testing.T) {
	game := gametest.Game()
	mode := game.Mode("superspin")
	mode.Optimization.Conditions = map[string]model.BucketTarget{"wincap": {RTP: 0.01, AvWin: gametest.Wincap}}
	s := NewOptimizerService(game, nil)

	wa, err := s.SolveBucket(context.Background(), "superspin", "wincap",
		costBooks("wincap", 1, mode.Cost, gametest.Wincap, gametest.Wincap))
	if err != nil {
		t.Fatalf("capped books of a mode with cost %v must meet av_win %v: %v", mode.Cost, gametest.Wincap, err)
	}
	if want := gametest.Wincap / mode.Cost; wa.Target != want || wa.RealizedAvg != want {
		t.Fatalf("target %v realized %v, want %v", wa.Target, wa.RealizedAvg, want)
	}
	if want := 0.01 / (gametest.Wincap / mode.Cost); math.Abs(wa.Mass-want) > 1e-12 {
		t.Fatalf("mass %v, want %v", wa.Mass, want)
	}
}

func TestSolveModeUntargetedBucketClosesTheGap(t *testing.T) {
	game := gametest.Game()
	mode := game.Mode("superspin")
	mode.Optimization.Conditions = map[string]model.BucketTarget{
		"wincap":   {RTP: 0.01, AvWin: gametest.Wincap},
		"basegame": {},
	}
	s := NewOptimizerService(game, nil)

	var books []model.Book
	books = append(books, costBooks("basegame", 1, mode.Cost, 5, 12.5, 25, 50, 100)...)
	books = append(books, costBooks("wincap", 6, mode.Cost, gametest.Wincap)...)

	mw, err := s.SolveMode(context.Background(), "superspin", books)
	if err != nil {
		t.Fatalf("solve mode: %v", err)
	}
	if math.Abs(mw.RealizedRTP-0.96) > DefaultTolerance {
		t.Fatalf("realized rtp %v, want 0.96 ± %v", mw.RealizedRTP, DefaultTolerance)
	}
	if len(mw.Violations) != 0 {
		t.Fatalf("unexpected violations %v", mw.Violations)
	}
	for _, b := range mw.Buckets {
		if b.Criteria == "basegame" && math.Abs(b.RealizedAvg-b.Target) > DefaultTolerance {
			t.Fatalf("basegame average %v, target %v", b.RealizedAvg, b.Target)
		}
	}
}

func TestSolveModeReportsGapItCannotClose(t *testing.T) {
	game := gametest.Game()
	s := NewOptimizerService(game, nil)

	// среднее basegame не опустить ниже 2 при цели 0.96
	mw, err := s.SolveMode(context.Background(), "superspin", costBooks("basegame", 1, 25, 50, 75))
	if err != nil {
		t.Fatalf("solve mode: %v", err)
	}
	if len(mw.Violations) < 2 || !strings.Contains(mw.Violations[0], "rtp gap not closed") {
		t.Fatalf("expected the gap and the rtp deviation in violations, got %v", mw.Violations)
	}
	if len(mw.Rows) != 2 {
		t.Fatalf("lookup table must still be built, got %d rows", len(mw.Rows))
	}
}

func TestSolveModeFreeModeTargetsMeanAward(t *testing.T) {
	game := gametest.Game()
	mode := game.Mode("dragons_lair")
	mode.RTP = 50
	s := NewOptimizerService(game, nil)

	mw, err := s.SolveMode(context.Background(), "dragons_lair", costBooks("basegame", 1, mode.Cost, 10, 40, 100, 400))
	if err != nil {
		t.Fatalf("solve mode: %v", err)
	}
	if math.Abs(mw.RealizedRTP-50) > DefaultTolerance || len(mw.Violations) != 0 {
		t.Fatalf("mean award %v, want 50 (violations %v)", mw.RealizedRTP, mw.Violations)
	}
}
