package criteria

import (
	"errors"
	"math"
	"slices"
	"slot_math/internal/gametest"
	"slot_math/internal/model"
	"slot_math/internal/service"
	"slot_math/internal/service/round"
	"slot_math/pkg/sampler"
	"testing"
)

func newService(game *model.Game, maxRetries int) service.CriteriaService {
	return NewCriteriaService(game, round.NewRoundService(game, nil), maxRetries, nil)
}

func TestSelectFollowsQuotas(t *testing.T) {
	s := newService(gametest.Game(), 0)
	rng := sampler.Stream(42, 0)

	const n = 100_000
	counts := map[string]int{}
	for range n {
		d, err := s.Select("base", rng)
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		counts[d.Criteria]++
	}
	for criteria, quota := range map[string]float64{"0": 0.4, "basegame": 0.5, "freegame": 0.09} {
		got := float64(counts[criteria]) / n
		if math.Abs(got-quota) > 0.01 {
			t.Fatalf("criteria %s: frequency %v, quota %v", criteria, got, quota)
		}
	}
}

func TestPlanLargestRemainder(t *testing.T) {
	s := newService(gametest.Game(), 0)

	plan, err := s.Plan("base", 7, 1)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	counts := map[string]int{}
	for _, c := range plan {
		counts[c]++
	}
	want := map[string]int{"0": 3, "basegame": 3, "freegame": 1, "wincap": 0}
	for c, n := range want {
		if counts[c] != n {
			t.Fatalf("criteria %s: expected %d rounds, got %d (%v)", c, n, counts[c], plan)
		}
	}

	big, err := s.Plan("base", 1000, 1)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	counts = map[string]int{}
	for _, c := range big {
		counts[c]++
	}
	if counts["0"] != 400 || counts["basegame"] != 500 || counts["freegame"] != 90 || counts["wincap"] != 10 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestPlanIsSeeded(t *testing.T) {
	s := newService(gametest.Game(), 0)

	a, _ := s.Plan("base", 500, 9)
	b, _ := s.Plan("base", 500, 9)
	c, _ := s.Plan("base", 500, 10)
	if !slices.Equal(a, b) {
		t.Fatalf("same seed must give the same plan")
	}
	if slices.Equal(a, c) {
		t.Fatalf("different seeds gave the same order")
	}
}

func TestGenerateZeroTargetIsExact(t *testing.T) {
	game := gametest.Game()
	s := newService(game, 0)
	dist := game.Mode("base").Distribution("0")
	rng := sampler.Stream(3, 0)

	for i := range 100 {
		book, _, err := s.Generate("base", dist, rng)
		if err != nil {
			t.Fatalf("round %d: %v", i, err)
		}
		if book.PayoutMultiple != 0 || book.PayoutMultiplier != 0 || book.Flags.FreeGame {
			t.Fatalf("round %d: expected zero payout, got %v %+v", i, book.PayoutMultiple, book.Flags)
		}
	}
}

func TestGenerateWincapTargetIsExact(t *testing.T) {
	game := gametest.Game()
	s := newService(game, 0)
	dist := game.Mode("base").Distribution("wincap")
	rng := sampler.Stream(4, 0)

	for i := range 10 {
		book, _, err := s.Generate("base", dist, rng)
		if err != nil {
			t.Fatalf("round %d: %v", i, err)
		}
		if book.Win != gametest.Wincap || !book.Flags.Wincap {
			t.Fatalf("round %d: expected exact wincap, got %v", i, book.Win)
		}
	}
}

func TestGenerateKeepsFreeGamesInTheirBucket(t *testing.T) {
	game := gametest.Game()
	s := newService(game, 0)
	rng := sampler.Stream(5, 0)

	for _, criteria := range []string{"basegame", "freegame"} {
		dist := game.Mode("base").Distribution(criteria)
		for i := range 50 {
			book, _, err := s.Generate("base", dist, rng)
			if err != nil {
				t.Fatalf("%s round %d: %v", criteria, i, err)
			}
			if book.Flags.FreeGame != (criteria == "freegame") {
				t.Fatalf("%s round %d: free game flag %v", criteria, i, book.Flags.FreeGame)
			}
		}
	}
}

func TestGenerateUnsatisfiable(t *testing.T) {
	game := gametest.Game()
	target := 12345.67
	dist := &model.Distribution{Criteria: "basegame", Quota: 1, WinCriteria: &target}
	s := newService(game, 20)

	book, discarded, err := s.Generate("base", dist, sampler.Stream(6, 0))
	var fu *model.ForceUnsatisfiable
	if !errors.As(err, &fu) {
		t.Fatalf("expected ForceUnsatisfiable, got %v", err)
	}
	if book != nil || discarded != 20 || fu.Discarded != 20 {
		t.Fatalf("expected 20 discarded rounds, got %d / %d", discarded, fu.Discarded)
	}
}

func TestQuotasMustSumToOne(t *testing.T) {
	game := gametest.Game()
	game.Modes[0].Distributions[0].Quota = 0.5
	s := newService(game, 0)

	var cfgErr *model.ConfigurationError
	if _, err := s.Select("base", sampler.Stream(1, 0)); !errors.As(err, &cfgErr) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if _, err := s.Plan("base", 10, 1); !errors.As(err, &cfgErr) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
