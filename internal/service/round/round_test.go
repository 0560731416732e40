package round

import (
	"errors"
	"math"
	"slot_math/internal/gametest"
	"slot_math/internal/model"
	"slot_math/pkg/sampler"
	"testing"
)

func sym(name string) model.Symbol { return model.Symbol{Name: name} }

func wild(mult int) model.Symbol { return model.Symbol{Name: "W", Multiplier: mult} }

// filler builds a 5x5 board where no straight line pays
func filler() model.Board {
	b := model.NewBoard([]int{5, 5, 5, 5, 5})
	for reel := range b {
		for row := range b[reel] {
			if (reel+row)%2 == 0 {
				b[reel][row] = sym("L1")
			} else {
				b[reel][row] = sym("L2")
			}
		}
	}
	return b
}

func setRow(b model.Board, row int, cells ...model.Symbol) {
	for reel, c := range cells {
		b[reel][row] = c
	}
}

func TestEvaluateLinesStacksWildMultipliers(t *testing.T) {
	r := &round{game: gametest.Game()}
	b := filler()
	setRow(b, 0, wild(2), sym("H1"), wild(3), sym("H1"), sym("L1"))

	wins, total := r.evaluateLines(b)
	if len(wins) != 1 {
		t.Fatalf("expected 1 winning line, got %d: %+v", len(wins), wins)
	}
	w := wins[0]
	if w.Symbol != "H1" || w.Count != 4 || w.Multiplier != 6 {
		t.Fatalf("unexpected win %+v", w)
	}
	if total != 60 {
		t.Fatalf("expected 10 * 2 * 3 = 60, got %v", total)
	}
}

func TestEvaluateLinesPrefersBetterWildRun(t *testing.T) {
	r := &round{game: gametest.Game()}
	b := filler()
	setRow(b, 1, wild(2), wild(2), wild(2), sym("L2"), sym("L2"))

	wins, total := r.evaluateLines(b)
	if len(wins) != 1 {
		t.Fatalf("expected 1 winning line, got %d", len(wins))
	}
	// W x3 = 10 * 8 beats L2 x5 = 2 * 8
	if wins[0].Symbol != "W" || wins[0].Count != 3 || total != 80 {
		t.Fatalf("unexpected win %+v total %v", wins[0], total)
	}
	if len(wins[0].Positions) != 3 || wins[0].Positions[2] != (model.Position{Reel: 2, Row: 1}) {
		t.Fatalf("unexpected positions %+v", wins[0].Positions)
	}
}

func TestEvaluateLinesSpecialSymbolsDoNotPay(t *testing.T) {
	r := &round{game: gametest.Game()}
	b := filler()
	setRow(b, 2, sym("S"), sym("S"), sym("S"), sym("S"), sym("S"))
	setRow(b, 3, sym("GC"), sym("GC"), sym("GC"), sym("GC"), sym("GC"))

	if wins, total := r.evaluateLines(b); len(wins) != 0 || total != 0 {
		t.Fatalf("expected no wins, got %+v", wins)
	}
}

func TestApplyGravity(t *testing.T) {
	r := &round{game: gametest.Game()}
	b := filler()
	b[0] = []model.Symbol{sym("H1"), sym("X"), sym("L1"), sym("X"), sym("L2")}

	r.applyGravity(b)

	want := []string{"X", "X", "H1", "L1", "L2"}
	for row, name := range want {
		if b[0][row].Name != name {
			t.Fatalf("row %d: expected %s, got %s (%v)", row, name, b[0][row].Name, b[0])
		}
	}
}

func TestRespinCounter(t *testing.T) {
	c := newRespinCounter(3)

	if !c.Step(0) || c.left != 2 {
		t.Fatalf("no prize: expected 2 respins left, got %d", c.left)
	}
	if !c.Step(2) || c.left != 3 {
		t.Fatalf("new prize: expected reset to 3, got %d", c.left)
	}
	if !c.Step(0) || !c.Step(0) {
		t.Fatalf("bonus ended early at %d", c.left)
	}
	if c.Step(0) {
		t.Fatalf("expected bonus to end at 0, got %d", c.left)
	}
}

func TestPlayWincapIsExact(t *testing.T) {
	game := gametest.Game()
	s := NewRoundService(game, nil)
	dist := game.Mode("base").Distribution("wincap")

	for seed := uint64(1); seed <= 20; seed++ {
		book, err := s.Play("base", dist, nil, sampler.Stream(seed, 0))
		if err != nil {
			t.Fatalf("play: %v", err)
		}
		if !book.Flags.Wincap {
			t.Fatalf("seed %d: wincap flag not set", seed)
		}
		if book.Win != gametest.Wincap || book.PayoutMultiplier != gametest.Wincap*100 {
			t.Fatalf("seed %d: expected win %d, got %v (%d)", seed, gametest.Wincap, book.Win, book.PayoutMultiplier)
		}
	}
}

func TestPlayIsDeterministic(t *testing.T) {
	game := gametest.Game()
	s := NewRoundService(game, nil)
	dist := game.Mode("base").Distribution("basegame")

	for seed := uint64(1); seed <= 50; seed++ {
		a, err := s.Play("base", dist, nil, sampler.Stream(seed, 3))
		if err != nil {
			t.Fatalf("play: %v", err)
		}
		b, err := s.Play("base", dist, nil, sampler.Stream(seed, 3))
		if err != nil {
			t.Fatalf("play: %v", err)
		}
		if a.PayoutMultiplier != b.PayoutMultiplier || len(a.Events) != len(b.Events) || a.Flags != b.Flags {
			t.Fatalf("seed %d: rounds differ: %d/%d events %d/%d", seed,
				a.PayoutMultiplier, b.PayoutMultiplier, len(a.Events), len(b.Events))
		}
	}
}

func TestPlayEventTrace(t *testing.T) {
	game := gametest.Game()
	s := NewRoundService(game, nil)
	dist := game.Mode("base").Distribution("basegame")

	book, err := s.Play("base", dist, nil, sampler.Stream(7, 0))
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if book.Events[0].Type != model.EventReveal {
		t.Fatalf("first event must be reveal, got %s", book.Events[0].Type)
	}
	last := book.Events[len(book.Events)-1]
	if last.Type != model.EventFinalWin || last.Amount != book.Win {
		t.Fatalf("last event must be finalWin with the round win, got %+v", last)
	}
	for i, e := range book.Events {
		if e.Index != i {
			t.Fatalf("event %d has index %d", i, e.Index)
		}
	}
}

func TestPlayForcedFreegame(t *testing.T) {
	game := gametest.Game()
	s := NewRoundService(game, nil)
	dist := game.Mode("base").Distribution("freegame")

	triggered := 0
	for seed := uint64(1); seed <= 200; seed++ {
		book, err := s.Play("base", dist, nil, sampler.Stream(seed, 1))
		if err != nil {
			t.Fatalf("play: %v", err)
		}
		if book.Flags.FreeGame {
			triggered++
			if book.FreeGameWins > book.Win {
				t.Fatalf("seed %d: free game wins %v exceed round win %v", seed, book.FreeGameWins, book.Win)
			}
		}
	}
	if triggered < 160 {
		t.Fatalf("forced free game triggered only %d/200 times", triggered)
	}
}

func TestPlayHoldAndWinRespins(t *testing.T) {
	game := gametest.Game()
	s := NewRoundService(game, nil)
	dist := game.Mode("dragons_lair").Distribution("basegame")

	for seed := uint64(1); seed <= 30; seed++ {
		book, err := s.Play("dragons_lair", dist, nil, sampler.Stream(seed, 0))
		if err != nil {
			t.Fatalf("play: %v", err)
		}
		if !book.Flags.HoldAndWin {
			t.Fatalf("seed %d: hold-and-win flag not set", seed)
		}

		left := game.HoldAndWin.InitialRespins
		var end *model.Event
		for i := range book.Events {
			e := book.Events[i]
			switch e.Type {
			case model.EventHoldAndWinSpin:
				want := left - 1
				if e.Added > 0 {
					want = game.HoldAndWin.InitialRespins
				}
				if e.Respins != want {
					t.Fatalf("seed %d: expected %d respins, got %d", seed, want, e.Respins)
				}
				left = e.Respins
			case model.EventHoldAndWinEnd:
				end = &book.Events[i]
			}
		}
		if end == nil {
			t.Fatalf("seed %d: no end event", seed)
		}
		if left != 0 && end.Total != 25 {
			t.Fatalf("seed %d: bonus ended with %d respins and %d prizes", seed, left, end.Total)
		}
		if book.Win != end.Amount {
			t.Fatalf("seed %d: win %v != prize sum %v", seed, book.Win, end.Amount)
		}
		if book.PayoutMultiple != book.Win {
			t.Fatalf("free mode pays per unit bet, got multiple %v for win %v", book.PayoutMultiple, book.Win)
		}
	}
}

func TestPlaySuperSpinStartsWithPrizes(t *testing.T) {
	game := gametest.Game()
	s := NewRoundService(game, nil)
	dist := game.Mode("superspin").Distribution("basegame")

	book, err := s.Play("superspin", dist, nil, sampler.Stream(11, 0))
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	var start *model.Event
	for i := range book.Events {
		if book.Events[i].Type == model.EventHoldAndWinStart {
			start = &book.Events[i]
			break
		}
	}
	if start == nil || start.Total != 5 {
		t.Fatalf("expected one starting prize per reel, got %+v", start)
	}
	if book.Win <= 0 || book.PayoutMultiple != book.Win/25 {
		t.Fatalf("unexpected payout %v / %v", book.Win, book.PayoutMultiple)
	}
}

func TestValidateMissingReelSet(t *testing.T) {
	game := gametest.Game()
	game.Modes[0].Distributions[1].Conditions.ReelWeights = map[string]map[string]float64{
		model.GameTypeBase: {"NOPE": 1},
	}
	s := NewRoundService(game, nil)

	err := s.Validate("base")
	var cfgErr *model.ConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.Mode != "base" {
		t.Fatalf("expected configuration error for base, got %v", err)
	}
	if err := s.Validate("dragons_lair"); err != nil {
		t.Fatalf("other modes must stay valid: %v", err)
	}
	if _, err := s.Play("base", &game.Modes[0].Distributions[0], nil, sampler.Stream(1, 1)); !errors.As(err, &cfgErr) {
		t.Fatalf("play must fail with configuration error, got %v", err)
	}
}

func TestValidateMissingPrizeTable(t *testing.T) {
	game := gametest.Game()
	game.HoldAndWin.PrizeValues = nil
	s := NewRoundService(game, nil)

	var cfgErr *model.ConfigurationError
	if err := s.Validate("dragons_lair"); !errors.As(err, &cfgErr) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func newTestRound(t *testing.T, game *model.Game, mode, criteria string, state *model.SessionState, seed uint64) *round {
	t.Helper()
	s := NewRoundService(game, nil).(*serv)
	mt, err := s.modeTables(mode)
	if err != nil {
		t.Fatalf("compile %s: %v", mode, err)
	}
	dist := game.Mode(mode).Distribution(criteria)
	r := newRound(s, mt, dist, mt.dists[criteria], state, sampler.Stream(seed, 0))
	r.resetWilds()
	return r
}

func TestExpandWildsBecomesMegaAtThreshold(t *testing.T) {
	game := gametest.Game()
	r := newTestRound(t, game, "base", "basegame", model.NewSessionState(), 1)
	b := filler()
	b[0][2] = wild(60)
	b[4][1] = wild(3)

	r.expandWilds(b, model.GameTypeBase)

	for row := range b[0] {
		if b[0][row].Name != "MW" || b[0][row].Multiplier != 60 {
			t.Fatalf("reel 0 row %d: expected MW x60, got %+v", row, b[0][row])
		}
		if b[4][row].Name != "W" || b[4][row].Multiplier != 3 {
			t.Fatalf("reel 4 row %d: expected W x3, got %+v", row, b[4][row])
		}
	}
	if len(r.state.StickyWilds) != 0 {
		t.Fatalf("base game wilds must not stick, got %+v", r.state.StickyWilds)
	}
}

func TestFreeGameWildsStickAndGrow(t *testing.T) {
	game := gametest.Game()
	state := model.NewSessionState()
	r := newTestRound(t, game, "base", "freegame", state, 2)

	b := filler()
	b[4][0] = wild(3)
	r.expandWilds(b, model.GameTypeFree)
	if len(state.StickyWilds) != 1 || state.StickyWilds[0].Reel != 4 {
		t.Fatalf("expected a sticky wild on reel 4, got %+v", state.StickyWilds)
	}

	// fifth free spin: progression min((5-1)/2, 8) = 2
	state.FreeSpinIndex = 5
	r.resetWilds()
	next := filler()
	r.revealSticky(next)

	if state.WildProgression != 2 {
		t.Fatalf("expected progression 2, got %d", state.WildProgression)
	}
	for row := range next[4] {
		if next[4][row].Name != "W" || next[4][row].Multiplier != 5 {
			t.Fatalf("row %d: expected W x5, got %+v", row, next[4][row])
		}
	}
}

func TestCascadeMultiplierGrowsPerStepAndCaps(t *testing.T) {
	game := gametest.Game()
	s := NewRoundService(game, nil)
	dist := game.Mode("base").Distribution("freegame")

	cascades := 0
	for seed := uint64(1); seed <= 300; seed++ {
		book, err := s.Play("base", dist, nil, sampler.Stream(seed, 3))
		if err != nil {
			t.Fatalf("play: %v", err)
		}
		for _, e := range book.Events {
			if e.Type != model.EventCascade {
				continue
			}
			cascades++
			if want := min(e.Step+1, game.Cascade.MaxMultiplier); e.Multiplier != want {
				t.Fatalf("seed %d step %d: expected multiplier %d, got %d", seed, e.Step, want, e.Multiplier)
			}
		}
	}
	if cascades == 0 {
		t.Fatalf("no cascades in 300 free game rounds")
	}
}

func TestDragonsFuryCoinsFeedCollector(t *testing.T) {
	game := gametest.Game()
	game.Fury.HighSymbols = nil
	state := model.NewSessionState()
	r := newTestRound(t, game, "base", "basegame", state, 4)
	b := filler()

	r.dragonsFury(b, model.GameTypeBase)

	coins := b.Count("GC")
	if coins < game.Fury.CoinsMin || coins > game.Fury.CoinsMax {
		t.Fatalf("expected %d-%d coins, got %d", game.Fury.CoinsMin, game.Fury.CoinsMax, coins)
	}
	if !r.book.Flags.Fury {
		t.Fatalf("fury flag not set")
	}

	r.collect(b)
	if state.CollectorMeter != coins {
		t.Fatalf("expected meter %d, got %d", coins, state.CollectorMeter)
	}
}

func TestCollectorTriggersDragonsLair(t *testing.T) {
	game := gametest.Game()
	state := model.NewSessionState()
	state.CollectorMeter = 12
	r := newTestRound(t, game, "base", "basegame", state, 5)
	b := filler()
	b[0][0], b[1][1], b[2][2] = sym("GC"), sym("GC"), sym("GC")

	r.collect(b)

	if state.CollectorMeter != 0 {
		t.Fatalf("meter must reset after trigger, got %d", state.CollectorMeter)
	}
	if !r.book.Flags.HoldAndWin {
		t.Fatalf("dragon's lair not played")
	}
	e := r.book.Events[0]
	if e.Type != model.EventCollector || e.Meter != 15 || !e.Triggered {
		t.Fatalf("unexpected collector event %+v", e)
	}
	if r.book.Events[1].Type != model.EventHoldAndWinStart || r.book.Events[1].GameType != model.GameTypeLair {
		t.Fatalf("expected lair start after collector, got %+v", r.book.Events[1])
	}
}

func TestFreeSpinsForPicksHighestThreshold(t *testing.T) {
	r := &round{game: gametest.Game()}

	cases := []struct {
		gameType string
		scatters int
		want     int
	}{
		{model.GameTypeBase, 2, 0},
		{model.GameTypeBase, 3, 10},
		{model.GameTypeBase, 6, 20},
		{model.GameTypeFree, 4, 8},
	}
	for _, c := range cases {
		if got := r.freeSpinsFor(c.gameType, c.scatters); got != c.want {
			t.Fatalf("%s with %d scatters: expected %d spins, got %d", c.gameType, c.scatters, c.want, got)
		}
	}
}

func TestEvaluateLinesCapsStackedMultiplier(t *testing.T) {
	game := gametest.Game()
	game.ExpandingWild.MaxLineMultiplier = 10
	r := &round{game: game}
	b := filler()
	setRow(b, 0, wild(5), sym("H1"), wild(4), sym("H1"), sym("L1"))

	wins, total := r.evaluateLines(b)
	if len(wins) != 1 || wins[0].Multiplier != 10 {
		t.Fatalf("expected one win with multiplier 10, got %+v", wins)
	}
	if total != 100 {
		t.Fatalf("expected 10 * min(5*4, 10) = 100, got %v", total)
	}
}

func TestBonusWildsEveryThirdSpin(t *testing.T) {
	var got []int
	for fs := 1; fs <= 12; fs++ {
		got = append(got, bonusWilds(fs, 2))
	}
	want := []int{0, 0, 1, 0, 0, 1, 0, 0, 0, 0, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("free spin %d: expected %d bonus wilds, got %d (%v)", i+1, want[i], got[i], got)
		}
	}
	if bonusWilds(3, 0) != 0 || bonusWilds(0, 2) != 0 {
		t.Fatalf("no bonus wilds without a limit or before the first spin")
	}
}

func TestCascadeStepWinUsesStepMultiplier(t *testing.T) {
	game := gametest.Game()
	s := NewRoundService(game, nil)
	dist := game.Mode("base").Distribution("freegame")

	steps := 0
	for seed := uint64(1); seed <= 300; seed++ {
		book, err := s.Play("base", dist, nil, sampler.Stream(seed, 3))
		if err != nil {
			t.Fatalf("play: %v", err)
		}
		for _, e := range book.Events {
			if e.Type != model.EventWinInfo || e.Step == 0 {
				continue
			}
			steps++
			var lines float64
			for _, w := range e.Wins {
				lines += w.Payout
			}
			if want := lines * float64(e.Multiplier); math.Abs(e.Amount-want) > 1e-9 {
				t.Fatalf("seed %d step %d: expected %v * %d = %v, got %v", seed, e.Step, lines, e.Multiplier, want, e.Amount)
			}
		}
	}
	if steps == 0 {
		t.Fatalf("no cascade wins in 300 free game rounds")
	}
}
