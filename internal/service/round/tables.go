package round

import (
	"slices"
	"slot_math/internal/model"
	"slot_math/pkg/sampler"
)

// distTables скомпилированные таблицы одного distribution
type distTables struct {
	reelSets     map[string]*sampler.Weighted[string]
	mults        map[string]*sampler.Weighted[int]
	landingWilds *sampler.Weighted[int]
	scatters     *sampler.Weighted[int]
	prizes       *sampler.Weighted[int]
}

// modeTables таблицы режима
type modeTables struct {
	mode       *model.Mode
	dragonMult *sampler.Weighted[int]
	dists      map[string]*distTables
}

// gameTypes типы игры, которые использует вариант режима
func gameTypes(kind model.ModeKind) []string {
	switch kind {
	case model.KindLines:
		return []string{model.GameTypeBase, model.GameTypeFree, model.GameTypeLair}
	case model.KindSuperSpin:
		return []string{model.GameTypeBase}
	case model.KindHold:
		return []string{model.GameTypeLair}
	}
	return nil
}

func compileMode(game *model.Game, name string) (*modeTables, error) {
	mode := game.Mode(name)
	if mode == nil {
		return nil, &model.ConfigurationError{Mode: name, Err: model.ErrModeNotFound}
	}
	if len(mode.Distributions) == 0 {
		return nil, model.NewConfigurationError(name, "no distributions")
	}

	mt := &modeTables{
		mode:  mode,
		dists: make(map[string]*distTables, len(mode.Distributions)),
	}

	if mode.Kind == model.KindLines {
		w, err := sampler.New(game.ExpandingWild.MultiplierValues)
		if err != nil {
			return nil, model.NewConfigurationError(name, "expanding_wild.multiplier_values: %v", err)
		}
		mt.dragonMult = w
	}

	for i := range mode.Distributions {
		d := &mode.Distributions[i]
		dt, err := compileDistribution(game, mode, d)
		if err != nil {
			return nil, err
		}
		mt.dists[d.Criteria] = dt
	}
	return mt, nil
}

func compileDistribution(game *model.Game, mode *model.Mode, d *model.Distribution) (*distTables, error) {
	cond := d.Conditions
	dt := &distTables{
		reelSets: make(map[string]*sampler.Weighted[string]),
		mults:    make(map[string]*sampler.Weighted[int]),
	}
	fail := func(format string, args ...any) error {
		args = append([]any{d.Criteria}, args...)
		return model.NewConfigurationError(mode.Name, "criteria %q: "+format, args...)
	}

	for _, gt := range gameTypes(mode.Kind) {
		table, ok := cond.ReelWeights[gt]
		if !ok {
			def, ok := game.DefaultReels[gt]
			if !ok {
				return nil, fail("no reel set for game type %q", gt)
			}
			table = map[string]float64{def: 1}
		}
		for set := range table {
			strips, ok := game.Reels[set]
			if !ok {
				return nil, fail("reel set %q not found", set)
			}
			if len(strips) != game.NumReels {
				return nil, fail("reel set %q has %d strips, want %d", set, len(strips), game.NumReels)
			}
			if slices.ContainsFunc(strips, func(s []string) bool { return len(s) == 0 }) {
				return nil, fail("reel set %q has an empty strip", set)
			}
		}
		w, err := sampler.New(table)
		if err != nil {
			return nil, fail("reel_weights[%s]: %v", gt, err)
		}
		dt.reelSets[gt] = w
	}

	if mode.Kind == model.KindLines {
		for _, gt := range []string{model.GameTypeBase, model.GameTypeFree} {
			table, ok := cond.MultValues[gt]
			if !ok {
				table, ok = game.ExpandingWild.MultValues[gt]
			}
			if !ok {
				return nil, fail("no wild multiplier table for game type %q", gt)
			}
			w, err := sampler.New(table)
			if err != nil {
				return nil, fail("mult_values[%s]: %v", gt, err)
			}
			dt.mults[gt] = w
		}

		landing := cond.LandingWilds
		if landing == nil {
			landing = game.ExpandingWild.LandingWilds
		}
		if landing == nil {
			landing = map[int]float64{0: 1}
		}
		w, err := sampler.New(landing)
		if err != nil {
			return nil, fail("landing_wilds: %v", err)
		}
		dt.landingWilds = w

		scatters := cond.ScatterTriggers
		if scatters == nil {
			scatters = map[int]float64{minTrigger(game.FreeSpinTriggers[model.GameTypeBase]): 1}
		}
		sw, err := sampler.New(scatters)
		if err != nil {
			return nil, fail("scatter_triggers: %v", err)
		}
		if sw.Max() > game.NumReels {
			return nil, fail("scatter_triggers: %d scatters do not fit on %d reels", sw.Max(), game.NumReels)
		}
		dt.scatters = sw
	}

	prizes := cond.PrizeValues
	if prizes == nil {
		prizes = game.HoldAndWin.PrizeValues
	}
	if prizes == nil {
		return nil, fail("no prize table")
	}
	pw, err := sampler.New(prizes)
	if err != nil {
		return nil, fail("prize_values: %v", err)
	}
	dt.prizes = pw

	return dt, nil
}

func minTrigger(table map[int]int) int {
	best := 0
	for k := range table {
		if best == 0 || k < best {
			best = k
		}
	}
	return best
}
