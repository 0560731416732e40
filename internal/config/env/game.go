package env

import (
	"errors"
	"fmt"
	"os"
	"slot_math/internal/model"
	"strings"

	"gopkg.in/yaml.v3"
)

// NewGameConfigFromYAML читает статическую конфигурацию игры.
// Ошибки уровня игры собираются в одну ConfigurationError. Таблицы режимов
// проверяются движком отдельно для каждого режима.
func NewGameConfigFromYAML(path string) (*model.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game config: %w", err)
	}
	return ParseGameConfig(data)
}

func ParseGameConfig(data []byte) (*model.Game, error) {
	var game model.Game
	if err := yaml.Unmarshal(data, &game); err != nil {
		return nil, &model.ConfigurationError{Err: fmt.Errorf("parse game config: %w", err)}
	}
	if err := validateGame(&game); err != nil {
		return nil, err
	}
	return &game, nil
}

func validateGame(g *model.Game) error {
	var errs []string

	if g.ID == "" {
		errs = append(errs, "id is required")
	}
	if g.Wincap <= 0 {
		errs = append(errs, "wincap must be > 0")
	}
	if g.RTP <= 0 || g.RTP > 1 {
		errs = append(errs, "rtp must be in (0,1]")
	}

	// board
	if g.NumReels <= 0 {
		errs = append(errs, "num_reels must be >= 1")
	}
	if len(g.NumRows) != g.NumReels {
		errs = append(errs, fmt.Sprintf("num_rows must have %d entries, got %d", g.NumReels, len(g.NumRows)))
	}
	for i, n := range g.NumRows {
		if n <= 0 {
			errs = append(errs, fmt.Sprintf("num_rows[%d] must be >= 1", i))
		}
	}

	// paylines
	if len(g.Paylines) == 0 {
		errs = append(errs, "paylines must not be empty")
	}
	for i, line := range g.Paylines {
		if len(line) != g.NumReels {
			errs = append(errs, fmt.Sprintf("paylines[%d] must have %d entries", i, g.NumReels))
			continue
		}
		for reel, row := range line {
			if reel < len(g.NumRows) && (row < 0 || row >= g.NumRows[reel]) {
				errs = append(errs, fmt.Sprintf("paylines[%d][%d]: row %d out of range", i, reel, row))
			}
		}
	}

	// paytable
	for sym, pays := range g.Paytable {
		for count, pay := range pays {
			if count < 1 || count > g.NumReels {
				errs = append(errs, fmt.Sprintf("paytable.%s: count %d out of range", sym, count))
			}
			if pay < 0 {
				errs = append(errs, fmt.Sprintf("paytable.%s.%d must be >= 0", sym, count))
			}
		}
	}

	// special symbols
	if g.Special.Wild == "" || g.Special.Scatter == "" || g.Special.Prize == "" || g.Special.Empty == "" {
		errs = append(errs, "special_symbols.wild, scatter, prize and empty are required")
	}

	// reels
	for name, strips := range g.Reels {
		if len(strips) != g.NumReels {
			errs = append(errs, fmt.Sprintf("reels.%s must have %d strips, got %d", name, g.NumReels, len(strips)))
		}
	}

	// features
	if g.Cascade.MaxMultiplier < 1 {
		errs = append(errs, "cascade.max_multiplier must be >= 1")
	}
	if g.Cascade.FreeChance < 0 || g.Cascade.FreeChance > 1 {
		errs = append(errs, "cascade.free_chance must be in [0,1]")
	}
	if g.Collector.Max < 0 {
		errs = append(errs, "collector.max must be >= 0")
	}
	if g.HoldAndWin.InitialRespins < 1 {
		errs = append(errs, "hold_and_win.initial_respins must be >= 1")
	}
	if g.HoldAndWin.JackpotThreshold < 0 || g.HoldAndWin.JackpotThreshold > 1 {
		errs = append(errs, "hold_and_win.jackpot_threshold must be in [0,1]")
	}
	if g.Fury.Chance < 0 || g.Fury.Chance > 1 {
		errs = append(errs, "dragons_fury.chance must be in [0,1]")
	}
	if g.Fury.CoinsMin < 0 || g.Fury.CoinsMax < g.Fury.CoinsMin {
		errs = append(errs, "dragons_fury.coins_min/coins_max must satisfy 0 <= min <= max")
	}

	// modes
	if len(g.Modes) == 0 {
		errs = append(errs, "modes must not be empty")
	}
	seen := make(map[string]bool, len(g.Modes))
	for i, m := range g.Modes {
		if m.Name == "" {
			errs = append(errs, fmt.Sprintf("modes[%d].name is required", i))
		}
		if seen[m.Name] {
			errs = append(errs, fmt.Sprintf("modes[%d]: duplicate mode %q", i, m.Name))
		}
		seen[m.Name] = true
		switch m.Kind {
		case model.KindLines, model.KindSuperSpin, model.KindHold:
		default:
			errs = append(errs, fmt.Sprintf("modes.%s.kind must be one of: lines, superspin, hold", m.Name))
		}
		if m.Cost < 0 {
			errs = append(errs, fmt.Sprintf("modes.%s.cost must be >= 0", m.Name))
		}
		// rtp бесплатного режима - средний выигрыш в ставках, без него целью стал бы RTP игры
		maxWin := m.MaxWin
		if maxWin <= 0 {
			maxWin = g.Wincap
		}
		switch {
		case m.Cost > 0 && (m.RTP < 0 || m.RTP > 1):
			errs = append(errs, fmt.Sprintf("modes.%s.rtp must be in (0,1]", m.Name))
		case m.Cost == 0 && (m.RTP <= 0 || m.RTP > maxWin):
			errs = append(errs, fmt.Sprintf("modes.%s.rtp is the mean award of a free mode and must be in (0,%g]", m.Name, maxWin))
		}
	}

	if len(errs) > 0 {
		return &model.ConfigurationError{Err: errors.New(strings.Join(errs, "; "))}
	}
	return nil
}
