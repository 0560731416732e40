package env

import (
	"errors"
	"slot_math/internal/model"
	"slot_math/internal/service/round"
	"strings"
	"testing"
)

func TestShippedGameConfigIsValid(t *testing.T) {
	game, err := NewGameConfigFromYAML("../../../config.yaml")
	if err != nil {
		t.Fatalf("config.yaml: %v", err)
	}
	for _, name := range []string{"base", "bonus", "superspin", "dragons_lair"} {
		if game.Mode(name) == nil {
			t.Fatalf("mode %s missing", name)
		}
	}
	if len(game.Paylines) != 25 || game.NumReels != 5 {
		t.Fatalf("expected 5 reels and 25 paylines, got %d / %d", game.NumReels, len(game.Paylines))
	}

	rs := round.NewRoundService(game, nil)
	for _, m := range game.Modes {
		if err := rs.Validate(m.Name); err != nil {
			t.Fatalf("mode %s: %v", m.Name, err)
		}
	}
}

func TestParseGameConfigCollectsErrors(t *testing.T) {
	data := []byte(`
id: broken
wincap: 0
rtp: 0.96
num_reels: 2
num_rows: [3]
paylines: [[0, 5]]
modes:
  - name: base
    kind: spiral
`)
	_, err := ParseGameConfig(data)
	var cfgErr *model.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	for _, want := range []string{"wincap", "num_rows", "kind", "special_symbols"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %s", err, want)
		}
	}
}

func TestRunConfigDefaultsAndOverrides(t *testing.T) {
	t.Setenv("ROUNDS", "500")
	t.Setenv("MODE_ROUNDS", "bonus:50, superspin:20")
	t.Setenv("MODES", "base, bonus")
	t.Setenv("SEED", "77")
	t.Setenv("COMPRESS", "false")
	t.Setenv("WORKERS", "3")

	cfg, err := NewRunConfig()
	if err != nil {
		t.Fatalf("run config: %v", err)
	}
	if cfg.RoundsFor("base") != 500 || cfg.RoundsFor("bonus") != 50 || cfg.RoundsFor("superspin") != 20 {
		t.Fatalf("unexpected round counts")
	}
	if m := cfg.Modes(); len(m) != 2 || m[1] != "bonus" {
		t.Fatalf("unexpected modes %v", m)
	}
	if cfg.Seed() != 77 || cfg.Compress() || cfg.Workers() != 3 {
		t.Fatalf("unexpected seed/compress/workers")
	}
	if cfg.MaxForceRetries() != defaultMaxForceRetries || cfg.ForceRetryRounds() != defaultForceRetryRounds {
		t.Fatalf("unexpected retry defaults")
	}
}

func TestRunConfigRejectsBadValues(t *testing.T) {
	t.Setenv("BATCH_SIZE", "0")
	if _, err := NewRunConfig(); err == nil {
		t.Fatalf("expected error for zero batch size")
	}
}

func TestFreeModeRTPIsMeanAward(t *testing.T) {
	base := `
id: lair
wincap: 10000
rtp: 0.96
num_reels: 1
num_rows: [1]
paylines: [[0]]
special_symbols: {wild: W, scatter: S, prize: P, empty: X}
cascade: {max_multiplier: 1}
hold_and_win: {initial_respins: 3}
modes:
  - name: dragons_lair
    kind: hold
    cost: 0
`
	for rtp, ok := range map[string]bool{"": false, "rtp: 150": true, "rtp: 20000": false} {
		_, err := ParseGameConfig([]byte(base + "    " + rtp + "\n"))
		if ok && err != nil {
			t.Fatalf("%q: %v", rtp, err)
		}
		if !ok && (err == nil || !strings.Contains(err.Error(), "mean award")) {
			t.Fatalf("%q: expected mean award error, got %v", rtp, err)
		}
	}

	paid := strings.Replace(base, "cost: 0", "cost: 25", 1) + "    rtp: 150\n"
	if _, err := ParseGameConfig([]byte(paid)); err == nil || !strings.Contains(err.Error(), "rtp must be in (0,1]") {
		t.Fatalf("paid mode with rtp 150 must be rejected, got %v", err)
	}
}
