package env

import (
	"fmt"
	"os"
	"runtime"
	"slot_math/internal/config"
	"strconv"
	"strings"
)

const (
	gamePathEnvName         = "GAME_CONFIG"
	outputDirEnvName        = "OUTPUT_DIR"
	modesEnvName            = "MODES"
	roundsEnvName           = "ROUNDS"
	modeRoundsEnvName       = "MODE_ROUNDS"
	workersEnvName          = "WORKERS"
	batchSizeEnvName        = "BATCH_SIZE"
	seedEnvName             = "SEED"
	compressEnvName         = "COMPRESS"
	maxForceRetriesEnvName  = "MAX_FORCE_RETRIES"
	forceRetryRoundsEnvName = "FORCE_RETRY_ROUNDS"

	defaultGamePath         = "config.yaml"
	defaultOutputDir        = "library"
	defaultRounds           = 10000
	defaultBatchSize        = 1000
	defaultSeed             = 1
	defaultMaxForceRetries  = 1000
	defaultForceRetryRounds = 5
)

type runConfig struct {
	gamePath         string
	outputDir        string
	modes            []string
	rounds           int
	modeRounds       map[string]int
	workers          int
	batchSize        int
	seed             uint64
	compress         bool
	maxForceRetries  int
	forceRetryRounds int
}

// NewRunConfig читает параметры прогона из окружения. Все параметры необязательные.
func NewRunConfig() (config.RunConfig, error) {
	cfg := &runConfig{
		gamePath:   getOr(gamePathEnvName, defaultGamePath),
		outputDir:  getOr(outputDirEnvName, defaultOutputDir),
		modeRounds: make(map[string]int),
		compress:   true,
	}

	var err error
	if cfg.rounds, err = intOr(roundsEnvName, defaultRounds); err != nil {
		return nil, err
	}
	if cfg.workers, err = intOr(workersEnvName, runtime.GOMAXPROCS(0)); err != nil {
		return nil, err
	}
	if cfg.batchSize, err = intOr(batchSizeEnvName, defaultBatchSize); err != nil {
		return nil, err
	}
	if cfg.maxForceRetries, err = intOr(maxForceRetriesEnvName, defaultMaxForceRetries); err != nil {
		return nil, err
	}
	if cfg.forceRetryRounds, err = intOr(forceRetryRoundsEnvName, defaultForceRetryRounds); err != nil {
		return nil, err
	}
	if cfg.rounds <= 0 || cfg.workers <= 0 || cfg.batchSize <= 0 || cfg.maxForceRetries <= 0 || cfg.forceRetryRounds <= 0 {
		return nil, fmt.Errorf("rounds, workers, batch size and retry limits must be positive")
	}

	cfg.seed = defaultSeed
	if v := os.Getenv(seedEnvName); v != "" {
		if cfg.seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", seedEnvName, err)
		}
	}

	if v := os.Getenv(compressEnvName); v != "" {
		if cfg.compress, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", compressEnvName, err)
		}
	}

	if v := os.Getenv(modesEnvName); v != "" {
		for _, m := range strings.Split(v, ",") {
			if m = strings.TrimSpace(m); m != "" {
				cfg.modes = append(cfg.modes, m)
			}
		}
	}

	// MODE_ROUNDS=base:100000,bonus:20000
	if v := os.Getenv(modeRoundsEnvName); v != "" {
		for _, pair := range strings.Split(v, ",") {
			mode, n, ok := strings.Cut(strings.TrimSpace(pair), ":")
			if !ok {
				return nil, fmt.Errorf("invalid %s entry %q", modeRoundsEnvName, pair)
			}
			count, err := strconv.Atoi(n)
			if err != nil || count <= 0 {
				return nil, fmt.Errorf("invalid %s count for mode %q", modeRoundsEnvName, mode)
			}
			cfg.modeRounds[mode] = count
		}
	}

	return cfg, nil
}

func getOr(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func intOr(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return n, nil
}

func (c *runConfig) GamePath() string { return c.gamePath }

func (c *runConfig) OutputDir() string { return c.outputDir }

func (c *runConfig) Modes() []string { return c.modes }

func (c *runConfig) RoundsFor(mode string) int {
	if n, ok := c.modeRounds[mode]; ok {
		return n
	}
	return c.rounds
}

func (c *runConfig) Workers() int { return c.workers }

func (c *runConfig) BatchSize() int { return c.batchSize }

func (c *runConfig) Seed() uint64 { return c.seed }

func (c *runConfig) Compress() bool { return c.compress }

func (c *runConfig) MaxForceRetries() int { return c.maxForceRetries }

func (c *runConfig) ForceRetryRounds() int { return c.forceRetryRounds }
