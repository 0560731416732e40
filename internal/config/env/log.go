package env

import (
	"os"
	"slot_math/internal/config"
	"strconv"
)

const (
	logLevelEnvName = "LOG_LEVEL"
	logDevEnvName   = "LOG_DEV"
)

type logConfig struct {
	level string
	dev   bool
}

func NewLogConfig() config.LogConfig {
	dev, _ := strconv.ParseBool(os.Getenv(logDevEnvName))
	return &logConfig{
		level: getOr(logLevelEnvName, "info"),
		dev:   dev,
	}
}

func (c *logConfig) Level() string { return c.level }

func (c *logConfig) Development() bool { return c.dev }
