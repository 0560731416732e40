package env

import (
	"os"
	"slot_math/internal/config"
)

const (
	dsnName = "PG_DSN"
)

type pgConfig struct {
	dsn string
}

// NewPGConfig Book Store в Postgres включается переменной PG_DSN.
// ok=false - переменная не задана, используется хранилище в памяти.
func NewPGConfig() (cfg config.PGConfig, ok bool) {
	dsn := os.Getenv(dsnName)
	if len(dsn) == 0 {
		return nil, false
	}

	return &pgConfig{
		dsn: dsn,
	}, true
}

func (cfg *pgConfig) DSN() string {
	return cfg.dsn
}
