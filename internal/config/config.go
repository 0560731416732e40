package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// RunConfig параметры прогона симуляции
type RunConfig interface {
	GamePath() string
	OutputDir() string
	// Modes режимы для прогона, пусто - все режимы игры
	Modes() []string
	// RoundsFor количество раундов режима: MODE_ROUNDS или ROUNDS по умолчанию
	RoundsFor(mode string) int
	Workers() int
	BatchSize() int
	Seed() uint64
	Compress() bool
	MaxForceRetries() int
	ForceRetryRounds() int
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	// OperatorKeyHash bcrypt хеш ключа оператора для /auth/token
	OperatorKeyHash() []byte
}

type S3Config interface {
	Bucket() string
	Region() string
	Prefix() string
	// Endpoint пусто - AWS по умолчанию, иначе S3-совместимое хранилище
	Endpoint() string
	AccessKeyID() string
	SecretAccessKey() string
}

type LogConfig interface {
	Level() string
	Development() bool
}
