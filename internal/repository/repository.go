package repository

import (
	"context"
	"slot_math/internal/model"
)

// BookRepository хранилище раундов (Book Store). Только добавление, пачками.
type BookRepository interface {
	AppendBatch(ctx context.Context, mode string, books []model.Book) error
	// Books все раунды режима по возрастанию id
	Books(ctx context.Context, mode string) ([]model.Book, error)
	Book(ctx context.Context, mode string, id int) (*model.Book, error)
	Modes(ctx context.Context) ([]string, error)
	Reset(ctx context.Context, mode string) error
}

// StatsRepository счетчики прогона по режимам
type StatsRepository interface {
	UpdateState(mode string, batch model.BatchStats)
	ModeStats(mode string) model.ModeStats
	Reset(mode string)
}

// ArtifactRepository место публикации файлов
type ArtifactRepository interface {
	Put(ctx context.Context, name string, data []byte) error
	Get(ctx context.Context, name string) ([]byte, error)
	// Location человекочитаемый адрес файла для логов
	Location(name string) string
}
