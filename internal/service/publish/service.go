package publish

import (
	"slot_math/internal/model"
	"slot_math/internal/repository"
	"slot_math/internal/service"

	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
)

// Dir каталог опубликованных файлов относительно корня хранилища артефактов
const Dir = "publish_files"

const manifestName = "index.json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type serv struct {
	game      *model.Game
	artifacts repository.ArtifactRepository
	mirror    repository.ArtifactRepository
	compress  bool
	encoder   *zstd.Encoder
	log       *zap.Logger
}

// NewPublishService запись round log, lookup таблиц и манифеста.
// mirror может быть nil, иначе каждый записанный файл копируется туда же.
func NewPublishService(
	game *model.Game,
	artifacts repository.ArtifactRepository,
	mirror repository.ArtifactRepository,
	compress bool,
	log *zap.Logger,
) (service.PublishService, error) {
	if log == nil {
		log = zap.NewNop()
	}
	// Один поток и фиксированный уровень дают побайтно одинаковый результат на одинаковом входе
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedDefault),
	)
	if err != nil {
		return nil, err
	}
	return &serv{
		game:      game,
		artifacts: artifacts,
		mirror:    mirror,
		compress:  compress,
		encoder:   enc,
		log:       log,
	}, nil
}
