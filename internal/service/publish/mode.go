package publish

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path"
	"slot_math/internal/model"
	"strconv"

	"go.uber.org/zap"
)

// PublishMode пишет round log и lookup таблицу режима. Ошибка записи - IOError этого режима,
// файлы других режимов не трогаются.
func (s *serv) PublishMode(ctx context.Context, modeName string, books []model.Book, weights *model.ModeWeights) (*model.ModeArtifacts, error) {
	mode := s.game.Mode(modeName)
	if mode == nil {
		return nil, &model.ConfigurationError{Mode: modeName, Err: model.ErrModeNotFound}
	}
	if weights == nil {
		return nil, fmt.Errorf("mode %s: %w", modeName, model.ErrIncomplete)
	}
	if err := checkComplete(books, weights.Rows); err != nil {
		return nil, fmt.Errorf("mode %s: %w", modeName, err)
	}

	logData, err := encodeBooks(books)
	if err != nil {
		return nil, fmt.Errorf("encode books of mode %s: %w", modeName, err)
	}
	lookupData := encodeLookup(weights.Rows)

	booksName := "books_" + modeName + ".jsonl"
	lookupName := "lookUpTable_" + modeName + "_0.csv"
	if s.compress {
		booksName += ".zst"
		lookupName += ".zst"
		logData = s.encoder.EncodeAll(logData, nil)
		lookupData = s.encoder.EncodeAll(lookupData, nil)
	}

	art := &model.ModeArtifacts{
		Mode:    modeName,
		Cost:    mode.Cost,
		Events:  booksName,
		Weights: lookupName,
		RTP:     weights.RealizedRTP,
		HitRate: weights.HitRate,
		Count:   len(books),
	}
	for _, f := range []struct {
		name string
		data []byte
	}{
		{booksName, logData},
		{lookupName, lookupData},
	} {
		file, err := s.put(ctx, modeName, f.name, f.data)
		if err != nil {
			return nil, err
		}
		art.Files = append(art.Files, file)
	}

	s.log.Info("mode published",
		zap.String("mode", modeName),
		zap.Int("records", len(books)),
		zap.String("events", s.artifacts.Location(path.Join(Dir, booksName))),
		zap.String("weights", s.artifacts.Location(path.Join(Dir, lookupName))),
	)
	return art, nil
}

// put записывает файл и его зеркало
func (s *serv) put(ctx context.Context, mode, name string, data []byte) (model.ArtifactFile, error) {
	key := path.Join(Dir, name)
	if err := s.artifacts.Put(ctx, key, data); err != nil {
		return model.ArtifactFile{}, &model.IOError{Mode: mode, Path: s.artifacts.Location(key), Err: err}
	}
	if s.mirror != nil {
		if err := s.mirror.Put(ctx, key, data); err != nil {
			return model.ArtifactFile{}, &model.IOError{Mode: mode, Path: s.mirror.Location(key), Err: err}
		}
	}
	sum := sha256.Sum256(data)
	return model.ArtifactFile{
		Name:   name,
		Size:   int64(len(data)),
		SHA256: hex.EncodeToString(sum[:]),
	}, nil
}

// checkComplete множество id round log должно совпадать с множеством id lookup таблицы.
// Оба списка упорядочены по id.
func checkComplete(books []model.Book, rows []model.LookupRow) error {
	if len(books) != len(rows) {
		return fmt.Errorf("%w: %d records, %d lookup rows", model.ErrIncomplete, len(books), len(rows))
	}
	for i := range books {
		if books[i].ID != rows[i].ID {
			return fmt.Errorf("%w: position %d has record %d and lookup row %d", model.ErrIncomplete, i, books[i].ID, rows[i].ID)
		}
		if books[i].PayoutMultiplier != rows[i].PayoutMultiplier {
			return fmt.Errorf("%w: record %d pays %d, lookup row says %d",
				model.ErrIncomplete, books[i].ID, books[i].PayoutMultiplier, rows[i].PayoutMultiplier)
		}
	}
	return nil
}

func encodeBooks(books []model.Book) ([]byte, error) {
	var buf bytes.Buffer
	stream := json.BorrowStream(&buf)
	defer json.ReturnStream(stream)

	for i := range books {
		stream.WriteVal(&books[i])
		stream.WriteRaw("\n")
		if stream.Error != nil {
			return nil, stream.Error
		}
	}
	if err := stream.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeLookup строки id,weight,payoutMultiplier без заголовка
func encodeLookup(rows []model.LookupRow) []byte {
	buf := make([]byte, 0, len(rows)*24)
	for _, r := range rows {
		buf = strconv.AppendInt(buf, int64(r.ID), 10)
		buf = append(buf, ',')
		buf = strconv.AppendUint(buf, r.Weight, 10)
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, r.PayoutMultiplier, 10)
		buf = append(buf, '\n')
	}
	return buf
}
