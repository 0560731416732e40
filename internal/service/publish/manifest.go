package publish

import (
	"context"
	"crypto/sha256"
	"path"
	"slices"
	"slot_math/internal/model"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WriteManifest пишет index.json по опубликованным режимам.
// Build id выводится из содержимого, поэтому повторная публикация дает тот же файл.
func (s *serv) WriteManifest(ctx context.Context, modes []model.ModeArtifacts) (*model.Manifest, error) {
	modes = slices.Clone(modes)
	slices.SortFunc(modes, func(a, b model.ModeArtifacts) int { return strings.Compare(a.Mode, b.Mode) })

	body, err := json.Marshal(modes)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(append([]byte(s.game.ID+"\n"), body...))

	m := &model.Manifest{
		GameID:  s.game.ID,
		BuildID: uuid.NewSHA1(uuid.NameSpaceOID, sum[:]).String(),
		Modes:   modes,
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	data = append(data, '\n')

	if _, err = s.put(ctx, "", manifestName, data); err != nil {
		return nil, err
	}

	s.log.Info("manifest written",
		zap.String("build_id", m.BuildID),
		zap.Int("modes", len(modes)),
		zap.String("location", s.artifacts.Location(path.Join(Dir, manifestName))),
	)
	return m, nil
}
