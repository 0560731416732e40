package criteria

import (
	"slot_math/internal/model"
	"slot_math/pkg/sampler"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Generate разыгрывает раунды под условия dist, пока результат не подойдет.
// discarded - количество отброшенных попыток. После maxRetries попыток - ForceUnsatisfiable.
func (s *serv) Generate(modeName string, dist *model.Distribution, rng sampler.Source) (*model.Book, int, error) {
	mode, err := s.mode(modeName)
	if err != nil {
		return nil, 0, err
	}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		book, err := s.round.Play(modeName, dist, model.NewSessionState(), rng)
		if err != nil {
			return nil, attempt, err
		}
		if accept(mode, dist, book) {
			return book, attempt, nil
		}
	}

	s.log.Warn("forced outcome not reached",
		zap.String("mode", modeName),
		zap.String("criteria", dist.Criteria),
		zap.Int("discarded", s.maxRetries),
	)
	return nil, s.maxRetries, &model.ForceUnsatisfiable{Mode: modeName, Criteria: dist.Criteria, Discarded: s.maxRetries}
}

// accept проверяет раунд на условия distribution
func accept(mode *model.Mode, dist *model.Distribution, book *model.Book) bool {
	cond := dist.Conditions

	if dist.WinCriteria != nil {
		// Сравнение в сотых долях ставки, как в lookup таблице
		want := decimal.NewFromFloat(*dist.WinCriteria).Round(2).Shift(2).IntPart()
		if book.PayoutMultiplier != want {
			return false
		}
	}
	if cond.ForceWincap && !book.Flags.Wincap {
		return false
	}
	if cond.ForceFreegame && !book.Flags.FreeGame {
		return false
	}
	// Фриспины в игре по линиям попадают только в свою корзину
	if mode.Kind == model.KindLines && !cond.ForceFreegame && !cond.ForceWincap && book.Flags.FreeGame {
		return false
	}
	return true
}
