package round

import (
	"slot_math/internal/model"
)

// cascades условие продолжения каскада: во фриспинах с шансом free_chance на любой выигрыш,
// в базовой игре на выигрыш больше base_min_win
func (r *round) cascades(gameType string, stepWin float64) bool {
	if stepWin <= 0 {
		return false
	}
	if gameType == model.GameTypeFree {
		return r.rng.Float64() < r.game.Cascade.FreeChance
	}
	return stepWin > r.game.Cascade.BaseMinWin
}

// cascade убирает выигравшие символы, роняет оставшиеся вниз, досыпает новые
// и пересчитывает линии с растущим множителем каскада. Множитель применяется к выигрышу
// своего шага, уже начисленный выигрыш спина не пересчитывается. Возвращает выигрыш каскадов.
func (r *round) cascade(board model.Board, set, gameType string, wins []model.LineWin, stepWin float64) float64 {
	var total float64
	empty := r.game.Special.Empty

	for step := 1; step <= r.game.Cascade.MaxSteps && !r.capped; step++ {
		if !r.cascades(gameType, stepWin) {
			break
		}

		removed := make([]model.Position, 0)
		for _, p := range winningPositions(wins) {
			if r.sticky[p.Reel] {
				continue
			}
			board[p.Reel][p.Row] = model.Symbol{Name: empty}
			removed = append(removed, p)
		}
		if len(removed) == 0 {
			break
		}

		r.applyGravity(board)
		r.refill(board, set)
		r.state.CascadeMultiplier = min(r.state.CascadeMultiplier+1, max(r.game.Cascade.MaxMultiplier, 1))

		r.emit(model.Event{
			Type:       model.EventCascade,
			GameType:   gameType,
			Step:       step,
			Multiplier: r.state.CascadeMultiplier,
			Positions:  removed,
			Board:      board.Clone(),
		})

		r.expandWilds(board, gameType)
		wins, stepWin = r.evaluateLines(board)
		if stepWin <= 0 {
			break
		}
		amount := stepWin * float64(r.state.CascadeMultiplier)
		r.emit(model.Event{
			Type:       model.EventWinInfo,
			GameType:   gameType,
			Wins:       wins,
			Amount:     amount,
			Multiplier: r.state.CascadeMultiplier,
			Step:       step,
		})
		r.addWin(amount, gameType)
		total += amount
	}
	return total
}
