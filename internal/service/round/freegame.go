package round

import (
	"slot_math/internal/model"
)

// Предел фриспинов за раунд с учетом ретриггеров
const maxFreeSpins = 1000

// spin один спин игры по линиям. Порядок механик фиксирован:
// поле, липкие и новые вайлды (фриспины), расширение вайлдов, линии, каскады,
// Dragon's Fury, сборщик монет. Возвращает количество скаттеров на поле.
func (r *round) spin(gameType string, forceScatters bool) int {
	r.state.CascadeMultiplier = 1
	r.resetWilds()

	board, set := r.drawBoard(gameType)
	if forceScatters {
		r.forceScatters(board)
	}
	r.emit(model.Event{Type: model.EventReveal, GameType: gameType, Board: board.Clone()})

	if gameType == model.GameTypeFree {
		r.revealSticky(board)
		r.placeLandingWilds(board)
	}
	r.expandWilds(board, gameType)

	wins, stepWin := r.evaluateLines(board)
	spinWin := stepWin
	if stepWin > 0 {
		r.emit(model.Event{Type: model.EventWinInfo, GameType: gameType, Wins: wins, Amount: stepWin, Multiplier: 1})
		r.addWin(stepWin, gameType)
		spinWin += r.cascade(board, set, gameType, wins, stepWin)
	}

	if gameType == model.GameTypeBase && spinWin == 0 && !r.capped && r.rng.Float64() < r.game.Fury.Chance {
		r.dragonsFury(board, gameType)
	}

	// Скаттеры считаются до бонуса сборщика, тот работает на своем поле
	scatters := board.Count(r.game.Special.Scatter)
	r.collect(board)
	return scatters
}

// freeSpinsFor фриспины за scatters скаттеров: наибольший порог, не превышающий scatters
func (r *round) freeSpinsFor(gameType string, scatters int) int {
	best, spins := 0, 0
	for need, n := range r.game.FreeSpinTriggers[gameType] {
		if scatters >= need && need > best {
			best, spins = need, n
		}
	}
	return spins
}

// playLines базовый спин и, если выпали скаттеры, фриспины
func (r *round) playLines() {
	scatters := r.spin(model.GameTypeBase, r.dist.Conditions.ForceFreegame)
	if spins := r.freeSpinsFor(model.GameTypeBase, scatters); spins > 0 && !r.capped {
		r.freeGame(spins)
	}
}

func (r *round) freeGame(spins int) {
	st := r.state
	st.ResetFreeGame()
	st.FreeSpinsLeft = spins
	total := spins

	r.book.Flags.FreeGame = true
	r.emit(model.Event{Type: model.EventFreeSpinTrigger, GameType: model.GameTypeBase, Total: total})

	for st.FreeSpinsLeft > 0 && !r.capped {
		st.FreeSpinIndex++
		st.FreeSpinsLeft--
		r.emit(model.Event{Type: model.EventUpdateFreeSpin, GameType: model.GameTypeFree, Current: st.FreeSpinIndex, Total: total})

		scatters := r.spin(model.GameTypeFree, false)
		extra := min(r.freeSpinsFor(model.GameTypeFree, scatters), maxFreeSpins-total)
		if extra > 0 {
			st.FreeSpinsLeft += extra
			total += extra
			r.emit(model.Event{Type: model.EventFreeSpinTrigger, GameType: model.GameTypeFree, Added: extra, Total: total})
		}
	}
	st.ResetFreeGame()
}

// playSuperSpin hold-and-win со стартовым полем с ленты базовой игры
func (r *round) playSuperSpin() {
	board, _ := r.drawBoard(model.GameTypeBase)
	r.emit(model.Event{Type: model.EventReveal, GameType: model.GameTypeBase, Board: board.Clone()})
	r.holdAndWin(model.GameTypeBase, board)
}

// playHold hold-and-win с пустого поля
func (r *round) playHold() {
	r.holdAndWin(model.GameTypeLair, nil)
}
