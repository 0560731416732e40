package round

import (
	"slot_math/internal/model"
	"slot_math/pkg/sampler"
)

// dragonsFury случайное событие на пустом спине базовой игры:
// кластер старшего символа или россыпь золотых монет
func (r *round) dragonsFury(board model.Board, gameType string) float64 {
	fury := r.game.Fury
	r.book.Flags.Fury = true

	if len(fury.HighSymbols) > 0 && r.rng.IntN(2) == 0 {
		return r.furyCluster(board, gameType)
	}

	lo, hi := fury.CoinsMin, fury.CoinsMax
	if hi < lo {
		hi = lo
	}
	count := lo + r.rng.IntN(hi-lo+1)
	all := positions(board)
	placed := make([]model.Position, 0, count)
	for _, i := range r.choose(len(all), count) {
		p := all[i]
		board[p.Reel][p.Row] = model.Symbol{Name: r.game.Special.GoldCoin}
		placed = append(placed, p)
	}
	r.emit(model.Event{
		Type:      model.EventDragonsFury,
		GameType:  gameType,
		Symbol:    r.game.Special.GoldCoin,
		Positions: placed,
		Added:     len(placed),
	})
	return 0
}

// furyCluster ставит блок 2 барабана x 2|3 ряда одного старшего символа и пересчитывает линии
func (r *round) furyCluster(board model.Board, gameType string) float64 {
	sym := sampler.Pick(r.rng, r.game.Fury.HighSymbols)
	startReel := r.rng.IntN(3)
	startRow := r.rng.IntN(4)
	rows := 2 + r.rng.IntN(2)

	placed := make([]model.Position, 0, 2*rows)
	for i := 0; i < 2; i++ {
		reel := startReel + i
		if reel >= len(board) {
			break
		}
		for j := 0; j < rows; j++ {
			row := startRow + j
			if row >= len(board[reel]) {
				break
			}
			board[reel][row] = model.Symbol{Name: sym}
			placed = append(placed, model.Position{Reel: reel, Row: row})
		}
	}
	r.emit(model.Event{
		Type:      model.EventDragonsFury,
		GameType:  gameType,
		Symbol:    sym,
		Positions: placed,
		Board:     board.Clone(),
	})

	wins, win := r.evaluateLines(board)
	if win > 0 {
		r.emit(model.Event{Type: model.EventWinInfo, GameType: gameType, Wins: wins, Amount: win, Multiplier: 1})
		r.addWin(win, gameType)
	}
	return win
}
