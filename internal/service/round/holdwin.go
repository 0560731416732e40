package round

import (
	"slot_math/internal/model"
	"slot_math/pkg/sampler"
)

// respinCounter счетчик респинов hold-and-win
type respinCounter struct {
	initial int
	left    int
}

func newRespinCounter(initial int) *respinCounter {
	return &respinCounter{initial: initial, left: initial}
}

// Step учитывает результат респина. Новый приз возвращает счетчик к начальному значению,
// иначе он уменьшается. false - бонус закончен.
func (c *respinCounter) Step(newPrizes int) bool {
	if newPrizes > 0 {
		c.left = c.initial
	} else {
		c.left--
	}
	return c.left > 0
}

// holdAndWin бонус с удержанием призов. start - стартовое поле, nil - пустое поле.
// Выплата - сумма призов на поле в конце бонуса.
func (r *round) holdAndWin(gameType string, start model.Board) {
	prize := r.game.Special.Prize
	empty := r.game.Special.Empty

	board := start
	if board == nil {
		board = model.NewBoard(r.game.NumRows)
	}
	for _, p := range positions(board) {
		if board[p.Reel][p.Row].Name != prize {
			board[p.Reel][p.Row] = model.Symbol{Name: empty}
		}
	}

	cells := board.Cells()
	held := board.Count(prize)
	counter := newRespinCounter(max(r.game.HoldAndWin.InitialRespins, 1))

	r.book.Flags.HoldAndWin = true
	r.emit(model.Event{
		Type:     model.EventHoldAndWinStart,
		GameType: gameType,
		Board:    board.Clone(),
		Respins:  counter.left,
		Total:    held,
	})

	for held < cells {
		landed := r.respin(board, gameType)
		held += len(landed)
		more := counter.Step(len(landed))
		r.emit(model.Event{
			Type:      model.EventHoldAndWinSpin,
			GameType:  gameType,
			Board:     board.Clone(),
			Positions: landed,
			Added:     len(landed),
			Respins:   counter.left,
			Total:     held,
		})
		if !more {
			break
		}
	}

	var total float64
	for _, reel := range board {
		for _, s := range reel {
			if s.Name == prize {
				total += s.Prize
			}
		}
	}
	jackpot := float64(held) >= r.game.HoldAndWin.JackpotThreshold*float64(cells) && r.game.HoldAndWin.JackpotThreshold > 0
	if jackpot {
		r.book.Flags.Jackpot = true
	}
	r.emit(model.Event{
		Type:     model.EventHoldAndWinEnd,
		GameType: gameType,
		Amount:   total,
		Total:    held,
		Jackpot:  jackpot,
	})
	r.addWin(total, gameType)
}

// respin тянет символы в пустые ячейки. Призы остаются на поле, остальное снова пустое.
func (r *round) respin(board model.Board, gameType string) []model.Position {
	prize := r.game.Special.Prize
	empty := r.game.Special.Empty
	strips := r.game.Reels[r.t.reelSets[gameType].Draw(r.rng)]

	var landed []model.Position
	for reel := range board {
		for row := range board[reel] {
			if board[reel][row].Name != empty {
				continue
			}
			sym := r.newSymbol(sampler.Pick(r.rng, strips[reel]))
			if sym.Name != prize {
				continue
			}
			board[reel][row] = sym
			landed = append(landed, model.Position{Reel: reel, Row: row})
		}
	}
	return landed
}
