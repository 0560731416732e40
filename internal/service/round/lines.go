package round

import (
	"slot_math/internal/model"
)

// evaluateLines считает выигрыш по всем линиям.
// Вайлды заменяют любой платящий символ, множители вайлдов на засчитанных ячейках перемножаются
// и ограничиваются max_line_multiplier.
func (r *round) evaluateLines(board model.Board) ([]model.LineWin, float64) {
	var (
		wins  []model.LineWin
		total float64
	)
	for i, line := range r.game.Paylines {
		win, ok := r.evaluateLine(board, line)
		if !ok {
			continue
		}
		win.Line = i + 1
		wins = append(wins, win)
		total += win.Payout
	}
	return wins, total
}

func (r *round) evaluateLine(board model.Board, line []int) (model.LineWin, bool) {
	cells := make([]model.Symbol, len(line))
	for reel, row := range line {
		cells[reel] = board[reel][row]
	}

	// Ведущие вайлды
	wilds := 0
	for wilds < len(cells) && r.game.IsWild(cells[wilds].Name) {
		wilds++
	}

	best := model.LineWin{}
	if wilds > 0 {
		if pay := r.pay(r.game.Special.Wild, wilds); pay > 0 {
			mult := stack(cells[:wilds], r.game.ExpandingWild.MaxLineMultiplier)
			best = model.LineWin{Symbol: r.game.Special.Wild, Count: wilds, Multiplier: mult, Payout: pay * float64(mult)}
		}
	}

	if wilds < len(cells) {
		sym := cells[wilds].Name
		if _, payable := r.game.Paytable[sym]; payable && !r.game.IsWild(sym) {
			count := wilds + 1
			for count < len(cells) && (cells[count].Name == sym || r.game.IsWild(cells[count].Name)) {
				count++
			}
			if pay := r.pay(sym, count); pay > 0 {
				mult := stack(cells[:count], r.game.ExpandingWild.MaxLineMultiplier)
				if win := pay * float64(mult); win > best.Payout {
					best = model.LineWin{Symbol: sym, Count: count, Multiplier: mult, Payout: win}
				}
			}
		}
	}

	if best.Payout <= 0 {
		return best, false
	}
	best.Positions = make([]model.Position, best.Count)
	for reel := 0; reel < best.Count; reel++ {
		best.Positions[reel] = model.Position{Reel: reel, Row: line[reel]}
	}
	return best, true
}

func (r *round) pay(sym string, count int) float64 {
	return r.game.Paytable[sym][count]
}

// stack перемножает множители вайлдов на ячейках линии. limit > 0 ограничивает произведение.
func stack(cells []model.Symbol, limit int) int {
	mult := 1
	for _, c := range cells {
		if c.Multiplier <= 0 {
			continue
		}
		mult *= c.Multiplier
		if limit > 0 && mult >= limit {
			return limit
		}
	}
	return mult
}

// winningPositions уникальные ячейки всех выигравших линий
func winningPositions(wins []model.LineWin) []model.Position {
	seen := make(map[model.Position]struct{})
	var out []model.Position
	for _, w := range wins {
		for _, p := range w.Positions {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
