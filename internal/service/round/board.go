package round

import (
	"slices"
	"slot_math/internal/model"
	"slot_math/pkg/sampler"
)

// drawBoard генерирует поле: на каждом барабане равновероятная позиция остановки,
// ряды читаются по ленте циклически
func (r *round) drawBoard(gameType string) (model.Board, string) {
	set := r.t.reelSets[gameType].Draw(r.rng)
	strips := r.game.Reels[set]

	board := model.NewBoard(r.game.NumRows)
	for reel := range board {
		strip := strips[reel]
		stop := r.rng.IntN(len(strip))
		for row := range board[reel] {
			board[reel][row] = r.newSymbol(strip[(stop+row)%len(strip)])
		}
	}
	return board, set
}

// newSymbol создает символ и назначает приз для призового символа
func (r *round) newSymbol(name string) model.Symbol {
	sym := model.Symbol{Name: name}
	if name == r.game.Special.Prize {
		sym.Prize = float64(r.t.prizes.Draw(r.rng))
	}
	return sym
}

// applyGravity сдвигает символы вниз по барабану, пустые ячейки остаются сверху
func (r *round) applyGravity(board model.Board) {
	empty := r.game.Special.Empty
	for reel := range board {
		col := board[reel]
		write := len(col) - 1
		for row := len(col) - 1; row >= 0; row-- {
			if col[row].Name != empty {
				col[write] = col[row]
				write--
			}
		}
		for ; write >= 0; write-- {
			col[write] = model.Symbol{Name: empty}
		}
	}
}

// refill заполняет пустые ячейки символами с ленты набора set
func (r *round) refill(board model.Board, set string) []model.Position {
	strips := r.game.Reels[set]
	var filled []model.Position
	for reel := range board {
		for row := range board[reel] {
			if board[reel][row].Name == r.game.Special.Empty {
				board[reel][row] = r.newSymbol(sampler.Pick(r.rng, strips[reel]))
				filled = append(filled, model.Position{Reel: reel, Row: row})
			}
		}
	}
	return filled
}

// forceScatters ставит нужное количество скаттеров на разные барабаны
func (r *round) forceScatters(board model.Board) {
	want := r.t.scatters.Draw(r.rng)
	if board.Count(r.game.Special.Scatter) >= want {
		return
	}
	// Барабаны с вайлдом раскроются и затрут скаттер
	reels := make([]int, 0, len(board))
	for reel := range board {
		if !slices.ContainsFunc(board[reel], func(s model.Symbol) bool { return r.game.IsWild(s.Name) }) {
			reels = append(reels, reel)
		}
	}
	if len(reels) < want {
		reels = reels[:0]
		for reel := range board {
			reels = append(reels, reel)
		}
	}
	for _, i := range r.choose(len(reels), want) {
		reel := reels[i]
		row := r.rng.IntN(len(board[reel]))
		board[reel][row] = model.Symbol{Name: r.game.Special.Scatter}
	}
}

// choose выбирает k различных индексов из [0, n) (частичный Фишер-Йетс)
func (r *round) choose(n, k int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if k > n {
		k = n
	}
	for i := 0; i < k; i++ {
		j := i + r.rng.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:k]
}

// positions все ячейки поля
func positions(board model.Board) []model.Position {
	out := make([]model.Position, 0, board.Cells())
	for reel := range board {
		for row := range board[reel] {
			out = append(out, model.Position{Reel: reel, Row: row})
		}
	}
	return out
}
