package round

import (
	"slices"
	"slot_math/internal/model"
)

// wildPhase состояние расширяющегося вайлда на барабане
type wildPhase int

const (
	wildIdle wildPhase = iota
	wildLanded
	wildExpanded
)

// resetWilds начало спина: все барабаны в состоянии idle
func (r *round) resetWilds() {
	r.phases = make([]wildPhase, r.game.NumReels)
	r.sticky = make(map[int]bool)
}

// wildMultiplier множитель для нового вайлда на барабане reel.
// На центральных барабанах базовый множитель умножается на множитель дракона.
func (r *round) wildMultiplier(reel int, gameType string) int {
	if r.dm != nil && slices.Contains(r.game.ExpandingWild.MultiplierReels, reel) {
		base := r.game.ExpandingWild.BaseMultiplier
		if base <= 0 {
			base = 1
		}
		return base * r.dm.Draw(r.rng)
	}
	return r.t.mults[gameType].Draw(r.rng)
}

// expandWilds переводит барабаны с приземлившимся вайлдом в expanded.
// Во фриспинах раскрытые барабаны становятся липкими.
func (r *round) expandWilds(board model.Board, gameType string) {
	for reel := range board {
		if r.phases[reel] == wildExpanded {
			continue
		}
		row := slices.IndexFunc(board[reel], func(s model.Symbol) bool { return r.game.IsWild(s.Name) })
		if row < 0 {
			continue
		}
		r.phases[reel] = wildLanded

		mult := board[reel][row].Multiplier
		if mult <= 0 {
			mult = r.wildMultiplier(reel, gameType)
		}
		r.fillReel(board, reel, mult, gameType)

		if gameType == model.GameTypeFree {
			r.state.StickyWilds = append(r.state.StickyWilds, model.StickyWild{Reel: reel, Row: row, Multiplier: mult})
			r.sticky[reel] = true
		}
	}
}

// fillReel заполняет барабан вайлдом с множителем, от порога mega_threshold - мега-вайлдом
func (r *round) fillReel(board model.Board, reel, mult int, gameType string) {
	name := r.game.Special.Wild
	if th := r.game.ExpandingWild.MegaThreshold; th > 0 && mult >= th && r.game.Special.MegaWild != "" {
		name = r.game.Special.MegaWild
	}
	for row := range board[reel] {
		board[reel][row] = model.Symbol{Name: name, Multiplier: mult}
	}
	r.phases[reel] = wildExpanded
	r.emit(model.Event{
		Type:       model.EventExpandWild,
		GameType:   gameType,
		Symbol:     name,
		Multiplier: mult,
		Positions:  []model.Position{{Reel: reel, Row: 0}},
	})
}

// revealSticky возвращает липкие вайлды на поле фриспина.
// Центральные барабаны заново тянут множитель дракона, остальные растут на уровень прогрессии.
func (r *round) revealSticky(board model.Board) {
	fs := r.state.FreeSpinIndex
	if fs > 1 {
		r.state.WildProgression = min((fs-1)/2, r.game.ExpandingWild.MaxProgression)
	}
	for _, sw := range r.state.StickyWilds {
		if r.sticky[sw.Reel] {
			continue
		}
		mult := sw.Multiplier + r.state.WildProgression
		if r.dm != nil && slices.Contains(r.game.ExpandingWild.MultiplierReels, sw.Reel) {
			mult = r.wildMultiplier(sw.Reel, model.GameTypeFree)
		}
		r.fillReel(board, sw.Reel, mult, model.GameTypeFree)
		r.sticky[sw.Reel] = true
	}
}

// placeLandingWilds ставит новые вайлды на свободные барабаны фриспина.
// На каждом третьем фриспине добавляется бонусный вайлд, всего не больше max_bonus_wilds за фриспины.
func (r *round) placeLandingWilds(board model.Board) {
	n := r.t.landingWilds.Draw(r.rng) + bonusWilds(r.state.FreeSpinIndex, r.game.ExpandingWild.MaxBonusWilds)
	if n <= 0 {
		return
	}
	free := make([]int, 0, len(board))
	for reel := range board {
		if !r.sticky[reel] {
			free = append(free, reel)
		}
	}
	for _, i := range r.choose(len(free), n) {
		reel := free[i]
		row := r.rng.IntN(len(board[reel]))
		board[reel][row] = model.Symbol{Name: r.game.Special.Wild, Multiplier: r.wildMultiplier(reel, model.GameTypeFree)}
		r.phases[reel] = wildLanded
	}
}

// bonusWilds бонусные вайлды фриспина fs (нумерация с 1)
func bonusWilds(fs, limit int) int {
	if fs <= 0 {
		return 0
	}
	return min(fs/3, limit) - min((fs-1)/3, limit)
}
