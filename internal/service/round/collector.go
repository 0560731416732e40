package round

import (
	"slot_math/internal/model"
)

// collect считает золотые монеты на поле и двигает счетчик сессии.
// Заполненный счетчик запускает Dragon's Lair.
func (r *round) collect(board model.Board) {
	hits := board.Count(r.game.Special.GoldCoin)
	if hits == 0 || r.game.Collector.Max <= 0 {
		return
	}
	meter, triggered := r.state.Collect(hits, r.game.Collector.Max)
	r.emit(model.Event{
		Type:      model.EventCollector,
		Added:     hits,
		Meter:     meter,
		Total:     r.game.Collector.Max,
		Triggered: triggered,
	})
	if triggered && !r.capped {
		r.holdAndWin(model.GameTypeLair, nil)
	}
}
