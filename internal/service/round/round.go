package round

import (
	"slot_math/internal/model"
	"slot_math/pkg/sampler"

	"github.com/shopspring/decimal"
)

// round состояние одного розыгрыша
type round struct {
	game  *model.Game
	mode  *model.Mode
	dist  *model.Distribution
	t     *distTables
	dm    *sampler.Weighted[int]
	state *model.SessionState
	rng   sampler.Source

	book   *model.Book
	win    float64
	maxWin float64
	capped bool

	// Состояние расширяющегося вайлда по барабанам и липкие барабаны текущего спина
	phases []wildPhase
	sticky map[int]bool
}

func newRound(s *serv, mt *modeTables, dist *model.Distribution, t *distTables, state *model.SessionState, rng sampler.Source) *round {
	mode := mt.mode
	maxWin := mode.MaxWin
	if maxWin <= 0 {
		maxWin = s.game.Wincap
	}
	return &round{
		game:   s.game,
		mode:   mode,
		dist:   dist,
		t:      t,
		dm:     mt.dragonMult,
		state:  state,
		rng:    rng,
		maxWin: maxWin,
		book: &model.Book{
			Mode:     mode.Name,
			Criteria: dist.Criteria,
			Events:   make([]model.Event, 0, 8),
		},
	}
}

// emit добавляет событие в трассу
func (r *round) emit(e model.Event) {
	e.Index = len(r.book.Events)
	r.book.Events = append(r.book.Events, e)
}

// addWin начисляет выигрыш с учетом максимальной выплаты
func (r *round) addWin(amount float64, gameType string) {
	if r.capped || amount <= 0 {
		return
	}
	if r.win+amount >= r.maxWin {
		amount = r.maxWin - r.win
		r.capped = true
		r.book.Flags.Wincap = true
	}
	r.win += amount
	if gameType == model.GameTypeFree {
		r.book.FreeGameWins += amount
	} else {
		r.book.BaseGameWins += amount
	}
	if r.capped {
		r.emit(model.Event{Type: model.EventWincap, Amount: r.maxWin})
	}
}

// finish округляет выигрыш до сотых и закрывает запись
func (r *round) finish() *model.Book {
	win := decimal.NewFromFloat(r.win).Round(2)
	r.book.Win = win.InexactFloat64()
	r.book.PayoutMultiplier = win.Shift(2).IntPart()
	r.book.PayoutMultiple = win.Div(decimal.NewFromFloat(r.mode.Divisor())).InexactFloat64()
	r.book.BaseGameWins = decimal.NewFromFloat(r.book.BaseGameWins).Round(2).InexactFloat64()
	r.book.FreeGameWins = decimal.NewFromFloat(r.book.FreeGameWins).Round(2).InexactFloat64()
	r.emit(model.Event{Type: model.EventFinalWin, Amount: r.book.Win})
	return r.book
}
