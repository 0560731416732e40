package model

// StickyWild липкий вайлд, переживающий фриспины
type StickyWild struct {
	Reel       int `json:"reel"`
	Row        int `json:"row"`
	Multiplier int `json:"multiplier"`
}

// SessionState состояние цепочки раундов (сессии).
// Все счетчики, которые живут дольше одного спина, хранятся здесь явно.
// Начальные значения задает NewSessionState.
type SessionState struct {
	// Счетчик золотых монет, 0..Collector.Max
	CollectorMeter int
	// Множитель каскада, 1..Cascade.MaxMultiplier. Сбрасывается в 1 в начале каждого спина.
	CascadeMultiplier int
	// Уровень прогрессии липких вайлдов во фриспинах
	WildProgression int
	StickyWilds     []StickyWild

	FreeSpinsLeft int
	FreeSpinIndex int
}

// NewSessionState состояние новой сессии
func NewSessionState() *SessionState {
	return &SessionState{
		CollectorMeter:    0,
		CascadeMultiplier: 1,
		WildProgression:   0,
		StickyWilds:       nil,
		FreeSpinsLeft:     0,
		FreeSpinIndex:     0,
	}
}

// Collect добавляет монеты в счетчик. При достижении max счетчик упирается в max,
// возвращается triggered=true и счетчик сбрасывается в 0.
// reached - значение счетчика до сброса.
func (s *SessionState) Collect(hits, max int) (reached int, triggered bool) {
	s.CollectorMeter += hits
	if s.CollectorMeter >= max {
		s.CollectorMeter = 0
		return max, true
	}
	return s.CollectorMeter, false
}

// ResetFreeGame сбрасывает состояние фриспинов
func (s *SessionState) ResetFreeGame() {
	s.StickyWilds = nil
	s.WildProgression = 0
	s.FreeSpinsLeft = 0
	s.FreeSpinIndex = 0
}
