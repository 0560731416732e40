package model

// EventType тип события в трассе раунда
type EventType string

const (
	EventReveal          EventType = "reveal"
	EventExpandWild      EventType = "expandWild"
	EventWinInfo         EventType = "winInfo"
	EventCascade         EventType = "cascade"
	EventDragonsFury     EventType = "dragonsFury"
	EventCollector       EventType = "collector"
	EventHoldAndWinStart EventType = "holdAndWinStart"
	EventHoldAndWinSpin  EventType = "holdAndWinRespin"
	EventHoldAndWinEnd   EventType = "holdAndWinEnd"
	EventFreeSpinTrigger EventType = "freeSpinTrigger"
	EventUpdateFreeSpin  EventType = "updateFreeSpin"
	EventWincap          EventType = "wincap"
	EventFinalWin        EventType = "finalWin"
)

// Event одно событие трассы. Неиспользуемые поля опускаются при сериализации.
type Event struct {
	Index    int       `json:"index"`
	Type     EventType `json:"type"`
	GameType string    `json:"gameType,omitempty"`

	Board     Board      `json:"board,omitempty"`
	Positions []Position `json:"positions,omitempty"`
	Wins      []LineWin  `json:"wins,omitempty"`
	Symbol    string     `json:"symbol,omitempty"`

	Amount     float64 `json:"amount,omitempty"`
	Multiplier int     `json:"multiplier,omitempty"`
	Step       int     `json:"step,omitempty"`
	Meter      int     `json:"meter,omitempty"`
	Added      int     `json:"added,omitempty"`
	Respins    int     `json:"respins,omitempty"`
	Total      int     `json:"total,omitempty"`
	Current    int     `json:"current,omitempty"`
	Jackpot    bool    `json:"jackpot,omitempty"`
	Triggered  bool    `json:"triggered,omitempty"`
}

// LineWin выигрыш по одной линии
type LineWin struct {
	Line       int        `json:"line"`
	Symbol     string     `json:"symbol"`
	Count      int        `json:"count"`
	Multiplier int        `json:"multiplier"`
	Payout     float64    `json:"win"`
	Positions  []Position `json:"positions"`
}

// Flags терминальные флаги раунда
type Flags struct {
	FreeGame   bool `json:"freeGame,omitempty"`
	Wincap     bool `json:"wincap,omitempty"`
	HoldAndWin bool `json:"holdAndWin,omitempty"`
	Jackpot    bool `json:"jackpot,omitempty"`
	Fury       bool `json:"fury,omitempty"`
}

// Book запись раунда. Неизменяемая после создания, хранится в Book Store.
type Book struct {
	ID       int    `json:"id"`
	Mode     string `json:"-"`
	Criteria string `json:"criteria"`

	// Выигрыш в ставках (bet multiples), округлен до сотых
	Win float64 `json:"-"`
	// Win / стоимость режима
	PayoutMultiple float64 `json:"-"`
	// Выигрыш в сотых долях ставки, формат lookup таблицы
	PayoutMultiplier int64 `json:"payoutMultiplier"`

	BaseGameWins float64 `json:"baseGameWins"`
	FreeGameWins float64 `json:"freeGameWins"`
	Flags        Flags   `json:"flags"`
	Events       []Event `json:"events"`
}
