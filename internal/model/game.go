package model

const (
	GameTypeBase = "basegame"
	GameTypeFree = "freegame"
	GameTypeLair = "dragons_lair"
)

// ModeKind вариант поведения режима
type ModeKind string

const (
	// KindLines обычная игра по линиям с фриспинами (base, bonus)
	KindLines ModeKind = "lines"
	// KindSuperSpin hold-and-win со стартовым полем из призов
	KindSuperSpin ModeKind = "superspin"
	// KindHold hold-and-win с пустого поля (dragons_lair)
	KindHold ModeKind = "hold"
)

// Game статическая конфигурация игры. Только для чтения во время симуляции.
type Game struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	Wincap float64 `yaml:"wincap"`
	RTP    float64 `yaml:"rtp"`

	NumReels int   `yaml:"num_reels"`
	NumRows  []int `yaml:"num_rows"`

	Paytable map[string]map[int]float64 `yaml:"paytable"`
	Paylines [][]int                    `yaml:"paylines"`
	Special  SpecialSymbols             `yaml:"special_symbols"`

	// Триггеры фриспинов: тип игры -> количество скаттеров -> фриспины
	FreeSpinTriggers map[string]map[int]int `yaml:"freespin_triggers"`

	Reels        map[string][][]string `yaml:"reels"`
	DefaultReels map[string]string     `yaml:"default_reels"`

	ExpandingWild ExpandingWildConfig `yaml:"expanding_wild"`
	Cascade       CascadeConfig       `yaml:"cascade"`
	Collector     CollectorConfig     `yaml:"collector"`
	HoldAndWin    HoldAndWinConfig    `yaml:"hold_and_win"`
	Fury          FuryConfig          `yaml:"dragons_fury"`

	Modes []Mode `yaml:"modes"`
}

// SpecialSymbols роли специальных символов
type SpecialSymbols struct {
	Wild     string `yaml:"wild"`
	MegaWild string `yaml:"mega_wild"`
	Scatter  string `yaml:"scatter"`
	Prize    string `yaml:"prize"`
	GoldCoin string `yaml:"gold_coin"`
	Empty    string `yaml:"empty"`
}

type ExpandingWildConfig struct {
	// Барабаны с множителем дракона (0-based)
	MultiplierReels   []int                      `yaml:"multiplier_reels"`
	MultiplierValues  map[int]float64            `yaml:"multiplier_values"`
	BaseMultiplier    int                        `yaml:"base_multiplier"`
	MegaThreshold     int                        `yaml:"mega_threshold"`
	MultValues        map[string]map[int]float64 `yaml:"mult_values"`
	LandingWilds      map[int]float64            `yaml:"landing_wilds"`
	MaxProgression    int                        `yaml:"max_progression"`
	MaxBonusWilds     int                        `yaml:"max_bonus_wilds"`
	// Предел произведения множителей вайлдов на линии, 0 - без предела
	MaxLineMultiplier int                        `yaml:"max_line_multiplier"`
}

type CascadeConfig struct {
	FreeChance    float64 `yaml:"free_chance"`
	BaseMinWin    float64 `yaml:"base_min_win"`
	MaxMultiplier int     `yaml:"max_multiplier"`
	MaxSteps      int     `yaml:"max_steps"`
}

type CollectorConfig struct {
	Max int `yaml:"max"`
}

type HoldAndWinConfig struct {
	InitialRespins   int             `yaml:"initial_respins"`
	JackpotThreshold float64         `yaml:"jackpot_threshold"`
	PrizeValues      map[int]float64 `yaml:"prize_values"`
}

type FuryConfig struct {
	Chance      float64  `yaml:"chance"`
	HighSymbols []string `yaml:"high_symbols"`
	CoinsMin    int      `yaml:"coins_min"`
	CoinsMax    int      `yaml:"coins_max"`
}

// Mode режим ставки
type Mode struct {
	Name          string         `yaml:"name"`
	Kind          ModeKind       `yaml:"kind"`
	Cost          float64        `yaml:"cost"`
	RTP           float64        `yaml:"rtp"`
	MaxWin        float64        `yaml:"max_win"`
	Distributions []Distribution `yaml:"distributions"`
	Optimization  Optimization   `yaml:"optimization"`
}

// Divisor стоимость режима для расчета payout multiple. Бесплатный режим считается по ставке 1.
func (m *Mode) Divisor() float64 {
	if m.Cost <= 0 {
		return 1
	}
	return m.Cost
}

// Distribution returns the distribution for criteria or nil.
func (m *Mode) Distribution(criteria string) *Distribution {
	for i := range m.Distributions {
		if m.Distributions[i].Criteria == criteria {
			return &m.Distributions[i]
		}
	}
	return nil
}

// Mode returns the mode by name or nil.
func (g *Game) Mode(name string) *Mode {
	for i := range g.Modes {
		if g.Modes[i].Name == name {
			return &g.Modes[i]
		}
	}
	return nil
}

// IsWild W или MW
func (g *Game) IsWild(name string) bool {
	return name == g.Special.Wild || (g.Special.MegaWild != "" && name == g.Special.MegaWild)
}
