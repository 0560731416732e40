package model

// Distribution профиль форсирования (criteria) внутри режима
type Distribution struct {
	Criteria string  `yaml:"criteria"`
	Quota    float64 `yaml:"quota"`

	// Точная цель выигрыша (0 или wincap). nil - без точной цели.
	WinCriteria *float64   `yaml:"win_criteria"`
	Conditions  Conditions `yaml:"conditions"`
}

// Conditions переопределения таблиц и флаги форсирования
type Conditions struct {
	ReelWeights     map[string]map[string]float64 `yaml:"reel_weights"`
	MultValues      map[string]map[int]float64    `yaml:"mult_values"`
	LandingWilds    map[int]float64               `yaml:"landing_wilds"`
	ScatterTriggers map[int]float64               `yaml:"scatter_triggers"`
	PrizeValues     map[int]float64               `yaml:"prize_values"`
	ForceWincap     bool                          `yaml:"force_wincap"`
	ForceFreegame   bool                          `yaml:"force_freegame"`
}

// Optimization цели оптимизатора для режима
type Optimization struct {
	Conditions map[string]BucketTarget `yaml:"conditions"`
	Scaling    []ScalingRule           `yaml:"scaling"`
	Bounds     SolverBounds            `yaml:"bounds"`
}

// BucketTarget цель корзины. Нужны минимум две величины из rtp/hr/av_win, либо одна rtp для остатка.
type BucketTarget struct {
	RTP     float64 `yaml:"rtp"`
	HR      float64 `yaml:"hr"`
	AvWin   float64 `yaml:"av_win"`
	HitRate float64 `yaml:"hit_rate"`
}

// ScalingRule мультипликативная корректировка весов в диапазоне выплат
type ScalingRule struct {
	Criteria    string     `yaml:"criteria"`
	ScaleFactor float64    `yaml:"scale_factor"`
	WinRange    [2]float64 `yaml:"win_range"`
	Probability float64    `yaml:"probability"`
}

// SolverBounds границы весов и параметры поиска
type SolverBounds struct {
	MinWeight    uint64  `yaml:"min_weight"`
	MaxWeight    uint64  `yaml:"max_weight"`
	Tolerance    float64 `yaml:"tolerance"`
	RefinePasses int     `yaml:"refine_passes"`
	LookupTotal  float64 `yaml:"lookup_total"`
}
