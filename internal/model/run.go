package model

// SimulationRequest параметры прогона одного режима
type SimulationRequest struct {
	Mode      string
	Count     int
	Workers   int
	BatchSize int
	Seed      uint64
}

// SimulationResult итог прогона режима
type SimulationResult struct {
	Mode        string
	Rounds      int
	Discarded   int
	Unsatisfied []int
	PerCriteria map[string]int
}

// ArtifactFile опубликованный файл
type ArtifactFile struct {
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
}

// ModeArtifacts артефакты режима
type ModeArtifacts struct {
	Mode    string         `json:"name"`
	Cost    float64        `json:"cost"`
	Events  string         `json:"events"`
	Weights string         `json:"weights"`
	RTP     float64        `json:"rtp"`
	HitRate float64        `json:"hitRate"`
	Count   int            `json:"count"`
	Files   []ArtifactFile `json:"files"`
}

// Manifest index.json
type Manifest struct {
	GameID  string          `json:"gameId"`
	BuildID string          `json:"buildId"`
	Modes   []ModeArtifacts `json:"modes"`
}
