package service

import (
	"context"

	"slot_math/internal/model"
	"slot_math/pkg/sampler"
)

type RoundService interface {
	Play(mode string, dist *model.Distribution, state *model.SessionState, rng sampler.Source) (*model.Book, error)
	Validate(mode string) error
}

type CriteriaService interface {
	// Select одна criteria по квотам, для розыгрыша отдельных раундов вне прогона
	Select(mode string, rng sampler.Source) (*model.Distribution, error)
	// Plan criteria всех раундов прогона, по нему планировщик симуляции раздает id
	Plan(mode string, total int, seed uint64) ([]string, error)
	Generate(mode string, dist *model.Distribution, rng sampler.Source) (book *model.Book, discarded int, err error)
}

type SimulationService interface {
	Run(ctx context.Context, req model.SimulationRequest) (*model.SimulationResult, error)
}

type OptimizerService interface {
	SolveBucket(ctx context.Context, mode, criteria string, books []model.Book) (*model.WeightAssignment, error)
	SolveMode(ctx context.Context, mode string, books []model.Book) (*model.ModeWeights, error)
}

type PublishService interface {
	PublishMode(ctx context.Context, mode string, books []model.Book, weights *model.ModeWeights) (*model.ModeArtifacts, error)
	WriteManifest(ctx context.Context, modes []model.ModeArtifacts) (*model.Manifest, error)
}

type PipelineService interface {
	Run(ctx context.Context) (*model.RunSummary, error)
	LastSummary() (*model.RunSummary, bool)
}

type AuthService interface {
	IssueToken(ctx context.Context, operatorKey string) (string, error)
}

type ReportService interface {
	Summary() (*model.RunSummary, error)
	Mode(name string) (*model.ModeReport, model.ModeStats, error)
	Book(ctx context.Context, mode string, id int) (*model.Book, error)
}
