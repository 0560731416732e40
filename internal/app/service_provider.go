package app

import (
	"context"
	authAPI "slot_math/internal/api/auth"
	reportAPI "slot_math/internal/api/report"
	"slot_math/internal/config"
	"slot_math/internal/config/env"
	"slot_math/internal/middleware"
	"slot_math/internal/model"
	"slot_math/internal/repository"
	"slot_math/internal/repository/artifact_repo"
	"slot_math/internal/repository/book_repo"
	"slot_math/internal/repository/run_stats_repo"
	"slot_math/internal/service"
	"slot_math/internal/service/auth"
	"slot_math/internal/service/criteria"
	"slot_math/internal/service/optimizer"
	"slot_math/internal/service/pipeline"
	"slot_math/internal/service/publish"
	"slot_math/internal/service/report"
	"slot_math/internal/service/round"
	"slot_math/internal/service/simulation"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ServiceProvider struct {
	// Logger
	logCfg config.LogConfig
	logger *zap.Logger

	// Run parameters and game config
	runCfg config.RunConfig
	game   *model.Game

	//TXManager
	txManager trm.Manager

	// Database, optional
	pgConfig  config.PGConfig
	pgEnabled bool
	pgLoaded  bool
	dbClient  *pgxpool.Pool

	// Storage
	bookRepo     repository.BookRepository
	statsRepo    repository.StatsRepository
	artifactRepo repository.ArtifactRepository
	mirrorRepo   repository.ArtifactRepository
	mirrorLoaded bool

	// Engine
	roundServ     service.RoundService
	criteriaServ  service.CriteriaService
	simServ       service.SimulationService
	optimizerServ service.OptimizerService
	publishServ   service.PublishService
	pipelineServ  service.PipelineService

	// Report API
	jwtCfg     config.JWTConfig
	authServ   service.AuthService
	authHand   *authAPI.Handler
	reportServ service.ReportService
	reportHand *reportAPI.Handler

	// Router and HTTP config
	httpCfg     config.HTTPConfig
	httpEnabled bool
	httpLoaded  bool
	router      chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		sp.logCfg = env.NewLogConfig()
	}
	return sp.logCfg
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.logger == nil {
		cfg := zap.NewProductionConfig()
		if sp.LogCfg().Development() {
			cfg = zap.NewDevelopmentConfig()
		}
		level, err := zap.ParseAtomicLevel(sp.LogCfg().Level())
		if err != nil {
			panic("failed to parse log level: " + err.Error())
		}
		cfg.Level = level

		logger, err := cfg.Build()
		if err != nil {
			panic("failed to build logger: " + err.Error())
		}
		sp.logger = logger
	}
	return sp.logger
}

func (sp *ServiceProvider) RunCfg() config.RunConfig {
	if sp.runCfg == nil {
		cfg, err := env.NewRunConfig()
		if err != nil {
			panic("failed to get run config: " + err.Error())
		}
		sp.runCfg = cfg
	}
	return sp.runCfg
}

func (sp *ServiceProvider) Game() *model.Game {
	if sp.game == nil {
		game, err := env.NewGameConfigFromYAML(sp.RunCfg().GamePath())
		if err != nil {
			panic("failed to get game config: " + err.Error())
		}
		sp.game = game
	}
	return sp.game
}

// PgConfig конфиг Postgres, ok=false - Book Store живет в памяти
func (sp *ServiceProvider) PgConfig() (config.PGConfig, bool) {
	if !sp.pgLoaded {
		sp.pgConfig, sp.pgEnabled = env.NewPGConfig()
		sp.pgLoaded = true
	}
	return sp.pgConfig, sp.pgEnabled
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		cfg, ok := sp.PgConfig()
		if !ok {
			panic("database is not configured")
		}
		dbc, err := pgxpool.New(ctx, cfg.DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) BookRepository(ctx context.Context) repository.BookRepository {
	if sp.bookRepo == nil {
		if _, ok := sp.PgConfig(); ok {
			if err := book_repo.EnsureSchema(ctx, sp.DBClient(ctx)); err != nil {
				panic("failed to create books schema: " + err.Error())
			}
			sp.bookRepo = book_repo.NewPostgresBookRepository(sp.DBClient(ctx), sp.TXManager(ctx))
			sp.Logger().Info("book store: postgres")
		} else {
			sp.bookRepo = book_repo.NewMemoryBookRepository()
			sp.Logger().Info("book store: memory")
		}
	}
	return sp.bookRepo
}

func (sp *ServiceProvider) StatsRepository() repository.StatsRepository {
	if sp.statsRepo == nil {
		sp.statsRepo = run_stats_repo.NewRunStatsRepository()
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) ArtifactRepository() repository.ArtifactRepository {
	if sp.artifactRepo == nil {
		sp.artifactRepo = artifact_repo.NewFSArtifactRepository(sp.RunCfg().OutputDir())
	}
	return sp.artifactRepo
}

// MirrorRepository зеркало артефактов в S3, nil если S3_BUCKET не задан
func (sp *ServiceProvider) MirrorRepository(ctx context.Context) repository.ArtifactRepository {
	if !sp.mirrorLoaded {
		cfg, ok, err := env.NewS3Config()
		if err != nil {
			panic("failed to get s3 config: " + err.Error())
		}
		if ok {
			repo, err := artifact_repo.NewS3ArtifactRepository(ctx, cfg)
			if err != nil {
				panic("failed to create s3 client: " + err.Error())
			}
			sp.mirrorRepo = repo
			sp.Logger().Info("artifact mirror enabled", zap.String("bucket", cfg.Bucket()))
		}
		sp.mirrorLoaded = true
	}
	return sp.mirrorRepo
}

func (sp *ServiceProvider) RoundService() service.RoundService {
	if sp.roundServ == nil {
		sp.roundServ = round.NewRoundService(sp.Game(), sp.Logger().Named("round"))
	}
	return sp.roundServ
}

func (sp *ServiceProvider) CriteriaService() service.CriteriaService {
	if sp.criteriaServ == nil {
		sp.criteriaServ = criteria.NewCriteriaService(
			sp.Game(),
			sp.RoundService(),
			sp.RunCfg().MaxForceRetries(),
			sp.Logger().Named("criteria"),
		)
	}
	return sp.criteriaServ
}

func (sp *ServiceProvider) SimulationService(ctx context.Context) service.SimulationService {
	if sp.simServ == nil {
		sp.simServ = simulation.NewSimulationService(
			sp.Game(),
			sp.RoundService(),
			sp.CriteriaService(),
			sp.BookRepository(ctx),
			sp.StatsRepository(),
			sp.RunCfg().ForceRetryRounds(),
			sp.Logger().Named("simulation"),
		)
	}
	return sp.simServ
}

func (sp *ServiceProvider) OptimizerService() service.OptimizerService {
	if sp.optimizerServ == nil {
		sp.optimizerServ = optimizer.NewOptimizerService(sp.Game(), sp.Logger().Named("optimizer"))
	}
	return sp.optimizerServ
}

func (sp *ServiceProvider) PublishService(ctx context.Context) service.PublishService {
	if sp.publishServ == nil {
		s, err := publish.NewPublishService(
			sp.Game(),
			sp.ArtifactRepository(),
			sp.MirrorRepository(ctx),
			sp.RunCfg().Compress(),
			sp.Logger().Named("publish"),
		)
		if err != nil {
			panic("failed to create publish service: " + err.Error())
		}
		sp.publishServ = s
	}
	return sp.publishServ
}

func (sp *ServiceProvider) PipelineService(ctx context.Context) service.PipelineService {
	if sp.pipelineServ == nil {
		sp.pipelineServ = pipeline.NewPipelineService(
			sp.Game(),
			sp.RunCfg(),
			sp.SimulationService(ctx),
			sp.OptimizerService(),
			sp.PublishService(ctx),
			sp.BookRepository(ctx),
			sp.ArtifactRepository(),
			sp.Logger().Named("pipeline"),
		)
	}
	return sp.pipelineServ
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) AuthService() service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewService(sp.JWTCfg(), sp.Logger().Named("auth"))
	}
	return sp.authServ
}

func (sp *ServiceProvider) AuthHandler() *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{Serv: sp.AuthService()})
	}
	return sp.authHand
}

func (sp *ServiceProvider) ReportService(ctx context.Context) service.ReportService {
	if sp.reportServ == nil {
		sp.reportServ = report.NewReportService(
			sp.PipelineService(ctx),
			sp.BookRepository(ctx),
			sp.StatsRepository(),
		)
	}
	return sp.reportServ
}

func (sp *ServiceProvider) ReportHandler(ctx context.Context) *reportAPI.Handler {
	if sp.reportHand == nil {
		sp.reportHand = reportAPI.NewHandler(reportAPI.HandlerDeps{
			Serv: sp.ReportService(ctx),
			Log:  sp.Logger().Named("report"),
		})
	}
	return sp.reportHand
}

// HTTPCfg адрес API отчетов, ok=false - API не поднимается
func (sp *ServiceProvider) HTTPCfg() (config.HTTPConfig, bool) {
	if !sp.httpLoaded {
		sp.httpCfg, sp.httpEnabled = env.NewHTTPConfig()
		sp.httpLoaded = true
	}
	return sp.httpCfg, sp.httpEnabled
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Auth endpoints
		authHandler := sp.AuthHandler()
		r.Post("/auth/token", authHandler.Token)

		// Report endpoints
		reportHandler := sp.ReportHandler(ctx)
		r.Route("/report", func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.JWTCfg().AccessTokenSecretKey()))
			rr.Get("/summary", reportHandler.Summary)
			rr.Get("/modes/{mode}", reportHandler.Mode)
			rr.Get("/modes/{mode}/books/{id}", reportHandler.Book)
		})

		sp.router = r
	}

	return sp.router
}
