// Package app wires configuration, storage, scrapers, pipelines and the HTTP API.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/matchday-feed/external/livescore"
	"github.com/riskibarqy/matchday-feed/external/premierleague"
	"github.com/riskibarqy/matchday-feed/external/transfermarkt"
	"github.com/riskibarqy/matchday-feed/external/wikipedia"
	"github.com/riskibarqy/matchday-feed/internal/config"
	"github.com/riskibarqy/matchday-feed/internal/domain/leaguestanding"
	"github.com/riskibarqy/matchday-feed/internal/domain/livematch"
	"github.com/riskibarqy/matchday-feed/internal/domain/team"
	"github.com/riskibarqy/matchday-feed/internal/domain/transfer"
	repocache "github.com/riskibarqy/matchday-feed/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/matchday-feed/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/matchday-feed/internal/infrastructure/repository/sqlstore"
	"github.com/riskibarqy/matchday-feed/internal/interfaces/httpapi"
	"github.com/riskibarqy/matchday-feed/internal/mockdata"
	"github.com/riskibarqy/matchday-feed/internal/observability"
	basecache "github.com/riskibarqy/matchday-feed/internal/platform/cache"
	idgen "github.com/riskibarqy/matchday-feed/internal/platform/id"
	"github.com/riskibarqy/matchday-feed/internal/platform/logging"
	"github.com/riskibarqy/matchday-feed/internal/platform/resilience"
	"github.com/riskibarqy/matchday-feed/internal/platform/scrape"
	"github.com/riskibarqy/matchday-feed/internal/platform/tracing"
	"github.com/riskibarqy/matchday-feed/internal/usecase"
)

// App is the assembled process: HTTP server, optional scheduler and the store behind both.
type App struct {
	Server    *http.Server
	Scheduler *usecase.Scheduler

	store  *sqlstore.Store
	logger *logging.Logger
}

type repositories struct {
	standings leaguestanding.Repository
	transfers transfer.Repository
	live      livematch.Repository
	teams     team.Repository
	health    httpapi.HealthChecker
	store     *sqlstore.Store
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	pipelineCfg := usecase.PipelineConfig{
		PruneMaxAge: cfg.PruneMaxAge,
		IDs:         idgen.NewRandomGenerator(),
		Logger:      logger,
	}
	routerCfg := httpapi.RouterConfig{
		ServiceName:        cfg.ServiceName,
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:             logger,
	}
	breakerCfg := resilience.CircuitBreakerConfig{
		Enabled:          cfg.ScrapeCircuitEnabled,
		FailureThreshold: cfg.ScrapeCircuitFailureCount,
		OpenTimeout:      cfg.ScrapeCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.ScrapeCircuitHalfOpenMaxReq,
	}
	var metrics *observability.ScrapeMetrics
	if cfg.MetricsEnabled {
		metrics = observability.NewScrapeMetrics()
		pipelineCfg.Metrics = metrics
		routerCfg.Metrics = metrics.Handler()
		breakerCfg.OnStateChange = metrics.ObserveCircuit
	}

	standings := repos.standings
	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		if metrics != nil {
			if err := metrics.RegisterCache("standings", store); err != nil {
				closeStore(repos.store, logger)
				return nil, fmt.Errorf("register cache metrics: %w", err)
			}
		}
		standings = repocache.NewLeagueStandingRepository(standings, store)
	}

	fetcher := scrape.NewFetcher(scrape.FetcherConfig{
		Timeout:        cfg.ScrapeTimeout,
		UserAgent:      cfg.ScrapeUserAgent,
		CircuitBreaker: breakerCfg,
		Logger:         logger,
	})
	mocks := mockdata.New()

	leagueSvc := usecase.NewLeagueStandingService(
		wikipedia.NewClient(fetcher, mocks, wikipedia.Config{Logger: logger}),
		standings,
		mocks,
		cfg.ScrapeLeagues,
		pipelineCfg,
	)
	transferSvc := usecase.NewTransferService(
		transfermarkt.NewClient(fetcher, transfermarkt.Config{Logger: logger}),
		repos.transfers,
		mocks,
		cfg.TransfersLimit,
		pipelineCfg,
	)
	liveSvc := usecase.NewLiveScoreService(
		livescore.NewClient(fetcher, livescore.Config{Logger: logger}),
		repos.live,
		mocks,
		pipelineCfg,
	)
	teamSvc := usecase.NewTeamService(
		standings,
		repos.teams,
		premierleague.NewClient(fetcher, premierleague.Config{Logger: logger}),
		mocks,
		pipelineCfg,
	)

	var scheduler *usecase.Scheduler
	if cfg.ScheduleEnabled {
		scheduler, err = usecase.NewScheduler(
			usecase.SchedulerConfig{StartupDelay: cfg.ScheduleStartupDelay, Logger: logger},
			usecase.Task{
				Name: usecase.DomainTransfers,
				Spec: cfg.ScheduleTransfers,
				Run:  discardReport(transferSvc.Sync),
			},
			usecase.Task{
				Name:         usecase.DomainLeagues,
				Spec:         cfg.ScheduleLeagues,
				RunAtStartup: true,
				Run: func(ctx context.Context) error {
					_, err := leagueSvc.Sync(ctx)
					return err
				},
			},
			usecase.Task{
				Name:         usecase.DomainLiveScores,
				Spec:         cfg.ScheduleLiveScores,
				RunAtStartup: true,
				Run:          discardReport(liveSvc.Sync),
			},
		)
		if err != nil {
			closeStore(repos.store, logger)
			return nil, fmt.Errorf("build scheduler: %w", err)
		}
	}

	handler := httpapi.NewHandler(httpapi.Services{
		Standings: leagueSvc,
		Transfers: transferSvc,
		Live:      liveSvc,
		Teams:     teamSvc,
		Health:    repos.health,
	}, logger)
	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, routerCfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		Server:    server,
		Scheduler: scheduler,
		store:     repos.store,
		logger:    logger,
	}, nil
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	target, err := ParseDBURL(cfg.DBURL)
	if err != nil {
		return repositories{}, fmt.Errorf("parse DB_URL: %w", err)
	}

	if target.Kind == StorageMemory {
		logger.Warn("using in-memory storage, data is lost on restart")
		return repositories{
			standings: memory.NewLeagueStandingRepository(),
			transfers: memory.NewTransferRepository(),
			live:      memory.NewLiveMatchRepository(),
			teams:     memory.NewTeamRepository(),
		}, nil
	}

	store, err := sqlstore.Open(ctx, sqlstore.Config{
		Dialect:        target.Dialect(),
		DSN:            target.DSN,
		Name:           target.Name,
		Workers:        cfg.ScrapeWorkers,
		QueryFormatter: tracing.FormatQuery,
		Logger:         logger,
	})
	if err != nil {
		return repositories{}, err
	}
	if cfg.DBAutoMigrate {
		if err := store.Migrate(); err != nil {
			closeStore(store, logger)
			return repositories{}, err
		}
	}

	return repositories{
		standings: sqlstore.NewLeagueStandingRepository(store),
		transfers: sqlstore.NewTransferRepository(store),
		live:      sqlstore.NewLiveMatchRepository(store),
		teams:     sqlstore.NewTeamRepository(store),
		health:    store,
		store:     store,
	}, nil
}

func discardReport(sync func(context.Context) (usecase.CycleReport, error)) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := sync(ctx)
		return err
	}
}

// Start launches the scheduler. The HTTP server is started by the caller.
func (a *App) Start(ctx context.Context) {
	if a.Scheduler != nil {
		a.Scheduler.Start(ctx)
	}
}

// Shutdown stops accepting requests, waits for in-flight scheduled runs and
// closes the store, in that order.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if err := a.Server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if a.Scheduler != nil {
		if err := a.Scheduler.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop scheduler: %w", err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}
	return errors.Join(errs...)
}

func closeStore(store *sqlstore.Store, logger *logging.Logger) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("close store failed", "error", err)
	}
}
