package app

import (
	"context"

	replayAPI "slotinsight_backend/internal/api/replay"
	sessionAPI "slotinsight_backend/internal/api/session"
	"slotinsight_backend/internal/config"
	"slotinsight_backend/internal/config/env"
	"slotinsight_backend/internal/repository"
	"slotinsight_backend/internal/repository/ledger_repo"
	"slotinsight_backend/internal/repository/store"
	"slotinsight_backend/internal/service"
	"slotinsight_backend/internal/service/cohort"
	"slotinsight_backend/internal/service/game"
	"slotinsight_backend/internal/service/ingest"
	"slotinsight_backend/internal/service/kpi"
	"slotinsight_backend/internal/service/replay"
	"slotinsight_backend/internal/service/segment"
	sessionServ "slotinsight_backend/internal/service/session"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Ledger bits
	ledgerRepo repository.LedgerRepository

	// Session bits
	txStore     repository.TransactionStore
	sessionServ service.SessionService
	ingestServ  service.IngestService
	sessionHand *sessionAPI.Handler

	// Analytics bits
	analyticsCfg config.AnalyticsConfig
	kpiServ      service.KPIService
	cohortServ   service.CohortService
	gameServ     service.GameService
	segmentServ  service.SegmentService

	// Replay bits
	replayCfg  config.ReplayConfig
	replayServ service.ReplayService
	replayHand *replayAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
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

func (sp *ServiceProvider) AnalyticsCfg() config.AnalyticsConfig {
	if sp.analyticsCfg == nil {
		cfg, err := env.NewAnalyticsConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get analytics config: " + err.Error())
		}

		sp.analyticsCfg = cfg
	}
	return sp.analyticsCfg
}

func (sp *ServiceProvider) ReplayCfg() config.ReplayConfig {
	if sp.replayCfg == nil {
		cfg, err := env.NewReplayConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get replay config: " + err.Error())
		}
		sp.replayCfg = cfg
	}
	return sp.replayCfg
}

func (sp *ServiceProvider) LedgerRepository(ctx context.Context) repository.LedgerRepository {
	if sp.ledgerRepo == nil {
		sp.ledgerRepo = ledger_repo.NewLedgerRepository(sp.DBClient(ctx))
	}
	return sp.ledgerRepo
}

func (sp *ServiceProvider) TransactionStore() repository.TransactionStore {
	if sp.txStore == nil {
		sp.txStore = store.NewTransactionStore()
	}
	return sp.txStore
}

func (sp *ServiceProvider) ReplayService() service.ReplayService {
	if sp.replayServ == nil {
		sp.replayServ = replay.NewReplayService(sp.TransactionStore(), sp.ReplayCfg())
	}
	return sp.replayServ
}

func (sp *ServiceProvider) SessionService() service.SessionService {
	if sp.sessionServ == nil {
		sp.sessionServ = sessionServ.NewSessionService(sp.TransactionStore(), sp.ReplayService())
	}
	return sp.sessionServ
}

func (sp *ServiceProvider) IngestService(ctx context.Context) service.IngestService {
	if sp.ingestServ == nil {
		sp.ingestServ = ingest.NewIngestService(sp.SessionService(), sp.LedgerRepository(ctx), sp.TXManager(ctx))
	}
	return sp.ingestServ
}

func (sp *ServiceProvider) KPIService() service.KPIService {
	if sp.kpiServ == nil {
		sp.kpiServ = kpi.NewKPIService(sp.TransactionStore(), sp.AnalyticsCfg())
	}
	return sp.kpiServ
}

func (sp *ServiceProvider) CohortService() service.CohortService {
	if sp.cohortServ == nil {
		sp.cohortServ = cohort.NewCohortService(sp.TransactionStore())
	}
	return sp.cohortServ
}

func (sp *ServiceProvider) GameService() service.GameService {
	if sp.gameServ == nil {
		sp.gameServ = game.NewGameService(sp.TransactionStore(), sp.AnalyticsCfg())
	}
	return sp.gameServ
}

func (sp *ServiceProvider) SegmentService() service.SegmentService {
	if sp.segmentServ == nil {
		sp.segmentServ = segment.NewSegmentService(sp.TransactionStore(), sp.AnalyticsCfg())
	}
	return sp.segmentServ
}

func (sp *ServiceProvider) SessionHandler(ctx context.Context) *sessionAPI.Handler {
	if sp.sessionHand == nil {
		sp.sessionHand = sessionAPI.NewHandler(sessionAPI.HandlerDeps{
			Session: sp.SessionService(),
			Ingest:  sp.IngestService(ctx),
			KPI:     sp.KPIService(),
			Cohort:  sp.CohortService(),
			Game:    sp.GameService(),
			Segment: sp.SegmentService(),
		})
	}
	return sp.sessionHand
}

func (sp *ServiceProvider) ReplayHandler() *replayAPI.Handler {
	if sp.replayHand == nil {
		sp.replayHand = replayAPI.NewHandler(replayAPI.HandlerDeps{Serv: sp.ReplayService()})
	}
	return sp.replayHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Session endpoints
		sessionHandler := sp.SessionHandler(ctx)
		r.Route("/session", func(rr chi.Router) {
			rr.Post("/load", sessionHandler.Load)
			rr.Post("/filter", sessionHandler.SetFilter)
			rr.Get("/filter", sessionHandler.Filter)
			rr.Get("/kpi", sessionHandler.KPIs)
			rr.Get("/cohort", sessionHandler.Cohort)
			rr.Get("/games", sessionHandler.GameStats)
			rr.Get("/users", sessionHandler.Users)
			rr.Get("/users/{id}", sessionHandler.UserInsight)
			rr.Get("/transactions", sessionHandler.Transactions)
		})

		// Replay endpoints
		replayHandler := sp.ReplayHandler()
		r.Route("/replay", func(rr chi.Router) {
			rr.Get("/checkpoints", replayHandler.Checkpoints)
			rr.Get("/snapshot", replayHandler.Snapshot)
			rr.Post("/play", replayHandler.Play)
			rr.Post("/pause", replayHandler.Pause)
			rr.Post("/seek", replayHandler.Seek)
		})

		sp.router = r
	}

	return sp.router
}
