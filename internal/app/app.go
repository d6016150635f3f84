package app

import (
	"fmt"
	"net/http"

	_ "github.com/lib/pq"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/fpl-datacollector/external/fplapi"
	"github.com/riskibarqy/fpl-datacollector/internal/config"
	"github.com/riskibarqy/fpl-datacollector/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fpl-datacollector/internal/interfaces/jobapi"
	"github.com/riskibarqy/fpl-datacollector/internal/platform/logging"
	"github.com/riskibarqy/fpl-datacollector/internal/platform/resilience"
	"github.com/riskibarqy/fpl-datacollector/internal/usecase"
)

// App wires the collector's services together.
type App struct {
	Config config.Config
	Logger *logging.Logger
	DB     *sqlx.DB
	Jobs   *usecase.JobService
	Server *jobapi.Server
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	feed := fplapi.NewClient(fplapi.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.FPLTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		BaseURL:    cfg.FPLBaseURL,
		Timeout:    cfg.FPLTimeout,
		MaxRetries: cfg.FPLMaxRetries,
		CacheTTL:   cfg.FPLCacheTTL,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FPLCircuitEnabled,
			FailureThreshold: cfg.FPLCircuitFailureCount,
			OpenTimeout:      cfg.FPLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FPLCircuitHalfOpenMaxReq,
		},
	})

	eventRepo := postgres.NewEventRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	playerRepo := postgres.NewPlayerRepository(db)
	positionRepo := postgres.NewPositionTypeRepository(db)
	featureRepo := postgres.NewFeatureRowRepository(db)

	referenceSvc := usecase.NewReferenceService(feed, eventRepo, teamRepo, playerRepo, positionRepo, logger)
	oppositionSvc := usecase.NewOppositionService(feed, cfg.CollectMaxWorkers, logger)
	collectionSvc := usecase.NewCollectionService(feed, featureRepo, oppositionSvc, usecase.CollectionConfig{
		MaxWorkers:         cfg.CollectMaxWorkers,
		AbortOnPlayerError: cfg.CollectAbortOnPlayerError,
	}, logger)
	backfillSvc := usecase.NewBackfillService(feed, featureRepo, usecase.BackfillConfig{
		GraceWindow: cfg.BackfillGraceWindow,
		MaxWorkers:  cfg.BackfillMaxWorkers,
	}, logger)
	jobSvc := usecase.NewJobService(referenceSvc, backfillSvc, collectionSvc, logger)

	handler := jobapi.NewHandler(jobSvc, cfg.InternalJobToken, logger)
	server := jobapi.NewServer(jobapi.ServerConfig{
		Addr:         cfg.HTTPAddr,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, handler, logger)

	return &App{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Jobs:   jobSvc,
		Server: server,
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
