package app

import (
	"fmt"
	"net/http"
	"strings"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/draftroom/keeper-league/external/statsfeed"
	"github.com/draftroom/keeper-league/internal/config"
	"github.com/draftroom/keeper-league/internal/domain/acquisition"
	"github.com/draftroom/keeper-league/internal/domain/override"
	"github.com/draftroom/keeper-league/internal/domain/rule"
	"github.com/draftroom/keeper-league/internal/domain/season"
	"github.com/draftroom/keeper-league/internal/domain/selection"
	"github.com/draftroom/keeper-league/internal/domain/team"
	cacherepo "github.com/draftroom/keeper-league/internal/infrastructure/repository/cache"
	"github.com/draftroom/keeper-league/internal/infrastructure/repository/memory"
	"github.com/draftroom/keeper-league/internal/infrastructure/repository/postgres"
	"github.com/draftroom/keeper-league/internal/interfaces/httpapi"
	basecache "github.com/draftroom/keeper-league/internal/platform/cache"
	idgen "github.com/draftroom/keeper-league/internal/platform/id"
	"github.com/draftroom/keeper-league/internal/platform/logging"
	"github.com/draftroom/keeper-league/internal/platform/resilience"
	"github.com/draftroom/keeper-league/internal/usecase"
)

// repositories bundles every persistence port the services depend on. The
// acquisition repository doubles as the trade executor in both backends.
type repositories struct {
	acquisitions acquisition.Repository
	trades       acquisition.TradeExecutor
	rules        rule.Repository
	overrides    override.Repository
	selections   selection.Repository
	seasons      season.Repository
	teams        team.Repository
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	if cfg.SeedDemoData {
		logger.Info("using in-memory repositories with demo seed data")
		acqRepo := memory.NewAcquisitionRepository(memory.SeedAcquisitions())
		return repositories{
			acquisitions: acqRepo,
			trades:       acqRepo,
			rules:        memory.NewRuleRepository(memory.SeedRules()),
			overrides:    memory.NewOverrideRepository(nil),
			selections:   memory.NewSelectionRepository(),
			seasons:      memory.NewSeasonRepository(memory.SeedSeasons()),
			teams:        memory.NewTeamRepository(memory.SeedSlots(), memory.SeedAliases()),
		}, func() error { return nil }, nil
	}

	db, err := otelsqlx.Connect("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatQueryForTrace),
	)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("connect database: %w", err)
	}

	acqRepo := postgres.NewAcquisitionRepository(db)
	return repositories{
		acquisitions: acqRepo,
		trades:       acqRepo,
		rules:        postgres.NewRuleRepository(db),
		overrides:    postgres.NewOverrideRepository(db),
		selections:   postgres.NewSelectionRepository(db),
		seasons:      postgres.NewSeasonRepository(db),
		teams:        postgres.NewTeamRepository(db),
	}, db.Close, nil
}

func applyCaching(cfg config.Config, repos repositories) repositories {
	if !cfg.CacheEnabled {
		return repos
	}

	store := basecache.NewStore(cfg.CacheTTL)
	repos.rules = cacherepo.NewRuleRepository(repos.rules, store)
	repos.seasons = cacherepo.NewSeasonRepository(repos.seasons, store)
	repos.teams = cacherepo.NewTeamRepository(repos.teams, store)

	return repos
}

func buildImportService(cfg config.Config, repos repositories, logger *logging.Logger) *usecase.ImportService {
	if !cfg.StatsFeedEnabled {
		return nil
	}

	feed := statsfeed.NewClient(statsfeed.ClientConfig{
		BaseURL:    cfg.StatsFeedBaseURL,
		Token:      cfg.StatsFeedToken,
		Timeout:    cfg.StatsFeedTimeout,
		MaxRetries: cfg.StatsFeedMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.StatsFeedCircuitEnabled,
			FailureThreshold: cfg.StatsFeedCircuitFailureCount,
			OpenTimeout:      cfg.StatsFeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StatsFeedCircuitHalfOpenMax,
		},
	})

	return usecase.NewImportService(feed, repos.acquisitions, idgen.NewRandomGenerator(), logger)
}

// NewHTTPServer assembles the full service: repositories, caching, domain
// services, and the HTTP router. The returned cleanup closes the database
// connection when one was opened.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	repos = applyCaching(cfg, repos)

	ruleSvc := usecase.NewRuleService(repos.rules, basecache.NewStore(cfg.CacheTTL))
	resolver := usecase.NewChainResolver(repos.acquisitions, ruleSvc, logger)
	keeperSvc := usecase.NewKeeperService(resolver, ruleSvc, repos.overrides, repos.seasons, logger)
	selectionSvc := usecase.NewSelectionService(repos.selections, repos.seasons, keeperSvc, idgen.NewRandomGenerator(), logger)
	tradeSvc := usecase.NewTradeService(repos.acquisitions, repos.trades, repos.teams, logger)
	overrideSvc := usecase.NewOverrideService(repos.overrides, logger)
	leagueSvc := usecase.NewLeagueService(repos.teams, repos.seasons, logger)
	importSvc := buildImportService(cfg, repos, logger)

	handler := httpapi.NewHandler(
		keeperSvc,
		selectionSvc,
		tradeSvc,
		overrideSvc,
		ruleSvc,
		leagueSvc,
		importSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.CommissionerKey, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}
