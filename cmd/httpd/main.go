// Command httpd runs the content analyzer HTTP API.
package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/seoforge/content-analyzer/internal/analyzer"
	"github.com/seoforge/content-analyzer/internal/api"
	"github.com/seoforge/content-analyzer/internal/cache"
	"github.com/seoforge/content-analyzer/internal/config"
	"github.com/seoforge/content-analyzer/internal/database"
	"github.com/seoforge/content-analyzer/internal/domain"
	"github.com/seoforge/content-analyzer/internal/logging"
	platformconfig "github.com/seoforge/content-analyzer/internal/platform/config"
	"github.com/seoforge/content-analyzer/internal/platform/ginserver"
	"github.com/seoforge/content-analyzer/internal/platform/logger"
	"github.com/seoforge/content-analyzer/internal/processor"
	"github.com/seoforge/content-analyzer/internal/telemetry"
)

const startupTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(platformconfig.GetConfigPath("config.yaml"))
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Must(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	defer func() { _ = log.Sync() }()

	log.Info("starting content analyzer API",
		logger.String("service", cfg.Service.Name),
		logger.String("version", cfg.Service.Version),
		logger.Int("port", cfg.Service.Port),
	)

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	db, rulesRepo, historyRepo, customRules := setupDatabase(ctx, cfg, log)
	redisClient, resultCache := setupCache(cfg, log)
	cancel()

	if db != nil {
		defer func() { _ = db.Close() }()
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	tp := telemetry.NewProvider()

	contentAnalyzer := analyzer.New(log, tp, analyzer.Config{
		Version:     cfg.Service.Version,
		CustomRules: customRules,
	})

	logAdapter := logging.NewAdapter(log)
	batchProcessor := processor.NewBatchProcessor(contentAnalyzer, cfg.Service.Concurrency, tp, logAdapter)

	handler := api.NewHandler(
		contentAnalyzer,
		batchProcessor,
		rulesRepo,
		historyRepo,
		resultCache,
		tp,
		api.Limits{
			MaxBodyBytes:  cfg.Analysis.MaxBodyBytes,
			MaxBatchItems: cfg.Analysis.MaxBatchItems,
		},
		logAdapter,
	)

	serverCfg := &ginserver.Config{
		Port:           cfg.Service.Port,
		Debug:          cfg.Service.Debug,
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
	}

	server := ginserver.NewServer(serverCfg, log, healthChecks(db, redisClient), func(router *gin.Engine) {
		api.SetupRoutes(router, handler, api.RouteOptions{
			JWTSecret: cfg.Auth.JWTSecret,
			Telemetry: tp,
			Ready: func() error {
				if db != nil {
					return db.Ping()
				}
				return nil
			},
		})
	})

	if err := server.RunWithGracefulShutdown(context.Background()); err != nil {
		log.Fatal("server failed", logger.Error(err))
	}
}

// setupDatabase connects to Postgres and loads the enabled custom phrase
// rules. The API runs without a database; rules and history endpoints then
// report unavailable.
func setupDatabase(
	ctx context.Context,
	cfg *config.Config,
	log logger.Logger,
) (*sqlx.DB, *database.PhraseRulesRepository, *database.AnalysisHistoryRepository, []domain.PhraseRule) {
	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		log.Warn("database unavailable, rules and history endpoints disabled",
			logger.Error(err),
		)
		return nil, nil, nil, nil
	}

	rulesRepo := database.NewPhraseRulesRepository(db)
	historyRepo := database.NewAnalysisHistoryRepository(db)

	customRules, err := rulesRepo.ListEnabled(ctx)
	if err != nil {
		log.Warn("failed to load custom phrase rules, using builtins only",
			logger.Error(err),
		)
		customRules = nil
	} else {
		log.Info("loaded custom phrase rules", logger.Int("count", len(customRules)))
	}

	return db, rulesRepo, historyRepo, customRules
}

// setupCache connects to Redis for result caching. The API runs without it;
// every analysis is then computed fresh.
func setupCache(cfg *config.Config, log logger.Logger) (*redis.Client, *cache.ResultCache) {
	if !cfg.Analysis.CacheEnabled {
		log.Info("result cache disabled by configuration")
		return nil, nil
	}

	client, err := cache.NewClient(cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, result caching disabled", logger.Error(err))
		return nil, nil
	}

	return client, cache.NewResultCache(client, cfg.Redis.CacheTTL, log)
}

func healthChecks(db *sqlx.DB, redisClient *redis.Client) map[string]ginserver.HealthChecker {
	checks := make(map[string]ginserver.HealthChecker)
	if db != nil {
		checks["database"] = ginserver.DatabaseHealthChecker(db.Ping)
	}
	if redisClient != nil {
		checks["redis"] = ginserver.RedisHealthChecker(func() error {
			return redisClient.Ping(context.Background()).Err()
		})
	}
	return checks
}
