// Command processor runs the content analysis pipeline worker. It polls
// Elasticsearch for generated content awaiting analysis, runs it through the
// analyzer, and writes the scored documents back.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/seoforge/content-analyzer/internal/analyzer"
	"github.com/seoforge/content-analyzer/internal/config"
	"github.com/seoforge/content-analyzer/internal/database"
	"github.com/seoforge/content-analyzer/internal/domain"
	"github.com/seoforge/content-analyzer/internal/logging"
	platformconfig "github.com/seoforge/content-analyzer/internal/platform/config"
	"github.com/seoforge/content-analyzer/internal/platform/logger"
	"github.com/seoforge/content-analyzer/internal/processor"
	"github.com/seoforge/content-analyzer/internal/storage"
	"github.com/seoforge/content-analyzer/internal/telemetry"
)

const (
	startupTimeout = 10 * time.Second
	drainDelay     = 2 * time.Second
)

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

	log.Info("starting content analysis processor",
		logger.String("service", cfg.Service.Name),
		logger.String("version", cfg.Service.Version),
		logger.Int("batch_size", cfg.Service.BatchSize),
		logger.Duration("poll_interval", cfg.Service.PollInterval),
	)

	esClient, err := storage.NewElasticsearchClient(cfg.Elasticsearch)
	if err != nil {
		log.Fatal("failed to create elasticsearch client", logger.Error(err))
	}

	store := storage.NewElasticsearchStorage(
		esClient,
		cfg.Elasticsearch.ContentIndex,
		cfg.Elasticsearch.AnalyzedIndex,
	)

	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	if err := store.TestConnection(startupCtx); err != nil {
		cancel()
		log.Fatal("elasticsearch connection failed", logger.Error(err))
	}
	if err := store.EnsureIndices(startupCtx); err != nil {
		cancel()
		log.Fatal("failed to ensure elasticsearch indices", logger.Error(err))
	}

	history, customRules := setupDatabase(startupCtx, cfg, log)
	cancel()

	tp := telemetry.NewProvider()

	contentAnalyzer := analyzer.New(log, tp, analyzer.Config{
		Version:     cfg.Service.Version,
		CustomRules: customRules,
	})

	logAdapter := logging.NewAdapter(log)
	batchProcessor := processor.NewBatchProcessor(contentAnalyzer, cfg.Service.Concurrency, tp, logAdapter)

	poller := processor.NewPoller(store, history, batchProcessor, tp, logAdapter, processor.PollerConfig{
		BatchSize:    cfg.Service.BatchSize,
		PollInterval: cfg.Service.PollInterval,
		PollRPS:      int(cfg.Analysis.RateLimitPerSec),
		PollBurst:    cfg.Analysis.RateLimitBurst,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := poller.Start(ctx); err != nil {
		log.Fatal("failed to start poller", logger.Error(err))
	}

	<-ctx.Done()
	log.Info("shutdown signal received")

	poller.Stop()

	// Give in-flight batches a moment to finish indexing.
	time.Sleep(drainDelay)
	log.Info("processor stopped")
}

// setupDatabase connects to Postgres for the analysis audit trail and custom
// phrase rules. The pipeline runs without it; history rows are then skipped.
func setupDatabase(ctx context.Context, cfg *config.Config, log logger.Logger) (processor.HistoryStore, []domain.PhraseRule) {
	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		log.Warn("database unavailable, analysis history disabled", logger.Error(err))
		return nil, nil
	}

	customRules, err := database.NewPhraseRulesRepository(db).ListEnabled(ctx)
	if err != nil {
		log.Warn("failed to load custom phrase rules, using builtins only",
			logger.Error(err),
		)
		customRules = nil
	}

	return database.NewAnalysisHistoryRepository(db), customRules
}
