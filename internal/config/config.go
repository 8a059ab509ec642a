package config

import (
	"time"

	platformconfig "github.com/seoforge/content-analyzer/internal/platform/config"
)

// Default configuration values.
const (
	defaultServiceName      = "content-analyzer"
	defaultServiceVersion   = "2.1.0"
	defaultServicePort      = 8080
	defaultConcurrency      = 8
	defaultBatchSize        = 50
	defaultPollIntervalSec  = 30
	defaultMaxBodyBytes     = 1 << 20 // 1 MiB per analyze request
	defaultMaxBatchItems    = 100
	defaultDBHost           = "localhost"
	defaultDBPort           = 5432
	defaultDBUser           = "postgres"
	defaultDBName           = "content_analyzer"
	defaultDBSSLMode        = "disable"
	defaultDBMaxConns       = 25
	defaultDBMaxIdleConns   = 5
	defaultESURL            = "http://localhost:9200"
	defaultESMaxRetries     = 3
	defaultESTimeoutSec     = 30
	defaultESContentIndex   = "generated_content"
	defaultESAnalyzedIndex  = "analyzed_content"
	defaultRedisURL         = "localhost:6379"
	defaultRedisMaxRetries  = 3
	defaultRedisTimeoutSec  = 5
	defaultCacheTTLHours    = 24
	defaultLogLevel         = "info"
	defaultLogFormat        = "json"
	defaultRateLimitPerSec  = 20
	defaultRateLimitBurst   = 40
)

// Config holds all configuration for the content analyzer service.
type Config struct {
	Service       ServiceConfig       `yaml:"service"`
	Database      DatabaseConfig      `yaml:"database"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
	Redis         RedisConfig         `yaml:"redis"`
	Logging       LoggingConfig       `yaml:"logging"`
	Analysis      AnalysisConfig      `yaml:"analysis"`
	Auth          AuthConfig          `yaml:"auth"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name         string        `yaml:"name"`
	Version      string        `yaml:"version"`
	Port         int           `env:"ANALYZER_PORT"        yaml:"port"`
	Debug        bool          `env:"APP_DEBUG"            yaml:"debug"`
	Concurrency  int           `env:"ANALYZER_CONCURRENCY" yaml:"concurrency"`
	BatchSize    int           `yaml:"batch_size"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host            string        `env:"POSTGRES_HOST"     yaml:"host"`
	Port            int           `env:"POSTGRES_PORT"     yaml:"port"`
	User            string        `env:"POSTGRES_USER"     yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database        string        `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode         string        `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
}

// ElasticsearchConfig holds Elasticsearch configuration.
type ElasticsearchConfig struct {
	URL           string        `env:"ELASTICSEARCH_URL" yaml:"url"`
	Username      string        `yaml:"username"`
	Password      string        `yaml:"password"`
	MaxRetries    int           `yaml:"max_retries"`
	Timeout       time.Duration `yaml:"timeout"`
	ContentIndex  string        `yaml:"content_index"`
	AnalyzedIndex string        `yaml:"analyzed_index"`
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	URL        string        `env:"REDIS_URL"      yaml:"url"`
	Password   string        `env:"REDIS_PASSWORD" yaml:"password"`
	Database   int           `yaml:"database"`
	MaxRetries int           `yaml:"max_retries"`
	Timeout    time.Duration `yaml:"timeout"`
	CacheTTL   time.Duration `yaml:"cache_ttl"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
	Output string `yaml:"output"`
}

// AnalysisConfig holds analysis-specific settings.
type AnalysisConfig struct {
	MaxBodyBytes    int     `yaml:"max_body_bytes"`
	MaxBatchItems   int     `yaml:"max_batch_items"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheEnabled    bool    `yaml:"cache_enabled"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET" yaml:"jwt_secret"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return platformconfig.LoadWithDefaults[Config](path, setDefaults)
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setElasticsearchDefaults(&cfg.Elasticsearch)
	setRedisDefaults(&cfg.Redis)
	setLoggingDefaults(&cfg.Logging)
	setAnalysisDefaults(&cfg.Analysis)
	// Auth defaults come from env tags, nothing to set here.
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.Concurrency == 0 {
		s.Concurrency = defaultConcurrency
	}
	if s.BatchSize == 0 {
		s.BatchSize = defaultBatchSize
	}
	if s.PollInterval == 0 {
		s.PollInterval = defaultPollIntervalSec * time.Second
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Host == "" {
		d.Host = defaultDBHost
	}
	if d.Port == 0 {
		d.Port = defaultDBPort
	}
	if d.User == "" {
		d.User = defaultDBUser
	}
	if d.Database == "" {
		d.Database = defaultDBName
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultDBSSLMode
	}
	if d.MaxConnections == 0 {
		d.MaxConnections = defaultDBMaxConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultDBMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = time.Hour
	}
}

func setElasticsearchDefaults(e *ElasticsearchConfig) {
	if e.URL == "" {
		e.URL = defaultESURL
	}
	if e.MaxRetries == 0 {
		e.MaxRetries = defaultESMaxRetries
	}
	if e.Timeout == 0 {
		e.Timeout = defaultESTimeoutSec * time.Second
	}
	if e.ContentIndex == "" {
		e.ContentIndex = defaultESContentIndex
	}
	if e.AnalyzedIndex == "" {
		e.AnalyzedIndex = defaultESAnalyzedIndex
	}
}

func setRedisDefaults(r *RedisConfig) {
	if r.URL == "" {
		r.URL = defaultRedisURL
	}
	if r.MaxRetries == 0 {
		r.MaxRetries = defaultRedisMaxRetries
	}
	if r.Timeout == 0 {
		r.Timeout = defaultRedisTimeoutSec * time.Second
	}
	if r.CacheTTL == 0 {
		r.CacheTTL = defaultCacheTTLHours * time.Hour
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}

func setAnalysisDefaults(a *AnalysisConfig) {
	if a.MaxBodyBytes == 0 {
		a.MaxBodyBytes = defaultMaxBodyBytes
	}
	if a.MaxBatchItems == 0 {
		a.MaxBatchItems = defaultMaxBatchItems
	}
	if a.RateLimitPerSec == 0 {
		a.RateLimitPerSec = defaultRateLimitPerSec
	}
	if a.RateLimitBurst == 0 {
		a.RateLimitBurst = defaultRateLimitBurst
	}
}
