package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	Ingestion IngestionConfig `mapstructure:"ingestion"`
}

type AppConfig struct {
	AppName     string `mapstructure:"name"`
	Environment string `mapstructure:"env"`
	HTTPPort    string `mapstructure:"http_port"`
}

type DatabaseConfig struct {
	DBHost     string `mapstructure:"host"`
	DBPort     string `mapstructure:"port"`
	DBName     string `mapstructure:"name"`
	DBUser     string `mapstructure:"user"`
	DBPassword string `mapstructure:"password"`
	DBSSLMode  string `mapstructure:"ssl_mode"`

	ConnectTimeout      time.Duration `mapstructure:"connect_timeout"`
	PoolMaxConns        int32         `mapstructure:"pool_max_conns"`
	PoolMinConns        int32         `mapstructure:"pool_min_conns"`
	PoolMaxConnLifetime time.Duration `mapstructure:"pool_max_conn_lifetime"`
	PoolMaxConnIdleTime time.Duration `mapstructure:"pool_max_conn_idle_time"`
}

type RedisConfig struct {
	URL      string        `mapstructure:"url"`
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type JWTConfig struct {
	AccessSecret    string        `mapstructure:"access_secret"`
	AccessExpiresIn time.Duration `mapstructure:"access_expires_in"`
}

type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MatchingConfig struct {
	DedupThreshold float64 `mapstructure:"dedup_threshold"`
	TaxonomyFile   string  `mapstructure:"taxonomy_file"`
}

type IngestionConfig struct {
	Schedule          string   `mapstructure:"schedule"`
	Workers           int      `mapstructure:"workers"`
	RequestsPerSecond float64  `mapstructure:"requests_per_second"`
	AdzunaAppID       string   `mapstructure:"adzuna_app_id"`
	AdzunaAppKey      string   `mapstructure:"adzuna_app_key"`
	AdzunaCountry     string   `mapstructure:"adzuna_country"`
	AdzunaQuery       string   `mapstructure:"adzuna_query"`
	AdzunaPerPage     int      `mapstructure:"adzuna_results_per_page"`
	JoobleAPIKey      string   `mapstructure:"jooble_api_key"`
	JoobleKeywords    []string `mapstructure:"jooble_keywords"`
	JoobleLocation    string   `mapstructure:"jooble_location"`
	CareersFile       string   `mapstructure:"careers_file"`
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

var errInvalidConfig = errors.New("invalid configuration")

// envBindings maps config keys to their environment variables.
var envBindings = map[string]string{
	"app.name":      "APP_NAME",
	"app.env":       "APP_ENV",
	"app.http_port": "HTTP_PORT",

	"database.host":                    "DB_HOST",
	"database.port":                    "DB_PORT",
	"database.name":                    "DB_NAME",
	"database.user":                    "DB_USER",
	"database.password":                "DB_PASSWORD",
	"database.ssl_mode":                "DB_SSL_MODE",
	"database.connect_timeout":         "DB_CONNECT_TIMEOUT",
	"database.pool_max_conns":          "DB_POOL_MAX_CONNS",
	"database.pool_min_conns":          "DB_POOL_MIN_CONNS",
	"database.pool_max_conn_lifetime":  "DB_POOL_MAX_CONN_LIFETIME",
	"database.pool_max_conn_idle_time": "DB_POOL_MAX_CONN_IDLE_TIME",

	"redis.url":      "REDIS_URL",
	"redis.host":     "REDIS_HOST",
	"redis.port":     "REDIS_PORT",
	"redis.password": "REDIS_PASSWORD",
	"redis.ttl":      "REDIS_TTL",

	"jwt.access_secret":     "JWT_ACCESS_SECRET",
	"jwt.access_expires_in": "JWT_ACCESS_EXPIRES_IN",

	"logger.level":  "LOG_LEVEL",
	"logger.format": "LOG_FORMAT",

	"matching.dedup_threshold": "DEDUP_THRESHOLD",
	"matching.taxonomy_file":   "TAXONOMY_FILE",

	"ingestion.schedule":                "INGEST_SCHEDULE",
	"ingestion.workers":                 "INGEST_WORKERS",
	"ingestion.requests_per_second":     "INGEST_RPS",
	"ingestion.adzuna_app_id":           "ADZUNA_APP_ID",
	"ingestion.adzuna_app_key":          "ADZUNA_APP_KEY",
	"ingestion.adzuna_country":          "ADZUNA_COUNTRY",
	"ingestion.adzuna_query":            "ADZUNA_QUERY",
	"ingestion.adzuna_results_per_page": "ADZUNA_RESULTS_PER_PAGE",
	"ingestion.jooble_api_key":          "JOOBLE_API_KEY",
	"ingestion.jooble_keywords":         "JOOBLE_KEYWORDS",
	"ingestion.jooble_location":         "JOOBLE_LOCATION",
	"ingestion.careers_file":            "CAREERS_FILE",
}

var requiredKeys = []string{"app.name", "app.env", "app.http_port", "jwt.access_secret"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.connect_timeout", 5*time.Second)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.ttl", 10*time.Minute)
	v.SetDefault("jwt.access_expires_in", 24*time.Hour)
	v.SetDefault("logger.level", "INFO")
	v.SetDefault("logger.format", "text")
	v.SetDefault("matching.dedup_threshold", 0.8)
	v.SetDefault("ingestion.schedule", "0 */6 * * *")
	v.SetDefault("ingestion.workers", 4)
	v.SetDefault("ingestion.requests_per_second", 2.0)
	v.SetDefault("ingestion.adzuna_country", "in")
	v.SetDefault("ingestion.adzuna_query", "developer software engineer programmer")
	v.SetDefault("ingestion.adzuna_results_per_page", 50)
	v.SetDefault("ingestion.jooble_keywords", []string{"developer", "software engineer", "programmer"})
	v.SetDefault("ingestion.jooble_location", "india")
}

// Load reads configuration from the optional file named by CONFIG_FILE and
// from the environment, environment taking precedence.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if file := strings.TrimSpace(os.Getenv("CONFIG_FILE")); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	var missing []string
	for _, key := range requiredKeys {
		if strings.TrimSpace(v.GetString(key)) == "" {
			missing = append(missing, envBindings[key])
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.trim()

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) trim() {
	c.App.AppName = strings.TrimSpace(c.App.AppName)
	c.App.Environment = strings.TrimSpace(c.App.Environment)
	c.App.HTTPPort = strings.TrimSpace(c.App.HTTPPort)
	c.Logger.Level = strings.ToUpper(strings.TrimSpace(c.Logger.Level))

	keywords := make([]string, 0, len(c.Ingestion.JoobleKeywords))
	for _, k := range c.Ingestion.JoobleKeywords {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	c.Ingestion.JoobleKeywords = keywords
}

func (c Config) validate() error {
	var errs []error

	if t := c.Matching.DedupThreshold; t <= 0 || t > 1 {
		errs = append(errs, fmt.Errorf("DEDUP_THRESHOLD must be in (0, 1], got %v", t))
	}
	if c.JWT.AccessExpiresIn <= 0 {
		errs = append(errs, errors.New("JWT_ACCESS_EXPIRES_IN must be positive"))
	}
	if c.Ingestion.Workers <= 0 {
		errs = append(errs, errors.New("INGEST_WORKERS must be positive"))
	}
	if c.Ingestion.RequestsPerSecond < 0 {
		errs = append(errs, errors.New("INGEST_RPS must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", errInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}
