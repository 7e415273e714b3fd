package main

import (
	"time"

	"github.com/dmitrymomot/translations/pkg/loaders"
	"github.com/dmitrymomot/translations/pkg/logger"
	"github.com/dmitrymomot/translations/pkg/pgstore"
)

// Loader sources.
const (
	SourceFS       = "fs"
	SourceHTTP     = "http"
	SourceS3       = "s3"
	SourcePostgres = "postgres"
)

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// ConfigFile is an optional YAML/JSON engine configuration.
	ConfigFile string   `env:"TRANSLATIONS_CONFIG"`
	Locales    []string `env:"TRANSLATIONS_LOCALES" envSeparator:"," envDefault:"en"`
	Locale     string   `env:"TRANSLATIONS_LOCALE"`
	Namespaces []string `env:"TRANSLATIONS_NAMESPACES" envSeparator:","`

	Source  string `env:"TRANSLATIONS_SOURCE" envDefault:"fs"`
	Dir     string `env:"TRANSLATIONS_DIR" envDefault:"locales"`
	BaseURL string `env:"TRANSLATIONS_BASE_URL"`

	Cache    string        `env:"TRANSLATIONS_CACHE" envDefault:"memory"`
	CacheTTL time.Duration `env:"TRANSLATIONS_CACHE_TTL" envDefault:"10m"`
	RedisURL string        `env:"REDIS_URL"`

	PreloadSchedule string `env:"TRANSLATIONS_PRELOAD_SCHEDULE" envDefault:"@every 10m"`

	Log logger.Config    `envPrefix:""`
	S3  loaders.S3Config `envPrefix:""`
	DB  pgstore.Config   `envPrefix:""`
}
