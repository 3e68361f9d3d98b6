package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures process-level configuration. Parsed once in main so the
// rest of the codebase never reads the environment directly.
type Config struct {
	Addr          string `env:"HUSTINGS_ADDR" envDefault:":8080"`
	JWTSigningKey string `env:"JWT_SIGNING_KEY"`

	// PostgresDSN selects the durable store. Empty means in-memory stores,
	// which is the mode unit tests and local development run in.
	PostgresDSN string `env:"POSTGRES_DSN"`

	// RedisURL enables the redis-backed profile cache mirror. Empty means an
	// in-process cache.
	RedisURL        string        `env:"REDIS_URL"`
	ProfileCacheTTL time.Duration `env:"PROFILE_CACHE_TTL" envDefault:"5m"`

	// KafkaBrokers enables the audit event stream sink when non-empty.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	AuditTopic   string   `env:"AUDIT_TOPIC" envDefault:"hustings.profile.audit"`

	MaxBioEntries          int `env:"MAX_BIO_ENTRIES" envDefault:"8"`
	BioCompletionThreshold int `env:"BIO_COMPLETION_THRESHOLD" envDefault:"200"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
}

// FromEnv builds a Config from environment variables so main stays lean.
// A missing signing key is a hard error: a silent default would let a
// misconfigured deployment accept forgeable tokens.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.JWTSigningKey == "" {
		return Config{}, errors.New("JWT_SIGNING_KEY is required")
	}
	return cfg, nil
}
