package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Env   string `env:"APP_ENV, default=dev"`
	Port  int    `env:"PORT, default=8080"`
	Store string `env:"STORE, default=postgres"`

	// DBURL wins over the DB_* parts when set.
	DBURL string `env:"DATABASE_URL"`
	DB    DBConfig

	JWTSecret           string `env:"JWT_SECRET"`
	JWTAccessTTLSeconds int    `env:"JWT_ACCESS_TTL_SECONDS, default=3600"`
	RolesDelimiter      string `env:"ROLES_DELIMITER, default=;"`
	ProtectReads        bool   `env:"PROTECT_READS, default=true"`

	AdminLogin    string `env:"ADMIN_LOGIN"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminName     string `env:"ADMIN_NAME, default=Administrator"`
	AdminEmail    string `env:"ADMIN_EMAIL"`

	Redis           RedisConfig
	CacheTTLSeconds int `env:"CACHE_TTL_SECONDS, default=30"`

	OTLPEndpoint       string   `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTELServiceName    string   `env:"OTEL_SERVICE_NAME, default=catalog-api"`
	OTELSampleRatio    float64  `env:"OTEL_TRACES_SAMPLER_ARG, default=1"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS"`
	LoginRateLimit     int      `env:"LOGIN_RATE_LIMIT, default=10"`
	MaxBodyBytes       int64    `env:"MAX_BODY_BYTES, default=1048576"`
}

type DBConfig struct {
	Host     string `env:"DB_HOST, default=127.0.0.1"`
	Port     string `env:"DB_PORT, default=5432"`
	User     string `env:"DB_USER, default=catalog"`
	Password string `env:"DB_PASSWORD, default=catalog"`
	Name     string `env:"DB_NAME, default=catalog"`
	SSLMode  string `env:"DB_SSLMODE, default=disable"`

	MaxConns           int `env:"DB_MAX_CONNS, default=10"`
	MinConns           int `env:"DB_MIN_CONNS, default=1"`
	MaxConnIdleSeconds int `env:"DB_MAX_CONN_IDLE_SECONDS, default=300"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// devSecret is only accepted when APP_ENV is dev or test.
const devSecret = "dev-secret-change-me"

var ErrMissingSecret = errors.New("JWT_SECRET must be set outside dev/test")

// Load reads a .env file when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	return load(envconfig.OsLookuper())
}

func load(l envconfig.Lookuper) (Config, error) {
	var cfg Config

	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	})
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if cfg.DBURL == "" {
		cfg.DBURL = cfg.DB.URL()
	}

	switch cfg.Store {
	case StorePostgres, StoreMemory:
	default:
		return Config{}, fmt.Errorf("load config: unknown STORE %q", cfg.Store)
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDevOrTest() {
			return Config{}, ErrMissingSecret
		}
		cfg.JWTSecret = devSecret
	}

	if cfg.JWTAccessTTLSeconds <= 0 {
		cfg.JWTAccessTTLSeconds = 3600
	}

	if cfg.RolesDelimiter == "" {
		cfg.RolesDelimiter = ";"
	}

	return cfg, nil
}

func (c DBConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + c.Port + "/" + c.Name + "?sslmode=" + c.SSLMode
}

func (c Config) IsDevOrTest() bool {
	return c.Env == "dev" || c.Env == "test"
}

func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.JWTAccessTTLSeconds) * time.Second
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}
