package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Sweeper       SweeperConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SERP_APP_ENV" required:"true"`
	Port         string `envconfig:"SERP_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SERP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SERP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SERP_DB_DSN" required:"true"`
	Driver string `envconfig:"SERP_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"SERP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SERP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SERP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SERP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SERP_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SERP_REDIS_ADDR"`
	Password     string        `envconfig:"SERP_REDIS_PASSWORD"`
	DB           int           `envconfig:"SERP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SERP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SERP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SERP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SERP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SERP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"SERP_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"SERP_JWT_ISSUER" default:"serp-backend"`
	ExpirationMinutes      int    `envconfig:"SERP_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"SERP_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// AccessTokenTTL returns the signed token lifetime, one hour unless configured.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SERP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SERP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SERP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SERP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SERP_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"SERP_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"SERP_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"SERP_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type SweeperConfig struct {
	Interval           time.Duration `envconfig:"SERP_SWEEPER_INTERVAL" default:"5m"`
	ArchiveSolvedAfter time.Duration `envconfig:"SERP_SWEEPER_ARCHIVE_SOLVED_AFTER" default:"720h"`
	ResourceStaleAfter time.Duration `envconfig:"SERP_SWEEPER_RESOURCE_STALE_AFTER" default:"1h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SERP_AUTO_MIGRATE" default:"false"`
}
