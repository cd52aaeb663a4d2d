package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"        validate:"required"`
	Env      string `env:"ENV,       default=development" validate:"oneof=development staging production test"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
	HTTP  HTTPConfig
	Audit AuditConfig
}

type AuthConfig struct {
	JWTSecret                string        `env:"JWT_SECRET, required"                    validate:"required,min=16"`
	JWTAlgorithm             string        `env:"JWT_ALGORITHM,               default=HS256" validate:"oneof=HS256 HS384 HS512"`
	AccessTokenExpireMinutes int           `env:"ACCESS_TOKEN_EXPIRE_MINUTES, default=30"    validate:"min=1"`
	BcryptCost               int           `env:"BCRYPT_COST,                 default=10"    validate:"min=4,max=31"`
	LoginMaxFailedAttempts   int           `env:"LOGIN_MAX_FAILED_ATTEMPTS,   default=5"     validate:"min=1"`
	LoginLockoutWindow       time.Duration `env:"LOGIN_LOCKOUT_WINDOW,        default=15m"   validate:"gt=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017" validate:"required"`
	Database string `env:"MONGO_DB,  default=food_market"               validate:"required"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379" validate:"required"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"              validate:"min=0"`
}

type HTTPConfig struct {
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS,  default=http://localhost:3000,http://localhost:5173"`
	AuthRateLimitRPS   float64  `env:"AUTH_RATE_LIMIT_RPS,   default=5"  validate:"gt=0"`
	AuthRateLimitBurst int      `env:"AUTH_RATE_LIMIT_BURST, default=10" validate:"min=1"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"      validate:"min=1,max=64"`
	Buffer  int `env:"AUDIT_BUFFER,  default=256"    validate:"min=1"`
}

// AccessTokenTTL returns the configured access token lifetime.
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.Auth.AccessTokenExpireMinutes) * time.Minute
}

// IsDevelopment reports whether the service runs with developer conveniences
// such as console logging.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads an optional .env file, then the process environment, and
// validates the result.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return &cfg, nil
}
