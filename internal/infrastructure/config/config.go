package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the immutable process configuration, built once at startup and
// passed explicitly into every component that needs it.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
	SMTP  SMTPConfig
	Zalo  ZaloConfig
}

// AuthConfig holds the token-signing secret and lifetimes.
type AuthConfig struct {
	JWTSecret      string        `env:"JWT_SECRET"`
	AccessTTL      time.Duration `env:"ACCESS_TOKEN_TTL,  default=30m"`
	RefreshTTL     time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`
	ResetTicketTTL time.Duration `env:"RESET_TICKET_TTL,  default=24h"`
}

type MongoConfig struct {
	URI         string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database    string `env:"MONGO_DB,  default=hotel_saas"`
	MaxPoolSize uint64 `env:"MONGO_MAX_POOL_SIZE, default=0"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// SMTPConfig drives the transactional mailer. When Enabled is false the
// mailer logs instead of sending.
type SMTPConfig struct {
	Enabled  bool   `env:"SMTP_ENABLED, default=false"`
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT,    default=587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM,    default=no-reply@stayhub.local"`
}

// ZaloConfig binds the chat-platform official account to one tenant.
type ZaloConfig struct {
	AppID             string        `env:"ZALO_APP_ID"`
	AppSecret         string        `env:"ZALO_APP_SECRET"`
	BaseURL           string        `env:"ZALO_BASE_URL,     default=https://openapi.zalo.me"`
	MiniAppURL        string        `env:"ZALO_MINI_APP_URL, default=https://openapi.mini.zalo.me/notification/template"`
	BookingTemplateID string        `env:"ZALO_BOOKING_TEMPLATE_ID"`
	TenantID          string        `env:"ZALO_TENANT_ID"`
	RequestTimeout    time.Duration `env:"ZALO_REQUEST_TIMEOUT, default=10s"`
	MaxRetries        int           `env:"ZALO_MAX_RETRIES,     default=3"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	return &cfg, nil
}
