package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const EnvProduction = "production"

type Config struct {
	Debug       bool   `env:"DEBUG" envDefault:"false"`
	Environment string `env:"APP_ENV" envDefault:"production"`

	Server struct {
		Port           int           `env:"PORT" envDefault:"8080"`
		Origins        []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
		RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	}

	Postgres struct {
		Host            string        `env:"POSTGRES_HOST" envDefault:"localhost"`
		Port            int           `env:"POSTGRES_PORT" envDefault:"5432"`
		User            string        `env:"POSTGRES_USER" envDefault:"postgres"`
		Password        string        `env:"POSTGRES_PASSWORD" envDefault:""`
		Database        string        `env:"POSTGRES_DB" envDefault:"ops_admin"`
		SSLMode         string        `env:"POSTGRES_SSLMODE" envDefault:"disable"`
		MaxOpenConns    int           `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"25"`
		MaxIdleConns    int           `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"5"`
		ConnMaxLifetime time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME" envDefault:"5m"`
		AutoMigrate     bool          `env:"DB_AUTO_MIGRATE" envDefault:"false"`
	}

	Redis struct {
		// Empty address disables the token cache.
		Addr     string        `env:"REDIS_ADDR" envDefault:""`
		Password string        `env:"REDIS_PASSWORD" envDefault:""`
		DB       int           `env:"REDIS_DB" envDefault:"0"`
		TokenTTL time.Duration `env:"TOKEN_CACHE_TTL" envDefault:"30s"`
	}

	Reward struct {
		BaseURL     string        `env:"REWARD_BASE_URL" envDefault:"https://app-dev.ton.ai"`
		AdminToken  string        `env:"REWARD_ADMIN_TOKEN" envDefault:""`
		AssetPath   string        `env:"REWARD_ASSET_PATH" envDefault:"/api/v1/user/asset/sendByTelegramHandle"`
		PointsPath  string        `env:"REWARD_POINTS_PATH" envDefault:"/api/v1/user/point/sendByTelegramHandle"`
		Timeout     time.Duration `env:"REWARD_TIMEOUT" envDefault:"30s"`
		Concurrency int           `env:"REWARD_BATCH_CONCURRENCY" envDefault:"1"`
		// asset type -> asset id
		Assets map[string]string `env:"REWARD_ASSETS" envSeparator:"," envKeyValSeparator:":" envDefault:"qluck:1002,bluck:1003,usdt:663cbd6c515cf0d9f9d93e14,ton:1005,pepe:1006"`
	}

	Telegram struct {
		BotToken    string        `env:"BOT_TOKEN" envDefault:""`
		InitDataTTL time.Duration `env:"INIT_DATA_TTL" envDefault:"24h"`
	}

	Auth struct {
		AdminUserIDs []string `env:"ADMIN_USER_IDS" envSeparator:","`
	}
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	// a missing .env is fine, production sets variables directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad panics on invalid configuration.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid PORT: %d", c.Server.Port)
	}
	if c.Reward.Concurrency < 1 {
		return fmt.Errorf("REWARD_BATCH_CONCURRENCY must be >= 1, got %d", c.Reward.Concurrency)
	}
	for assetType := range c.Reward.Assets {
		if strings.EqualFold(assetType, "points") {
			return fmt.Errorf("REWARD_ASSETS must not define the reserved points asset")
		}
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, EnvProduction)
}

// GetDSN builds a lib/pq connection string.
func (c *Config) GetDSN() string {
	p := c.Postgres
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}
