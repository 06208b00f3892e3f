package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Upstream  UpstreamConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Tax       TaxConfig
	Reconcile ReconcileConfig
	Log       LogConfig
	Session   SessionConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

// UpstreamConfig points at the sales service that owns sales, held
// orders and customer balances.
type UpstreamConfig struct {
	BaseURL string
	APIKey  string
	// ReadTimeout applies to non-financial reads only. Financial calls
	// (finalize, hold, payment) run without a client-side timeout and
	// are bounded by the caller's context.
	ReadTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type TaxConfig struct {
	// DefaultGSTRate is used when the settings service is unreachable.
	DefaultGSTRate string
	CacheTTL       time.Duration
}

type ReconcileConfig struct {
	Enabled  bool
	CronSpec string
}

type LogConfig struct {
	Level  string
	Format string
	Output string
}

// SessionConfig selects the cart-session store. "memory" keeps carts
// in process; "postgres" snapshots them so a restart does not lose
// open carts.
type SessionConfig struct {
	Driver string
	TTL    time.Duration
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "retailpos-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("UPSTREAM_BASE_URL", "http://localhost:9000/api")
	viper.SetDefault("UPSTREAM_API_KEY", "")
	viper.SetDefault("UPSTREAM_READ_TIMEOUT_SECONDS", 10)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "retailpos")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Karachi")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("TAX_DEFAULT_GST_RATE", "0.17")
	viper.SetDefault("TAX_CACHE_TTL_MINUTES", 15)
	viper.SetDefault("RECONCILE_ENABLED", true)
	viper.SetDefault("RECONCILE_CRON_SPEC", "0 3 * * *")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")
	viper.SetDefault("LOG_OUTPUT", "stdout")
	viper.SetDefault("SESSION_DRIVER", "memory")
	viper.SetDefault("SESSION_TTL_HOURS", 12)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Upstream: UpstreamConfig{
			BaseURL:     viper.GetString("UPSTREAM_BASE_URL"),
			APIKey:      viper.GetString("UPSTREAM_API_KEY"),
			ReadTimeout: time.Duration(viper.GetInt("UPSTREAM_READ_TIMEOUT_SECONDS")) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Tax: TaxConfig{
			DefaultGSTRate: viper.GetString("TAX_DEFAULT_GST_RATE"),
			CacheTTL:       time.Duration(viper.GetInt("TAX_CACHE_TTL_MINUTES")) * time.Minute,
		},
		Reconcile: ReconcileConfig{
			Enabled:  viper.GetBool("RECONCILE_ENABLED"),
			CronSpec: viper.GetString("RECONCILE_CRON_SPEC"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
			Output: viper.GetString("LOG_OUTPUT"),
		},
		Session: SessionConfig{
			Driver: viper.GetString("SESSION_DRIVER"),
			TTL:    time.Duration(viper.GetInt("SESSION_TTL_HOURS")) * time.Hour,
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
