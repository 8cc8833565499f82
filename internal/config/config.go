package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Queue    QueueConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	SMS      SMSConfig
	AI       AIConfig
	Admin    AdminSeedConfig
	CORS     CORSConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name            string        `env:"APP_NAME"         env-default:"citizen-engagement"`
	Env             string        `env:"APP_ENV"          env-default:"development"`
	Host            string        `env:"HOST"             env-default:"0.0.0.0"`
	Port            int           `env:"PORT"             env-default:"3000"`
	APIPrefix       string        `env:"API_PREFIX"       env-default:"/api/v1"`
	Version         string        `env:"APP_VERSION"      env-default:"dev"`
	BodyLimitBytes  int           `env:"BODY_LIMIT_BYTES" env-default:"1048576"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"  env-default:"15s"`
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN             string        `env:"DATABASE_URL"                env-required:"true"`
	MaxConns        int32         `env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `env:"DATABASE_MIN_CONNS"          env-default:"2"`
	RunMigrations   bool          `env:"DATABASE_RUN_MIGRATIONS"     env-default:"true"`
	MaxConnIdleTime time.Duration `env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30s"`
	MaxConnLifetime time.Duration `env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"5m"`
}

// RedisConfig holds Redis connection values for the job queue broker.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST"     env-default:"127.0.0.1"`
	Port     int    `env:"REDIS_PORT"     env-default:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"       env-default:"0"`
}

// QueueConfig tunes the notification queue.
type QueueConfig struct {
	Name          string        `env:"QUEUE_NAME"           env-default:"notifications"`
	MaxAttempts   int           `env:"QUEUE_MAX_ATTEMPTS"   env-default:"3"`
	BackoffBase   time.Duration `env:"QUEUE_BACKOFF_BASE"   env-default:"5s"`
	KeepCompleted int64         `env:"QUEUE_KEEP_COMPLETED" env-default:"100"`
	KeepFailed    int64         `env:"QUEUE_KEEP_FAILED"    env-default:"500"`
	Concurrency   int           `env:"WORKER_CONCURRENCY"   env-default:"5"`
	StalledAfter  time.Duration `env:"QUEUE_STALLED_AFTER"  env-default:"1m"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string `env:"LOG_LEVEL" env-default:"info"`
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret      string        `env:"JWT_SECRET"     env-required:"true"`
	AccessTokenTTL time.Duration `env:"JWT_EXPIRES_IN" env-default:"24h"`
	BcryptCost     int           `env:"BCRYPT_COST"    env-default:"12"`
}

// SMSConfig holds the third-party SMS gateway settings.
type SMSConfig struct {
	APIURL   string        `env:"SMS_API_URL"   env-default:"https://api.sms-gateway.example/v1/messages"`
	APIToken string        `env:"SMS_API_TOKEN"`
	Sender   string        `env:"SMS_SENDER"    env-default:"CITIZEN"`
	Timeout  time.Duration `env:"SMS_TIMEOUT"   env-default:"10s"`
}

// AIConfig holds the agency suggestion provider settings. An empty key disables suggestions.
type AIConfig struct {
	APIKey  string        `env:"AI_API_KEY"`
	Model   string        `env:"AI_MODEL"   env-default:"claude-3-5-haiku-latest"`
	Timeout time.Duration `env:"AI_TIMEOUT" env-default:"8s"`
}

// AdminSeedConfig describes the administrator created on first start.
type AdminSeedConfig struct {
	Name     string `env:"DEFAULT_ADMIN_NAME"     env-default:"System Administrator"`
	Email    string `env:"DEFAULT_ADMIN_EMAIL"`
	Phone    string `env:"DEFAULT_ADMIN_PHONE"`
	Password string `env:"DEFAULT_ADMIN_PASSWORD"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

// Load reads configuration from the environment (and an optional .env file) and validates it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// IsDevelopment reports whether the service runs in development mode.
func (a AppConfig) IsDevelopment() bool {
	return a.Env == EnvDevelopment
}

// Addr returns the Redis host:port pair.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Enabled reports whether an AI key was configured.
func (a AIConfig) Enabled() bool {
	return a.APIKey != ""
}

// Enabled reports whether all seed credentials were provided.
func (a AdminSeedConfig) Enabled() bool {
	return a.Email != "" && a.Phone != "" && a.Password != ""
}
