package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Settings struct {
	AppEnv   string `mapstructure:"app_env"`
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	DB      DatabaseSettings `mapstructure:"db"`
	Redis   RedisSettings    `mapstructure:"redis"`
	Mongo   MongoSettings    `mapstructure:"mongo"`
	JWT     JWTSettings      `mapstructure:"jwt"`
	Storage StorageSettings  `mapstructure:"storage"`
	Reset   ResetSettings    `mapstructure:"reset"`
	Workers WorkerSettings   `mapstructure:"workers"`

	BcryptCost  int      `mapstructure:"bcrypt_cost"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type DatabaseSettings struct {
	Driver      string `mapstructure:"driver"` // postgres|mysql|sqlite
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisSettings struct {
	Addr string `mapstructure:"addr"` // host:port or redis:// URL; empty = in-process cache
}

type MongoSettings struct {
	URI      string `mapstructure:"uri"` // empty disables the activity log
	Database string `mapstructure:"database"`
}

type JWTSettings struct {
	Secret     string        `mapstructure:"secret"`
	TTL        time.Duration `mapstructure:"ttl"`
	Issuer     string        `mapstructure:"issuer"`
	CookieName string        `mapstructure:"cookie_name"`
}

type StorageSettings struct {
	Driver    string `mapstructure:"driver"` // gcs|local
	Bucket    string `mapstructure:"bucket"`
	Public    bool   `mapstructure:"public"`
	LocalDir  string `mapstructure:"local_dir"`
	PublicURL string `mapstructure:"public_url"`
}

type ResetSettings struct {
	TTL            time.Duration `mapstructure:"ttl"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
	CodeInResponse bool          `mapstructure:"code_in_response"`
}

type WorkerSettings struct {
	Notifications int    `mapstructure:"notifications"`
	Stream        string `mapstructure:"stream"`
	Group         string `mapstructure:"group"`
	// ClaimIdle is how long a delivered event may stay unacknowledged before
	// another consumer takes it over.
	ClaimIdle time.Duration `mapstructure:"claim_idle"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.max_open", 100)
	v.SetDefault("db.auto_migrate", true)

	v.SetDefault("redis.addr", "")
	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "jobportal")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", 24*time.Hour)
	v.SetDefault("jwt.issuer", "jobportal")
	v.SetDefault("jwt.cookie_name", "access_token")

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.public", true)
	v.SetDefault("storage.local_dir", "./storage/public")
	v.SetDefault("storage.public_url", "/storage")

	v.SetDefault("reset.ttl", 10*time.Minute)
	v.SetDefault("reset.max_attempts", 5)
	v.SetDefault("reset.code_in_response", true)

	v.SetDefault("workers.notifications", 2)
	v.SetDefault("workers.stream", "notifications:stream")
	v.SetDefault("workers.group", "notification-workers")
	v.SetDefault("workers.claim_idle", time.Minute)

	v.SetDefault("bcrypt_cost", 10)
	v.SetDefault("cors_origins", []string{"*"})
}

// Load reads and fully validates the server settings.
func Load() (*Settings, error) {
	s, err := Read()
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Read reads settings from an optional config.yaml and the environment without validating them.
// Nested keys map to env vars with underscores, ex: db.dsn -> DB_DSN.
func Read() (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// legacy variable names kept from earlier deployments
	_ = v.BindEnv("db.dsn", "DB_DSN", "POSTGRES_URI", "DATABASE_URL")
	_ = v.BindEnv("redis.addr", "REDIS_ADDR", "REDIS_URI", "REDIS_URL")
	_ = v.BindEnv("mongo.database", "MONGO_DATABASE", "MONGO_DB")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &s, nil
}

// ValidateDatabase checks only what the CLI needs.
func (s *Settings) ValidateDatabase() error {
	switch s.DB.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (postgres|mysql|sqlite)", s.DB.Driver)
	}
	if s.DB.DSN == "" {
		return fmt.Errorf("DB_DSN (or POSTGRES_URI) environment variable is not set")
	}
	return nil
}

func (s *Settings) Validate() error {
	if err := s.ValidateDatabase(); err != nil {
		return err
	}
	if s.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	if len(s.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 bytes")
	}
	if s.JWT.TTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	switch s.Storage.Driver {
	case "local":
	case "gcs":
		if s.Storage.Bucket == "" {
			return fmt.Errorf("STORAGE_BUCKET is required for the gcs storage driver")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q (gcs|local)", s.Storage.Driver)
	}
	if s.Reset.TTL <= 0 || s.Reset.MaxAttempts <= 0 {
		return fmt.Errorf("RESET_TTL and RESET_MAX_ATTEMPTS must be positive")
	}
	return nil
}

func (s *Settings) IsProduction() bool {
	return strings.EqualFold(s.AppEnv, "production")
}
