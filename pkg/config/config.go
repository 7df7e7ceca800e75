package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "PIM"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv = "PIM_APP_ENV"
	EnvDBDSN  = "PIM_DB_DSN"
	EnvDBHost = "PIM_DB_HOST"
	EnvDBUser = "PIM_DB_USER"
	EnvDBName = "PIM_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Compat       CompatConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PIM_APP_ENV" required:"true"`
	LogLevel     string `envconfig:"PIM_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PIM_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PIM_DB_DSN"`
	Driver string `envconfig:"PIM_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PIM_DB_HOST"`
	LegacyPort     int    `envconfig:"PIM_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PIM_DB_USER"`
	LegacyPassword string `envconfig:"PIM_DB_PASSWORD"`
	LegacyName     string `envconfig:"PIM_DB_NAME"`
	LegacySSLMode  string `envconfig:"PIM_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PIM_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PIM_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PIM_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PIM_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// CompatConfig tunes the compatibility reconciler cache.
type CompatConfig struct {
	CacheTTL time.Duration `envconfig:"PIM_COMPAT_CACHE_TTL" default:"900s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PIM_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PIM_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
