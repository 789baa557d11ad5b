package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	CORS         CORSConfig
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
	Env          string `envconfig:"COMANDAS_APP_ENV" required:"true"`
	Port         string `envconfig:"COMANDAS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"COMANDAS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"COMANDAS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"COMANDAS_DB_DSN"`

	LegacyHost     string `envconfig:"COMANDAS_DB_HOST"`
	LegacyPort     int    `envconfig:"COMANDAS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"COMANDAS_DB_USER"`
	LegacyPassword string `envconfig:"COMANDAS_DB_PASSWORD"`
	LegacyName     string `envconfig:"COMANDAS_DB_NAME"`
	LegacySSLMode  string `envconfig:"COMANDAS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"COMANDAS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"COMANDAS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"COMANDAS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"COMANDAS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"COMANDAS_REDIS_URL" required:"true"`
	Password     string        `envconfig:"COMANDAS_REDIS_PASSWORD"`
	DB           int           `envconfig:"COMANDAS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"COMANDAS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"COMANDAS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"COMANDAS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"COMANDAS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"COMANDAS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"COMANDAS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"COMANDAS_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"COMANDAS_JWT_EXPIRATION_MINUTES" default:"720"`
}

// AccessTokenTTL returns the configured access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"COMANDAS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"COMANDAS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"COMANDAS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"COMANDAS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"COMANDAS_ARGON_KEY_LEN" default:"32"`
}

type CORSConfig struct {
	Origins []string `envconfig:"COMANDAS_CORS_ORIGINS" default:"http://localhost:5173"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"COMANDAS_AUTO_MIGRATE" default:"false"`
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
