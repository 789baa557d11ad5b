package config

// EnvPrefix is passed to envconfig; the explicit envconfig tags keep the
// variable names stable regardless.
const EnvPrefix = "comandas"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "COMANDAS_APP_ENV"
	EnvPort       = "COMANDAS_APP_PORT"
	EnvDBDSN      = "COMANDAS_DB_DSN"
	EnvDBHost     = "COMANDAS_DB_HOST"
	EnvDBUser     = "COMANDAS_DB_USER"
	EnvDBName     = "COMANDAS_DB_NAME"
	EnvRedisURL   = "COMANDAS_REDIS_URL"
	EnvJWTSecret  = "COMANDAS_JWT_SECRET"
	EnvJWTIssuer  = "COMANDAS_JWT_ISSUER"
	EnvJWTExpMins = "COMANDAS_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
