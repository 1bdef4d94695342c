package config

// EnvPrefix namespaces every environment variable read by envconfig.
const EnvPrefix = "orders"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "ORDERS_APP_ENV"
	EnvPort     = "ORDERS_APP_PORT"
	EnvDBDSN    = "ORDERS_DB_DSN"
	EnvDBHost   = "ORDERS_DB_HOST"
	EnvDBUser   = "ORDERS_DB_USER"
	EnvDBName   = "ORDERS_DB_NAME"
	EnvRedisURL = "ORDERS_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
