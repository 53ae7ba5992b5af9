package config

// EnvPrefix scopes all envconfig lookups.
const EnvPrefix = "PARTSDEPOT"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags.
const (
	EnvAppEnv   = "PARTSDEPOT_APP_ENV"
	EnvPort     = "PARTSDEPOT_APP_PORT"
	EnvDBDSN    = "PARTSDEPOT_DB_DSN"
	EnvDBHost   = "PARTSDEPOT_DB_HOST"
	EnvDBUser   = "PARTSDEPOT_DB_USER"
	EnvDBName   = "PARTSDEPOT_DB_NAME"
	EnvRedisURL = "PARTSDEPOT_REDIS_URL"

	EnvJWTSecret  = "PARTSDEPOT_JWT_SECRET"
	EnvJWTIssuer  = "PARTSDEPOT_JWT_ISSUER"
	EnvJWTExpMins = "PARTSDEPOT_JWT_EXPIRATION_MINUTES"

	EnvPaymentCallbackSecret = "PARTSDEPOT_PAYMENT_CALLBACK_SECRET"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
