package config

const (
	EnvPrefix = "FITNESSPRO"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv                 = "FITNESSPRO_APP_ENV"
	EnvPort                   = "FITNESSPRO_APP_PORT"
	EnvDBDSN                  = "FITNESSPRO_DB_DSN"
	EnvDBHost                 = "FITNESSPRO_DB_HOST"
	EnvDBUser                 = "FITNESSPRO_DB_USER"
	EnvDBName                 = "FITNESSPRO_DB_NAME"
	EnvRedisURL               = "FITNESSPRO_REDIS_URL"
	EnvJWTSecret              = "FITNESSPRO_JWT_SECRET"
	EnvJWTIssuer              = "FITNESSPRO_JWT_ISSUER"
	EnvJWTExpMins             = "FITNESSPRO_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "FITNESSPRO_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
