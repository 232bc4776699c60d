package config

// EnvPrefix namespaces every environment variable consumed by the service.
const EnvPrefix = "ATELIERNOIR"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv                 = "ATELIERNOIR_APP_ENV"
	EnvPort                   = "ATELIERNOIR_APP_PORT"
	EnvDBDSN                  = "ATELIERNOIR_DB_DSN"
	EnvDBHost                 = "ATELIERNOIR_DB_HOST"
	EnvDBUser                 = "ATELIERNOIR_DB_USER"
	EnvDBName                 = "ATELIERNOIR_DB_NAME"
	EnvRedisURL               = "ATELIERNOIR_REDIS_URL"
	EnvJWTSecret              = "ATELIERNOIR_JWT_SECRET"
	EnvJWTIssuer              = "ATELIERNOIR_JWT_ISSUER"
	EnvJWTExpMins             = "ATELIERNOIR_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "ATELIERNOIR_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
