package config

// EnvPrefix is the envconfig prefix applied when processing the config.
const EnvPrefix = "estately"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Store driver names accepted by StoreConfig.
const (
	StoreDriverMemory = "memory"
	StoreDriverFile   = "file"
	StoreDriverSQLite = "sqlite"
	StoreDriverRedis  = "redis"
)

// Environment variable names referenced outside envconfig tags.
const (
	EnvAppEnv          = "ESTATELY_APP_ENV"
	EnvPort            = "ESTATELY_APP_PORT"
	EnvStoreDriver     = "ESTATELY_STORE_DRIVER"
	EnvRedisURL        = "ESTATELY_REDIS_URL"
	EnvPropertiesPath  = "ESTATELY_CATALOG_PROPERTIES_PATH"
	EnvGuestProfile    = "ESTATELY_CATALOG_GUEST_PROFILE_PATH"
	EnvSessionLoginDly = "ESTATELY_SESSION_LOGIN_DELAY"
)
