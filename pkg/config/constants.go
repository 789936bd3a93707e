package config

// EnvPrefix is passed to envconfig; individual fields carry fully-qualified
// envconfig tags so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "RATEWISE_DB_DSN"
	EnvDBHost = "RATEWISE_DB_HOST"
	EnvDBUser = "RATEWISE_DB_USER"
	EnvDBName = "RATEWISE_DB_NAME"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
