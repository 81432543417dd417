package config

// EnvPrefix is the envconfig prefix shared by all configuration sections.
const EnvPrefix = "MEATTRACK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "MEATTRACK_DB_DSN"
	EnvDBHost = "MEATTRACK_DB_HOST"
	EnvDBUser = "MEATTRACK_DB_USER"
	EnvDBName = "MEATTRACK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
