package constants

const (
	// EnvPrefix prefixes every environment variable bound to a command line flag,
	// e.g. CAASP_HOSTS_LOG_LEVEL for --log-level.
	EnvPrefix = "CAASP_HOSTS"

	// EnvDefaultEnvFile is loaded before flags are bound when it exists.
	EnvDefaultEnvFile = "/etc/caasp/hosts.env"
)
