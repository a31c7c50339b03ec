package constants

const (
	// HostsFile is the system hosts file loaded and rewritten on every run.
	HostsFile = "/etc/hosts"

	// CustomHostsFile keeps the administrator entries. It is seeded from
	// HostsFile on the first run and never rewritten afterwards.
	CustomHostsFile = "/etc/caasp/hosts"

	// DefaultInfraDomain is used when the pillar does not set PillarInternalInfra.
	DefaultInfraDomain = "infra.caasp.local"

	Localhost4 = "127.0.0.1"
	Localhost6 = "::1"
)

// pillar keys
const (
	PillarInternalInfra = "internal_infra_domain"
	PillarExternalFQDN  = "api:server:external_fqdn"
)

// grain keys
const (
	GrainRoles     = "roles"
	GrainLocalhost = "localhost"
	GrainNodename  = "nodename"
)

// role grain values
const (
	RoleAdmin      = "admin"
	RoleKubeMaster = "kube-master"
	RoleKubeMinion = "kube-minion"
)

const (
	FormatTable = "table"
	FormatPlain = "plain"
)
