package types

import "net"

type IpVersion string

var (
	IpVersionAny IpVersion = "any"
	IpVersionV4  IpVersion = "ipv4"
	IpVersionV6  IpVersion = "ipv6"
)

// IpVersionOf returns the version of the ip literal,
// or IpVersionAny when ip is not a literal address.
func IpVersionOf(ip string) IpVersion {
	parsed := net.ParseIP(ip)
	switch {
	case parsed == nil:
		return IpVersionAny
	case parsed.To4() != nil:
		return IpVersionV4
	default:
		return IpVersionV6
	}
}

// ParseIpVersion maps a user supplied string to an IpVersion.
func ParseIpVersion(s string) (IpVersion, bool) {
	switch IpVersion(s) {
	case IpVersionAny, "":
		return IpVersionAny, true
	case IpVersionV4, "4", "v4":
		return IpVersionV4, true
	case IpVersionV6, "6", "v6":
		return IpVersionV6, true
	}
	return IpVersionAny, false
}
