package utils

import (
	"net"
	"strings"
)

// IsIPLiteral returns true when s is a bare IPv4 or IPv6 address (no port, no mask).
func IsIPLiteral(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	// allow the bracketed form used in URLs
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	return net.ParseIP(s) != nil
}
