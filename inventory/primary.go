package inventory

import (
	"net"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/kubic-project/caasp-hosts/types"
)

const defaultInterface = "eth0"

// PrimaryIP returns the address representing a node: the first usable address
// of the preferred interface, then of eth0, then of the other interfaces in
// name order. IPv4 addresses win over IPv6 ones on the same interface.
// Loopback and link-local addresses are never chosen.
func PrimaryIP(ifaces types.Interfaces, preferred string) string {
	names := maps.Keys(ifaces)
	slices.Sort(names)

	order := make([]string, 0, len(names)+2)
	for _, n := range []string{preferred, defaultInterface} {
		if _, ok := ifaces[n]; ok && n != "" {
			order = append(order, n)
		}
	}
	order = append(order, names...)

	for _, name := range order {
		if ip := ifaceIP(ifaces[name]); ip != "" {
			return ip
		}
	}
	return ""
}

func ifaceIP(addrs []string) string {
	var v6 string
	for _, a := range addrs {
		// addresses may come in cidr notation
		a, _, _ = strings.Cut(a, "/")
		ip := net.ParseIP(a)
		if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified() {
			continue
		}
		if ip.To4() != nil {
			return ip.String()
		}
		if v6 == "" {
			v6 = ip.String()
		}
	}
	return v6
}
