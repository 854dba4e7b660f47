package address

import (
	"net"
	"strings"
)

const DefaultAddr = "0.0.0.0"

// Normalize prepends the default host if only the port is presented.
func Normalize(addr string) string {
	if len(stripPort(addr)) == 0 {
		// only port is presented
		return DefaultAddr + addr
	}

	return addr
}

// IsLocalhost reports whether the address points to the local machine, either by
// the name or by a loopback IP.
func IsLocalhost(addr string) bool {
	host := stripPort(addr)
	if strings.EqualFold(host, "localhost") {
		return true
	}

	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func stripPort(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}

	return addr
}
