package netutil

import (
	"errors"
	"net"
)

// ErrUnresolvable is returned when a target is empty or has no usable address.
var ErrUnresolvable = errors.New("target could not be resolved")

// LookupIPFunc resolves a hostname to IPs. A variable so tests can inject a
// fake resolver; defaults to net.LookupIP.
var LookupIPFunc = net.LookupIP

// ResolveTarget resolves a hostname or IP literal and returns the address to
// dial. IPv4 is preferred when the host has A records; an IPv6-only host is
// still accepted.
func ResolveTarget(target string) (string, error) {
	if target == "" {
		return "", ErrUnresolvable
	}

	if ip := net.ParseIP(target); ip != nil {
		return ip.String(), nil
	}

	ips, err := LookupIPFunc(target)
	if err != nil {
		return "", errors.Join(ErrUnresolvable, err)
	}
	var firstV6 net.IP
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return v4.String(), nil
		}
		if firstV6 == nil {
			firstV6 = ip
		}
	}
	if firstV6 != nil {
		return firstV6.String(), nil
	}
	return "", ErrUnresolvable
}
