// Package subnet does IPv4 CIDR arithmetic: mask, network and broadcast
// addresses, host range and a few classification facts about the address.
package subnet

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrInvalidCIDR marks input that is not an IPv4 address or CIDR.
var ErrInvalidCIDR = errors.New("invalid IPv4 address or CIDR")

// Info describes one IPv4 subnet.
type Info struct {
	Address   string
	CIDR      string
	PrefixLen int
	Mask      string
	Wildcard  string
	Network   string
	Broadcast string
	FirstHost string
	LastHost  string
	Hosts     uint32
	Class     string
	Private   bool
	Loopback  bool
}

// Calculate parses input like "192.168.1.10/24" and returns the subnet facts.
// A bare address gets a /24 prefix.
func Calculate(input string) (*Info, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrInvalidCIDR
	}
	if !strings.Contains(input, "/") {
		input += "/24"
	}

	ip, ipnet, err := net.ParseCIDR(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCIDR, input)
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return nil, fmt.Errorf("%w: %q is not IPv4", ErrInvalidCIDR, input)
	}

	ones, bits := ipnet.Mask.Size()
	if bits != 32 {
		return nil, fmt.Errorf("%w: %q is not IPv4", ErrInvalidCIDR, input)
	}

	addr := toUint32(ip4)
	mask := toUint32(net.IP(ipnet.Mask).To4())
	network := addr & mask
	broadcast := network | ^mask

	info := &Info{
		Address:   ip4.String(),
		CIDR:      fmt.Sprintf("%s/%d", fromUint32(network), ones),
		PrefixLen: ones,
		Mask:      fromUint32(mask).String(),
		Wildcard:  fromUint32(^mask).String(),
		Network:   fromUint32(network).String(),
		Broadcast: fromUint32(broadcast).String(),
		Class:     class(ip4),
		Private:   ip4.IsPrivate(),
		Loopback:  ip4.IsLoopback(),
	}

	// /31 is a point-to-point pair and /32 a single host: no network or
	// broadcast addresses are reserved there.
	switch {
	case ones >= 31:
		info.FirstHost = fromUint32(network).String()
		info.LastHost = fromUint32(broadcast).String()
		info.Hosts = broadcast - network + 1
	default:
		info.FirstHost = fromUint32(network + 1).String()
		info.LastHost = fromUint32(broadcast - 1).String()
		info.Hosts = broadcast - network - 1
	}
	return info, nil
}

func class(ip net.IP) string {
	switch b := ip[0]; {
	case b < 128:
		return "A"
	case b < 192:
		return "B"
	case b < 224:
		return "C"
	case b < 240:
		return "D (multicast)"
	default:
		return "E (reserved)"
	}
}

func toUint32(ip net.IP) uint32 {
	return uint32(ip[0])<<24 | uint32(ip[1])<<16 | uint32(ip[2])<<8 | uint32(ip[3])
}

func fromUint32(v uint32) net.IP {
	return net.IPv4(byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}
