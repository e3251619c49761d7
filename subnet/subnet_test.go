package subnet

import (
	"errors"
	"testing"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Info
	}{
		{
			name:  "classic /24",
			input: "192.168.1.10/24",
			want: Info{
				Address: "192.168.1.10", CIDR: "192.168.1.0/24", PrefixLen: 24,
				Mask: "255.255.255.0", Wildcard: "0.0.0.255",
				Network: "192.168.1.0", Broadcast: "192.168.1.255",
				FirstHost: "192.168.1.1", LastHost: "192.168.1.254",
				Hosts: 254, Class: "C", Private: true,
			},
		},
		{
			name:  "bare address defaults to /24",
			input: "10.0.0.5",
			want: Info{
				Address: "10.0.0.5", CIDR: "10.0.0.0/24", PrefixLen: 24,
				Mask: "255.255.255.0", Wildcard: "0.0.0.255",
				Network: "10.0.0.0", Broadcast: "10.0.0.255",
				FirstHost: "10.0.0.1", LastHost: "10.0.0.254",
				Hosts: 254, Class: "A", Private: true,
			},
		},
		{
			name:  "/30 point-to-point link",
			input: "203.0.113.4/30",
			want: Info{
				Address: "203.0.113.4", CIDR: "203.0.113.4/30", PrefixLen: 30,
				Mask: "255.255.255.252", Wildcard: "0.0.0.3",
				Network: "203.0.113.4", Broadcast: "203.0.113.7",
				FirstHost: "203.0.113.5", LastHost: "203.0.113.6",
				Hosts: 2, Class: "C",
			},
		},
		{
			name:  "/31 keeps both addresses usable",
			input: "203.0.113.4/31",
			want: Info{
				Address: "203.0.113.4", CIDR: "203.0.113.4/31", PrefixLen: 31,
				Mask: "255.255.255.254", Wildcard: "0.0.0.1",
				Network: "203.0.113.4", Broadcast: "203.0.113.5",
				FirstHost: "203.0.113.4", LastHost: "203.0.113.5",
				Hosts: 2, Class: "C",
			},
		},
		{
			name:  "/32 single host",
			input: "127.0.0.1/32",
			want: Info{
				Address: "127.0.0.1", CIDR: "127.0.0.1/32", PrefixLen: 32,
				Mask: "255.255.255.255", Wildcard: "0.0.0.0",
				Network: "127.0.0.1", Broadcast: "127.0.0.1",
				FirstHost: "127.0.0.1", LastHost: "127.0.0.1",
				Hosts: 1, Class: "A", Loopback: true,
			},
		},
		{
			name:  "class B /16",
			input: "172.16.50.1/16",
			want: Info{
				Address: "172.16.50.1", CIDR: "172.16.0.0/16", PrefixLen: 16,
				Mask: "255.255.0.0", Wildcard: "0.0.255.255",
				Network: "172.16.0.0", Broadcast: "172.16.255.255",
				FirstHost: "172.16.0.1", LastHost: "172.16.255.254",
				Hosts: 65534, Class: "B", Private: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.input)
			if err != nil {
				t.Fatalf("Calculate(%q) failed: %v", tt.input, err)
			}
			if *got != tt.want {
				t.Fatalf("Calculate(%q)\n got %+v\nwant %+v", tt.input, *got, tt.want)
			}
		})
	}
}

func TestCalculate_Invalid(t *testing.T) {
	for _, input := range []string{"", "not-an-ip", "10.0.0.1/33", "2001:db8::1/64", "256.1.1.1/24"} {
		t.Run(input, func(t *testing.T) {
			if _, err := Calculate(input); !errors.Is(err, ErrInvalidCIDR) {
				t.Fatalf("Calculate(%q) err = %v, want ErrInvalidCIDR", input, err)
			}
		})
	}
}

func TestClassBoundaries(t *testing.T) {
	cases := map[string]string{
		"9.1.1.1/8":    "A",
		"128.0.0.1/16": "B",
		"223.1.1.1/24": "C",
		"224.0.0.1/24": "D (multicast)",
		"240.0.0.1/24": "E (reserved)",
	}
	for input, want := range cases {
		info, err := Calculate(input)
		if err != nil {
			t.Fatalf("Calculate(%q) failed: %v", input, err)
		}
		if info.Class != want {
			t.Fatalf("class of %q = %q, want %q", input, info.Class, want)
		}
	}
}
