// Package dnslookup queries the record types the toolkit reports for a
// domain, speaking DNS directly rather than going through an HTTP resolver.
package dnslookup

import (
	"fmt"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
)

// RecordTypes lists the queried types in display order.
var RecordTypes = []string{"A", "AAAA", "MX", "NS", "TXT", "CNAME", "SOA"}

var qtypes = map[string]uint16{
	"A":     dns.TypeA,
	"AAAA":  dns.TypeAAAA,
	"MX":    dns.TypeMX,
	"NS":    dns.TypeNS,
	"TXT":   dns.TypeTXT,
	"CNAME": dns.TypeCNAME,
	"SOA":   dns.TypeSOA,
}

// Answer is one resource record in display form.
type Answer struct {
	Type  string
	Value string
	TTL   uint32
}

// SystemResolver returns the first nameserver from /etc/resolv.conf, falling
// back to Google public DNS when the file is unusable.
func SystemResolver() string {
	cfg, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || len(cfg.Servers) == 0 {
		return "8.8.8.8:53"
	}
	return cfg.Servers[0] + ":" + cfg.Port
}

// Query asks server for every record type of domain. Record types with no
// answer are simply absent from the result; an error is returned only when
// every query failed.
func Query(server, domain string, timeout time.Duration) (map[string][]Answer, error) {
	domain = strings.TrimSuffix(strings.TrimSpace(domain), ".")
	if domain == "" {
		return nil, fmt.Errorf("empty domain")
	}

	c := &dns.Client{Timeout: timeout}
	out := make(map[string][]Answer)
	var lastErr error
	failures := 0

	for _, name := range RecordTypes {
		m := new(dns.Msg)
		m.SetQuestion(dns.Fqdn(domain), qtypes[name])
		resp, _, err := c.Exchange(m, server)
		if err != nil {
			logrus.Debugf("dns query %s %s: %v", name, domain, err)
			lastErr = err
			failures++
			continue
		}
		for _, rr := range resp.Answer {
			out[name] = append(out[name], Answer{
				Type:  name,
				Value: renderRR(rr),
				TTL:   rr.Header().Ttl,
			})
		}
	}

	if failures == len(RecordTypes) {
		return nil, fmt.Errorf("dns lookup for %s: %w", domain, lastErr)
	}
	return out, nil
}

func renderRR(rr dns.RR) string {
	switch r := rr.(type) {
	case *dns.A:
		return r.A.String()
	case *dns.AAAA:
		return r.AAAA.String()
	case *dns.MX:
		return fmt.Sprintf("%d %s", r.Preference, r.Mx)
	case *dns.NS:
		return r.Ns
	case *dns.TXT:
		return strings.Join(r.Txt, " ")
	case *dns.CNAME:
		return r.Target
	case *dns.SOA:
		return fmt.Sprintf("%s %s serial=%d", r.Ns, r.Mbox, r.Serial)
	default:
		return rr.String()
	}
}
