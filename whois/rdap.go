// Package whois retrieves domain registration data over RDAP, the JSON
// successor to the WHOIS protocol.
package whois

import (
	"encoding/json"
	"fmt"
	"strings"

	"nexrecon/netutil"
)

// Record is the subset of an RDAP domain object the toolkit renders.
type Record struct {
	Domain      string
	Handle      string
	Status      []string
	Events      []Event // registration, expiration, last changed, ...
	Nameservers []string
	Registrar   string
	RegistrarID string
}

// Event is a dated lifecycle action on the domain.
type Event struct {
	Action string
	Date   string // yyyy-mm-dd
}

// rdapServers maps TLDs to their registry RDAP base URL; anything else goes
// through the rdap.org redirector.
var rdapServers = map[string]string{
	"com": "https://rdap.verisign.com/com/v1/domain/",
	"net": "https://rdap.verisign.com/net/v1/domain/",
	"org": "https://rdap.publicinterestregistry.org/rdap/domain/",
	"io":  "https://rdap.nic.io/domain/",
	"co":  "https://rdap.nic.co/domain/",
}

const fallbackServer = "https://rdap.org/domain/"

// CleanDomain strips scheme and path from user input.
func CleanDomain(domain string) string {
	domain = strings.TrimSpace(domain)
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "https://")
	if i := strings.IndexByte(domain, '/'); i >= 0 {
		domain = domain[:i]
	}
	return domain
}

// Lookup fetches and parses the RDAP record for domain.
func Lookup(c *netutil.Client, domain string) (*Record, error) {
	domain = CleanDomain(domain)
	if domain == "" {
		return nil, fmt.Errorf("empty domain")
	}
	base := fallbackServer
	if i := strings.LastIndexByte(domain, '.'); i >= 0 {
		if s, ok := rdapServers[strings.ToLower(domain[i+1:])]; ok {
			base = s
		}
	}
	return lookup(c, base, domain)
}

func lookup(c *netutil.Client, base, domain string) (*Record, error) {
	body, err := c.Get(base + domain)
	if err != nil {
		return nil, fmt.Errorf("rdap query: %w", err)
	}

	var raw struct {
		Handle      string   `json:"handle"`
		Status      []string `json:"status"`
		Events      []struct {
			Action string `json:"eventAction"`
			Date   string `json:"eventDate"`
		} `json:"events"`
		Nameservers []struct {
			LDHName string `json:"ldhName"`
		} `json:"nameservers"`
		Entities []struct {
			Handle     string          `json:"handle"`
			Roles      []string        `json:"roles"`
			VCardArray json.RawMessage `json:"vcardArray"`
		} `json:"entities"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("rdap response: %w", err)
	}

	rec := &Record{
		Domain: domain,
		Handle: raw.Handle,
		Status: raw.Status,
	}
	for _, e := range raw.Events {
		ev := Event{Action: eventLabel(e.Action)}
		if len(e.Date) >= 10 {
			ev.Date = e.Date[:10]
		}
		if ev.Action != "" && ev.Date != "" {
			rec.Events = append(rec.Events, ev)
		}
	}
	for _, ns := range raw.Nameservers {
		if ns.LDHName != "" {
			rec.Nameservers = append(rec.Nameservers, strings.ToLower(ns.LDHName))
		}
	}
	for _, ent := range raw.Entities {
		if !contains(ent.Roles, "registrar") {
			continue
		}
		rec.RegistrarID = ent.Handle
		rec.Registrar = vcardFullName(ent.VCardArray)
		break
	}
	return rec, nil
}

func eventLabel(action string) string {
	switch action {
	case "registration":
		return "Created"
	case "expiration":
		return "Expires"
	case "last changed":
		return "Updated"
	case "last update of RDAP database":
		return "RDAP Updated"
	default:
		return capitalize(action)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// vcardFullName pulls the "fn" property out of a jCard array
// ["vcard", [["fn", {}, "text", "Example Registrar"], ...]].
func vcardFullName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var card []json.RawMessage
	if err := json.Unmarshal(raw, &card); err != nil || len(card) < 2 {
		return ""
	}
	var props [][]any
	if err := json.Unmarshal(card[1], &props); err != nil {
		return ""
	}
	for _, p := range props {
		if len(p) >= 4 {
			if name, ok := p[0].(string); ok && name == "fn" {
				if v, ok := p[3].(string); ok {
					return v
				}
			}
		}
	}
	return ""
}
