// Package headers fetches a URL and audits its response headers, security
// headers and cookie flags.
package headers

import (
	"fmt"
	"strings"
	"time"

	"nexrecon/netutil"
)

// SecurityHeaders lists the audited headers and their display labels, in
// display order.
var SecurityHeaders = []struct {
	Header string
	Label  string
}{
	{"Strict-Transport-Security", "HSTS"},
	{"Content-Security-Policy", "CSP"},
	{"X-Frame-Options", "X-Frame-Options"},
	{"X-Content-Type-Options", "X-Content-Type-Options"},
	{"X-XSS-Protection", "XSS Protection"},
	{"Referrer-Policy", "Referrer-Policy"},
	{"Permissions-Policy", "Permissions-Policy"},
}

// Cookie captures the flags the audit cares about.
type Cookie struct {
	Name     string
	Secure   bool
	HTTPOnly bool
}

// Result is the outcome of analysing one URL.
type Result struct {
	URL          string
	FinalURL     string // after redirects
	StatusCode   int
	ResponseTime time.Duration
	Server       string
	PoweredBy    string
	ContentType  string
	Security     map[string]bool // label -> present
	Cookies      []Cookie
}

// Analyze issues a GET (following redirects) and reports on the response.
// A missing scheme defaults to https.
func Analyze(c *netutil.Client, url string) (*Result, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("empty url")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	start := time.Now()
	resp, err := c.Do(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	elapsed := time.Since(start)

	res := &Result{
		URL:          url,
		FinalURL:     resp.Request.URL.String(),
		StatusCode:   resp.StatusCode,
		ResponseTime: elapsed,
		Server:       resp.Header.Get("Server"),
		PoweredBy:    resp.Header.Get("X-Powered-By"),
		ContentType:  resp.Header.Get("Content-Type"),
		Security:     make(map[string]bool, len(SecurityHeaders)),
	}
	for _, sh := range SecurityHeaders {
		res.Security[sh.Label] = resp.Header.Get(sh.Header) != ""
	}
	for _, ck := range resp.Cookies() {
		res.Cookies = append(res.Cookies, Cookie{
			Name:     ck.Name,
			Secure:   ck.Secure,
			HTTPOnly: ck.HttpOnly,
		})
	}
	return res, nil
}
