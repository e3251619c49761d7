package whois

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"nexrecon/netutil"
)

const sampleRDAP = `{
  "handle": "2336799_DOMAIN_COM-VRSN",
  "status": ["client delete prohibited", "client transfer prohibited"],
  "events": [
    {"eventAction": "registration", "eventDate": "1995-08-14T04:00:00Z"},
    {"eventAction": "expiration", "eventDate": "2026-08-13T04:00:00Z"},
    {"eventAction": "last changed", "eventDate": "2025-08-14T07:01:44Z"}
  ],
  "nameservers": [
    {"ldhName": "A.IANA-SERVERS.NET"},
    {"ldhName": "B.IANA-SERVERS.NET"}
  ],
  "entities": [
    {
      "handle": "376",
      "roles": ["registrar"],
      "vcardArray": ["vcard", [["version", {}, "text", "4.0"], ["fn", {}, "text", "RESERVED-Internet Assigned Numbers Authority"]]]
    }
  ]
}`

func TestLookup_ParsesRDAP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/domain/example.com" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(sampleRDAP))
	}))
	defer srv.Close()

	c := netutil.NewClient(2*time.Second, 1, "test-agent")
	rec, err := lookup(c, srv.URL+"/domain/", "example.com")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}

	if rec.Handle != "2336799_DOMAIN_COM-VRSN" {
		t.Fatalf("handle = %q", rec.Handle)
	}
	if len(rec.Status) != 2 {
		t.Fatalf("status = %v", rec.Status)
	}
	wantEvents := []Event{
		{Action: "Created", Date: "1995-08-14"},
		{Action: "Expires", Date: "2026-08-13"},
		{Action: "Updated", Date: "2025-08-14"},
	}
	if !reflect.DeepEqual(rec.Events, wantEvents) {
		t.Fatalf("events = %+v", rec.Events)
	}
	if !reflect.DeepEqual(rec.Nameservers, []string{"a.iana-servers.net", "b.iana-servers.net"}) {
		t.Fatalf("nameservers = %v", rec.Nameservers)
	}
	if rec.Registrar != "RESERVED-Internet Assigned Numbers Authority" || rec.RegistrarID != "376" {
		t.Fatalf("registrar = %q (%q)", rec.Registrar, rec.RegistrarID)
	}
}

func TestLookup_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := netutil.NewClient(2*time.Second, 1, "test-agent")
	if _, err := lookup(c, srv.URL+"/domain/", "nosuch.example"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestCleanDomain(t *testing.T) {
	cases := map[string]string{
		"example.com":                      "example.com",
		"https://example.com/path?q=1":     "example.com",
		"http://example.com":               "example.com",
		"  example.com  ":                  "example.com",
		"https://sub.example.co/deep/path": "sub.example.co",
	}
	for in, want := range cases {
		if got := CleanDomain(in); got != want {
			t.Fatalf("CleanDomain(%q) = %q, want %q", in, got, want)
		}
	}
}
