package output

import (
	"strings"
	"testing"
	"time"

	"nexrecon/port"
)

func TestReportText(t *testing.T) {
	rep := &port.Report{
		ID:     "test-scan",
		Target: "localhost",
		Addr:   "127.0.0.1",
		Open: []port.Result{
			{Port: 22, State: port.StateOpen, Service: "SSH", Latency: 3 * time.Millisecond},
			{Port: 9999, State: port.StateOpen, Latency: time.Millisecond},
		},
		TotalScanned:  5,
		OpenCount:     2,
		ClosedCount:   2,
		FilteredCount: 1,
		Elapsed:       1500 * time.Millisecond,
	}

	text := ReportText(rep)
	for _, want := range []string{
		"target localhost (127.0.0.1)",
		"22",
		"SSH",
		"9999",
		"2 open out of 5 scanned in 1.50 seconds (2 closed, 1 filtered)",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("report text missing %q:\n%s", want, text)
		}
	}
	// unmapped port renders a dash, not an empty cell
	if !strings.Contains(text, "-") {
		t.Fatalf("unmapped service not rendered as dash:\n%s", text)
	}
}
