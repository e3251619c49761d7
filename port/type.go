package port

import "time"

// State classifies the outcome of a single probe.
type State string

const (
	StateOpen     State = "open"     // connection accepted
	StateClosed   State = "closed"   // connection actively refused
	StateFiltered State = "filtered" // no response within the timeout, or other transport error
)

// Result is the outcome of probing a single target:port pair.
type Result struct {
	Port    int
	State   State
	Service string // well-known service name, empty when unmapped
	Latency time.Duration
}

// Report is the immutable outcome of one scan invocation.
// Open holds only the open results, sorted ascending by port; closed and
// filtered ports are counted but not listed.
type Report struct {
	ID            string // scan UUID
	Target        string
	Addr          string // resolved address actually probed
	Open          []Result
	TotalScanned  int
	OpenCount     int
	ClosedCount   int
	FilteredCount int
	Elapsed       time.Duration
}
