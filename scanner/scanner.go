package scanner

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"nexrecon/netutil"
	"nexrecon/port"
)

var (
	// ErrInvalidTarget rejects empty or unresolvable scan targets.
	ErrInvalidTarget = errors.New("invalid scan target")
	// ErrInvalidPorts rejects empty selections or ports outside 1..65535.
	ErrInvalidPorts = port.ErrInvalidSpec
	// ErrCancelled is returned when the scan is interrupted; no report is
	// produced and partial results are discarded.
	ErrCancelled = errors.New("scan cancelled")
)

const (
	defaultTimeout = time.Second
	defaultWorkers = 50
)

// DialFunc attempts one connection. A field on Engine so tests can substitute
// an instrumented dialer.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// Config holds the inputs of one scan invocation.
type Config struct {
	Target  string
	Ports   []int
	Timeout time.Duration // per-probe connect timeout
	Workers int           // max simultaneous in-flight probes
}

// Engine runs bounded concurrent TCP connect scans.
type Engine struct {
	cfg Config

	// Dial performs the connect attempt; defaults to net.Dialer.DialContext.
	Dial DialFunc
	// Resolve maps the target to a dialable address; defaults to
	// netutil.ResolveTarget.
	Resolve func(string) (string, error)
}

// New builds an Engine, applying the default timeout (1s) and worker count
// (50) where the config leaves them zero.
func New(cfg Config) *Engine {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	var d net.Dialer
	return &Engine{
		cfg:     cfg,
		Dial:    d.DialContext,
		Resolve: netutil.ResolveTarget,
	}
}

// Scan validates the target and port selection, probes every port with at
// most cfg.Workers probes in flight, and returns the aggregated report.
// Cancellation via ctx aborts the scan: no report is returned.
func Scan(ctx context.Context, cfg Config) (*port.Report, error) {
	return New(cfg).Scan(ctx)
}

// Scan runs the engine. Every requested port produces exactly one result
// before the report is built; individual probe failures never abort the scan.
func (e *Engine) Scan(ctx context.Context) (*port.Report, error) {
	if e.cfg.Target == "" {
		return nil, fmt.Errorf("%w: target is empty", ErrInvalidTarget)
	}
	if err := port.Validate(e.cfg.Ports); err != nil {
		return nil, err
	}
	addr, err := e.Resolve(e.cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}

	start := time.Now()
	jobs := make(chan int, len(e.cfg.Ports))
	results := make(chan port.Result, len(e.cfg.Ports))

	var wg sync.WaitGroup
	for i := 0; i < e.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case p, ok := <-jobs:
					if !ok {
						return
					}
					res := e.probe(ctx, addr, p)
					select {
					case <-ctx.Done():
						return
					case results <- res:
					}
				}
			}
		}()
	}

	// dispatcher: enqueue all jobs, then close the results channel once the
	// workers have drained them.
	go func() {
		for _, p := range e.cfg.Ports {
			jobs <- p
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	// single aggregator consuming the funnel channel; no other goroutine
	// touches the report state.
	report := &port.Report{
		ID:     uuid.NewString(),
		Target: e.cfg.Target,
		Addr:   addr,
	}
	for res := range results {
		report.TotalScanned++
		switch res.State {
		case port.StateOpen:
			res.Service = port.ServiceName(res.Port)
			report.Open = append(report.Open, res)
			report.OpenCount++
		case port.StateClosed:
			report.ClosedCount++
		default:
			report.FilteredCount++
		}
	}

	if err := ctx.Err(); err != nil {
		logrus.Debugf("scan %s aborted after %d/%d probes", report.ID, report.TotalScanned, len(e.cfg.Ports))
		return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
	}

	sort.Slice(report.Open, func(i, j int) bool { return report.Open[i].Port < report.Open[j].Port })
	report.Elapsed = time.Since(start)
	return report, nil
}
