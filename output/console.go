package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"nexrecon/port"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	label   = color.New(color.FgWhite)
	value   = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	fail    = color.New(color.FgRed, color.Bold)
)

// PrintReport renders a scan report: a table of open ports with service names
// and a one-line summary.
func PrintReport(w io.Writer, rep *port.Report) {
	heading.Fprintf(w, "\nScan report %s\n", rep.ID)
	label.Fprintf(w, "Target: ")
	value.Fprintf(w, "%s (%s)\n\n", rep.Target, rep.Addr)

	if len(rep.Open) == 0 {
		warn.Fprintln(w, "No open ports found")
	} else {
		tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
		fmt.Fprintln(tw, "PORT\tSTATE\tSERVICE\tLATENCY")
		for _, r := range rep.Open {
			svc := r.Service
			if svc == "" {
				svc = "-"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%dms\n", r.Port, r.State, svc, r.Latency.Milliseconds())
		}
		_ = tw.Flush()
	}

	fmt.Fprintf(w, "\n%d open out of %d scanned in %.2f seconds (%d closed, %d filtered)\n",
		rep.OpenCount, rep.TotalScanned, rep.Elapsed.Seconds(), rep.ClosedCount, rep.FilteredCount)
}

// ReportText renders the report without colour for saving to a file.
func ReportText(rep *port.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "scan %s\ntarget %s (%s)\n\n", rep.ID, rep.Target, rep.Addr)
	tw := tabwriter.NewWriter(&b, 0, 2, 2, ' ', 0)
	fmt.Fprintln(tw, "PORT\tSTATE\tSERVICE\tLATENCY")
	for _, r := range rep.Open {
		svc := r.Service
		if svc == "" {
			svc = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%dms\n", r.Port, r.State, svc, r.Latency.Milliseconds())
	}
	_ = tw.Flush()
	fmt.Fprintf(&b, "\n%d open out of %d scanned in %.2f seconds (%d closed, %d filtered)\n",
		rep.OpenCount, rep.TotalScanned, rep.Elapsed.Seconds(), rep.ClosedCount, rep.FilteredCount)
	return b.String()
}

// Section prints a section header.
func Section(w io.Writer, title string) {
	heading.Fprintf(w, "\n[%s]\n", title)
}

// Item prints one "label : value" line inside a section.
func Item(w io.Writer, name, val string) {
	if val == "" {
		val = "N/A"
	}
	label.Fprintf(w, "  %-18s: ", name)
	value.Fprintln(w, val)
}

// Success prints a green confirmation line.
func Success(w io.Writer, format string, args ...any) {
	value.Fprintf(w, " + "+format+"\n", args...)
}

// Warning prints a yellow notice line.
func Warning(w io.Writer, format string, args ...any) {
	warn.Fprintf(w, " ! "+format+"\n", args...)
}

// Error prints a red failure line.
func Error(w io.Writer, format string, args ...any) {
	fail.Fprintf(w, " x "+format+"\n", args...)
}
