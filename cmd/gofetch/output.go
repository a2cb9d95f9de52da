package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/datallboy/gofetch/internal/domain"
)

func printReport(w io.Writer, r *domain.BatchReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		return yaml.NewEncoder(w).Encode(r)
	case "text", "":
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	fmt.Fprintln(w, "\n=== Batch Summary ===")
	fmt.Fprintf(w, "Batch ID:     %s\n", r.ID)
	fmt.Fprintf(w, "Base Host:    %s\n", r.BaseHost)
	fmt.Fprintf(w, "Targets:      %d\n", r.Total)
	fmt.Fprintf(w, "Succeeded:    %d\n", r.Succeeded)
	fmt.Fprintf(w, "Failed:       %d\n", r.Failed)
	fmt.Fprintf(w, "Written:      %s\n", humanize.Bytes(uint64(r.BytesWritten)))
	fmt.Fprintf(w, "Peak Conns:   %d\n", r.PeakConcurrency)
	fmt.Fprintf(w, "Started At:   %s\n", r.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Elapsed:      %0.2f seconds\n", r.Elapsed.Seconds())

	if len(r.Failures) > 0 {
		fmt.Fprintln(w, "\nFailures:")
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, f := range r.Failures {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", f.Target.Name, f.Cause, f.Detail)
		}
		tw.Flush()
	}
	return nil
}

func printHistory(w io.Writer, reports []*domain.BatchReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case "yaml":
		return yaml.NewEncoder(w).Encode(reports)
	case "text", "":
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	if len(reports) == 0 {
		fmt.Fprintln(w, "No batches recorded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tTOTAL\tOK\tFAILED\tWRITTEN\tELAPSED")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			r.ID,
			humanize.Time(r.StartedAt),
			r.Total, r.Succeeded, r.Failed,
			humanize.Bytes(uint64(r.BytesWritten)),
			r.Elapsed.Truncate(time.Millisecond),
		)
	}
	return tw.Flush()
}
