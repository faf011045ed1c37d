package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/ssargent/flashkit/pkg/inspect"
)

func printf(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(w, format, args...)
}

// outputReport displays an inspection report
func outputReport(w io.Writer, report *inspect.Report, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return outputReportTable(w, report)
}

// outputReportTable displays the report header followed by one row per record
func outputReportTable(out io.Writer, report *inspect.Report) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	printf(w, "Kind:\t%s\n", report.Kind)
	printf(w, "Signature:\t%s\n", report.Signature)
	printf(w, "Version:\t%d\n", report.Version)
	printf(w, "Length:\t%d bytes\n", report.Length)
	if report.Kind == inspect.KindMovie {
		printf(w, "Frame size:\t%s\n", report.FrameSize)
		printf(w, "Frame rate:\t%g fps\n", report.FrameRate)
		printf(w, "Frames:\t%d\n", report.FrameCount)
	}
	printf(w, "Records:\t%d\n", len(report.Records))
	if len(report.Skipped) > 0 {
		printf(w, "Skipped:\t%d\n", len(report.Skipped))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(report.Records) == 0 {
		return nil
	}

	printf(out, "\n")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	printf(w, "#\tTYPE\tNAME\tSIZE\tDETAIL\n")
	for _, r := range report.Records {
		detail := r.Detail
		if len(detail) > 80 {
			detail = detail[:77] + "..."
		}
		printf(w, "%d\t%d\t%s\t%d\t%s\n", r.Index, r.Type, r.Name, r.Size, detail)
	}
	return w.Flush()
}

// logSkipped reports records of unknown type the decoder stepped over
func logSkipped(logger *slog.Logger, path string, report *inspect.Report) {
	for _, s := range report.Skipped {
		logger.Warn("skipped unknown record",
			"file", path, "kind", report.Kind, "type", s.Type, "offset", s.Offset, "length", s.Length)
	}
}
