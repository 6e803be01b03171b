package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ericfisherdev/reviewbot/internal/domain/model"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}

	ew.println(strings.Repeat("=", 60))
	ew.printf("Code Review — %d file(s)\n", report.Files)
	ew.println(strings.Repeat("=", 60))

	if report.Counts.Total() == 0 {
		ew.println("\n✓ No issues found!")
		return ew.err
	}

	currentFile := ""
	for _, f := range report.Findings {
		if f.File != currentFile {
			currentFile = f.File
			ew.printf("\n%s\n", f.File)
			ew.println(strings.Repeat("-", len(f.File)))
		}

		loc := ""
		if f.Line > 0 {
			loc = fmt.Sprintf("Line %d: ", f.Line)
		}
		ew.printf("%s [%s] [%s]\n", severitySymbol(f.Severity), strings.ToUpper(string(f.Severity)), f.Category)
		ew.printf("  %s%s\n", loc, f.Message)
		if f.Suggestion != "" {
			ew.printf("  → %s\n", f.Suggestion)
		}
	}

	ew.printf("\n%s\n", strings.Repeat("=", 60))
	ew.printf("TOTAL: %d findings (%d errors, %d warnings, %d info), verdict: %s\n",
		report.Counts.Total(),
		report.Counts.Errors,
		report.Counts.Warnings,
		report.Counts.Infos,
		report.Verdict,
	)

	return ew.err
}

func severitySymbol(s model.Severity) string {
	switch s {
	case model.SeverityError:
		return "✗"
	case model.SeverityWarning:
		return "⚠"
	default:
		return "ℹ"
	}
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
