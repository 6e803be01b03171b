// Package output renders one-shot review reports as text or JSON.
package output

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/natefinch/atomic"

	"github.com/ericfisherdev/reviewbot/internal/domain/model"
)

// Report is the top-level one-shot output structure.
type Report struct {
	Files    int                  `json:"files"`
	Findings []model.Finding      `json:"findings"`
	Counts   model.SeverityCounts `json:"counts"`
	Verdict  model.Verdict        `json:"verdict"`
}

// NewReport builds a Report from a review result.
func NewReport(files int, result model.ReviewResult) *Report {
	return &Report{
		Files:    files,
		Findings: result.Findings,
		Counts:   result.Counts,
		Verdict:  result.Verdict,
	}
}

// Writer renders a report in one specific format.
type Writer interface {
	Write(w io.Writer, report *Report) error
}

// GetWriter returns a writer for the given format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport writes the report to outPath, or to stdout when outPath is
// empty. File output is written atomically.
func WriteReport(report *Report, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	if outPath == "" {
		return writer.Write(os.Stdout, report)
	}

	var buf bytes.Buffer
	if err := writer.Write(&buf, report); err != nil {
		return err
	}
	if err := atomic.WriteFile(outPath, &buf); err != nil {
		return fmt.Errorf("writing report to %s: %w", outPath, err)
	}
	return nil
}
