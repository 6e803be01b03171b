package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/reviewbot/internal/domain/model"
)

func sampleReport() *Report {
	result := model.NewReviewResult([]model.Finding{
		{File: "a.go", Line: 3, Severity: model.SeverityError, Category: model.CategorySecurity, Message: "hardcoded secret", Suggestion: "use the environment"},
		{File: "b.go", Line: 8, Severity: model.SeverityInfo, Category: model.CategoryStyle, Message: "long line"},
	})
	return NewReport(2, result)
}

func TestGetWriter(t *testing.T) {
	w, err := GetWriter("text")
	require.NoError(t, err)
	assert.IsType(t, &TextWriter{}, w)

	w, err = GetWriter("json")
	require.NoError(t, err)
	assert.IsType(t, &JSONWriter{}, w)

	_, err = GetWriter("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestTextWriter_Findings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TextWriter{}).Write(&buf, sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "Code Review — 2 file(s)")
	assert.Contains(t, out, "a.go")
	assert.Contains(t, out, "Line 3: hardcoded secret")
	assert.Contains(t, out, "→ use the environment")
	assert.Contains(t, out, "TOTAL: 2 findings (1 errors, 0 warnings, 1 info), verdict: request_changes")
}

func TestTextWriter_Clean(t *testing.T) {
	var buf bytes.Buffer
	report := NewReport(1, model.NewReviewResult(nil))
	require.NoError(t, (&TextWriter{}).Write(&buf, report))

	assert.Contains(t, buf.String(), "No issues found")
	assert.NotContains(t, buf.String(), "TOTAL")
}

func TestWriteReport_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteReport(sampleReport(), "json", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, model.VerdictRequestChanges, decoded.Verdict)
}

func TestJSONWriter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONWriter{}).Write(&buf, sampleReport()))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, 2, decoded.Files)
	require.Len(t, decoded.Findings, 2)
	assert.Equal(t, model.VerdictRequestChanges, decoded.Verdict)
	assert.Equal(t, 1, decoded.Counts.Errors)
}
