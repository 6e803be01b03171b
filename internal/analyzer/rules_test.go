package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRulesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRules_EmptyPathReturnsDefaults(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), rules)
}

func TestLoadRules_OverridesMergeOverDefaults(t *testing.T) {
	path := writeRulesFile(t, "style:\n  enabled: true\n  max_line_length: 80\n")

	rules, err := LoadRules(path)
	require.NoError(t, err)

	assert.Equal(t, 80, rules.Style.MaxLineLength)
	// Families the file does not mention keep their defaults.
	assert.True(t, rules.Security.Enabled)
	assert.True(t, rules.Security.CheckHardcodedSecrets)
}

func TestLoadRules_DisableFamily(t *testing.T) {
	path := writeRulesFile(t, "algorithms:\n  enabled: false\n  flag_nested_loops: false\n")

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.False(t, rules.Algorithms.Enabled)

	analyzers := FromRules(rules)
	for _, a := range analyzers {
		assert.NotEqual(t, "nested-loops", a.Name())
	}
}

func TestLoadRules_MissingFileIsFatal(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadRules_MalformedYAMLIsFatal(t *testing.T) {
	path := writeRulesFile(t, "style: [not a mapping\n")

	_, err := LoadRules(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing rules file")
}
