package analyzer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules configures which analyzers run and their thresholds. A rules file
// overrides only the fields it names; everything else keeps its default.
type Rules struct {
	Documentation DocumentationRules `yaml:"documentation"`
	Style         StyleRules         `yaml:"style"`
	Algorithms    AlgorithmRules     `yaml:"algorithms"`
	Security      SecurityRules      `yaml:"security"`
}

type DocumentationRules struct {
	Enabled            bool `yaml:"enabled"`
	RequireDocComments bool `yaml:"require_doc_comments"`
}

type StyleRules struct {
	Enabled       bool `yaml:"enabled"`
	MaxLineLength int  `yaml:"max_line_length"`
}

type AlgorithmRules struct {
	Enabled         bool `yaml:"enabled"`
	FlagNestedLoops bool `yaml:"flag_nested_loops"`
}

type SecurityRules struct {
	Enabled               bool `yaml:"enabled"`
	CheckHardcodedSecrets bool `yaml:"check_hardcoded_secrets"`
}

// DefaultRules returns the rules applied when no rules file is given.
func DefaultRules() *Rules {
	return &Rules{
		Documentation: DocumentationRules{Enabled: true, RequireDocComments: true},
		Style:         StyleRules{Enabled: true, MaxLineLength: 100},
		Algorithms:    AlgorithmRules{Enabled: true, FlagNestedLoops: true},
		Security:      SecurityRules{Enabled: true, CheckHardcodedSecrets: true},
	}
}

// LoadRules reads a YAML rules file and merges it over the defaults.
// An empty path returns the defaults. A missing or malformed file is a
// configuration error: fatal at startup, never downgraded.
func LoadRules(path string) (*Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}

	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}

	return rules, nil
}
