// =============================================================================
// EDI 834 Generator - Configuration Module Tests
// =============================================================================

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// DEFAULT RULE SET TESTS
// =============================================================================

func TestDefaultRuleSet(t *testing.T) {
	rules := DefaultRuleSet()

	assert.Contains(t, rules.RequiredFields, "employee_id")
	assert.Contains(t, rules.RequiredFields, "ssn")
	assert.Contains(t, rules.RequiredFields, "coverage_start")
	assert.Equal(t, []string{"MED001", "DENT001", "VISION001"}, rules.PlanCodes)
	assert.NotNil(t, rules.Patterns)
	assert.NotNil(t, rules.ValidValues)
	assert.NotNil(t, rules.MaxLengths)
}

// Every call returns a fresh value; mutating one result never leaks into the
// next.
func TestDefaultRuleSetIsolation(t *testing.T) {
	first := DefaultRuleSet()
	first.PlanCodes[0] = "MUTATED"
	first.Patterns["ssn"] = "broken"

	second := DefaultRuleSet()
	assert.Equal(t, "MED001", second.PlanCodes[0])
	assert.Equal(t, `^\d{9}$`, second.Patterns["ssn"])
}

// =============================================================================
// LOADING TESTS
// =============================================================================

func TestLoadMissingFileFallsBack(t *testing.T) {
	rules, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultRuleSet(), rules)
}

func TestLoadValidFile(t *testing.T) {
	content := `
required_fields:
  - employee_id
  - ssn
plan_codes:
  - CUSTOM01
patterns:
  zip: '^\d{5}$'
valid_values:
  gender: [M, F]
max_lengths:
  first_name: 25
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rules, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"employee_id", "ssn"}, rules.RequiredFields)
	assert.Equal(t, []string{"CUSTOM01"}, rules.PlanCodes)
	assert.Equal(t, `^\d{5}$`, rules.Patterns["zip"])
	assert.Equal(t, []string{"M", "F"}, rules.ValidValues["gender"])
	assert.Equal(t, 25, rules.MaxLengths["first_name"])
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("required_fields: {not: [valid"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

// A sparse rules file still gets non-nil maps, so lookups never panic.
func TestLoadSparseFileDefaultsMaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plan_codes: [MED001]"), 0644))

	rules, err := Load(path)
	require.NoError(t, err)

	assert.NotNil(t, rules.Patterns)
	assert.NotNil(t, rules.ValidValues)
	assert.NotNil(t, rules.MaxLengths)
}

// =============================================================================
// ACCESSOR TESTS
// =============================================================================

func TestPatternFallback(t *testing.T) {
	rules := &RuleSet{Patterns: map[string]string{"zip": `^\d{5}$`}}

	assert.Equal(t, `^\d{5}$`, rules.Pattern("zip", "fallback"))
	assert.Equal(t, "fallback", rules.Pattern("state", "fallback"))
}

func TestValuesFallback(t *testing.T) {
	rules := &RuleSet{ValidValues: map[string][]string{"gender": {"M", "F"}}}

	assert.Equal(t, []string{"M", "F"}, rules.Values("gender", []string{"M", "F", "U"}))
	assert.Equal(t, []string{"01", "18"}, rules.Values("relationship_code", []string{"01", "18"}))
}
