// =============================================================================
// EDI 834 Generator - Configuration Module
// =============================================================================
//
// This module loads the validation rule set consumed by the validator. Rules
// live in an external YAML file so benefits teams can adjust required
// fields, accepted plan codes, patterns, and length limits without a code
// change.
//
// RULES FILE SCHEMA:
//   required_fields: [string]
//   plan_codes:      [string]
//   patterns:        {name: regex}        (ssn, date, zip, state)
//   valid_values:    {name: [string]}     (gender, relationship_code)
//   max_lengths:     {field: int}
//
// FALLBACK:
//   A missing rules file is not an error: Load substitutes the built-in
//   default rule set so generation never hard-fails merely because the
//   resource is absent. A file that exists but cannot be parsed is an error.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// RULE SET STRUCTURE
// =============================================================================

// RuleSet holds the validation rules applied to every enrollment record.
// A RuleSet is loaded once and treated as read-only; it is safe to share
// across concurrent validations.
type RuleSet struct {
	// RequiredFields lists canonical field names that must be non-empty.
	RequiredFields []string `yaml:"required_fields"`

	// PlanCodes is the accepted plan code allow-list. An empty list
	// disables the plan code check.
	PlanCodes []string `yaml:"plan_codes"`

	// Patterns holds named regular expressions (ssn, date, zip, state).
	Patterns map[string]string `yaml:"patterns"`

	// ValidValues holds named enumerations (gender, relationship_code).
	ValidValues map[string][]string `yaml:"valid_values"`

	// MaxLengths maps canonical field names to their maximum length.
	MaxLengths map[string]int `yaml:"max_lengths"`
}

// =============================================================================
// DEFAULT RULE SET
// =============================================================================

// DefaultRuleSet returns the built-in rule set used when no external rules
// file is available. A fresh value is returned on every call so callers can
// never mutate shared state.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		RequiredFields: []string{
			"employee_id", "ssn", "first_name", "last_name",
			"dob", "plan_code", "coverage_start",
		},
		PlanCodes: []string{"MED001", "DENT001", "VISION001"},
		Patterns: map[string]string{
			"ssn":  `^\d{9}$`,
			"date": `^\d{8}$`,
		},
		ValidValues: map[string][]string{},
		MaxLengths:  map[string]int{},
	}
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads a rule set from a YAML file.
//
// A missing file yields DefaultRuleSet with a nil error. Any other read or
// parse failure is returned as an error.
func Load(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultRuleSet(), nil
		}
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rules RuleSet
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	applyRuleSetDefaults(&rules)
	return &rules, nil
}

// applyRuleSetDefaults fills in nil maps so lookups never panic.
func applyRuleSetDefaults(rules *RuleSet) {
	if rules.Patterns == nil {
		rules.Patterns = map[string]string{}
	}
	if rules.ValidValues == nil {
		rules.ValidValues = map[string][]string{}
	}
	if rules.MaxLengths == nil {
		rules.MaxLengths = map[string]int{}
	}
}

// Pattern returns the named pattern, or fallback when the rule set does not
// define one.
func (r *RuleSet) Pattern(name, fallback string) string {
	if p, ok := r.Patterns[name]; ok && p != "" {
		return p
	}
	return fallback
}

// Values returns the named enumeration, or fallback when the rule set does
// not define one.
func (r *RuleSet) Values(name string, fallback []string) []string {
	if v, ok := r.ValidValues[name]; ok && len(v) > 0 {
		return v
	}
	return fallback
}
