// Package config loads the checker's YAML-driven toggles, the way
// internal/eval_harness loads a BenchmarkSpec: yaml.Unmarshal plus a
// required-field validation pass.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CheckerConfig toggles behavior the spec leaves as a deployment choice
// (e.g. whether unknown widening participates in equality narrowing, or
// whether switch-case-test overlap checks are strict).
type CheckerConfig struct {
	Name string `yaml:"name"`

	// EnableUnknownWidening gates §4.3.2's deep-fact install for `unknown`
	// operands in equality comparisons.
	EnableUnknownWidening bool `yaml:"enable_unknown_widening"`

	// StrictSwitchCaseOverlap makes is_valid_for_switch_case (§4.4) reject
	// the intersection-discriminant escape hatch even inside a switch-case
	// test, so a non-overlapping case surfaces SwitchCaseTestNotCompatible
	// instead of silently passing.
	StrictSwitchCaseOverlap bool `yaml:"strict_switch_case_overlap"`

	// AllowDifferentClassesInRelational lets `<`/`<=`/`>`/`>=` compare two
	// classes without superclasses where either body is empty; when false,
	// canCompareRelatively rejects that pair.
	AllowDifferentClassesInRelational bool `yaml:"allow_different_classes_in_relational"`
}

// Default returns the configuration the core assumes absent an explicit
// file: unknown widening enabled, switch-case overlap lenient, distinct
// classes disallowed in relational comparisons (matching §4.4.2's default
// `disallow_different_classes` behavior).
func Default() CheckerConfig {
	return CheckerConfig{
		Name:                              "default",
		EnableUnknownWidening:             true,
		StrictSwitchCaseOverlap:           false,
		AllowDifferentClassesInRelational: false,
	}
}

// Load reads and validates a CheckerConfig from a YAML file.
func Load(path string) (*CheckerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Name == "" {
		return nil, fmt.Errorf("config missing required field: name")
	}

	return &cfg, nil
}
