// Package rules loads the declarative extraction rule set consumed by the
// general field extractor. The file is external configuration: the service
// never writes it, and a missing or malformed file degrades to an empty
// rule set rather than a startup failure.
package rules

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValueType is the declared type of a general field's extracted value.
type ValueType string

const (
	TypeString ValueType = "string"
	TypeFloat  ValueType = "float"
	TypeDate   ValueType = "date"
)

// GeneralField is one named rule: an ordered list of regex patterns tried
// against the full document text. The first pattern that matches wins.
type GeneralField struct {
	FieldName string    `json:"field_name" yaml:"field_name"`
	Patterns  []string  `json:"patterns" yaml:"patterns"`
	Type      ValueType `json:"type" yaml:"type"`
	Multiline bool      `json:"multiline" yaml:"multiline"`

	compiled []*regexp.Regexp
}

// Compiled returns the successfully compiled patterns, in declaration order.
// Patterns that failed to compile were dropped at load time.
func (f *GeneralField) Compiled() []*regexp.Regexp {
	return f.compiled
}

// ColumnHint carries legacy per-column locale hints. The auto-detecting
// numeric parser supersedes these, but the file format still carries them.
type ColumnHint struct {
	FieldName          string `json:"field_name" yaml:"field_name"`
	DecimalSeparator   string `json:"decimal_separator" yaml:"decimal_separator"`
	ThousandsSeparator string `json:"thousands_separator" yaml:"thousands_separator"`
}

// TableFields groups the table-related rule entries.
type TableFields struct {
	Columns []ColumnHint `json:"columns" yaml:"columns"`
}

// Set is the full rule configuration.
type Set struct {
	GeneralFields []GeneralField `json:"general_fields" yaml:"general_fields"`
	TableFields   TableFields    `json:"table_fields" yaml:"table_fields"`
}

// Empty reports whether the set carries no general field rules.
func (s *Set) Empty() bool {
	return s == nil || len(s.GeneralFields) == 0
}

// Default returns an empty rule set.
func Default() *Set {
	return &Set{}
}

// Load reads a rule file (JSON or YAML by extension) and compiles its
// patterns. Every failure mode is non-fatal: the caller always gets a
// usable (possibly empty) set.
func Load(path string, logger *slog.Logger) *Set {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("rules.load.read_failed", "path", path, "error", err)
		return Default()
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext == ".yaml" || ext == ".yml" {
		data, err = yamlToJSON(data)
		if err != nil {
			logger.Warn("rules.load.yaml_decode_failed", "path", path, "error", err)
			return Default()
		}
	}

	if err := ValidateRuleFile(data); err != nil {
		logger.Warn("rules.load.schema_invalid", "path", path, "error", err)
		return Default()
	}

	var s Set
	if err := json.Unmarshal(data, &s); err != nil {
		logger.Warn("rules.load.decode_failed", "path", path, "error", err)
		return Default()
	}

	s.compile(logger)
	logger.Info("rules.load.ok",
		"path", path,
		"general_fields", len(s.GeneralFields),
		"columns", len(s.TableFields.Columns),
	)
	return &s
}

// FromJSON builds a compiled set from raw JSON, for tests and embedding.
func FromJSON(data []byte, logger *slog.Logger) (*Set, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var s Set
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	s.compile(logger)
	return &s, nil
}

// compile turns every pattern into a case-insensitive, dot-matches-newline
// regexp. A pattern that fails to compile is dropped with a warning so the
// field fails closed (null) instead of crashing a request. Duplicate field
// names keep the first declaration only.
func (s *Set) compile(logger *slog.Logger) {
	seen := make(map[string]struct{}, len(s.GeneralFields))
	kept := s.GeneralFields[:0]
	for i := range s.GeneralFields {
		f := s.GeneralFields[i]
		if _, dup := seen[f.FieldName]; dup {
			logger.Warn("rules.compile.duplicate_field", "field", f.FieldName)
			continue
		}
		seen[f.FieldName] = struct{}{}
		kept = append(kept, f)
	}
	s.GeneralFields = kept

	for i := range s.GeneralFields {
		f := &s.GeneralFields[i]
		f.compiled = f.compiled[:0]
		for _, p := range f.Patterns {
			re, err := regexp.Compile("(?is)" + p)
			if err != nil {
				logger.Warn("rules.compile.pattern_invalid",
					"field", f.FieldName, "pattern", p, "error", err)
				continue
			}
			f.compiled = append(f.compiled, re)
		}
	}
}

// yamlToJSON re-encodes a YAML document as JSON so the loader has a single
// validation and decode path.
func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}
