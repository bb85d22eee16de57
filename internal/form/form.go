// Package form describes scraped form fields and the values resolved for them.
package form

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind is the HTML control type of a field.
type Kind string

const (
	KindInput    Kind = "input"
	KindSelect   Kind = "select"
	KindTextarea Kind = "textarea"
	KindCheckbox Kind = "checkbox"
	KindRadio    Kind = "radio"
)

// Valid reports whether k is a known field kind.
func (k Kind) Valid() bool {
	switch k {
	case KindInput, KindSelect, KindTextarea, KindCheckbox, KindRadio:
		return true
	}
	return false
}

// HasOptions reports whether the value must be one of the field's options.
func (k Kind) HasOptions() bool {
	return k == KindSelect || k == KindRadio
}

// Field is a single scraped form control. Options keep their page order and may repeat.
type Field struct {
	Kind        Kind     `yaml:"kind" json:"kind"`
	Label       string   `yaml:"label" json:"label"`
	Placeholder string   `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Options     []string `yaml:"options,omitempty" json:"options,omitempty"`
	Name        string   `yaml:"name,omitempty" json:"name,omitempty"`
	ID          string   `yaml:"id,omitempty" json:"id,omitempty"`
	Required    bool     `yaml:"required,omitempty" json:"required,omitempty"`
}

// Haystack is the lower-cased text rules are matched against.
func (f Field) Haystack() string {
	parts := make([]string, 0, 4)
	for _, part := range []string{f.Label, f.Placeholder, f.Name, f.ID} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Validate checks the field can be resolved at all.
func (f Field) Validate() error {
	if !f.Kind.Valid() {
		return fmt.Errorf("unknown field kind %q", f.Kind)
	}
	if strings.TrimSpace(f.Label+f.Placeholder+f.Name+f.ID) == "" {
		return fmt.Errorf("field has no label, placeholder, name or id")
	}
	return nil
}

// Value is either a string or a boolean. The zero value is the empty string.
type Value struct {
	text   string
	flag   bool
	isBool bool
}

// Text returns a string value.
func Text(s string) Value { return Value{text: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{flag: b, isBool: true} }

// Bool returns the boolean and whether the value holds one.
func (v Value) Bool() (bool, bool) { return v.flag, v.isBool }

// String renders booleans as "Yes"/"No", the way forms usually spell them.
func (v Value) String() string {
	if v.isBool {
		if v.flag {
			return "Yes"
		}
		return "No"
	}
	return v.text
}

// IsEmpty reports an empty string value. Booleans are never empty.
func (v Value) IsEmpty() bool {
	return !v.isBool && strings.TrimSpace(v.text) == ""
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.isBool {
		return []byte(strconv.FormatBool(v.flag)), nil
	}
	return json.Marshal(v.text)
}

// Confidence is a coarse trust label reflecting which tier produced a value.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Source records which strategy produced a value.
type Source string

const (
	SourceHardcoded  Source = "hardcoded"
	SourceSimilarity Source = "similarity"
	SourceFuzzy      Source = "fuzzy"
	SourceAI         Source = "ai"
	// SourceManual marks a value confirmed or typed by the user on the command line.
	SourceManual Source = "manual"
)

// MatchResult is the resolved value of one field.
type MatchResult struct {
	Value      Value      `json:"value"`
	Confidence Confidence `json:"confidence"`
	Source     Source     `json:"source"`
}
