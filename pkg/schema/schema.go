package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Field kind constants define the closed set of parameter types the router
// understands. Every declared field carries exactly one of these kinds, so
// downstream layers can dispatch on a fixed tag instead of inspecting the
// internals of a validation engine.
const (
	KindString  = "string"
	KindNumber  = "number"
	KindBoolean = "boolean"
	KindDate    = "date"
	KindArray   = "array"
	KindObject  = "object"
)

// Field describes a single declared parameter of an action.
type Field struct {
	Name        string // Parameter key exactly as the model must emit it (never translated)
	Kind        string // One of the Kind* constants
	Optional    bool   // Optional fields may be absent or null
	Description string // Human/LLM-readable hint included in the prompt
}

// Schema is the pluggable validation-engine boundary. The router only needs
// a serializable description for prompt construction and a Parse operation
// that fails with a structured cause on invalid input.
type Schema interface {
	// Describe returns a human/LLM-readable description of the schema.
	Describe() string
	// Parse validates raw parameters and returns the typed result.
	Parse(params map[string]any) (map[string]any, error)
}

// FieldProvider is an optional capability of a Schema. Engines that expose
// field-level kind metadata enable the coercion layer; engines that don't
// still work, their parameters just pass through uncoerced.
type FieldProvider interface {
	Fields() []Field
}

// FieldError describes the failure of a single declared field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates per-field failures from a single Parse call.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "schema validation failed: " + strings.Join(parts, "; ")
}

// dateLayouts are tried in order when interpreting a string as a date.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// ParseDate interprets a string as a date using the supported layouts.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

// Object is the built-in object-shaped schema engine. It validates a flat
// set of declared fields against raw parameters produced by the model.
type Object struct {
	fields []Field
}

// NewObject builds an object schema from the declared fields.
func NewObject(fields ...Field) *Object {
	return &Object{fields: fields}
}

// Fields implements FieldProvider.
func (s *Object) Fields() []Field {
	cp := make([]Field, len(s.fields))
	copy(cp, s.fields)
	return cp
}

// Describe renders the schema as a compact JSON-like signature followed by
// one line per documented field. Example:
//
//	{"a": number, "b": number}
//	- a: first operand
func (s *Object) Describe() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, f := range s.fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		kind := f.Kind
		if f.Optional {
			kind += "?"
		}
		fmt.Fprintf(&sb, "%q: %s", f.Name, kind)
	}
	sb.WriteString("}")
	for _, f := range s.fields {
		if f.Description != "" {
			fmt.Fprintf(&sb, "\n- %s: %s", f.Name, f.Description)
		}
	}
	return sb.String()
}

// Parse validates params against the declared fields. The result contains
// only declared fields; undeclared keys are dropped. All failures for a
// single call are collected into one ValidationError.
func (s *Object) Parse(params map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(s.fields))
	var verr ValidationError

	for _, f := range s.fields {
		raw, present := params[f.Name]
		if !present || raw == nil {
			if !f.Optional {
				verr.Fields = append(verr.Fields, FieldError{Field: f.Name, Message: "required field is missing"})
			}
			continue
		}

		val, err := parseValue(f.Kind, raw)
		if err != nil {
			verr.Fields = append(verr.Fields, FieldError{Field: f.Name, Message: err.Error()})
			continue
		}
		out[f.Name] = val
	}

	if len(verr.Fields) > 0 {
		return nil, &verr
	}
	return out, nil
}

// parseValue checks a single raw value against the expected kind.
// Numbers additionally accept numeric strings, since models frequently quote
// them; everything else must already be the right shape (the coercion layer
// runs before Parse and handles string repairs for bool/date/array/object).
func parseValue(kind string, raw any) (any, error) {
	switch kind {
	case KindString:
		if s, ok := raw.(string); ok {
			return s, nil
		}
		return nil, fmt.Errorf("expected string, got %T", raw)

	case KindNumber:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case float32:
			return float64(v), nil
		case int:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case string:
			n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("expected number, got non-numeric string %q", v)
			}
			return n, nil
		default:
			return nil, fmt.Errorf("expected number, got %T", raw)
		}

	case KindBoolean:
		if b, ok := raw.(bool); ok {
			return b, nil
		}
		return nil, fmt.Errorf("expected boolean, got %T", raw)

	case KindDate:
		switch v := raw.(type) {
		case time.Time:
			return v, nil
		case string:
			t, err := ParseDate(v)
			if err != nil {
				return nil, err
			}
			return t, nil
		default:
			return nil, fmt.Errorf("expected date, got %T", raw)
		}

	case KindArray:
		if a, ok := raw.([]any); ok {
			return a, nil
		}
		return nil, fmt.Errorf("expected array, got %T", raw)

	case KindObject:
		if m, ok := raw.(map[string]any); ok {
			return m, nil
		}
		return nil, fmt.Errorf("expected object, got %T", raw)

	default:
		return nil, fmt.Errorf("unknown field kind %q", kind)
	}
}
