// Package coerce repairs common representation mismatches between what the
// language model emitted and what the target schema declares. It is a
// best-effort normalization pass, never a second source of truth: values it
// cannot repair are left in place and rejected later by schema validation.
package coerce

import (
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/hypecode-tech/saafir/pkg/schema"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Warning records a repair that could not be applied. Warnings are
// informational; the failing value surfaces as a validation error afterwards.
type Warning struct {
	Field   string
	Message string
}

// Params runs the coercion pass over raw parameters using the target
// schema's field metadata. Schemas that do not expose field kinds pass
// through unchanged. Already-correctly-typed values are never touched.
func Params(target schema.Schema, params map[string]any) (map[string]any, []Warning) {
	provider, ok := target.(schema.FieldProvider)
	if !ok {
		return params, nil
	}

	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
	}

	var warnings []Warning
	for _, field := range provider.Fields() {
		raw, present := out[field.Name]
		if !present {
			continue
		}
		str, isString := raw.(string)
		if !isString {
			continue
		}

		switch field.Kind {
		case schema.KindBoolean:
			if b, ok := parseBool(str); ok {
				out[field.Name] = b
			} else {
				warnings = append(warnings, Warning{Field: field.Name, Message: "string is not a recognizable boolean: " + str})
			}

		case schema.KindDate:
			if t, err := schema.ParseDate(str); err == nil {
				out[field.Name] = t
			} else {
				warnings = append(warnings, Warning{Field: field.Name, Message: err.Error()})
			}

		case schema.KindArray:
			if arr, ok := parseArray(str); ok {
				out[field.Name] = arr
			} else {
				warnings = append(warnings, Warning{Field: field.Name, Message: "string could not be repaired into an array"})
			}

		case schema.KindObject:
			var obj map[string]any
			if err := json.UnmarshalFromString(str, &obj); err == nil && obj != nil {
				out[field.Name] = obj
			} else {
				warnings = append(warnings, Warning{Field: field.Name, Message: "string is not a JSON object"})
			}
		}
	}

	return out, warnings
}

// parseBool matches the loose boolean spellings models tend to produce.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}

// parseArray first tries a full JSON parse, then falls back to splitting on
// commas with trimmed segments ("a, b, c" -> ["a","b","c"]).
func parseArray(s string) ([]any, bool) {
	var arr []any
	if err := json.UnmarshalFromString(s, &arr); err == nil {
		return arr, true
	}

	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, false
	}
	parts := strings.Split(trimmed, ",")
	arr = make([]any, 0, len(parts))
	for _, p := range parts {
		arr = append(arr, strings.TrimSpace(p))
	}
	return arr, true
}
