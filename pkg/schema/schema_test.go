package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectParseValid(t *testing.T) {
	s := NewObject(
		Field{Name: "a", Kind: KindNumber},
		Field{Name: "b", Kind: KindNumber},
		Field{Name: "note", Kind: KindString, Optional: true},
	)

	out, err := s.Parse(map[string]any{"a": float64(2), "b": float64(3)})
	require.NoError(t, err)
	assert.Equal(t, float64(2), out["a"])
	assert.Equal(t, float64(3), out["b"])
	assert.NotContains(t, out, "note")
}

func TestObjectParseNumericStrings(t *testing.T) {
	s := NewObject(Field{Name: "a", Kind: KindNumber})

	out, err := s.Parse(map[string]any{"a": "2.5"})
	require.NoError(t, err)
	assert.Equal(t, 2.5, out["a"])

	_, err = s.Parse(map[string]any{"a": "two"})
	require.Error(t, err)
}

func TestObjectParseMissingRequired(t *testing.T) {
	s := NewObject(
		Field{Name: "a", Kind: KindNumber},
		Field{Name: "b", Kind: KindNumber},
	)

	_, err := s.Parse(map[string]any{"a": float64(1)})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "b", verr.Fields[0].Field)
}

func TestObjectParseCollectsAllFailures(t *testing.T) {
	s := NewObject(
		Field{Name: "a", Kind: KindNumber},
		Field{Name: "flag", Kind: KindBoolean},
	)

	_, err := s.Parse(map[string]any{"a": "not-a-number", "flag": "yes"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
}

func TestObjectParseNullOptional(t *testing.T) {
	s := NewObject(Field{Name: "note", Kind: KindString, Optional: true})

	out, err := s.Parse(map[string]any{"note": nil})
	require.NoError(t, err)
	assert.NotContains(t, out, "note")
}

func TestObjectParseDropsUndeclaredKeys(t *testing.T) {
	s := NewObject(Field{Name: "a", Kind: KindNumber})

	out, err := s.Parse(map[string]any{"a": float64(1), "extra": "ignored"})
	require.NoError(t, err)
	assert.NotContains(t, out, "extra")
}

func TestObjectParseDate(t *testing.T) {
	s := NewObject(Field{Name: "when", Kind: KindDate})

	out, err := s.Parse(map[string]any{"when": "2026-03-01"})
	require.NoError(t, err)
	when, ok := out["when"].(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2026, when.Year())
	assert.Equal(t, time.March, when.Month())
}

func TestParseDateLayouts(t *testing.T) {
	for _, input := range []string{
		"2026-03-01T10:30:00Z",
		"2026-03-01 10:30:00",
		"2026-03-01",
		"03/01/2026",
	} {
		_, err := ParseDate(input)
		assert.NoError(t, err, "input %q", input)
	}

	_, err := ParseDate("next tuesday")
	assert.Error(t, err)
}

func TestObjectDescribe(t *testing.T) {
	s := NewObject(
		Field{Name: "a", Kind: KindNumber, Description: "first operand"},
		Field{Name: "note", Kind: KindString, Optional: true},
	)

	desc := s.Describe()
	assert.Contains(t, desc, `"a": number`)
	assert.Contains(t, desc, `"note": string?`)
	assert.Contains(t, desc, "- a: first operand")
}
