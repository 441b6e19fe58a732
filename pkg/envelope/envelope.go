// Package envelope parses the three-field JSON contract the language model
// must return. The raw text is untrusted input: it is parsed defensively,
// never evaluated, and kept verbatim on every failure so prompt issues can
// be debugged from the error alone.
package envelope

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Envelope is the wire contract produced by the language model for a single
// routing decision.
type Envelope struct {
	ActionName string         `json:"actionName"` // Name or dot-path of the chosen action
	Parameters map[string]any `json:"parameters"` // Extracted raw parameters, keys never translated
	Response   string         `json:"response"`   // User-facing reply text in the configured language
}

// InvalidEnvelopeError reports model output that could not be parsed into a
// structurally valid envelope.
type InvalidEnvelopeError struct {
	Raw    string // The exact text the model returned
	Reason string
	Err    error // Underlying JSON error, if any
}

func (e *InvalidEnvelopeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid resolution envelope (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid resolution envelope (%s)", e.Reason)
}

func (e *InvalidEnvelopeError) Unwrap() error {
	return e.Err
}

// wireEnvelope defers field decoding so each key can be checked for both
// presence and JSON type before the envelope is accepted.
type wireEnvelope struct {
	ActionName jsoniter.RawMessage `json:"actionName"`
	Parameters jsoniter.RawMessage `json:"parameters"`
	Response   jsoniter.RawMessage `json:"response"`
}

// Parse turns raw model output into a validated Envelope. A single
// ```json fence wrapping the whole payload is tolerated; everything else
// must be exactly the three-key JSON object.
func Parse(raw string) (*Envelope, error) {
	text := StripFence(raw)

	var wire wireEnvelope
	if err := json.UnmarshalFromString(text, &wire); err != nil {
		return nil, &InvalidEnvelopeError{Raw: raw, Reason: "malformed JSON", Err: err}
	}

	env := &Envelope{}

	if wire.ActionName == nil {
		return nil, &InvalidEnvelopeError{Raw: raw, Reason: "missing 'actionName'"}
	}
	if err := json.Unmarshal(wire.ActionName, &env.ActionName); err != nil {
		return nil, &InvalidEnvelopeError{Raw: raw, Reason: "'actionName' is not a string", Err: err}
	}

	if wire.Parameters == nil {
		return nil, &InvalidEnvelopeError{Raw: raw, Reason: "missing 'parameters'"}
	}
	if err := json.Unmarshal(wire.Parameters, &env.Parameters); err != nil || env.Parameters == nil {
		return nil, &InvalidEnvelopeError{Raw: raw, Reason: "'parameters' is not an object", Err: err}
	}

	if wire.Response == nil {
		return nil, &InvalidEnvelopeError{Raw: raw, Reason: "missing 'response'"}
	}
	if err := json.Unmarshal(wire.Response, &env.Response); err != nil {
		return nil, &InvalidEnvelopeError{Raw: raw, Reason: "'response' is not a string", Err: err}
	}

	return env, nil
}

// StripFence removes one optional markdown code fence wrapping the whole
// string. Only fences at the exact start and end are touched; fences inside
// the body (e.g. inside the response text) are left alone.
func StripFence(raw string) string {
	text := strings.TrimSpace(raw)

	switch {
	case strings.HasPrefix(text, "```json"):
		text = text[len("```json"):]
	case strings.HasPrefix(text, "```"):
		text = text[len("```"):]
	default:
		return text
	}

	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
