package action

import (
	"context"

	"github.com/hypecode-tech/saafir/pkg/schema"
)

// Handler executes a resolved action with validated, typed parameters.
// Its return value is observed for diagnostics only; the user-facing reply
// always comes from the resolution envelope.
type Handler func(ctx context.Context, params map[string]any) (any, error)

// Definition is a named, schema-typed operation. Definitions are registered
// once at construction time and must not be mutated afterwards.
type Definition struct {
	Name        string        // Unique registration key
	Description string        // Shown to the model in the action catalog
	Schema      schema.Schema // Parameter contract (may expose field metadata for coercion)
	Handler     Handler       // The operation itself
}

// Resolver is the lookup contract shared by the flat registry and the
// nested tree. Lookups are side-effect-free and safe for concurrent use.
type Resolver interface {
	// Lookup resolves a dot-path (already split into segments) to a
	// definition. An empty path never resolves.
	Lookup(path []string) (*Definition, bool)
	// All returns every registered definition in a stable order,
	// used for building the action catalog in the prompt.
	All() []*Definition
}
