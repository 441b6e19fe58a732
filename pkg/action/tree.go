package action

import "sort"

// Tree is the nested registry variant. A node is exactly one of leaf or
// branch; a definition is always a leaf and is never descended into, even
// when a name collides with a branch segment.
//
// Trees are built once at configuration time and are read-only afterwards,
// so lookups need no locking.
type Tree struct {
	leaf     *Definition
	branches map[string]*Tree
}

// Leaf wraps a single definition as a tree node.
func Leaf(def *Definition) *Tree {
	return &Tree{leaf: def}
}

// Branch groups child nodes under their path segments.
func Branch(children map[string]*Tree) *Tree {
	return &Tree{branches: children}
}

// IsLeaf reports whether the node holds a definition.
func (t *Tree) IsLeaf() bool {
	return t.leaf != nil
}

// Lookup implements Resolver for dot-path addressing.
//
// A single-segment path triggers a depth-first search over the whole tree
// for a leaf registered under that segment, regardless of depth. This lets
// the model answer with just "add" even when the canonical path is
// "calculator.add". Branch keys are visited in sorted order, so when two
// leaves share a registration key the lexicographically first path wins
// deterministically.
//
// Longer paths descend strictly: a missing segment fails immediately, and a
// path that still has segments left when a leaf is reached fails rather
// than being partially accepted.
func (t *Tree) Lookup(path []string) (*Definition, bool) {
	if len(path) == 0 {
		return nil, false
	}

	if len(path) == 1 {
		return t.findByName(path[0])
	}

	node := t
	for _, segment := range path {
		if node.IsLeaf() {
			// Over-long path into a leaf.
			return nil, false
		}
		child, ok := node.branches[segment]
		if !ok {
			return nil, false
		}
		node = child
	}

	if !node.IsLeaf() {
		// Path ends on a branch, not an action.
		return nil, false
	}
	return node.leaf, true
}

// findByName performs the recursive flat search for single-segment lookups.
func (t *Tree) findByName(name string) (*Definition, bool) {
	for _, key := range t.sortedKeys() {
		child := t.branches[key]
		if child.IsLeaf() {
			if key == name {
				return child.leaf, true
			}
			continue
		}
		if def, ok := child.findByName(name); ok {
			return def, true
		}
	}
	return nil, false
}

// All returns every leaf definition in depth-first sorted-key order.
func (t *Tree) All() []*Definition {
	if t.IsLeaf() {
		return []*Definition{t.leaf}
	}
	var defs []*Definition
	for _, key := range t.sortedKeys() {
		defs = append(defs, t.branches[key].All()...)
	}
	return defs
}

func (t *Tree) sortedKeys() []string {
	keys := make([]string, 0, len(t.branches))
	for k := range t.branches {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
