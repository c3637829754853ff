package config

import (
	"reflect"
	"strings"
)

// Tree is a nested configuration mapping. Values are scalars, []any,
// time.Time, or nested Trees.
type Tree map[string]any

// Merge returns defaults deep-merged with override, override winning.
//
// Nested mappings present on both sides are merged recursively. Any other
// value present in override (arrays, dates, scalars, or a mapping sitting
// where defaults holds a non-mapping) replaces the default wholesale. A nil
// override value counts as absent. Neither input is modified.
func Merge(defaults, override Tree) Tree {
	out := make(Tree, len(defaults)+len(override))
	for key, value := range defaults {
		out[key] = cloneValue(value)
	}
	for key, value := range override {
		if value == nil {
			continue
		}
		if overrideTree, ok := asTree(value); ok {
			if defaultTree, ok := asTree(out[key]); ok {
				merged := Merge(defaultTree, overrideTree)
				if _, plain := out[key].(map[string]any); plain {
					out[key] = map[string]any(merged)
				} else {
					out[key] = merged
				}
				continue
			}
		}
		out[key] = cloneValue(value)
	}
	return out
}

// Clone returns a deep copy of t.
func (t Tree) Clone() Tree {
	if t == nil {
		return nil
	}
	out := make(Tree, len(t))
	for key, value := range t {
		out[key] = cloneValue(value)
	}
	return out
}

// Lookup walks a dotted path ("app.timeline.range").
func (t Tree) Lookup(path string) (any, bool) {
	var current any = t
	for _, part := range splitPath(path) {
		node, ok := asTree(current)
		if !ok {
			return nil, false
		}
		current, ok = node[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// HasKey reports whether the subtree at path contains key.
func (t Tree) HasKey(path, key string) bool {
	node := t
	if path != "" {
		v, ok := t.Lookup(path)
		if !ok {
			return false
		}
		if node, ok = asTree(v); !ok {
			return false
		}
	}
	_, ok := node[key]
	return ok
}

// set writes value at a dotted path, creating intermediate trees. It
// mutates t and must only be used on trees owned by the caller.
func (t Tree) set(path string, value any) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return
	}
	node := t
	for _, part := range parts[:len(parts)-1] {
		next, ok := asTree(node[part])
		if !ok {
			next = Tree{}
		}
		node[part] = next
		node = next
	}
	node[parts[len(parts)-1]] = value
}

// Normalize converts decoder output into Tree form so Merge can recognise
// nested mappings. Typed slices ([]string, []time.Time, ...) become []any.
func Normalize(value any) any {
	switch v := value.(type) {
	case Tree:
		out := make(Tree, len(v))
		for key, inner := range v {
			out[key] = Normalize(inner)
		}
		return out
	case map[string]any:
		out := make(Tree, len(v))
		for key, inner := range v {
			out[key] = Normalize(inner)
		}
		return out
	case map[any]any:
		out := make(Tree, len(v))
		for key, inner := range v {
			if s, ok := key.(string); ok {
				out[s] = Normalize(inner)
			}
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = Normalize(inner)
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = Normalize(inner)
		}
		return out
	case []byte:
		return value
	default:
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return value
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	}
}

func asTree(value any) (Tree, bool) {
	switch v := value.(type) {
	case Tree:
		return v, v != nil
	case map[string]any:
		return Tree(v), v != nil
	default:
		return nil, false
	}
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case Tree:
		return v.Clone()
	case map[string]any:
		return map[string]any(Tree(v).Clone())
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = cloneValue(inner)
		}
		return out
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	default:
		return v
	}
}

func splitPath(path string) []string {
	path = strings.Trim(path, ".")
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}
