package config

import (
	"reflect"
	"testing"
	"time"
)

func TestMerge_RecursesIntoSharedMappings(t *testing.T) {
	got := Merge(Tree{"a": Tree{"x": 1, "y": 2}}, Tree{"a": Tree{"x": 9}})
	want := Tree{"a": Tree{"x": 9, "y": 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Merge = %#v, want %#v", got, want)
	}
}

func TestMerge_IsIdempotent(t *testing.T) {
	d := Defaults(Env{Now: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)})
	if got := Merge(d, d); !reflect.DeepEqual(got, d) {
		t.Fatalf("Merge(D, D) != D")
	}
}

func TestMerge_IsIdempotentWithDecoderMaps(t *testing.T) {
	d := Tree{"a": map[string]any{"x": 1, "nested": map[string]any{"y": 2}}, "b": []any{1}}
	got := Merge(d, d)
	if !reflect.DeepEqual(got, d) {
		t.Fatalf("Merge(D, D) = %#v, want %#v", got, d)
	}
	if _, ok := got["a"].(map[string]any); !ok {
		t.Fatalf("Merge changed map type to %T", got["a"])
	}
}

func TestMerge_OverrideWinsOnLeaves(t *testing.T) {
	when := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	defaults := Tree{
		"n":     1,
		"s":     "default",
		"list":  []any{1, 2, 3},
		"when":  time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC),
		"keep":  true,
		"inner": Tree{"list": []any{"a", "b"}},
	}
	override := Tree{
		"n":     2,
		"s":     "override",
		"list":  []any{9},
		"when":  when,
		"inner": Tree{"list": []any{}},
	}
	got := Merge(defaults, override)

	cases := []struct {
		key  string
		want any
	}{
		{"n", 2},
		{"s", "override"},
		{"list", []any{9}},
		{"when", when},
		{"keep", true},
		{"inner", Tree{"list": []any{}}},
	}
	for _, tc := range cases {
		if !reflect.DeepEqual(got[tc.key], tc.want) {
			t.Fatalf("Merge[%q] = %#v, want %#v", tc.key, got[tc.key], tc.want)
		}
	}
}

func TestMerge_TypeMismatchReplacesWholesale(t *testing.T) {
	got := Merge(
		Tree{"a": Tree{"x": 1}, "b": "scalar"},
		Tree{"a": "flat", "b": Tree{"y": 2}},
	)
	if got["a"] != "flat" {
		t.Fatalf("Merge[a] = %#v, want flat", got["a"])
	}
	if !reflect.DeepEqual(got["b"], Tree{"y": 2}) {
		t.Fatalf("Merge[b] = %#v, want {y:2}", got["b"])
	}
}

func TestMerge_NilOverrideKeepsDefault(t *testing.T) {
	got := Merge(Tree{"a": 1}, Tree{"a": nil, "b": nil})
	if got["a"] != 1 {
		t.Fatalf("Merge[a] = %#v, want 1", got["a"])
	}
	if _, ok := got["b"]; ok {
		t.Fatalf("Merge added nil-only key b")
	}
}

func TestMerge_DoesNotAliasInputs(t *testing.T) {
	defaults := Tree{"a": Tree{"list": []any{1}}}
	override := Tree{"b": Tree{"x": 1}}
	got := Merge(defaults, override)

	got["a"].(Tree)["list"].([]any)[0] = 99
	got["b"].(Tree)["x"] = 99

	if defaults["a"].(Tree)["list"].([]any)[0] != 1 {
		t.Fatalf("Merge aliased defaults slice")
	}
	if override["b"].(Tree)["x"] != 1 {
		t.Fatalf("Merge aliased override subtree")
	}
}

func TestMerge_AcceptsDecoderMaps(t *testing.T) {
	got := Merge(Tree{"a": Tree{"x": 1, "y": 2}}, Tree{"a": map[string]any{"y": 3}})
	want := Tree{"a": Tree{"x": 1, "y": 3}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Merge = %#v, want %#v", got, want)
	}
}

func TestTree_LookupAndHasKey(t *testing.T) {
	tree := Tree{"app": Tree{"intro": []any{"hi"}, "flags": Tree{"x": true}}}

	if v, ok := tree.Lookup("app.flags.x"); !ok || v != true {
		t.Fatalf("Lookup(app.flags.x) = %v, %v; want true, true", v, ok)
	}
	if _, ok := tree.Lookup("app.flags.x.y"); ok {
		t.Fatalf("Lookup through a leaf should fail")
	}
	if !tree.HasKey("app", "intro") {
		t.Fatalf("HasKey(app, intro) = false, want true")
	}
	if tree.HasKey("app.flags", "intro") {
		t.Fatalf("HasKey(app.flags, intro) = true, want false")
	}
	if tree.HasKey("missing", "intro") {
		t.Fatalf("HasKey on a missing path should be false")
	}
}

func TestNormalize_FlattensTypedSlices(t *testing.T) {
	day := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	got := Normalize(map[string]any{
		"names": []string{"a", "b"},
		"days":  []time.Time{day},
		"nums":  []int{1, 2},
	})
	want := Tree{
		"names": []any{"a", "b"},
		"days":  []any{day},
		"nums":  []any{1, 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize = %#v, want %#v", got, want)
	}
}

func TestNormalize_ConvertsNestedMaps(t *testing.T) {
	in := map[string]any{
		"a": map[string]any{"b": []any{map[string]any{"c": 1}}},
	}
	got := Normalize(in)
	want := Tree{"a": Tree{"b": []any{Tree{"c": 1}}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize = %#v, want %#v", got, want)
	}
}
