// Package config builds the application store from defaults and a
// deployment override.
//
// # Overview
//
// The dashboard's runtime behavior is driven by a single nested tree (the
// "store"). A complete default tree lives in code (Defaults); a deployment
// file supplies a partial tree under its "store" key plus display strings
// and endpoint paths. Initialize merges the two exactly once at startup.
//
// # Merge Rules
//
// Merge is a left-biased deep merge:
//
//   - Mappings present on both sides are merged recursively, keeping the
//     default's map type
//   - Everything else in the override (arrays, dates, scalars) replaces the
//     default value wholesale, subtree and all
//   - A mapping in the override where the default is a scalar (or the other
//     way round) is a plain replacement
//   - nil override values are ignored, so every default key stays defined
//
// For example:
//
//	Merge({a: {x: 1, y: 2}}, {a: {x: 9}})  →  {a: {x: 9, y: 2}}
//
// Overrides pass through Normalize first, which turns decoder maps into
// Tree and typed slices such as []string into []any.
//
// # Fixups
//
// After the structural merge Initialize:
//
//  1. Coerces app.timeline.range and app.timeline.rangeLimits entries to
//     time.Time. Decoders hand these over as strings, TOML local dates or
//     epoch milliseconds.
//  2. Sets app.flags.isIntropopup to whether app.intro exists.
//  3. Re-merges app.map and app.space3d, when present, against their own
//     defaults (MapDefaults, Space3DDefaults).
//
// # Deployment Files
//
// LoadDeployment picks a decoder by extension:
//
//   - .toml: pelletier/go-toml
//   - .yaml, .yml: yaml.v3
//   - .json, .jsonc: tidwall/jsonc, so comments and trailing commas work
//
// A missing file is not an error; the defaults are used as-is.
//
// Example config.toml:
//
//	title = "example"
//	SERVER_ROOT = "http://localhost:4040"
//	EVENTS_EXT = "/api/timemap_data/export_events/deeprows"
//	SOURCES_EXT = "/api/timemap_data/export_sources/deepids"
//
//	[store.app.map]
//	anchor = [19.043773699684763, -98.20498566211319]
//
//	[store.features]
//	USE_SOURCES = true
//
// # Immutability
//
// AppStore never changes after Initialize. With returns a modified copy
// with the fixups re-applied, so derived flags always agree with the keys
// they are derived from.
package config
