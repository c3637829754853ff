package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	toml "github.com/pelletier/go-toml/v2"
)

// rangePaths are the range-bound fields whose two entries must be times.
var rangePaths = []string{"app.timeline.range", "app.timeline.rangeLimits"}

// AppStore is the merged application tree. It is built once and never
// mutated; With returns a modified copy.
type AppStore struct {
	tree   Tree
	env    Env
	logger *slog.Logger
}

// Features mirrors the boolean feature flags of the merged tree.
type Features struct {
	ColorByAssociation bool
	UseAssociations    bool
	UseFullscreen      bool
	UseSources         bool
	UseCover           bool
	UseSites           bool
	UseRegions         bool
	GraphNonlocated    bool
	HighlightGroups    bool
}

// Initialize merges override onto the defaults for env and applies the
// post-merge fixups. A nil override yields the defaults.
func Initialize(override Tree, env Env, logger *slog.Logger) *AppStore {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := Defaults(env)
	merged := defaults
	if override != nil {
		normalized, _ := asTree(Normalize(override))
		merged = Merge(defaults, normalized)
	}
	applyFixups(merged, defaults, logger)
	return &AppStore{tree: merged, env: env, logger: logger}
}

// With returns a copy of the store with value set at path. Derived state
// is recomputed on the copy.
func (s *AppStore) With(path string, value any) *AppStore {
	tree := s.tree.Clone()
	tree.set(path, Normalize(value))
	env := s.env
	if lang, ok := tree.Lookup("app.language"); ok {
		env.Language, _ = lang.(string)
	}
	applyFixups(tree, Defaults(env), s.logger)
	return &AppStore{tree: tree, env: env, logger: s.logger}
}

// Tree returns a deep copy of the merged tree.
func (s *AppStore) Tree() Tree {
	return s.tree.Clone()
}

// Lookup returns the raw value at a dotted path.
func (s *AppStore) Lookup(path string) (any, bool) {
	v, ok := s.tree.Lookup(path)
	if !ok {
		return nil, false
	}
	return cloneValue(v), true
}

// Bool returns the boolean at path, false when absent or not a bool.
func (s *AppStore) Bool(path string) bool {
	v, _ := s.tree.Lookup(path)
	b, _ := v.(bool)
	return b
}

// String returns the string at path, empty when absent or not a string.
func (s *AppStore) String(path string) string {
	v, _ := s.tree.Lookup(path)
	str, _ := v.(string)
	return str
}

// Int returns the integer at path, zero when absent or not numeric.
func (s *AppStore) Int(path string) int {
	v, _ := s.tree.Lookup(path)
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// TimeRange returns the two entries of a range-bound field.
func (s *AppStore) TimeRange(path string) (time.Time, time.Time, bool) {
	v, _ := s.tree.Lookup(path)
	list, ok := v.([]any)
	if !ok || len(list) < 2 {
		return time.Time{}, time.Time{}, false
	}
	start, ok1 := list[0].(time.Time)
	end, ok2 := list[1].(time.Time)
	return start, end, ok1 && ok2
}

// Features returns the feature flags.
func (s *AppStore) Features() Features {
	return Features{
		ColorByAssociation: s.Bool("features.COLOR_BY_ASSOCIATION"),
		UseAssociations:    s.Bool("features.USE_ASSOCIATIONS"),
		UseFullscreen:      s.Bool("features.USE_FULLSCREEN"),
		UseSources:         s.Bool("features.USE_SOURCES"),
		UseCover:           s.Bool("features.USE_COVER"),
		UseSites:           s.Bool("features.USE_SITES"),
		UseRegions:         s.Bool("features.USE_REGIONS"),
		GraphNonlocated:    s.Bool("features.GRAPH_NONLOCATED"),
		HighlightGroups:    s.Bool("features.HIGHLIGHT_GROUPS"),
	}
}

// CardTemplate is the configured card layout template name.
func (s *AppStore) CardTemplate() string {
	return s.String("ui.card.layout.template")
}

// Language is the active language.
func (s *AppStore) Language() string {
	return s.String("app.language")
}

// IntroPopup reports the derived intro flag.
func (s *AppStore) IntroPopup() bool {
	return s.Bool("app.flags.isIntropopup")
}

func applyFixups(tree, defaults Tree, logger *slog.Logger) {
	for _, path := range rangePaths {
		fixRange(tree, defaults, path, logger)
	}

	tree.set("app.flags.isIntropopup", tree.HasKey("app", "intro"))

	if app, ok := asTree(tree["app"]); ok {
		if m, ok := asTree(app["map"]); ok {
			app["map"] = Merge(MapDefaults(), m)
		}
		if space, ok := asTree(app["space3d"]); ok {
			app["space3d"] = Merge(Space3DDefaults(), space)
		}
	}
}

func fixRange(tree, defaults Tree, path string, logger *slog.Logger) {
	fallback, _ := defaults.Lookup(path)
	fallbackList, _ := fallback.([]any)

	current, _ := tree.Lookup(path)
	list, ok := Normalize(current).([]any)
	if !ok || len(list) < 2 {
		logger.Warn("range is not a pair, using defaults", "path", path)
		tree.set(path, cloneValue(fallbackList))
		return
	}

	fixed := make([]any, len(list))
	copy(fixed, list)
	for i := 0; i < 2; i++ {
		t, ok := coerceTime(list[i])
		if !ok {
			logger.Warn("unparseable range bound, using default", "path", path, "index", i, "value", list[i])
			if i < len(fallbackList) {
				fixed[i] = fallbackList[i]
			}
			continue
		}
		fixed[i] = t
	}
	tree.set(path, fixed)
}

// coerceTime converts the temporal encodings produced by config decoders
// (and by round-tripping through text) back into time.Time.
func coerceTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case toml.LocalDate:
		return v.AsTime(time.UTC), true
	case toml.LocalDateTime:
		return v.AsTime(time.UTC), true
	case int:
		return time.UnixMilli(int64(v)).UTC(), true
	case int64:
		return time.UnixMilli(v).UTC(), true
	case float64:
		return time.UnixMilli(int64(v)).UTC(), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t, true
		}
		t, err := dateparse.ParseIn(s, time.UTC)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	default:
		return time.Time{}, false
	}
}
