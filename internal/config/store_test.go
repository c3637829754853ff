package config

import (
	"bytes"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"
)

var testEnv = Env{Now: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInitialize_NilOverrideYieldsDefaults(t *testing.T) {
	store := Initialize(nil, testEnv, quietLogger())
	if !reflect.DeepEqual(store.Tree(), Defaults(testEnv)) {
		t.Fatalf("Initialize(nil) differs from Defaults")
	}
	if store.CardTemplate() != "basic" {
		t.Fatalf("CardTemplate = %q, want basic", store.CardTemplate())
	}
	if store.IntroPopup() {
		t.Fatalf("IntroPopup = true, want false without intro key")
	}
}

func TestInitialize_CoercesRangeStrings(t *testing.T) {
	override := Tree{
		"app": Tree{
			"timeline": Tree{
				"range": []any{"2010-01-01T00:00:00Z", "2015-06-30"},
			},
		},
	}
	store := Initialize(override, testEnv, quietLogger())

	start, end, ok := store.TimeRange("app.timeline.range")
	if !ok {
		t.Fatalf("TimeRange not native times: %#v", store.Tree()["app"].(Tree)["timeline"].(Tree)["range"])
	}
	if want := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Fatalf("range[0] = %v, want %v", start, want)
	}
	if want := time.Date(2015, 6, 30, 0, 0, 0, 0, time.UTC); !end.Equal(want) {
		t.Fatalf("range[1] = %v, want %v", end, want)
	}
}

func TestInitialize_AcceptsTypedRangeSlices(t *testing.T) {
	tests := []struct {
		name       string
		value      any
		start, end time.Time
	}{
		{
			name:  "strings",
			value: []string{"2020-01-01", "2020-06-01"},
			start: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "times",
			value: []time.Time{
				time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2019, 2, 1, 0, 0, 0, 0, time.UTC),
			},
			start: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2019, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))
			override := Tree{"app": Tree{"timeline": Tree{"range": tt.value}}}
			store := Initialize(override, testEnv, logger)

			start, end, ok := store.TimeRange("app.timeline.range")
			if !ok {
				t.Fatalf("TimeRange not native times")
			}
			if !start.Equal(tt.start) || !end.Equal(tt.end) {
				t.Fatalf("range = %v..%v, want %v..%v", start, end, tt.start, tt.end)
			}
			if logs.Len() != 0 {
				t.Fatalf("unexpected warning: %s", logs.String())
			}
		})
	}
}

func TestInitialize_RangeFallsBackOnGarbage(t *testing.T) {
	override := Tree{
		"app": Tree{"timeline": Tree{"range": []any{"not a date", int64(0)}}},
	}
	store := Initialize(override, testEnv, quietLogger())

	start, end, ok := store.TimeRange("app.timeline.range")
	if !ok {
		t.Fatalf("TimeRange not native times")
	}
	if want := time.Date(2001, time.March, 23, 12, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Fatalf("range[0] = %v, want default %v", start, want)
	}
	if !end.Equal(time.UnixMilli(0).UTC()) {
		t.Fatalf("range[1] = %v, want epoch", end)
	}
}

func TestInitialize_RangeNotAPairUsesDefaults(t *testing.T) {
	override := Tree{"app": Tree{"timeline": Tree{"range": "2010"}}}
	store := Initialize(override, testEnv, quietLogger())
	if _, _, ok := store.TimeRange("app.timeline.range"); !ok {
		t.Fatalf("TimeRange should fall back to the default pair")
	}
}

func TestInitialize_IntroFlagTracksKeyPresence(t *testing.T) {
	with := Initialize(Tree{"app": Tree{"intro": []any{"Welcome"}}}, testEnv, quietLogger())
	if !with.IntroPopup() {
		t.Fatalf("IntroPopup = false, want true when app.intro exists")
	}
	// Presence, not truthiness.
	empty := Initialize(Tree{"app": Tree{"intro": ""}}, testEnv, quietLogger())
	if !empty.IntroPopup() {
		t.Fatalf("IntroPopup = false, want true for an empty intro")
	}
	// The derived flag cannot be forced from outside.
	forced := Initialize(Tree{"app": Tree{"flags": Tree{"isIntropopup": true}}}, testEnv, quietLogger())
	if forced.IntroPopup() {
		t.Fatalf("IntroPopup = true, want false without intro key")
	}
}

func TestInitialize_MapRemergedAgainstMapDefaults(t *testing.T) {
	override := Tree{"app": Tree{"map": Tree{"anchor": []any{19.04, -98.2}}}}
	store := Initialize(override, testEnv, quietLogger())

	anchor, _ := store.Lookup("app.map.anchor")
	if !reflect.DeepEqual(anchor, []any{19.04, -98.2}) {
		t.Fatalf("app.map.anchor = %#v, want override", anchor)
	}
	if got := store.Int("app.map.startZoom"); got != 11 {
		t.Fatalf("app.map.startZoom = %d, want 11 from map defaults", got)
	}
	if _, ok := store.Lookup("app.space3d"); ok {
		t.Fatalf("app.space3d should stay absent when not configured")
	}
}

func TestInitialize_Space3DRemergedWhenPresent(t *testing.T) {
	store := Initialize(Tree{"app": Tree{"space3d": Tree{"camera": "orbit"}}}, testEnv, quietLogger())
	if got := store.String("app.space3d.camera"); got != "orbit" {
		t.Fatalf("app.space3d.camera = %q, want orbit", got)
	}
}

func TestInitialize_FeaturesFromOverride(t *testing.T) {
	store := Initialize(Tree{"features": Tree{"USE_SOURCES": true, "HIGHLIGHT_GROUPS": true}}, testEnv, quietLogger())
	f := store.Features()
	if !f.UseSources || !f.HighlightGroups {
		t.Fatalf("Features = %+v, want UseSources and HighlightGroups", f)
	}
	if f.UseCover {
		t.Fatalf("Features.UseCover = true, want default false")
	}
}

func TestAppStore_WithIsCopyOnWrite(t *testing.T) {
	orig := Initialize(nil, testEnv, quietLogger())
	next := orig.With("app.flags.isCardstack", false)

	if !orig.Bool("app.flags.isCardstack") {
		t.Fatalf("original store mutated by With")
	}
	if next.Bool("app.flags.isCardstack") {
		t.Fatalf("With did not apply the change")
	}
}

func TestAppStore_WithRecomputesIntroFlag(t *testing.T) {
	orig := Initialize(nil, testEnv, quietLogger())
	next := orig.With("app.intro", []any{"Hello"})
	if !next.IntroPopup() {
		t.Fatalf("IntroPopup = false after adding app.intro")
	}
	if orig.IntroPopup() {
		t.Fatalf("original IntroPopup changed")
	}
}

func TestAppStore_WithKeepsEnvAndLogger(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	orig := Initialize(nil, Env{ScreenHeight: 30, Now: testEnv.Now}, logger)
	logs.Reset()

	next := orig.With("app.timeline.rangeLimits", []any{"1990-01-01", "garbage"})
	_, end, ok := next.TimeRange("app.timeline.rangeLimits")
	if !ok {
		t.Fatalf("TimeRange not native times")
	}
	if !end.Equal(testEnv.Now) {
		t.Fatalf("rangeLimits[1] = %v, want env Now %v", end, testEnv.Now)
	}
	if !bytes.Contains(logs.Bytes(), []byte("unparseable range bound")) {
		t.Fatalf("With did not log through the store logger: %q", logs.String())
	}
	if got := next.Int("app.timeline.dimensions.height"); got != 170 {
		t.Fatalf("height after With = %d, want 170", got)
	}
}

func TestDefaults_SmallScreenUsesCompactTimeline(t *testing.T) {
	small := Initialize(nil, Env{ScreenHeight: 30, Now: testEnv.Now}, quietLogger())
	large := Initialize(nil, Env{ScreenHeight: 60, Now: testEnv.Now}, quietLogger())
	if got := small.Int("app.timeline.dimensions.height"); got != 170 {
		t.Fatalf("small height = %d, want 170", got)
	}
	if got := large.Int("app.timeline.dimensions.height"); got != 250 {
		t.Fatalf("large height = %d, want 250", got)
	}
}

func TestDefaults_LanguageDrivesCopy(t *testing.T) {
	store := Initialize(nil, Env{Language: "en-US", Now: testEnv.Now}, quietLogger())
	if got := store.Language(); got != "en-US" {
		t.Fatalf("Language = %q, want en-US", got)
	}
	if got := store.String("app.toolbar.panels.filters.label"); got != "Filters" {
		t.Fatalf("filters label = %q, want Filters", got)
	}
}
