package config

import (
	"time"

	"github.com/timemap/cardstack/internal/i18n"
)

// Env carries the facts about the running client that shape the defaults.
type Env struct {
	// ScreenHeight is the terminal height in rows; zero means unknown.
	ScreenHeight int
	Mobile       bool
	Now          time.Time
	Language     string
}

// smallScreenRows is the height below which the compact timeline is used.
const smallScreenRows = 40

const fallbackEventColor = "#f45b5b"

var coloringPalette = []any{"#f45b5b", "#f2c94c", "#6fcf97", "#56ccf2", "#bb6bd9", "#f2994a"}

// Tab icons for the toolbar panels.
const (
	iconCategory  = "widgets"
	iconFilter    = "filter_list"
	iconNarrative = "timeline"
	iconShape     = "change_history"
)

// Defaults returns the complete default application tree.
func Defaults(env Env) Tree {
	now := env.Now
	if now.IsZero() {
		now = time.Now()
	}
	lang := env.Language
	if lang == "" {
		lang = i18n.DefaultLocale
	}
	msgs := i18n.For(lang)
	small := env.ScreenHeight > 0 && env.ScreenHeight < smallScreenRows

	return Tree{
		"domain": Tree{
			"events":        []any{},
			"categories":    []any{},
			"associations":  []any{},
			"sources":       Tree{},
			"sites":         []any{},
			"shapes":        []any{},
			"regions":       []any{},
			"notifications": []any{},
		},
		"app": Tree{
			"debug":       true,
			"errors":      Tree{"source": false},
			"highlighted": nil,
			"selected":    []any{},
			"source":      nil,
			"associations": Tree{
				"coloringSet": []any{},
				"filters":     []any{},
				"narrative":   nil,
				"categories":  []any{},
				"views": Tree{
					"events": true,
					"routes": false,
					"sites":  true,
				},
			},
			"shapes":   []any{},
			"isMobile": env.Mobile,
			"language": msgs.Locale,
			"cluster": Tree{
				"radius":  30,
				"minZoom": 2,
				"maxZoom": 16,
			},
			"timeline": Tree{
				"dimensions": Tree{
					"ticks":          15,
					"height":         pick(small, 170, 250),
					"width":          0,
					"marginLeft":     70,
					"marginTop":      pick(small, 5, 10),
					"marginBottom":   60,
					"contentHeight":  pick(small, 160, 200),
					"width_controls": 100,
				},
				"range": []any{
					time.Date(2001, time.March, 23, 12, 0, 0, 0, time.UTC),
					time.Date(2021, time.March, 23, 12, 0, 0, 0, time.UTC),
				},
				"rangeLimits": []any{
					time.Date(1, time.February, 1, 1, 0, 0, 0, time.UTC),
					now,
				},
				"zoomLevels": []any{
					Tree{"label": msgs.T("timeline.zoom.20y"), "duration": 10512000},
					Tree{"label": msgs.T("timeline.zoom.2y"), "duration": 1051200},
					Tree{"label": msgs.T("timeline.zoom.3m"), "duration": 129600},
					Tree{"label": msgs.T("timeline.zoom.3d"), "duration": 4320},
					Tree{"label": msgs.T("timeline.zoom.12h"), "duration": 720},
					Tree{"label": msgs.T("timeline.zoom.1h"), "duration": 60},
				},
			},
			"flags": Tree{
				"isFetchingDomain":  false,
				"isFetchingSources": false,
				"isCover":           true,
				"isCardstack":       true,
				"isInfopopup":       false,
				"isIntropopup":      false,
				"isShowingSites":    true,
			},
			"cover": Tree{
				"title":         "Título del proyecto",
				"description":   "Descripción del proyecto.",
				"exploreButton": "EXPLORAR",
			},
			"toolbar": Tree{
				"panels": Tree{
					"categories": Tree{
						"default": panel(msgs, iconCategory, "categories_label", "explore_by_category"),
					},
					"filters":    panel(msgs, iconFilter, "filters_label", "explore_by_filter"),
					"narratives": panel(msgs, iconNarrative, "narratives_label", "explore_by_narrative"),
					"shapes":     panel(msgs, iconShape, "shapes_label", "explore_by_shape"),
				},
			},
			"loading": false,
		},
		"ui": Tree{
			"tiles": Tree{
				"current": "openstreetmap",
				"default": "openstreetmap",
			},
			"style": Tree{
				"categories": Tree{"default": fallbackEventColor},
				"narratives": Tree{
					"default": Tree{"opacity": 0.9, "stroke": fallbackEventColor, "strokeWidth": 3},
				},
				"regions": Tree{
					"default": Tree{"stroke": "blue", "strokeWidth": 3, "opacity": 0.9},
				},
				"clusters": Tree{"radial": false},
			},
			"card": Tree{
				"layout": Tree{"template": "basic"},
			},
			"coloring": Tree{
				"maxNumOfColors": 4,
				"colors":         cloneValue(coloringPalette),
			},
			"dom": Tree{
				"timeline":   "timeline",
				"timeslider": "timeslider",
				"map":        "map",
			},
			"eventRadius": 8,
		},
		"features": Tree{
			"USE_COVER":            false,
			"USE_ASSOCIATIONS":     false,
			"USE_SITES":            false,
			"USE_SOURCES":          false,
			"USE_REGIONS":          false,
			"USE_FULLSCREEN":       false,
			"COLOR_BY_ASSOCIATION": false,
			"GRAPH_NONLOCATED":     false,
			"HIGHLIGHT_GROUPS":     false,
		},
	}
}

// MapDefaults is the narrower default tree for app.map.
func MapDefaults() Tree {
	return Tree{
		"anchor":    []any{31.356397, 34.784818},
		"startZoom": 11,
		"minZoom":   2,
		"maxZoom":   16,
		"bounds":    nil,
		"maxBounds": []any{
			[]any{180, -180},
			[]any{-180, 180},
		},
	}
}

// Space3DDefaults is the narrower default tree for app.space3d.
func Space3DDefaults() Tree {
	return Tree{}
}

func panel(msgs i18n.Messages, icon, labelKey, exploreKey string) Tree {
	return Tree{
		"icon":        icon,
		"label":       msgs.T("toolbar." + labelKey),
		"title":       msgs.T("toolbar." + exploreKey + "__title"),
		"description": msgs.T("toolbar." + exploreKey + "__description"),
	}
}

func pick(cond bool, a, b int) int {
	if cond {
		return a
	}
	return b
}
