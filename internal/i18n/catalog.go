// Package i18n holds the copy catalog used by cards and defaults.
//
// Only one language is active per process. Catalogs are embedded YAML files
// under locales/, one per locale, and the active locale is chosen with an
// x/text language matcher so regional variants fall back sensibly
// ("es" and "es-AR" both resolve to es-MX).
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is used when nothing better matches.
const DefaultLocale = "es-MX"

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Months   []string          `yaml:"months"`
	Messages map[string]string `yaml:"messages"`
}

// Messages is the copy for a single locale.
type Messages struct {
	Locale string
	Tag    language.Tag
	months []string
	text   map[string]string
}

// T returns the message for key, or the key itself when missing.
func (m Messages) T(key string) string {
	if v, ok := m.text[key]; ok {
		return v
	}
	return key
}

// Month returns the localized name for month (1-12).
func (m Messages) Month(month int) string {
	if month < 1 || month > len(m.months) {
		return ""
	}
	return m.months[month-1]
}

// Bundle contains every embedded locale.
type Bundle struct {
	locales map[string]Messages
	tags    []language.Tag
	matcher language.Matcher
}

//go:embed locales/*.yaml
var embeddedFS embed.FS

var defaultBundle = mustLoadEmbedded()

// Default returns the process-wide embedded bundle.
func Default() *Bundle {
	return defaultBundle
}

// For is shorthand for Default().Lookup(locale).
func For(locale string) Messages {
	return defaultBundle.Lookup(locale)
}

// LoadFromFS loads locales/*.yaml from catalogFS.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: map[string]Messages{}}
	for _, path := range paths {
		data, err := fs.ReadFile(catalogFS, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		locale := strings.TrimSpace(file.Locale)
		if locale == "" {
			return nil, fmt.Errorf("catalog %s: locale is required", path)
		}
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: parse locale %q: %w", path, locale, err)
		}
		if len(file.Months) != 12 {
			return nil, fmt.Errorf("catalog %s: want 12 month names, got %d", path, len(file.Months))
		}
		b.locales[locale] = Messages{Locale: locale, Tag: tag, months: file.Months, text: file.Messages}
	}
	if _, ok := b.locales[DefaultLocale]; !ok {
		return nil, fmt.Errorf("default locale %s is not defined in catalogs", DefaultLocale)
	}

	// The default locale goes first so the matcher falls back to it.
	b.tags = append(b.tags, b.locales[DefaultLocale].Tag)
	for _, name := range b.Locales() {
		if name != DefaultLocale {
			b.tags = append(b.tags, b.locales[name].Tag)
		}
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Locales lists the loaded locale names in sorted order.
func (b *Bundle) Locales() []string {
	names := make([]string, 0, len(b.locales))
	for name := range b.locales {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves locale to the closest loaded catalog.
func (b *Bundle) Lookup(locale string) Messages {
	if m, ok := b.locales[strings.TrimSpace(locale)]; ok {
		return m
	}
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return b.locales[DefaultLocale]
	}
	_, idx, _ := b.matcher.Match(tag)
	for _, m := range b.locales {
		if m.Tag == b.tags[idx] {
			return m
		}
	}
	return b.locales[DefaultLocale]
}

func mustLoadEmbedded() *Bundle {
	b, err := LoadFromFS(embeddedFS)
	if err != nil {
		panic("i18n: load embedded catalogs: " + err.Error())
	}
	return b
}
