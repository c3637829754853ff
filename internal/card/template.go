package card

import (
	"sort"
	"strings"

	"github.com/timemap/cardstack/internal/i18n"
	"github.com/timemap/cardstack/internal/timemap"
)

// Template names shipped with the package.
const (
	TemplateBasic    = "basic"
	TemplateSourced  = "sourced"
	TemplateDeclared = "declared"
)

// missing stands in for an absent location.
const missing = "—"

// Template maps an event to the content shown on its card. Templates are
// pure.
type Template func(timemap.Event) Content

// Templates is the registry of named layouts.
type Templates struct {
	byName map[string]Template
}

// NewTemplates returns a registry holding the stock templates, titled in
// the language of messages.
func NewTemplates(messages i18n.Messages) *Templates {
	t := &Templates{byName: map[string]Template{}}
	basic := Basic(messages)
	t.Register(TemplateBasic, basic)
	t.Register(TemplateSourced, Sourced(messages))
	t.Register(TemplateDeclared, Declared(basic))
	return t
}

// Register adds or replaces a named template.
func (t *Templates) Register(name string, tmpl Template) {
	t.byName[strings.TrimSpace(name)] = tmpl
}

// Lookup returns the template registered under name, falling back to basic.
// The bool reports whether name itself was found.
func (t *Templates) Lookup(name string) (Template, bool) {
	if tmpl, ok := t.byName[strings.TrimSpace(name)]; ok {
		return tmpl, true
	}
	return t.byName[TemplateBasic], false
}

// Names lists the registered template names in sorted order.
func (t *Templates) Names() []string {
	names := make([]string, 0, len(t.byName))
	for name := range t.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Basic lays out the incident date and location, a spacer, and the summary.
func Basic(messages i18n.Messages) Template {
	return func(ev timemap.Event) Content {
		return NewContent(
			headerRow(ev, messages),
			Row{LineBreakField{Times: 0.4}},
			summaryRow(ev, messages),
		)
	}
}

// Sourced is Basic without the spacer row.
func Sourced(messages i18n.Messages) Template {
	return func(ev timemap.Event) Content {
		return NewContent(
			headerRow(ev, messages),
			summaryRow(ev, messages),
		)
	}
}

// Declared uses the rows carried in the event's "card" attribute, and
// fallback when the event has none.
func Declared(fallback Template) Template {
	return func(ev timemap.Event) Content {
		raw, ok := ev.Attr("card")
		if !ok {
			return fallback(ev)
		}
		rows := DecodeRows(raw)
		if len(rows) == 0 {
			return fallback(ev)
		}
		return NewContent(rows...)
	}
}

func headerRow(ev timemap.Event, messages i18n.Messages) Row {
	return Row{
		DateField{
			Meta:  Meta{Title: messages.T("card.incident_date")},
			Value: firstNonBlank(ev.Datetime, ev.Date),
		},
		TextField{
			Meta:  Meta{Title: messages.T("card.location")},
			Value: firstNonBlank(ev.Location, missing),
		},
	}
}

func summaryRow(ev timemap.Event, messages i18n.Messages) Row {
	return Row{
		TextField{
			Meta:  Meta{Title: messages.T("card.summary"), ScaleFont: 1.1},
			Value: ev.Description,
		},
	}
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if !isBlank(v) {
			return v
		}
	}
	return ""
}
