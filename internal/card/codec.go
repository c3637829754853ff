package card

import (
	"strconv"
	"strings"
)

// DecodeField converts the untyped {kind, title, value, align, scaleFont,
// times} shape into a Field. It never fails: values of the wrong shape
// decode to zero values and unrecognized kinds become UnknownField.
func DecodeField(raw map[string]any) Field {
	meta := Meta{
		Title:     str(raw["title"]),
		Align:     Align(str(raw["align"])),
		ScaleFont: num(raw["scaleFont"]),
	}
	value := raw["value"]

	switch Kind(str(raw["kind"])) {
	case KindDate:
		return DateField{Meta: meta, Value: str(value)}
	case KindText:
		return TextField{Meta: meta, Value: str(value)}
	case KindTag:
		return TagField{Meta: meta, Value: str(value)}
	case KindMarkdown:
		return MarkdownField{Meta: meta, Value: str(value)}
	case KindList:
		var items []string
		for _, v := range list(value) {
			items = append(items, str(v))
		}
		return ListField{Meta: meta, Value: items}
	case KindLinks:
		var links []Link
		for _, v := range list(value) {
			m := obj(v)
			links = append(links, Link{Text: str(m["text"]), Href: str(m["href"])})
		}
		return LinksField{Meta: meta, Value: links}
	case KindButton:
		var buttons []Button
		for _, v := range list(value) {
			m := obj(v)
			buttons = append(buttons, Button{Text: str(m["text"]), Href: str(m["href"]), Color: str(m["color"])})
		}
		return ButtonField{Meta: meta, Value: buttons}
	case KindMedia:
		var media []MediaItem
		for _, v := range list(value) {
			if s, ok := v.(string); ok {
				media = append(media, MediaItem{Src: s})
				continue
			}
			m := obj(v)
			media = append(media, MediaItem{Src: str(m["src"]), Title: str(m["title"])})
		}
		return MediaField{Meta: meta, Value: media}
	case KindLine:
		return LineField{Meta: meta}
	case KindLineBreak:
		return LineBreakField{Meta: meta, Times: num(raw["times"])}
	case KindItem:
		return ItemField{Meta: meta}
	default:
		return UnknownField{Meta: meta, Name: str(raw["kind"]), Value: value}
	}
}

// DecodeRows decodes a list of rows, each a list of field objects.
func DecodeRows(value any) []Row {
	var rows []Row
	for _, r := range list(value) {
		row := Row{}
		for _, f := range list(r) {
			row = append(row, DecodeField(obj(f)))
		}
		rows = append(rows, row)
	}
	return rows
}

// EncodeField is the inverse of DecodeField.
func EncodeField(f Field) map[string]any {
	m := f.meta()
	out := map[string]any{"kind": string(f.Kind())}
	if m.Title != "" {
		out["title"] = m.Title
	}
	if m.Align != "" {
		out["align"] = string(m.Align)
	}
	if m.ScaleFont != 0 {
		out["scaleFont"] = m.ScaleFont
	}

	switch v := f.(type) {
	case DateField:
		out["value"] = v.Value
	case TextField:
		out["value"] = v.Value
	case TagField:
		out["value"] = v.Value
	case MarkdownField:
		out["value"] = v.Value
	case ListField:
		items := make([]any, len(v.Value))
		for i, s := range v.Value {
			items[i] = s
		}
		out["value"] = items
	case LinksField:
		items := make([]any, len(v.Value))
		for i, l := range v.Value {
			items[i] = map[string]any{"text": l.Text, "href": l.Href}
		}
		out["value"] = items
	case ButtonField:
		items := make([]any, len(v.Value))
		for i, b := range v.Value {
			items[i] = map[string]any{"text": b.Text, "href": b.Href, "color": b.Color}
		}
		out["value"] = items
	case MediaField:
		items := make([]any, len(v.Value))
		for i, md := range v.Value {
			items[i] = map[string]any{"src": md.Src, "title": md.Title}
		}
		out["value"] = items
	case LineBreakField:
		if v.Times != 0 {
			out["times"] = v.Times
		}
	case UnknownField:
		if v.Value != nil {
			out["value"] = v.Value
		}
	}
	return out
}

func str(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	default:
		return ""
	}
}

func num(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func list(v any) []any {
	switch l := v.(type) {
	case []any:
		return l
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out
	default:
		return nil
	}
}

func obj(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}
