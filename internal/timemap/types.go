package timemap

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Event is one record from the events endpoint. Only the attributes the
// card templates read are lifted into fields; everything else lands in
// Attrs.
type Event struct {
	ID           string
	Date         string
	Time         string
	Datetime     string
	Location     string
	Description  string
	Category     string
	Sources      []string
	Associations []string
	Attrs        map[string]any
}

var eventKeys = map[string]struct{}{
	"id": {}, "date": {}, "time": {}, "datetime": {}, "location": {},
	"description": {}, "category": {}, "sources": {}, "associations": {},
}

// UnmarshalJSON decodes loosely typed event payloads. Missing or wrongly
// typed attributes become zero values rather than errors.
func (e *Event) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Event{
		ID:           stringOf(raw["id"]),
		Date:         stringOf(raw["date"]),
		Time:         stringOf(raw["time"]),
		Datetime:     stringOf(raw["datetime"]),
		Location:     stringOf(raw["location"]),
		Description:  stringOf(raw["description"]),
		Category:     stringOf(raw["category"]),
		Sources:      stringsOf(raw["sources"]),
		Associations: stringsOf(raw["associations"]),
	}
	for key, value := range raw {
		if _, known := eventKeys[key]; known {
			continue
		}
		if e.Attrs == nil {
			e.Attrs = map[string]any{}
		}
		e.Attrs[key] = value
	}
	return nil
}

// Attr returns an extra attribute by name.
func (e Event) Attr(name string) (any, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// Source is supplementary material referenced by events.
type Source struct {
	ID          string   `json:"id"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type,omitempty"`
	URL         string   `json:"url,omitempty"`
	Paths       []string `json:"paths"`
}

// Association groups events into narratives, filters or categories.
type Association struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"desc"`
	Mode        string `json:"mode"`
}

// Domain is the data set shown by the dashboard.
type Domain struct {
	Events       []Event
	Sources      map[string]Source
	Associations []Association
}

// SourcesFor resolves the event's source ids in event order. Unknown ids
// are skipped.
func (d Domain) SourcesFor(ev Event) []Source {
	if len(ev.Sources) == 0 || len(d.Sources) == 0 {
		return nil
	}
	out := make([]Source, 0, len(ev.Sources))
	for _, id := range ev.Sources {
		if src, ok := d.Sources[id]; ok {
			out = append(out, src)
		}
	}
	return out
}

// decodeSources accepts either an object keyed by id or a list.
func decodeSources(data json.RawMessage) (map[string]Source, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}
	out := map[string]Source{}
	if strings.HasPrefix(trimmed, "[") {
		var list []Source
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, err
		}
		for _, src := range list {
			out[src.ID] = src
		}
		return out, nil
	}
	var keyed map[string]Source
	if err := json.Unmarshal(data, &keyed); err != nil {
		return nil, err
	}
	for id, src := range keyed {
		if src.ID == "" {
			src.ID = id
		}
		out[src.ID] = src
	}
	return out, nil
}

func stringOf(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

func stringsOf(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s := stringOf(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
