package card

// Kind is the tag of a Field.
type Kind string

const (
	KindDate      Kind = "date"
	KindText      Kind = "text"
	KindTag       Kind = "tag"
	KindButton    Kind = "button"
	KindLinks     Kind = "links"
	KindList      Kind = "list"
	KindMedia     Kind = "media"
	KindMarkdown  Kind = "markdown"
	KindLine      Kind = "line"
	KindLineBreak Kind = "line-break"
	KindItem      Kind = "item"
)

// Field is one typed unit of event information. The set of
// implementations is closed; anything a producer sends that this package
// does not know becomes an UnknownField.
type Field interface {
	Kind() Kind
	meta() Meta
}

// Meta holds the presentation attributes shared by every field.
type Meta struct {
	Title     string
	Align     Align
	ScaleFont float64
}

func (m Meta) meta() Meta { return m }

type DateField struct {
	Meta
	Value string
}

type TextField struct {
	Meta
	Value string
}

type TagField struct {
	Meta
	Value string
}

// Button describes one interactive element of a ButtonField.
type Button struct {
	Text  string
	Href  string
	Color string
}

type ButtonField struct {
	Meta
	Value []Button
}

// Link is a navigable text/href pair.
type Link struct {
	Text string
	Href string
}

type LinksField struct {
	Meta
	Value []Link
}

type ListField struct {
	Meta
	Value []string
}

// MediaItem describes one media element.
type MediaItem struct {
	Src   string
	Title string
}

type MediaField struct {
	Meta
	Value []MediaItem
}

type MarkdownField struct {
	Meta
	Value string
}

type LineField struct {
	Meta
}

// LineBreakField is vertical spacing; Times scales it and defaults to 1.
type LineBreakField struct {
	Meta
	Times float64
}

// ItemField reserves a slot in a row and renders nothing.
type ItemField struct {
	Meta
}

// UnknownField carries a kind this package does not render.
type UnknownField struct {
	Meta
	Name  string
	Value any
}

func (DateField) Kind() Kind      { return KindDate }
func (TextField) Kind() Kind      { return KindText }
func (TagField) Kind() Kind       { return KindTag }
func (ButtonField) Kind() Kind    { return KindButton }
func (LinksField) Kind() Kind     { return KindLinks }
func (ListField) Kind() Kind      { return KindList }
func (MediaField) Kind() Kind     { return KindMedia }
func (MarkdownField) Kind() Kind  { return KindMarkdown }
func (LineField) Kind() Kind      { return KindLine }
func (LineBreakField) Kind() Kind { return KindLineBreak }
func (ItemField) Kind() Kind      { return KindItem }
func (f UnknownField) Kind() Kind { return Kind(f.Name) }
