package card

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"

	"github.com/timemap/cardstack/internal/i18n"
)

// Renderer maps Fields to Fragments for one active language.
type Renderer struct {
	messages i18n.Messages
	logger   *slog.Logger
}

// NewRenderer returns a Renderer. A nil logger means slog.Default().
func NewRenderer(messages i18n.Messages, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{messages: messages, logger: logger}
}

// Messages returns the catalog the renderer formats with.
func (r *Renderer) Messages() i18n.Messages {
	return r.messages
}

// Render returns the fragment for f, or false when f produces no output.
// It never fails: malformed values degrade to no output.
func (r *Renderer) Render(f Field) (Fragment, bool) {
	switch v := f.(type) {
	case DateField:
		return Fragment{
			Kind:  FragmentTime,
			Title: v.Title,
			Text:  NiceDate(v.Value, r.messages),
			Scale: v.ScaleFont,
		}, true

	case TextField:
		if isBlank(v.Value) {
			return Fragment{}, false
		}
		return Fragment{Kind: FragmentText, Title: v.Title, Text: v.Value, Scale: v.ScaleFont}, true

	case TagField:
		return Fragment{
			Kind:  FragmentTag,
			Class: "card-cell m0",
			Text:  cases.Upper(r.messages.Tag).String(v.Value),
			Align: alignOrStart(v.Align),
		}, true

	case ButtonField:
		cell := Fragment{Kind: FragmentCell, Class: "card-cell"}
		cell.Children = appendHeading(cell.Children, v.Title)
		for i, b := range v.Value {
			cell.Children = append(cell.Children, Fragment{
				Kind:  FragmentButton,
				Key:   fmt.Sprintf("card-button-%d", i),
				Text:  b.Text,
				Href:  b.Href,
				Color: b.Color,
			})
		}
		return cell, true

	case LinksField:
		cell := Fragment{Kind: FragmentCell, Class: "card-cell"}
		cell.Children = appendHeading(cell.Children, v.Title)
		row := Fragment{Kind: FragmentBlock, Class: "card-row m0"}
		for i, l := range v.Value {
			row.Children = append(row.Children, Fragment{
				Kind: FragmentLink,
				Key:  fmt.Sprintf("card-links-url-%d", i),
				Text: l.Text,
				Href: l.Href,
			})
		}
		cell.Children = append(cell.Children, row)
		return cell, true

	case ListField:
		if !anyNonBlank(v.Value) {
			return Fragment{}, false
		}
		block := Fragment{Kind: FragmentBlock}
		block.Children = appendHeading(block.Children, v.Title)
		row := Fragment{Kind: FragmentBlock, Class: "card-row m0"}
		for i, s := range v.Value {
			row.Children = append(row.Children, Fragment{
				Kind: FragmentText,
				Key:  fmt.Sprintf("card-list-text-%d", i),
				Text: s,
			})
		}
		block.Children = append(block.Children, row)
		return block, true

	case MediaField:
		cell := Fragment{Kind: FragmentCell, Class: "card-cell"}
		for i, m := range v.Value {
			cell.Children = append(cell.Children, Fragment{
				Kind:  FragmentMedia,
				Key:   fmt.Sprintf("%d", i),
				Title: m.Title,
				Href:  m.Src,
			})
		}
		return cell, true

	case MarkdownField:
		return Fragment{Kind: FragmentMarkdown, Title: v.Title, Text: v.Value, Scale: v.ScaleFont}, true

	case LineField:
		return Fragment{Kind: FragmentDivider, Height: 1}, true

	case LineBreakField:
		times := v.Times
		if times == 0 {
			times = 1
		}
		return Fragment{Kind: FragmentSpacer, Height: times}, true

	case ItemField:
		return Fragment{}, false

	default:
		kind := "<nil>"
		if f != nil {
			kind = string(f.Kind())
		}
		r.logger.Debug("skipping field of unrecognized kind", "kind", kind)
		return Fragment{}, false
	}
}

func appendHeading(children []Fragment, title string) []Fragment {
	if title == "" {
		return children
	}
	return append(children, Fragment{Kind: FragmentHeading, Text: title})
}

func alignOrStart(a Align) Align {
	if a == AlignEnd {
		return AlignEnd
	}
	return AlignStart
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func anyNonBlank(values []string) bool {
	for _, s := range values {
		if !isBlank(s) {
			return true
		}
	}
	return false
}
