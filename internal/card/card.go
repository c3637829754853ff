package card

import (
	"fmt"
	"strings"

	"github.com/timemap/cardstack/internal/timemap"
)

// Card presents one event. It starts collapsed; while expanded it lists
// the event's sources below the content rows.
type Card struct {
	Event   timemap.Event
	Content Content
	// Sources are referenced, not owned; the domain store keeps them.
	Sources []timemap.Source
	// IsSelected adds the "selected" marker to the card.
	IsSelected bool
	// OnSelect is called on primary interaction, whatever the expansion
	// state.
	OnSelect func(timemap.Event)

	renderer *Renderer
	expanded bool
}

// New builds a collapsed card for ev using tmpl.
func New(ev timemap.Event, tmpl Template, sources []timemap.Source, r *Renderer) *Card {
	return &Card{
		Event:    ev,
		Content:  tmpl(ev),
		Sources:  sources,
		renderer: r,
	}
}

// Expanded reports whether the sources section is shown.
func (c *Card) Expanded() bool { return c.expanded }

// HasToggle reports whether the card offers an expansion control. Cards
// without sources have none.
func (c *Card) HasToggle() bool { return len(c.Sources) > 0 }

// Toggle flips the expansion state and returns the new state.
func (c *Card) Toggle() bool {
	c.expanded = !c.expanded
	return c.expanded
}

// Select fires the selection callback. It never changes expansion.
func (c *Card) Select() {
	if c.OnSelect != nil {
		c.OnSelect(c.Event)
	}
}

// Render builds the card's fragment tree.
func (c *Card) Render() Fragment {
	class := "event-card"
	if c.IsSelected {
		class += " selected"
	}
	root := Fragment{
		Kind:     FragmentCard,
		Key:      c.Content.ID(),
		Class:    class,
		Children: Assemble(c.Content, c.renderer),
	}
	if c.expanded {
		root.Children = append(root.Children, c.bottomHalf())
	}
	if c.HasToggle() {
		root.Children = append(root.Children, Fragment{
			Kind: FragmentToggle,
			Text: c.renderer.Messages().T("card.sources"),
			Open: c.expanded,
		})
	}
	return root
}

func (c *Card) bottomHalf() Fragment {
	messages := c.renderer.Messages()
	half := Fragment{Kind: FragmentBlock, Class: "card-bottomhalf"}
	half.Children = append(half.Children, Fragment{
		Kind:     FragmentRow,
		Class:    "card-row",
		Children: []Fragment{{Kind: FragmentHeading, Text: messages.T("card.sources")}},
	})

	if len(c.Sources) == 0 {
		half.Children = append(half.Children, Fragment{
			Kind:  FragmentRow,
			Class: "card-row",
			Children: []Fragment{{
				Kind:     FragmentCell,
				Class:    "card-cell",
				Children: []Fragment{{Kind: FragmentText, Text: messages.T("card.no_sources")}},
			}},
		})
		return half
	}

	for _, src := range c.Sources {
		half.Children = append(half.Children, c.sourceBlock(src))
	}
	return half
}

func (c *Card) sourceBlock(src timemap.Source) Fragment {
	block := Fragment{
		Kind:  FragmentRow,
		Key:   "source-" + src.ID,
		Class: "card-row source-content",
	}
	if src.Title != "" {
		cell := Fragment{Kind: FragmentCell, Class: "card-cell"}
		cell.Children = append(cell.Children, Fragment{Kind: FragmentHeading, Text: src.Title})
		if src.Description != "" {
			cell.Children = append(cell.Children, Fragment{Kind: FragmentText, Text: src.Description})
		}
		block.Children = append(block.Children, cell)
	}
	if len(src.Paths) > 0 {
		label := strings.TrimSpace(src.Type)
		if label == "" {
			label = c.renderer.Messages().T("card.media")
		}
		cell := Fragment{Kind: FragmentCell, Class: "card-cell"}
		for i, path := range src.Paths {
			cell.Children = append(cell.Children, Fragment{
				Kind:  FragmentMedia,
				Key:   fmt.Sprintf("source-media-%d", i),
				Title: fmt.Sprintf("%s %d", label, i+1),
				Href:  path,
			})
		}
		block.Children = append(block.Children, cell)
	}
	return block
}
