package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/timemap/cardstack/internal/card"
)

// columnGap separates the spans of a row.
const columnGap = 2

// painter draws card fragments as terminal text.
type painter struct {
	styles Styles
}

func newPainter(theme Theme) painter {
	return painter{styles: theme.Styles()}
}

// paintCard renders a card fragment inside a bordered box of the given
// outer width. focused marks the card under the cursor.
func (p painter) paintCard(f card.Fragment, width int, focused bool) string {
	box := p.styles.Card
	if focused {
		box = p.styles.CardFocus
	}
	inner := width - box.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}

	var lines []string
	if strings.Contains(f.Class, "selected") {
		lines = append(lines, p.styles.SuccessText.Render("●"))
	}
	for _, child := range f.Children {
		if out, ok := p.paint(child, inner); ok {
			lines = append(lines, out)
		}
	}
	return box.Width(inner + box.GetHorizontalPadding()).Render(strings.Join(lines, "\n"))
}

// paint renders f at width. It reports false when f has nothing to show.
func (p painter) paint(f card.Fragment, width int) (string, bool) {
	switch f.Kind {
	case card.FragmentRow:
		return p.paintRow(f, width)

	case card.FragmentSpan:
		if len(f.Children) == 0 {
			return "", false
		}
		return p.paint(f.Children[0], width)

	case card.FragmentCard, card.FragmentCell, card.FragmentBlock:
		return p.paintStack(f.Children, width)

	case card.FragmentHeading:
		return p.wrap(p.styles.Heading.Render(f.Text), width), true

	case card.FragmentText:
		style := p.styles.Text
		if f.Scale > 1 {
			style = style.Bold(true)
		}
		return p.titled(f.Title, p.wrap(style.Render(f.Text), width), width), true

	case card.FragmentTime:
		return p.titled(f.Title, p.styles.InfoText.Render(f.Text), width), true

	case card.FragmentTag:
		tag := p.styles.Tag.Render(ansi.Truncate(f.Text, width-2, "…"))
		if f.Align == card.AlignEnd {
			return lipgloss.PlaceHorizontal(width, lipgloss.Right, tag), true
		}
		return tag, true

	case card.FragmentButton:
		return p.styles.ButtonStyle(f.Color).Render(ansi.Truncate(f.Text, width-2, "…")), true

	case card.FragmentLink:
		return p.link(f.Text, f.Href, width), true

	case card.FragmentMedia:
		label := f.Title
		if label == "" {
			label = f.Href
		}
		line := p.styles.MutedText.Render("▣ ") + p.styles.Text.Render(label)
		if f.Href != "" && f.Href != label {
			line += " " + p.styles.FaintText.Render(f.Href)
		}
		return ansi.Truncate(line, width, "…"), true

	case card.FragmentMarkdown:
		out := renderMarkdown(f.Text, p.styles, width)
		if out == "" {
			return "", false
		}
		return p.titled(f.Title, out, width), true

	case card.FragmentDivider:
		return p.styles.FaintText.Render(strings.Repeat("─", width)), true

	case card.FragmentSpacer:
		return strings.Repeat("\n", spacerLines(f.Height)-1), true

	case card.FragmentToggle:
		marker := "▸ "
		if f.Open {
			marker = "▾ "
		}
		return p.styles.AccentText.Render(marker + f.Text), true
	}
	return "", false
}

// paintRow lays the row's visible spans side by side in equal columns. A
// row with no spans is a blank line.
func (p painter) paintRow(f card.Fragment, width int) (string, bool) {
	if len(f.Children) == 0 {
		return "", true
	}
	var visible []card.Fragment
	for _, span := range f.Children {
		if len(span.Children) > 0 {
			visible = append(visible, span)
		}
	}
	if len(visible) == 0 {
		return "", false
	}
	if len(visible) == 1 {
		return p.paint(visible[0], width)
	}

	colWidth := (width - columnGap*(len(visible)-1)) / len(visible)
	if colWidth < 8 {
		return p.paintStack(visible, width)
	}
	cols := make([]string, 0, len(visible)*2)
	for i, span := range visible {
		out, _ := p.paint(span, colWidth)
		if i > 0 {
			cols = append(cols, strings.Repeat(" ", columnGap))
		}
		cols = append(cols, lipgloss.NewStyle().Width(colWidth).Render(out))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...), true
}

func (p painter) paintStack(children []card.Fragment, width int) (string, bool) {
	var parts []string
	for _, child := range children {
		if out, ok := p.paint(child, width); ok {
			parts = append(parts, out)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n"), true
}

func (p painter) titled(title, body string, width int) string {
	if title == "" {
		return body
	}
	head := p.styles.MutedText.Render(ansi.Truncate(title, width, "…"))
	return head + "\n" + body
}

func (p painter) wrap(s string, width int) string {
	return ansi.Wrap(s, width, wrapBreakpoints)
}

func (p painter) link(text, href string, width int) string {
	if text == "" {
		text = href
	}
	out := p.styles.AccentText.Underline(true).Render(text)
	if href != "" && href != text {
		out += " " + p.styles.FaintText.Render(href)
	}
	return ansi.Truncate(out, width, "…")
}

// spacerLines converts a height in line units to whole terminal lines.
func spacerLines(height float64) int {
	n := int(math.Ceil(height))
	if n < 1 {
		n = 1
	}
	return n
}
