package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// wrapBreakpoints are the extra characters ansi.Wrap may break after.
const wrapBreakpoints = " ,.;-+|"

var (
	markdownParser     goldmark.Markdown
	markdownParserOnce sync.Once
)

func getMarkdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParser = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownParser
}

// renderMarkdown renders markdown field values as styled terminal text
// wrapped to width. Soft line breaks become spaces so hard-wrapped
// source reflows.
func renderMarkdown(input string, styles Styles, width int) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	source := []byte(input)
	document := getMarkdownParser().Parser().Parse(text.NewReader(source))

	r := &markdownRenderer{source: source, styles: styles, width: width}
	_ = ast.Walk(document, r.walk)
	return strings.TrimRight(r.output.String(), "\n")
}

// markdownRenderer accumulates inline content per block and wraps it as a
// unit when the block closes.
type markdownRenderer struct {
	source []byte
	styles Styles
	width  int

	output strings.Builder
	inline strings.Builder

	prefix        string
	pendingBullet string

	boldCount   int
	italicCount int
	strikeCount int

	lists []listState
}

type listState struct {
	ordered bool
	counter int
	tight   bool
}

func (r *markdownRenderer) currentWidth() int {
	w := r.width - ansi.StringWidth(r.prefix)
	if w < 10 {
		w = 10
	}
	return w
}

func (r *markdownRenderer) linePrefix() string {
	if r.pendingBullet != "" {
		b := r.pendingBullet
		r.pendingBullet = ""
		return b
	}
	return r.prefix
}

func (r *markdownRenderer) flushBlock(content string, blank bool) {
	if content == "" {
		return
	}
	wrapped := ansi.Wrap(content, r.currentWidth(), wrapBreakpoints)
	for i, line := range strings.Split(wrapped, "\n") {
		if i == 0 {
			r.output.WriteString(r.linePrefix())
		} else {
			r.output.WriteString(r.prefix)
		}
		r.output.WriteString(line)
		r.output.WriteString("\n")
	}
	if blank && !r.inTightList() {
		r.output.WriteString("\n")
	}
}

func (r *markdownRenderer) inTightList() bool {
	return len(r.lists) > 0 && r.lists[len(r.lists)-1].tight
}

func (r *markdownRenderer) styled(s string) string {
	style := r.styles.Text
	if r.boldCount > 0 {
		style = style.Bold(true)
	}
	if r.italicCount > 0 {
		style = style.Italic(true)
	}
	if r.strikeCount > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(s)
}

func (r *markdownRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		if entering {
			r.inline.Reset()
		} else {
			r.flushBlock(r.inline.String(), true)
			r.inline.Reset()
		}

	case *ast.Heading:
		if entering {
			r.inline.Reset()
		} else {
			content := ansi.Strip(r.inline.String())
			r.inline.Reset()
			r.flushBlock(r.styles.Heading.Render(content), true)
		}

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		if entering {
			r.codeBlock(node)
			return ast.WalkSkipChildren, nil
		}

	case *ast.Blockquote:
		if entering {
			r.prefix += "│ "
		} else {
			r.prefix = strings.TrimSuffix(r.prefix, "│ ")
		}

	case *ast.List:
		if entering {
			r.lists = append(r.lists, listState{ordered: n.IsOrdered(), counter: n.Start, tight: n.IsTight})
		} else {
			r.lists = r.lists[:len(r.lists)-1]
			if len(r.lists) == 0 {
				r.output.WriteString("\n")
			}
		}

	case *ast.ListItem:
		top := &r.lists[len(r.lists)-1]
		if entering {
			bullet := "• "
			if top.ordered {
				bullet = fmt.Sprintf("%d. ", top.counter)
				top.counter++
			}
			r.pendingBullet = r.prefix + bullet
			r.prefix += strings.Repeat(" ", ansi.StringWidth(bullet))
		} else {
			r.prefix = r.prefix[:len(r.prefix)-ansi.StringWidth(bulletFor(*top))]
		}

	case *ast.ThematicBreak:
		if entering {
			r.output.WriteString(r.styles.FaintText.Render(strings.Repeat("─", r.currentWidth())))
			r.output.WriteString("\n\n")
		}

	case *ast.Text:
		if entering {
			r.inline.WriteString(r.styled(string(n.Segment.Value(r.source))))
			if n.SoftLineBreak() {
				r.inline.WriteString(" ")
			}
			if n.HardLineBreak() {
				r.inline.WriteString("\n")
			}
		}

	case *ast.String:
		if entering {
			r.inline.WriteString(r.styled(string(n.Value)))
		}

	case *ast.Emphasis:
		delta := 1
		if !entering {
			delta = -1
		}
		if n.Level >= 2 {
			r.boldCount += delta
		} else {
			r.italicCount += delta
		}

	case *extast.Strikethrough:
		if entering {
			r.strikeCount++
		} else {
			r.strikeCount--
		}

	case *ast.CodeSpan:
		if entering {
			var b strings.Builder
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					b.Write(t.Segment.Value(r.source))
				}
			}
			r.inline.WriteString(r.styles.InfoText.Render(b.String()))
			return ast.WalkSkipChildren, nil
		}

	case *ast.Link:
		if entering {
			label := r.plainChildren(n)
			dest := string(n.Destination)
			r.inline.WriteString(r.styles.AccentText.Underline(true).Render(label))
			if dest != "" && dest != label {
				r.inline.WriteString(" " + r.styles.FaintText.Render("("+dest+")"))
			}
			return ast.WalkSkipChildren, nil
		}

	case *ast.AutoLink:
		if entering {
			r.inline.WriteString(r.styles.AccentText.Underline(true).Render(string(n.URL(r.source))))
			return ast.WalkSkipChildren, nil
		}

	case *ast.Image:
		if entering {
			label := r.plainChildren(n)
			if label == "" {
				label = string(n.Destination)
			}
			r.inline.WriteString(r.styles.MutedText.Render("▣ " + label))
			return ast.WalkSkipChildren, nil
		}

	case *ast.RawHTML, *ast.HTMLBlock:
		return ast.WalkSkipChildren, nil
	}
	return ast.WalkContinue, nil
}

func bulletFor(l listState) string {
	if l.ordered {
		return fmt.Sprintf("%d. ", l.counter-1)
	}
	return "• "
}

func (r *markdownRenderer) codeBlock(node ast.Node) {
	lines := node.Lines()
	style := r.styles.FaintText
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(r.source)), "\n")
		r.output.WriteString(r.prefix + "  " + style.Render(line) + "\n")
	}
	r.output.WriteString("\n")
}

func (r *markdownRenderer) plainChildren(node ast.Node) string {
	var b strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			b.Write(t.Segment.Value(r.source))
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
