package card

// FragmentKind identifies a display node in the rendered tree.
type FragmentKind int

const (
	FragmentCard FragmentKind = iota
	FragmentRow
	FragmentSpan
	FragmentCell
	FragmentBlock
	FragmentHeading
	FragmentText
	FragmentTime
	FragmentTag
	FragmentButton
	FragmentLink
	FragmentMedia
	FragmentMarkdown
	FragmentDivider
	FragmentSpacer
	FragmentToggle
)

var fragmentNames = [...]string{
	FragmentCard:     "card",
	FragmentRow:      "row",
	FragmentSpan:     "span",
	FragmentCell:     "cell",
	FragmentBlock:    "block",
	FragmentHeading:  "heading",
	FragmentText:     "text",
	FragmentTime:     "time",
	FragmentTag:      "tag",
	FragmentButton:   "button",
	FragmentLink:     "link",
	FragmentMedia:    "media",
	FragmentMarkdown: "markdown",
	FragmentDivider:  "divider",
	FragmentSpacer:   "spacer",
	FragmentToggle:   "toggle",
}

func (k FragmentKind) String() string {
	if k < 0 || int(k) >= len(fragmentNames) {
		return "unknown"
	}
	return fragmentNames[k]
}

// Align is the horizontal placement of a fragment's content.
type Align string

const (
	AlignStart Align = "start"
	AlignEnd   Align = "end"
)

// Fragment is one node of the display tree handed to the presentation
// layer. Which attributes are meaningful depends on Kind.
type Fragment struct {
	Kind  FragmentKind
	Key   string
	Class string

	// Title labels the fragment (field title, media caption).
	Title string
	Text  string
	Href  string
	Color string
	Align Align
	// Scale multiplies the font size; zero means 1.
	Scale float64
	// Height is vertical space in line units for dividers and spacers.
	Height float64
	// Open is the expansion state carried by toggles.
	Open bool

	Children []Fragment
}

// Walk visits f and its descendants depth-first, stopping early when fn
// returns false.
func (f Fragment) Walk(fn func(Fragment) bool) bool {
	if !fn(f) {
		return false
	}
	for _, child := range f.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first fragment of kind in the tree rooted at f.
func (f Fragment) Find(kind FragmentKind) (Fragment, bool) {
	var found Fragment
	ok := false
	f.Walk(func(n Fragment) bool {
		if n.Kind == kind {
			found, ok = n, true
			return false
		}
		return true
	})
	return found, ok
}
