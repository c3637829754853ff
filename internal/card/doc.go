// Package card turns timeline events into display fragments.
//
// A Template maps an event to Content: rows of typed Fields. The Renderer
// maps each Field to a Fragment, or to nothing when the field has no
// visible value. Assemble keys every row and field from the content id,
// which is a digest of the encoded rows, so re-rendering unchanged data
// yields the same keys. Card adds the expandable sources section and the
// selection callback on top.
//
// Nothing here draws; the ui package paints Fragments to the terminal.
package card
