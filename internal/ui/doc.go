// Package ui provides the terminal interface for browsing event cards.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model reads the latest snapshot from
// state.Store on every tick, builds one card.Card per event using the
// template named by the application store, and paints the resulting
// fragment trees into a scrolling viewport. The UI never fetches data
// itself; the app package owns loading and refresh.
//
// # Package Structure
//
//   - app.go: Model, Update loop, snapshot handling and Run
//   - keys.go: key bindings, shared with the bubbles help footer
//   - paint.go: fragment painter (rows as columns, cells stacked)
//   - markdown.go: goldmark AST walker for markdown fields
//   - header.go, help.go: status bar and help overlay
//   - theme.go: the Nightfox palette and derived lipgloss styles
//
// # Card State
//
// Cursor position, the selected card and expanded cards are tracked by
// event id, so a refresh that reorders or replaces events keeps them.
// Only cards with sources respond to the expand key.
package ui
