package ui

import "time"

// Timing constants.
const (
	// DefaultUIInterval is how often the UI re-reads the domain store.
	DefaultUIInterval = time.Second
)

// helpWidth is the width of the help overlay box.
const helpWidth = 44
