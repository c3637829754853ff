package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/timemap/cardstack/internal/timemap"
)

// Snapshot represents the latest domain data available to the UI.
type Snapshot struct {
	Domain              timemap.Domain
	HasDomain           bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive load failures
}

// IsOffline returns true when the data source has failed repeatedly.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored domain. When err is non-nil the previous data
// is kept but the error is recorded for visibility.
func (s *Store) Update(domain *timemap.Domain, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if domain != nil {
		s.snapshot.Domain = cloneDomain(*domain)
		s.snapshot.HasDomain = true
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Domain = cloneDomain(s.snapshot.Domain)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneDomain(d timemap.Domain) timemap.Domain {
	out := timemap.Domain{}
	if len(d.Events) > 0 {
		out.Events = make([]timemap.Event, len(d.Events))
		copy(out.Events, d.Events)
	}
	if len(d.Associations) > 0 {
		out.Associations = make([]timemap.Association, len(d.Associations))
		copy(out.Associations, d.Associations)
	}
	if len(d.Sources) > 0 {
		out.Sources = make(map[string]timemap.Source, len(d.Sources))
		for id, src := range d.Sources {
			out.Sources[id] = src
		}
	}
	return out
}
