package stats

import "sync"

// Store owns all mutable engine state: the system-wide series, the
// per-container series map, the latest-snapshot map, and the current
// pressure classification. A completed cycle is applied under one lock so
// readers never observe a half-updated cycle.
type Store struct {
	mu        sync.RWMutex
	capacity  int
	retention int

	system   *Ring[SystemPoint]
	entities map[string]*Ring[EntityPoint]

	// missing counts consecutive successful cycles each known series has
	// been absent from the snapshot map; at retention the series is evicted.
	missing map[string]int

	latest   map[string]Snapshot
	pressure Pressure
}

// NewStore creates a store whose series hold up to capacity points and whose
// per-container series survive retention cycles of absence.
func NewStore(capacity, retention int) *Store {
	if capacity <= 0 {
		capacity = MaxPoints
	}
	if retention <= 0 {
		retention = DefaultRetentionCycles
	}
	return &Store{
		capacity:  capacity,
		retention: retention,
		system:    NewRing[SystemPoint](capacity),
		entities:  make(map[string]*Ring[EntityPoint]),
		missing:   make(map[string]int),
		latest:    make(map[string]Snapshot),
		pressure:  Pressure{Level: PressureLow, ContainersAtRisk: []string{}},
	}
}

// ApplyCycle commits one completed cycle atomically: appends the system
// point, appends each entity point (creating series lazily), replaces the
// snapshot map, installs the new pressure, and ages out series whose
// containers have been gone past the retention window.
func (s *Store) ApplyCycle(update CycleUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.system.Append(update.System)

	for id, point := range update.Entities {
		ring, ok := s.entities[id]
		if !ok {
			ring = NewRing[EntityPoint](s.capacity)
			s.entities[id] = ring
		}
		ring.Append(point)
		s.missing[id] = 0
	}

	for id := range s.entities {
		if _, present := update.Entities[id]; present {
			continue
		}
		s.missing[id]++
		if s.missing[id] >= s.retention {
			delete(s.entities, id)
			delete(s.missing, id)
		}
	}

	s.latest = update.Snapshots
	s.pressure = update.Pressure
}

// SystemSeries returns the system-wide series, oldest first.
func (s *Store) SystemSeries() []SystemPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.system.Items()
}

// EntitySeries returns the series for the given container ID, oldest first.
// Unknown IDs yield an empty slice, never an error.
func (s *Store) EntitySeries(id string) []EntityPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ring, ok := s.entities[id]
	if !ok {
		return []EntityPoint{}
	}
	return ring.Items()
}

// EntityIDs returns the IDs of all containers with a retained series.
func (s *Store) EntityIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.entities))
	for id := range s.entities {
		ids = append(ids, id)
	}
	return ids
}

// Latest returns a copy of the latest per-container snapshot map.
func (s *Store) Latest() map[string]Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Snapshot, len(s.latest))
	for id, snap := range s.latest {
		out[id] = snap
	}
	return out
}

// Pressure returns the current memory-pressure classification.
func (s *Store) Pressure() Pressure {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pressure
}

// Reset discards all accumulated history and snapshots.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.system = NewRing[SystemPoint](s.capacity)
	s.entities = make(map[string]*Ring[EntityPoint])
	s.missing = make(map[string]int)
	s.latest = make(map[string]Snapshot)
	s.pressure = Pressure{Level: PressureLow, ContainersAtRisk: []string{}}
}
