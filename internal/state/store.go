package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/coworkcli/cowork/internal/booking"
)

// Snapshot represents the latest remote data successfully fetched.
type Snapshot struct {
	Rooms           []booking.Room
	Reservations    []booking.Reservation
	HasRooms        bool
	HasReservations bool
	LastUpdated     time.Time
	LastError       error
}

// Store caches the latest good fetch results so long-running consumers can
// keep serving data across transient fetch failures.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// UpdateRooms replaces the stored room catalog. When err is non-nil the
// previous data is kept but the error is recorded for visibility.
func (s *Store) UpdateRooms(rooms []booking.Room, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		return
	}

	s.snapshot.Rooms = cloneRooms(rooms)
	s.snapshot.HasRooms = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
}

// UpdateReservations replaces the stored reservation list with the same
// error semantics as UpdateRooms.
func (s *Store) UpdateReservations(reservations []booking.Reservation, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		return
	}

	s.snapshot.Reservations = cloneReservations(reservations)
	s.snapshot.HasReservations = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Rooms = cloneRooms(s.snapshot.Rooms)
	snap.Reservations = cloneReservations(s.snapshot.Reservations)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneRooms(rooms []booking.Room) []booking.Room {
	if len(rooms) == 0 {
		return nil
	}
	dup := make([]booking.Room, len(rooms))
	copy(dup, rooms)
	return dup
}

func cloneReservations(items []booking.Reservation) []booking.Reservation {
	if len(items) == 0 {
		return nil
	}
	dup := make([]booking.Reservation, len(items))
	copy(dup, items)
	return dup
}
