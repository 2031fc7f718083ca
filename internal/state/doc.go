// Package state provides a thread-safe cache of fetched remote data.
//
// # Overview
//
// The store holds the last successfully fetched room catalog and
// reservation list. Long-running consumers, the protocol server in
// particular, keep answering from the cache when a refetch fails, so a
// transient API hiccup degrades to slightly stale data instead of an
// error response.
//
// # Concurrency Model
//
// A readers-writer lock guards the snapshot:
//
//   - UpdateRooms / UpdateReservations acquire the write lock
//   - Snapshot acquires the read lock
//
// The lock is held only while copying, never during network I/O or
// rendering. Both update and read paths deep-copy the slices, so callers
// can mutate what they receive without racing the store.
//
// # Update Semantics
//
// An update with a non-nil error keeps the previous data and records the
// error, so readers always see the most recent successful fetch alongside
// the failure. LastUpdated moves on every update, success or not.
//
// The zero Store is ready to use; Snapshot on a never-updated store
// returns a zero Snapshot with HasRooms false.
package state
