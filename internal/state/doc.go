// Package state provides thread-safe storage for the dashboard domain.
//
// The refresh poller writes with Update and the UI reads with Snapshot.
// Snapshots are copies, so the UI can hold one across a render pass
// without locking.
//
// On error, Update keeps the previous domain and records the error and a
// consecutive failure count; two failures in a row mark the snapshot
// offline.
package state
