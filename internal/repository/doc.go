// Package repository defines the persistence interfaces for layout snapshots.
//
// A snapshot is the reference-free Document form of a layout, keyed by the
// document name. The sqlite subpackage provides the implementation.
//
// # SQLite Implementation
//
// The sqlite repository stores each snapshot as a snappy-compressed JSON blob
// together with a blake2b digest of the uncompressed bytes. Saving a snapshot
// whose digest matches the stored one is a no-op, so a layout that converges to
// the same positions does not rewrite the row. Positions are additionally kept
// in their own table so they can be read without decoding the full document.
//
// # Testing
//
// The sqlite repository is tested with in-memory databases.
package repository
