// Package domain defines the core types for the netlayout force-directed layout engine.
//
// This package contains the entities and value objects that describe a network
// layout session: the elements being positioned, the links between them, the
// serialized document used for loading and persistence, and the per-tick frame
// handed to an external renderer.
//
// # Core Types
//
// NetElement represents a network element (router, cloud, rrn) with its grouping,
// severity and event count, plus the simulation-owned position and velocity.
// FX/FY pin an element in place; pinning is the only way interaction code moves
// an element directly.
//
// NetLink connects two elements by id. Links never hold element copies, so the
// position seen through a link is always the live one.
//
// Document is the reference-free form of a layout. It is what the external data
// source provides and what snapshots persist.
//
// Frame, NodeState, LinkState and GroupBoundary are derived render state. They
// are recomputed every tick and never persisted.
//
// # Errors
//
// ErrUnresolvedReference and ErrInvariantViolation are structural failures that
// callers must handle; ReferenceError and InvariantError carry the details and
// unwrap to them.
//
// # Design Principles
//
// - No database or external dependencies
// - Element identity is the integer id; ids are never reused within a session
// - Rich type system with meaningful constants and enumerations
package domain
