// Package service manages live layout sessions.
//
// # Sessions
//
// LayoutService owns one engine per session, keyed by a uuid. Opening a
// session seeds unplaced elements from persisted positions, starts the
// engine's tick loop and an SSE hub that receives every rendered frame.
// Closing a session stops both and releases its resources.
//
// # Event System
//
// Session lifecycle events (created, converged, element removed, restored,
// closed) are published on the EventBus and mirrored to the session's hub so
// connected clients see them alongside frames.
//
// # Persistence
//
// Engines persist through the snapshot repository on convergence, drag end
// and explicit save. Snapshots are keyed by document name, so reopening a
// document restores the layout it last converged to.
package service
