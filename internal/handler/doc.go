// Package handler implements the HTTP API for layout sessions.
//
// # Routes
//
//	POST   /api/sessions                          open a session from a JSON or YAML document
//	GET    /api/sessions                          list sessions
//	GET    /api/sessions/{id}                     session summary
//	DELETE /api/sessions/{id}                     close a session
//	POST   /api/sessions/{id}/events              queue one input event or an array of them
//	GET    /api/sessions/{id}/frame               current render frame
//	GET    /api/sessions/{id}/snapshot            snapshot (?format=yaml for YAML)
//	PUT    /api/sessions/{id}/snapshot            restore a snapshot into the session
//	GET    /api/sessions/{id}/boundaries/{group}  boundary of one group
//	GET    /api/sessions/{id}/stream              server-sent frames and lifecycle events
//	GET    /api/snapshots                         stored snapshots
//	POST   /api/snapshots/{name}/sessions         open a session from a stored snapshot
//	DELETE /api/snapshots/{name}                  delete a stored snapshot
//
// # Response Format
//
// Success responses return JSON data with appropriate status codes (200, 201, 202).
// Error responses return JSON with {error, details} structure.
package handler
