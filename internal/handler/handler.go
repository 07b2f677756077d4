package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"netlayout/internal/codec"
	"netlayout/internal/domain"
	"netlayout/internal/engine"
	"netlayout/internal/repository"
	"netlayout/internal/service"
)

// LayoutHandler handles layout session API requests
type LayoutHandler struct {
	svc  *service.LayoutService
	repo repository.SnapshotRepository
}

// NewLayoutHandler creates a new layout handler. repo may be nil, in which
// case the snapshot routes answer 503.
func NewLayoutHandler(svc *service.LayoutService, repo repository.SnapshotRepository) *LayoutHandler {
	return &LayoutHandler{svc: svc, repo: repo}
}

// Error response structure
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SessionResponse is returned when a session is opened
type SessionResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Elements int    `json:"elements"`
}

// Register adds every route to the mux
func (h *LayoutHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/sessions", h.CreateSession)
	mux.HandleFunc("GET /api/sessions", h.ListSessions)
	mux.HandleFunc("GET /api/sessions/{id}", h.GetSession)
	mux.HandleFunc("DELETE /api/sessions/{id}", h.DeleteSession)
	mux.HandleFunc("POST /api/sessions/{id}/events", h.PostEvents)
	mux.HandleFunc("GET /api/sessions/{id}/frame", h.GetFrame)
	mux.HandleFunc("GET /api/sessions/{id}/snapshot", h.GetSnapshot)
	mux.HandleFunc("PUT /api/sessions/{id}/snapshot", h.PutSnapshot)
	mux.HandleFunc("GET /api/sessions/{id}/boundaries/{group}", h.GetBoundary)
	mux.HandleFunc("GET /api/sessions/{id}/stream", h.Stream)

	mux.HandleFunc("GET /api/snapshots", h.ListSnapshots)
	mux.HandleFunc("POST /api/snapshots/{name}/sessions", h.OpenSnapshot)
	mux.HandleFunc("DELETE /api/snapshots/{name}", h.DeleteSnapshot)
}

// CreateSession opens a session from the request body
func (h *LayoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	doc, err := codec.Decode(codec.ForContentType(r.Header.Get("Content-Type")), r.Body)
	if err != nil {
		h.writeError(w, "Invalid document", err.Error(), http.StatusBadRequest)
		return
	}
	h.open(w, r, doc)
}

// OpenSnapshot opens a session from a stored snapshot
func (h *LayoutHandler) OpenSnapshot(w http.ResponseWriter, r *http.Request) {
	if !h.requireRepo(w) {
		return
	}
	doc, err := h.repo.LoadSnapshot(r.Context(), r.PathValue("name"))
	if err != nil {
		h.writeServiceError(w, "Failed to load snapshot", err)
		return
	}
	h.open(w, r, doc)
}

func (h *LayoutHandler) open(w http.ResponseWriter, r *http.Request, doc *domain.Document) {
	session, err := h.svc.Open(r.Context(), doc)
	if err != nil {
		h.writeServiceError(w, "Failed to open session", err)
		return
	}
	h.writeJSON(w, SessionResponse{
		ID:       session.ID,
		Name:     session.Name,
		Elements: session.Engine.Len(),
	}, http.StatusCreated)
}

// ListSessions returns every session
func (h *LayoutHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.svc.List(), http.StatusOK)
}

// GetSession returns a session summary
func (h *LayoutHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.Get(r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, "Failed to get session", err)
		return
	}
	h.writeJSON(w, session.Info(), http.StatusOK)
}

// DeleteSession closes a session
func (h *LayoutHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Close(r.PathValue("id")); err != nil {
		h.writeServiceError(w, "Failed to close session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostEvents queues input events. They are applied at the start of the next frame.
func (h *LayoutHandler) PostEvents(w http.ResponseWriter, r *http.Request) {
	events, err := codec.DecodeEvents(r.Body)
	if err != nil {
		h.writeError(w, "Invalid event", err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.svc.Dispatch(r.PathValue("id"), events...); err != nil {
		h.writeServiceError(w, "Failed to queue events", err)
		return
	}
	h.writeJSON(w, map[string]int{"queued": len(events)}, http.StatusAccepted)
}

// GetFrame returns the current render frame
func (h *LayoutHandler) GetFrame(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.Get(r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, "Failed to get frame", err)
		return
	}
	h.writeJSON(w, session.Engine.State(), http.StatusOK)
}

// GetSnapshot exports the current layout as JSON or YAML
func (h *LayoutHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	c, err := codec.ForFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.writeError(w, "Invalid format", err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := h.svc.Snapshot(r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, "Failed to get snapshot", err)
		return
	}

	if c.Format() == "yaml" {
		w.Header().Set("Content-Type", "application/x-yaml")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	if err := c.Export(doc, w); err != nil {
		log.Printf("Failed to export snapshot: %v", err)
		// Can't write error response as we already set headers
	}
}

// PutSnapshot restores a document into the session
func (h *LayoutHandler) PutSnapshot(w http.ResponseWriter, r *http.Request) {
	doc, err := codec.Decode(codec.ForContentType(r.Header.Get("Content-Type")), r.Body)
	if err != nil {
		h.writeError(w, "Invalid document", err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.svc.Restore(r.PathValue("id"), doc); err != nil {
		h.writeServiceError(w, "Failed to restore snapshot", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetBoundary returns the boundary of one group
func (h *LayoutHandler) GetBoundary(w http.ResponseWriter, r *http.Request) {
	group := r.PathValue("group")
	b, ok, err := h.svc.Boundary(r.PathValue("id"), group)
	if err != nil {
		h.writeServiceError(w, "Failed to get boundary", err)
		return
	}
	if !ok {
		h.writeError(w, "Not found", "group "+group+" has fewer than three visible members", http.StatusNotFound)
		return
	}
	h.writeJSON(w, b, http.StatusOK)
}

// Stream serves the session's frames as server-sent events
func (h *LayoutHandler) Stream(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.Get(r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, "Failed to open stream", err)
		return
	}
	session.Hub.ServeHTTP(w, r)
}

// ListSnapshots returns the stored snapshots
func (h *LayoutHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	if !h.requireRepo(w) {
		return
	}
	infos, err := h.repo.ListSnapshots(r.Context())
	if err != nil {
		log.Printf("Failed to list snapshots: %v", err)
		h.writeError(w, "Failed to list snapshots", err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, infos, http.StatusOK)
}

// DeleteSnapshot removes a stored snapshot
func (h *LayoutHandler) DeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if !h.requireRepo(w) {
		return
	}
	if err := h.repo.DeleteSnapshot(r.Context(), r.PathValue("name")); err != nil {
		h.writeServiceError(w, "Failed to delete snapshot", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Helper methods

func (h *LayoutHandler) requireRepo(w http.ResponseWriter) bool {
	if h.repo == nil {
		h.writeError(w, "Persistence disabled", "no snapshot repository configured", http.StatusServiceUnavailable)
		return false
	}
	return true
}

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnresolvedReference), errors.Is(err, domain.ErrDuplicateElement):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvariantViolation):
		return http.StatusConflict
	case errors.Is(err, engine.ErrClosed):
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

func (h *LayoutHandler) writeServiceError(w http.ResponseWriter, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s: %v", message, err)
	}
	if status == http.StatusNotFound {
		message = "Not found"
	}
	h.writeError(w, message, err.Error(), status)
}

func (h *LayoutHandler) writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON: %v", err)
	}
}

func (h *LayoutHandler) writeError(w http.ResponseWriter, error, details string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   error,
		Details: strings.TrimSpace(details),
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}
