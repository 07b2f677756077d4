package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"netlayout/internal/config"
	"netlayout/internal/domain"
	"netlayout/internal/engine"
	"netlayout/internal/graph"
	"netlayout/internal/hub"
	"netlayout/internal/interaction"
	"netlayout/internal/metrics"
	"netlayout/internal/repository"
)

// Session is one live layout: an engine ticking on its own goroutine and the
// hub that streams its frames
type Session struct {
	ID        string
	Name      string
	Engine    *engine.Engine
	Hub       *hub.Hub
	CreatedAt time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// SessionInfo summarizes a session for listings
type SessionInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Elements  int       `json:"elements"`
	Ticks     uint64    `json:"ticks"`
	Alpha     float64   `json:"alpha"`
	Running   bool      `json:"running"`
	Converged bool      `json:"converged"`
	State     string    `json:"state"`
	Clients   int       `json:"clients"`
	CreatedAt time.Time `json:"created_at"`
}

// Info returns the current summary of the session
func (s *Session) Info() SessionInfo {
	return SessionInfo{
		ID:        s.ID,
		Name:      s.Name,
		Elements:  s.Engine.Len(),
		Ticks:     s.Engine.Ticks(),
		Alpha:     s.Engine.Alpha(),
		Running:   s.Engine.Running(),
		Converged: s.Engine.Converged(),
		State:     string(s.Engine.InteractionState()),
		Clients:   s.Hub.ClientCount(),
		CreatedAt: s.CreatedAt,
	}
}

// LayoutService manages layout sessions
type LayoutService struct {
	cfg      *config.Config
	repo     repository.SnapshotRepository
	metrics  *metrics.Registry
	eventBus *EventBus

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewLayoutService creates a new layout service. repo and reg may be nil.
func NewLayoutService(cfg *config.Config, repo repository.SnapshotRepository, reg *metrics.Registry, eventBus *EventBus) *LayoutService {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if eventBus == nil {
		eventBus = NewEventBus()
	}
	return &LayoutService{
		cfg:      cfg,
		repo:     repo,
		metrics:  reg,
		eventBus: eventBus,
		sessions: make(map[string]*Session),
	}
}

// EngineOptions maps the layout and clustering config onto engine options
func EngineOptions(cfg *config.Config) engine.Options {
	opts := engine.DefaultOptions()
	opts.Width = cfg.Layout.Width
	opts.Height = cfg.Layout.Height
	opts.NodeRadius = cfg.Layout.NodeRadius
	opts.LinkDistance = cfg.Layout.LinkDistance
	opts.RepulsionStrength = -cfg.Layout.ChargeStrength
	opts.AlphaDecay = cfg.EffectiveDecay()
	opts.AlphaMin = cfg.EffectivePreset().GetProfile().AlphaMin
	opts.Clustering = cfg.Layout.ClusteringEnabled()
	opts.ShowClouds = cfg.Layout.CloudsVisible()
	opts.CrossGroupStrength = cfg.Clustering.CrossGroupStrength
	opts.CoarseThreshold = cfg.Clustering.CoarseThreshold
	opts.FineThreshold = cfg.Clustering.FineThreshold
	opts.ClusterPull = cfg.Clustering.Pull
	opts.EnergeticAlpha = cfg.Clustering.EnergeticAlpha
	return opts
}

// Open starts a new session over the document. Elements without a position
// take the one persisted for the document name, if any.
func (s *LayoutService) Open(ctx context.Context, doc *domain.Document) (*Session, error) {
	if doc == nil {
		return nil, errors.New("open session: no document")
	}
	doc = s.seedPositions(ctx, doc)

	id := uuid.NewString()
	h := hub.New(id)

	options := []engine.Option{
		engine.WithID(id),
		engine.WithSink(h),
		engine.WithConvergedHandler(func(frame *domain.Frame) {
			s.publish(h, Event{
				Type:      EventLayoutConverged,
				SessionID: id,
				Payload:   map[string]interface{}{"ticks": frame.Tick, "boundaries": len(frame.Boundaries)},
			})
		}),
		engine.WithRemovedHandler(func(removal *graph.Removal) {
			s.publish(h, Event{Type: EventElementRemoved, SessionID: id, Payload: removal})
		}),
	}
	if s.repo != nil {
		options = append(options, engine.WithPersister(s.repo))
	}
	if s.metrics != nil {
		options = append(options, engine.WithRecorder(s.metrics))
	}

	eng, err := engine.New(doc, EngineOptions(s.cfg), options...)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	session := &Session{
		ID:        id,
		Name:      doc.Name,
		Engine:    eng,
		Hub:       h,
		CreatedAt: time.Now(),
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	go h.Run(runCtx)
	go func() {
		defer close(session.done)
		if err := eng.Run(runCtx, s.cfg.Server.TickInterval.Duration()); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Layout %s stopped: %v", id, err)
		}
	}()

	if s.metrics != nil {
		s.metrics.SessionOpened(id, eng.Len())
	}
	log.Printf("Opened layout session %s for %q (%d elements)", id, doc.Name, eng.Len())
	s.publish(h, Event{
		Type:      EventSessionCreated,
		SessionID: id,
		Payload:   map[string]interface{}{"name": doc.Name, "elements": eng.Len()},
	})

	return session, nil
}

// seedPositions copies persisted positions onto elements that have none
func (s *LayoutService) seedPositions(ctx context.Context, doc *domain.Document) *domain.Document {
	if s.repo == nil || doc.Name == "" {
		return doc
	}
	positions, err := s.repo.LoadPositions(ctx, doc.Name)
	if err != nil {
		log.Printf("Warning: failed to load positions for %q: %v", doc.Name, err)
		return doc
	}
	if len(positions) == 0 {
		return doc
	}

	byID := make(map[int]domain.NodePosition, len(positions))
	for _, pos := range positions {
		byID[pos.NodeID] = pos
	}

	seeded := *doc
	seeded.Elements = make([]domain.ElementRecord, len(doc.Elements))
	for i, rec := range doc.Elements {
		if pos, ok := byID[rec.ID]; ok && rec.X == nil && rec.Y == nil {
			x, y := pos.X, pos.Y
			rec.X, rec.Y = &x, &y
			if pos.Pinned && rec.FX == nil && rec.FY == nil {
				fx, fy := pos.X, pos.Y
				rec.FX, rec.FY = &fx, &fy
			}
		}
		seeded.Elements[i] = rec
	}
	return &seeded
}

// Get returns the session with the given id
func (s *LayoutService) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return session, nil
}

// List returns every session, oldest first
func (s *LayoutService) List() []SessionInfo {
	s.mu.RLock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	infos := make([]SessionInfo, len(sessions))
	for i, session := range sessions {
		infos[i] = session.Info()
	}
	return infos
}

// Dispatch queues input events on a session
func (s *LayoutService) Dispatch(id string, events ...interaction.Event) error {
	session, err := s.Get(id)
	if err != nil {
		return err
	}
	return session.Engine.Dispatch(events...)
}

// Snapshot returns the current document of a session
func (s *LayoutService) Snapshot(id string) (*domain.Document, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return session.Engine.Snapshot(), nil
}

// Restore replaces the layout of a session and restarts it
func (s *LayoutService) Restore(id string, doc *domain.Document) error {
	session, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := session.Engine.Restore(doc); err != nil {
		return err
	}
	s.publish(session.Hub, Event{
		Type:      EventSnapshotRestored,
		SessionID: id,
		Payload:   map[string]interface{}{"name": doc.Name, "elements": len(doc.Elements)},
	})
	return nil
}

// Reload restores the document into every session opened from a document of
// the same name and returns how many sessions were reloaded
func (s *LayoutService) Reload(doc *domain.Document) int {
	s.mu.RLock()
	targets := make([]string, 0)
	for id, session := range s.sessions {
		if session.Name == doc.Name {
			targets = append(targets, id)
		}
	}
	s.mu.RUnlock()

	reloaded := 0
	for _, id := range targets {
		if err := s.Restore(id, doc); err != nil {
			log.Printf("Warning: failed to reload session %s: %v", id, err)
			continue
		}
		reloaded++
	}
	return reloaded
}

// Boundary returns the boundary of a group in a session
func (s *LayoutService) Boundary(id, group string) (domain.GroupBoundary, bool, error) {
	session, err := s.Get(id)
	if err != nil {
		return domain.GroupBoundary{}, false, err
	}
	b, ok := session.Engine.GroupBoundary(group)
	return b, ok, nil
}

// Close tears down a session
func (s *LayoutService) Close(id string) error {
	s.mu.Lock()
	session, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}

	session.Engine.Close()
	session.cancel()
	<-session.done
	session.Hub.Close()

	if s.metrics != nil {
		s.metrics.SessionClosed(id)
	}
	log.Printf("Closed layout session %s", id)
	s.eventBus.Publish(Event{Type: EventSessionClosed, SessionID: id})
	return nil
}

// Shutdown closes every session
func (s *LayoutService) Shutdown() {
	s.mu.RLock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	for _, id := range ids {
		_ = s.Close(id)
	}
}

// EventBus returns the bus lifecycle events are published on
func (s *LayoutService) EventBus() *EventBus {
	return s.eventBus
}

func (s *LayoutService) publish(h *hub.Hub, event Event) {
	s.eventBus.Publish(event)
	h.Publish(string(event.Type), event)
}
