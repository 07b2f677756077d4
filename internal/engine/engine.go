// Package engine runs one layout session: it owns the element store, the force
// simulation, the clustering adjuster and the interaction controller, and
// advances them together one tick at a time.
//
// Input events are queued from any goroutine with Dispatch and applied at the
// start of the next Frame, so the store is never mutated mid-tick. Within a
// tick, integration always precedes clustering, which precedes boundary
// recomputation and the render callback.
package engine

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"netlayout/internal/cluster"
	"netlayout/internal/domain"
	"netlayout/internal/force"
	"netlayout/internal/graph"
	"netlayout/internal/interaction"
)

// ErrClosed is returned by an engine that has been closed
var ErrClosed = errors.New("engine closed")

// Option configures an Engine
type Option func(*Engine)

// WithID sets the session id used in logs and metrics
func WithID(id string) Option {
	return func(e *Engine) { e.id = id }
}

// WithSink sets the render sink
func WithSink(sink RenderSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithPersister sets where snapshots are saved on convergence, drag end and save
func WithPersister(p Persister) Option {
	return func(e *Engine) { e.persister = p }
}

// WithRecorder sets the metrics recorder
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithAssetsGate delays the first tick until ready is closed
func WithAssetsGate(ready <-chan struct{}) Option {
	return func(e *Engine) { e.ready = ready }
}

// WithConvergedHandler sets a callback invoked with the final frame of every convergence
func WithConvergedHandler(fn func(*domain.Frame)) Option {
	return func(e *Engine) { e.onConverged = fn }
}

// WithRemovedHandler sets a callback invoked after every successful removal
func WithRemovedHandler(fn func(*graph.Removal)) Option {
	return func(e *Engine) { e.onRemoved = fn }
}

// Engine is a single layout session
type Engine struct {
	id   string
	opts Options

	queueMu sync.Mutex
	queue   []interaction.Event
	closed  atomic.Bool

	// mu is held for a whole frame and for every read of layout state
	mu         sync.Mutex
	store      *graph.Store
	sim        *force.Simulation
	adjuster   *cluster.Adjuster
	controller *interaction.Controller
	boundaries []domain.GroupBoundary
	showClouds bool
	tickStart  time.Time

	ready       <-chan struct{}
	sink        RenderSink
	persister   Persister
	recorder    Recorder
	onConverged func(*domain.Frame)
	onRemoved   func(*graph.Removal)
}

// New loads the document and starts a simulation over it. The first tick
// happens on the first Frame after the assets gate opens.
func New(doc *domain.Document, opts Options, options ...Option) (*Engine, error) {
	store, err := graph.Load(doc)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		id:         doc.Name,
		opts:       opts,
		store:      store,
		adjuster:   opts.adjuster(),
		showClouds: opts.ShowClouds,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.ready == nil {
		ready := make(chan struct{})
		close(ready)
		e.ready = ready
	}

	e.controller = interaction.NewController(layout{e}, opts.Width, opts.Height)
	if !e.showClouds {
		e.store.SetCloudsVisible(false)
	}
	e.build()
	if e.recorder != nil {
		e.recorder.SetElements(e.id, e.store.Len())
	}
	return e, nil
}

// build creates a fresh simulation over the current store and starts it
func (e *Engine) build() {
	o := e.opts
	e.sim = force.New(e.store,
		force.WithAlphaDecay(o.EffectiveDecay()),
		force.WithAlphaMin(o.AlphaMin),
	)

	var strength force.StrengthFunc
	collide := force.NewCollide(o.NodeRadius)
	if o.Clustering {
		strength = force.GroupStrength(o.CrossGroupStrength)
		collide.Ignore(force.SameGroup)
	}
	center := force.NewCenter(o.Width/2, o.Height/2)

	e.sim.AddForce("link", force.NewLink(e.store, strength, force.ConstantDistance(o.LinkDistance)))
	e.sim.AddForce("collide", collide)
	e.sim.AddForce("attraction", force.NewAttraction(o.AttractionStrength, o.AttractionMinDistance))
	e.sim.AddForce("repulsion", force.NewRepulsion(o.RepulsionStrength, o.RepulsionMinDistance, o.RepulsionMaxDistance))
	e.sim.AddForce("center", center)

	e.sim.OnTick(e.afterIntegrate)
	e.sim.OnEnd(e.converged)
	e.boundaries = cluster.Boundaries(e.store.Groups())
	e.sim.Start()
}

// rebuild restarts the layout from alpha 1, placing free elements at a pending
// drop position first. A drag in progress keeps the new simulation hot.
func (e *Engine) rebuild() {
	if p, ok := e.controller.TakeDrop(); ok {
		for _, el := range e.store.Elements() {
			if !el.Pinned() {
				el.Place(p.X, p.Y)
			}
		}
	}
	e.sim.OnTick(nil)
	e.sim.OnEnd(nil)
	e.build()
	if e.controller.State() == interaction.StateDragging {
		e.sim.SetAlphaTarget(force.HotAlphaTarget)
	}
}

// ID returns the session id
func (e *Engine) ID() string {
	return e.id
}

// Options returns the layout options the engine was built with
func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

// Dispatch queues input events for the next frame
func (e *Engine) Dispatch(events ...interaction.Event) error {
	if e.closed.Load() {
		return ErrClosed
	}
	e.queueMu.Lock()
	e.queue = append(e.queue, events...)
	e.queueMu.Unlock()
	return nil
}

// Pending returns the number of queued events
func (e *Engine) Pending() int {
	e.queueMu.Lock()
	defer e.queueMu.Unlock()
	return len(e.queue)
}

func (e *Engine) drain() []interaction.Event {
	e.queueMu.Lock()
	defer e.queueMu.Unlock()
	events := e.queue
	e.queue = nil
	return events
}

// Ready reports whether the assets gate is open
func (e *Engine) Ready() bool {
	select {
	case <-e.ready:
		return true
	default:
		return false
	}
}

// Frame applies queued events, then advances the simulation by one tick if it
// is running and the assets gate is open. Errors from rejected events are
// returned together; they never leave the store partially mutated.
func (e *Engine) Frame() error {
	if e.closed.Load() {
		return ErrClosed
	}
	events := e.drain()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed.Load() {
		return ErrClosed
	}

	var errs []error
	for _, ev := range events {
		if e.recorder != nil {
			e.recorder.RecordEvent(string(ev.Type))
		}
		if err := e.controller.Handle(ev); err != nil {
			errs = append(errs, err)
		}
	}

	if e.Ready() && e.sim.Running() {
		e.tickStart = time.Now()
		e.sim.Step()
	}
	return errors.Join(errs...)
}

// Step forces one full tick, whether or not the simulation is running.
// It returns ErrClosed once the engine is closed.
func (e *Engine) Step() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed.Load() {
		return ErrClosed
	}
	e.step()
	return nil
}

func (e *Engine) step() {
	e.tickStart = time.Now()
	e.sim.Tick()
	e.afterIntegrate()
}

// afterIntegrate runs the rest of a tick once positions are integrated
func (e *Engine) afterIntegrate() {
	moves := 0
	if e.opts.Clustering {
		moves = e.adjuster.Apply(e.store.Groups(), e.sim.Alpha())
	}
	e.boundaries = cluster.Boundaries(e.store.Groups())

	if e.sink != nil {
		e.sink.Render(e.frame())
	}
	if e.recorder != nil {
		e.recorder.RecordTick(e.id, e.sim.Alpha(), moves, time.Since(e.tickStart))
	}
}

// converged runs once the simulation has frozen every element
func (e *Engine) converged() {
	log.Printf("Layout %s converged after %d ticks", e.id, e.sim.Ticks())
	if e.recorder != nil {
		e.recorder.RecordConvergence(e.id, e.sim.Ticks())
	}
	e.persist()
	if e.onConverged != nil {
		e.onConverged(e.frame())
	}
}

func (e *Engine) persist() {
	if e.persister == nil {
		return
	}
	if err := e.persister.SaveSnapshot(context.Background(), e.store.Snapshot()); err != nil {
		log.Printf("Warning: failed to persist layout %s: %v", e.id, err)
	}
}

// RunUntilConverged calls Frame until the simulation stops or maxTicks frames
// have run. It reports whether the layout converged.
func (e *Engine) RunUntilConverged(maxTicks int) (bool, error) {
	var errs []error
	for i := 0; i < maxTicks; i++ {
		if err := e.Frame(); err != nil {
			if errors.Is(err, ErrClosed) {
				return false, err
			}
			errs = append(errs, err)
		}
		if e.Ready() && !e.Running() {
			break
		}
	}
	return e.Converged(), errors.Join(errs...)
}

// Run calls Frame every interval until ctx is done or the engine is closed.
// Nothing ticks until the assets gate opens.
func (e *Engine) Run(ctx context.Context, interval time.Duration) error {
	select {
	case <-e.ready:
	case <-ctx.Done():
		return ctx.Err()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := e.Frame(); err != nil {
				if errors.Is(err, ErrClosed) {
					return nil
				}
				log.Printf("Layout %s: %v", e.id, err)
			}
		}
	}
}

// Close stops the simulation and detaches every callback. No tick runs and no
// frame is rendered after Close returns.
func (e *Engine) Close() {
	if e.closed.Swap(true) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sim.Stop()
	e.sim.OnTick(nil)
	e.sim.OnEnd(nil)
	e.sink = nil
	e.onConverged = nil
	e.onRemoved = nil
}

// Closed reports whether Close has been called
func (e *Engine) Closed() bool {
	return e.closed.Load()
}
