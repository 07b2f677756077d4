// Package force advances element positions under a composition of forces.
//
// The simulation follows the alpha/velocity-Verlet scheme popularised by d3-force:
// each tick alpha moves toward alphaTarget by alphaDecay, every registered force
// adds velocity scaled by alpha, and unpinned elements integrate their velocity
// with friction. When alpha drops below alphaMin the simulation stops and freezes
// every element at its current position.
package force

import (
	"math"

	"netlayout/internal/domain"
)

const (
	// DefaultAlphaMin is the convergence threshold
	DefaultAlphaMin = 0.001
	// DefaultVelocityDecay is the fraction of velocity lost per tick
	DefaultVelocityDecay = 0.4
	// FastDecay settles an unclustered layout in roughly 66 ticks
	FastDecay = 0.1
	// HotAlphaTarget keeps the simulation live while an element is dragged
	HotAlphaTarget = 0.3

	initialRadius = 10
)

// SettledDecay settles a clustered layout in roughly 300 ticks
var SettledDecay = 1 - math.Pow(DefaultAlphaMin, 1.0/300)

var initialAngle = math.Pi * (3 - math.Sqrt(5))

// Graph is the view of the element store the simulation reads
type Graph interface {
	Elements() []*domain.NetElement
	Links() []*domain.NetLink
	Endpoints(l *domain.NetLink) (source, target *domain.NetElement, ok bool)
}

// Force contributes velocity to elements once per tick
type Force interface {
	Initialize(nodes []*domain.NetElement, random func() float64)
	Apply(alpha float64)
}

type namedForce struct {
	name  string
	force Force
}

// Option configures a Simulation
type Option func(*Simulation)

// WithAlphaDecay sets the per-tick decay rate
func WithAlphaDecay(decay float64) Option {
	return func(s *Simulation) { s.alphaDecay = decay }
}

// WithAlphaMin sets the convergence threshold
func WithAlphaMin(min float64) Option {
	return func(s *Simulation) { s.alphaMin = min }
}

// WithVelocityDecay sets the friction applied during integration
func WithVelocityDecay(decay float64) Option {
	return func(s *Simulation) { s.velocityDecay = 1 - decay }
}

// Simulation is a single-threaded, tick-driven force simulation
type Simulation struct {
	graph  Graph
	nodes  []*domain.NetElement
	forces []namedForce
	random *lcg

	alpha         float64
	alphaMin      float64
	alphaDecay    float64
	alphaTarget   float64
	velocityDecay float64

	ticks   uint64
	running bool

	onTick func()
	onEnd  func()
}

// New creates a simulation over the graph. Elements without a position are
// seeded on a phyllotaxis spiral around the origin.
func New(g Graph, opts ...Option) *Simulation {
	s := &Simulation{
		graph:         g,
		random:        newLCG(),
		alpha:         1,
		alphaMin:      DefaultAlphaMin,
		alphaDecay:    FastDecay,
		velocityDecay: 1 - DefaultVelocityDecay,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// Reset re-reads the elements from the graph and reinitializes every force.
// It must be called after the graph is mutated.
func (s *Simulation) Reset() {
	s.nodes = s.graph.Elements()
	s.initializeNodes()
	for _, nf := range s.forces {
		nf.force.Initialize(s.nodes, s.random.next)
	}
}

func (s *Simulation) initializeNodes() {
	for i, n := range s.nodes {
		if n.Pinned() {
			n.X, n.Y = *n.FX, *n.FY
			n.VX, n.VY = 0, 0
			continue
		}
		if !n.Placed() {
			radius := initialRadius * math.Sqrt(0.5+float64(i))
			angle := float64(i) * initialAngle
			n.Place(radius*math.Cos(angle), radius*math.Sin(angle))
			n.VX, n.VY = 0, 0
		}
	}
}

// AddForce registers a force under a name, replacing any force with that name.
// A nil force removes it.
func (s *Simulation) AddForce(name string, f Force) {
	for i, nf := range s.forces {
		if nf.name == name {
			if f == nil {
				s.forces = append(s.forces[:i], s.forces[i+1:]...)
			} else {
				s.forces[i].force = f
				f.Initialize(s.nodes, s.random.next)
			}
			return
		}
	}
	if f == nil {
		return
	}
	f.Initialize(s.nodes, s.random.next)
	s.forces = append(s.forces, namedForce{name: name, force: f})
}

// Force returns the force registered under name
func (s *Simulation) Force(name string) (Force, bool) {
	for _, nf := range s.forces {
		if nf.name == name {
			return nf.force, true
		}
	}
	return nil, false
}

// OnTick sets the callback invoked synchronously after each integration step.
// Passing nil detaches it.
func (s *Simulation) OnTick(fn func()) {
	s.onTick = fn
}

// OnEnd sets the callback invoked once when the simulation converges
func (s *Simulation) OnEnd(fn func()) {
	s.onEnd = fn
}

// Start re-seeds alpha to 1 and resumes ticking
func (s *Simulation) Start() {
	s.alpha = 1
	s.running = true
}

// Restart resumes ticking without touching alpha
func (s *Simulation) Restart() {
	s.running = true
}

// Stop halts ticking. Alpha is preserved.
func (s *Simulation) Stop() {
	s.running = false
}

// Running reports whether Step will advance the simulation
func (s *Simulation) Running() bool {
	return s.running
}

// SetAlphaTarget sets the value alpha decays toward
func (s *Simulation) SetAlphaTarget(target float64) {
	s.alphaTarget = target
}

// AlphaTarget returns the current alpha target
func (s *Simulation) AlphaTarget() float64 {
	return s.alphaTarget
}

// SetAlphaDecay changes the decay rate
func (s *Simulation) SetAlphaDecay(decay float64) {
	s.alphaDecay = decay
}

// AlphaDecay returns the decay rate
func (s *Simulation) AlphaDecay() float64 {
	return s.alphaDecay
}

// Alpha returns the current energy
func (s *Simulation) Alpha() float64 {
	return s.alpha
}

// AlphaMin returns the convergence threshold
func (s *Simulation) AlphaMin() float64 {
	return s.alphaMin
}

// Converged reports whether alpha has dropped below the threshold
func (s *Simulation) Converged() bool {
	return s.alpha < s.alphaMin
}

// Ticks returns the number of integration steps performed
func (s *Simulation) Ticks() uint64 {
	return s.ticks
}

// Tick performs one integration step without callbacks or convergence handling
func (s *Simulation) Tick() {
	s.alpha += (s.alphaTarget - s.alpha) * s.alphaDecay

	for _, nf := range s.forces {
		nf.force.Apply(s.alpha)
	}

	for _, n := range s.nodes {
		if n.Pinned() {
			n.X, n.Y = *n.FX, *n.FY
			n.VX, n.VY = 0, 0
			continue
		}
		n.VX *= s.velocityDecay
		n.VY *= s.velocityDecay
		n.X += n.VX
		n.Y += n.VY
	}
	s.ticks++
}

// Step advances a running simulation by one tick, invokes the tick callback and
// handles convergence. It returns false when the simulation is not running.
func (s *Simulation) Step() bool {
	if !s.running {
		return false
	}
	s.Tick()
	if s.onTick != nil {
		s.onTick()
	}
	if s.Converged() {
		s.running = false
		s.Freeze()
		if s.onEnd != nil {
			s.onEnd()
		}
	}
	return true
}

// Freeze pins every element at its current position, making the layout static
func (s *Simulation) Freeze() {
	for _, n := range s.nodes {
		n.Freeze()
	}
}

// RunUntilConverged steps until convergence or until maxTicks steps were taken.
// It reports whether the simulation converged.
func (s *Simulation) RunUntilConverged(maxTicks int) bool {
	for i := 0; i < maxTicks && s.running; i++ {
		s.Step()
	}
	return !s.running && s.Converged()
}

// TicksToConverge returns how many ticks alpha needs to fall from 1 below
// alphaMin with a zero target
func TicksToConverge(decay, alphaMin float64) int {
	if decay <= 0 || decay >= 1 {
		return 1
	}
	return int(math.Ceil(math.Log(alphaMin) / math.Log(1-decay)))
}
