package domain

// GroupBoundary is the derived outline of a group with at least three visible
// members. Hull holds absolute positions; Offsets and Path are relative to Centroid.
type GroupBoundary struct {
	Group    string  `json:"group"`
	Centroid Point   `json:"centroid"`
	Hull     []Point `json:"hull"`
	Offsets  []Point `json:"offsets"`
	Path     []Point `json:"path"`
}

// NodeState is the per-tick view of an element handed to the renderer
type NodeState struct {
	ID          int         `json:"id"`
	Type        ElementType `json:"type"`
	Name        string      `json:"name,omitempty"`
	Group       string      `json:"group,omitempty"`
	Severity    int         `json:"severity"`
	EventCount  int         `json:"eventCount"`
	X           float64     `json:"x"`
	Y           float64     `json:"y"`
	Pinned      bool        `json:"pinned"`
	Hidden      bool        `json:"hidden"`
	Highlighted bool        `json:"highlighted"`
	Selected    bool        `json:"selected,omitempty"`
}

// LinkState is the per-tick view of a link handed to the renderer
type LinkState struct {
	ID       int        `json:"id"`
	Source   int        `json:"source"`
	Target   int        `json:"target"`
	X1       float64    `json:"x1"`
	Y1       float64    `json:"y1"`
	X2       float64    `json:"x2"`
	Y2       float64    `json:"y2"`
	Hidden   bool       `json:"hidden"`
	Status   LoadStatus `json:"status"`
	Selected bool       `json:"selected,omitempty"`
}

// ViewTransform is the zoom/pan state: screen = graph*K + (X, Y)
type ViewTransform struct {
	K float64 `json:"k"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Frame is everything the renderer needs for one tick
type Frame struct {
	Tick       uint64          `json:"tick"`
	Alpha      float64         `json:"alpha"`
	Converged  bool            `json:"converged"`
	Nodes      []NodeState     `json:"nodes"`
	Links      []LinkState     `json:"links"`
	Boundaries []GroupBoundary `json:"boundaries"`
	Transform  ViewTransform   `json:"transform"`
}

// StateOf captures the render view of an element
func StateOf(e *NetElement) NodeState {
	return NodeState{
		ID:          e.ID,
		Type:        e.Type,
		Name:        e.Name,
		Group:       e.Group,
		Severity:    e.Severity,
		EventCount:  e.EventCount,
		X:           e.X,
		Y:           e.Y,
		Pinned:      e.Pinned(),
		Hidden:      e.Hidden,
		Highlighted: e.Highlighted,
	}
}
