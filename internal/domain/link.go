package domain

import "sort"

// LoadStatus represents the load state reported for a link metric
type LoadStatus string

const (
	LoadStatusInapplicable LoadStatus = "INAPPLICABLE"
	LoadStatusOK           LoadStatus = "OK"
	LoadStatusWarning      LoadStatus = "WARNING"
	LoadStatusCritical     LoadStatus = "CRITICAL"
)

// LoadStatusEntry is the load reading for one metric descriptor
type LoadStatusEntry struct {
	LoadingPercent float64    `json:"loadingPercent" yaml:"loadingPercent"`
	Status         LoadStatus `json:"status" yaml:"status"`
}

// NetLink connects two elements. Endpoints are element IDs resolved against the
// store on every access, so a link always sees the live position of its nodes.
type NetLink struct {
	ID         int
	Source     int
	Target     int
	LoadStatus map[int]LoadStatusEntry
	Hidden     bool
}

// NewNetLink creates a new link between two elements
func NewNetLink(id, source, target int) *NetLink {
	return &NetLink{
		ID:         id,
		Source:     source,
		Target:     target,
		LoadStatus: make(map[int]LoadStatusEntry),
	}
}

// SelfLoop reports whether both endpoints are the same element
func (l *NetLink) SelfLoop() bool {
	return l.Source == l.Target
}

// Touches reports whether the link has the element as an endpoint
func (l *NetLink) Touches(id int) bool {
	return l.Source == id || l.Target == id
}

// Retarget replaces every endpoint equal to from with to
func (l *NetLink) Retarget(from, to int) bool {
	changed := false
	if l.Source == from {
		l.Source = to
		changed = true
	}
	if l.Target == from {
		l.Target = to
		changed = true
	}
	return changed
}

// SetLoadStatus sets the load reading for a metric descriptor
func (l *NetLink) SetLoadStatus(descriptor int, entry LoadStatusEntry) {
	if l.LoadStatus == nil {
		l.LoadStatus = make(map[int]LoadStatusEntry)
	}
	l.LoadStatus[descriptor] = entry
}

// PrimaryStatus returns the status of the lowest metric descriptor id, which is
// the one used to colour the link. Links without readings are INAPPLICABLE.
func (l *NetLink) PrimaryStatus() LoadStatus {
	if len(l.LoadStatus) == 0 {
		return LoadStatusInapplicable
	}
	keys := make([]int, 0, len(l.LoadStatus))
	for k := range l.LoadStatus {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return l.LoadStatus[keys[0]].Status
}

// Clone returns a deep copy of the link
func (l *NetLink) Clone() *NetLink {
	c := *l
	if l.LoadStatus != nil {
		c.LoadStatus = make(map[int]LoadStatusEntry, len(l.LoadStatus))
		for k, v := range l.LoadStatus {
			c.LoadStatus[k] = v
		}
	}
	return &c
}
