// Package graph owns the mutable element and link records of one layout session.
//
// Elements live in an arena indexed by id; links store endpoint ids and resolve
// them through the store on every access. The store has no behavior beyond
// invariant-preserving mutation: loading, node removal and visibility.
package graph

import (
	"fmt"
	"sort"

	"netlayout/internal/domain"
)

// Store holds the elements and links of a single layout session
type Store struct {
	name     string
	order    []int
	elements map[int]*domain.NetElement
	links    []*domain.NetLink
	retired  map[int]struct{}
	nextLink int
}

// Load builds a store from a document. The load is all-or-nothing: a duplicate
// element id or a link naming a missing element fails the whole document.
func Load(doc *domain.Document) (*Store, error) {
	s := &Store{
		name:     doc.Name,
		order:    make([]int, 0, len(doc.Elements)),
		elements: make(map[int]*domain.NetElement, len(doc.Elements)),
		links:    make([]*domain.NetLink, 0, len(doc.Links)),
		retired:  make(map[int]struct{}),
		nextLink: 1,
	}

	for _, rec := range doc.Elements {
		if _, exists := s.elements[rec.ID]; exists {
			return nil, fmt.Errorf("%w: %d", domain.ErrDuplicateElement, rec.ID)
		}
		s.elements[rec.ID] = rec.Element()
		s.order = append(s.order, rec.ID)
	}

	for _, rec := range doc.Links {
		if rec.ID >= s.nextLink {
			s.nextLink = rec.ID + 1
		}
	}

	usedLinkIDs := make(map[int]struct{}, len(doc.Links))
	for i, rec := range doc.Links {
		if _, ok := s.elements[rec.Source]; !ok {
			return nil, &domain.ReferenceError{LinkIndex: i, Endpoint: "source", ElementID: rec.Source}
		}
		if _, ok := s.elements[rec.Target]; !ok {
			return nil, &domain.ReferenceError{LinkIndex: i, Endpoint: "target", ElementID: rec.Target}
		}

		id := rec.ID
		if _, dup := usedLinkIDs[id]; id == 0 || dup {
			id = s.nextLink
			s.nextLink++
		}
		usedLinkIDs[id] = struct{}{}
		s.links = append(s.links, rec.Link(id))
	}

	s.pruneSelfLoops()
	s.UpdateVisibility()
	return s, nil
}

// Name returns the document name the store was loaded from
func (s *Store) Name() string {
	return s.name
}

// Len returns the number of elements
func (s *Store) Len() int {
	return len(s.order)
}

// Element returns the element with the given id
func (s *Store) Element(id int) (*domain.NetElement, bool) {
	e, ok := s.elements[id]
	return e, ok
}

// Elements returns all elements in load order
func (s *Store) Elements() []*domain.NetElement {
	out := make([]*domain.NetElement, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.elements[id])
	}
	return out
}

// Links returns all links
func (s *Store) Links() []*domain.NetLink {
	out := make([]*domain.NetLink, len(s.links))
	copy(out, s.links)
	return out
}

// Link returns the link with the given id
func (s *Store) Link(id int) (*domain.NetLink, bool) {
	for _, l := range s.links {
		if l.ID == id {
			return l, true
		}
	}
	return nil, false
}

// Endpoints resolves a link's endpoints to the live elements
func (s *Store) Endpoints(l *domain.NetLink) (source, target *domain.NetElement, ok bool) {
	source, sok := s.elements[l.Source]
	target, tok := s.elements[l.Target]
	return source, target, sok && tok
}

// RetiredIDs returns the removed element ids in ascending order
func (s *Store) RetiredIDs() []int {
	ids := make([]int, 0, len(s.retired))
	for id := range s.retired {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Retired reports whether the id belonged to an element that has been removed
func (s *Store) Retired(id int) bool {
	_, ok := s.retired[id]
	return ok
}

// Groups returns the members of every named group, keyed by group label.
// Ungrouped elements are not included.
func (s *Store) Groups() map[string][]*domain.NetElement {
	groups := make(map[string][]*domain.NetElement)
	for _, id := range s.order {
		e := s.elements[id]
		if e.Group == "" {
			continue
		}
		groups[e.Group] = append(groups[e.Group], e)
	}
	return groups
}

// GroupNames returns the named groups in sorted order
func (s *Store) GroupNames() []string {
	groups := s.Groups()
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Placeholder finds the cloud element of a group, ignoring the element with id exclude
func (s *Store) Placeholder(group string, exclude int) (*domain.NetElement, bool) {
	for _, id := range s.order {
		e := s.elements[id]
		if e.ID != exclude && e.IsCloud() && e.Group == group {
			return e, true
		}
	}
	return nil, false
}

// SetCloudsVisible shows or hides every cloud element and recomputes link visibility
func (s *Store) SetCloudsVisible(show bool) {
	for _, e := range s.elements {
		if e.IsCloud() {
			e.Hidden = !show
		}
	}
	s.UpdateVisibility()
}

// UpdateVisibility derives link visibility: a link is hidden iff either endpoint is hidden
func (s *Store) UpdateVisibility() {
	for _, l := range s.links {
		src, tgt, ok := s.Endpoints(l)
		if !ok {
			l.Hidden = true
			continue
		}
		l.Hidden = src.Hidden || tgt.Hidden
	}
}

// pruneSelfLoops removes links whose endpoints are the same element
func (s *Store) pruneSelfLoops() int {
	kept := s.links[:0]
	pruned := 0
	for _, l := range s.links {
		if l.SelfLoop() {
			pruned++
			continue
		}
		kept = append(kept, l)
	}
	for i := len(kept); i < len(s.links); i++ {
		s.links[i] = nil
	}
	s.links = kept
	return pruned
}
