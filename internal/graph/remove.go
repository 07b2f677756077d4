package graph

import "netlayout/internal/domain"

// Removal describes the outcome of a node removal
type Removal struct {
	ElementID   int
	Placeholder int
	Retargeted  int
	Pruned      int
}

// RemoveNode removes an element and reattaches its links to the cloud of the
// same group. A missing id is a no-op and returns (nil, nil). If the group has
// no cloud the removal is rejected with an InvariantError and nothing changes.
func (s *Store) RemoveNode(id int) (*Removal, error) {
	removed, ok := s.elements[id]
	if !ok {
		return nil, nil
	}

	cloud, ok := s.Placeholder(removed.Group, id)
	if !ok {
		return nil, &domain.InvariantError{
			ElementID: id,
			Reason:    "no cloud placeholder in group " + quoteGroup(removed.Group),
		}
	}

	removed.Hidden = true
	delete(s.elements, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.retired[id] = struct{}{}

	cloud.Hidden = false

	result := &Removal{ElementID: id, Placeholder: cloud.ID}
	for _, l := range s.links {
		if l.Retarget(id, cloud.ID) {
			result.Retargeted++
		}
	}
	result.Pruned = s.pruneSelfLoops()

	s.UpdateVisibility()
	return result, nil
}

func quoteGroup(group string) string {
	if group == "" {
		return "<ungrouped>"
	}
	return "\"" + group + "\""
}
