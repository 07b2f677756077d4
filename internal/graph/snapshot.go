package graph

import "netlayout/internal/domain"

// Snapshot serializes the store into a reference-free document. Links carry
// plain element ids, so the result can be stored or sent without cycle handling.
func (s *Store) Snapshot() *domain.Document {
	doc := domain.NewDocument(s.name)
	for _, e := range s.Elements() {
		doc.AddElement(domain.RecordOf(e))
	}
	for _, l := range s.links {
		doc.AddLink(domain.LinkRecordOf(l))
	}
	return doc
}

// Restore is the inverse of Snapshot: it resolves the document's links into the
// live elements of a fresh store. An unresolvable id fails the restore.
//
// Ids listed in retired stay removed. Elements carrying them are removed again
// through RemoveNode, so their links move to the group cloud exactly as they did
// in the session that retired them.
func Restore(doc *domain.Document, retired ...int) (*Store, error) {
	s, err := Load(doc)
	if err != nil {
		return nil, err
	}
	for _, id := range retired {
		if _, err := s.RemoveNode(id); err != nil {
			return nil, err
		}
		s.retired[id] = struct{}{}
	}
	return s, nil
}

// Positions returns the current position of every element
func (s *Store) Positions() []domain.NodePosition {
	out := make([]domain.NodePosition, 0, len(s.order))
	for _, e := range s.Elements() {
		out = append(out, domain.PositionOf(e))
	}
	return out
}
