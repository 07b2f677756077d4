package graph

import "netlayout/internal/domain"

// chainDocument builds g1 = {1 cloud, 2, 3}, ungrouped {4, 5} linked 1-2-3-4-5
func chainDocument() *domain.Document {
	doc := domain.NewDocument("chain")
	doc.AddElement(domain.ElementRecord{ID: 1, Type: domain.ElementTypeCloud, Group: "g1"})
	doc.AddElement(domain.ElementRecord{ID: 2, Type: domain.ElementTypeRouter, Group: "g1"})
	doc.AddElement(domain.ElementRecord{ID: 3, Type: domain.ElementTypeRouter, Group: "g1"})
	doc.AddElement(domain.ElementRecord{ID: 4, Type: domain.ElementTypeRouter})
	doc.AddElement(domain.ElementRecord{ID: 5, Type: domain.ElementTypeRRN})
	doc.AddLink(domain.LinkRecord{ID: 1, Source: 1, Target: 2})
	doc.AddLink(domain.LinkRecord{ID: 2, Source: 2, Target: 3})
	doc.AddLink(domain.LinkRecord{ID: 3, Source: 3, Target: 4})
	doc.AddLink(domain.LinkRecord{ID: 4, Source: 4, Target: 5})
	return doc
}
