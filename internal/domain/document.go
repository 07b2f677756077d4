package domain

// Document is the reference-free form of a layout: links name their endpoints
// by element id. It is both the load contract and the persisted snapshot.
type Document struct {
	Name     string          `json:"name" yaml:"name"`
	Elements []ElementRecord `json:"netElements" yaml:"netElements" validate:"dive"`
	Links    []LinkRecord    `json:"netLinks" yaml:"netLinks" validate:"dive"`
}

// ElementRecord is the serialized form of a NetElement. Positions are optional;
// an element without x/y is seeded by the simulation.
type ElementRecord struct {
	ID          int         `json:"id" yaml:"id" validate:"gte=0"`
	Type        ElementType `json:"type" yaml:"type" validate:"required,oneof=router cloud rrn"`
	Name        string      `json:"name,omitempty" yaml:"name,omitempty"`
	Group       string      `json:"group,omitempty" yaml:"group,omitempty"`
	Level       int         `json:"level,omitempty" yaml:"level,omitempty"`
	Severity    int         `json:"severity,omitempty" yaml:"severity,omitempty" validate:"gte=0"`
	EventCount  int         `json:"eventCount,omitempty" yaml:"eventCount,omitempty" validate:"gte=0"`
	Hidden      bool        `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Highlighted bool        `json:"highlighted,omitempty" yaml:"highlighted,omitempty"`
	X           *float64    `json:"x,omitempty" yaml:"x,omitempty"`
	Y           *float64    `json:"y,omitempty" yaml:"y,omitempty"`
	FX          *float64    `json:"fx,omitempty" yaml:"fx,omitempty"`
	FY          *float64    `json:"fy,omitempty" yaml:"fy,omitempty"`
}

// LinkRecord is the serialized form of a NetLink. An ID of zero asks the store
// to assign one.
type LinkRecord struct {
	ID         int                     `json:"id,omitempty" yaml:"id,omitempty" validate:"gte=0"`
	Source     int                     `json:"source" yaml:"source"`
	Target     int                     `json:"target" yaml:"target"`
	LoadStatus map[int]LoadStatusEntry `json:"loadStatusByMetricDescType,omitempty" yaml:"loadStatusByMetricDescType,omitempty"`
}

// NewDocument creates an empty document
func NewDocument(name string) *Document {
	return &Document{
		Name:     name,
		Elements: make([]ElementRecord, 0),
		Links:    make([]LinkRecord, 0),
	}
}

// AddElement adds an element record to the document
func (d *Document) AddElement(rec ElementRecord) {
	d.Elements = append(d.Elements, rec)
}

// AddLink adds a link record to the document
func (d *Document) AddLink(rec LinkRecord) {
	d.Links = append(d.Links, rec)
}

// RecordOf converts a live element into its serialized form
func RecordOf(e *NetElement) ElementRecord {
	x, y := e.X, e.Y
	rec := ElementRecord{
		ID:          e.ID,
		Type:        e.Type,
		Name:        e.Name,
		Group:       e.Group,
		Level:       e.Level,
		Severity:    e.Severity,
		EventCount:  e.EventCount,
		Hidden:      e.Hidden,
		Highlighted: e.Highlighted,
		X:           &x,
		Y:           &y,
	}
	if e.Pinned() {
		fx, fy := *e.FX, *e.FY
		rec.FX = &fx
		rec.FY = &fy
	}
	return rec
}

// Element converts the record into a live element
func (r ElementRecord) Element() *NetElement {
	e := &NetElement{
		ID:          r.ID,
		Type:        r.Type,
		Name:        r.Name,
		Group:       r.Group,
		Level:       r.Level,
		Severity:    r.Severity,
		EventCount:  r.EventCount,
		Hidden:      r.Hidden,
		Highlighted: r.Highlighted,
	}
	if r.X != nil && r.Y != nil {
		e.X, e.Y = *r.X, *r.Y
		e.MarkPlaced()
	}
	if r.FX != nil && r.FY != nil {
		e.Pin(*r.FX, *r.FY)
	}
	return e
}

// LinkRecordOf converts a live link into its serialized form
func LinkRecordOf(l *NetLink) LinkRecord {
	c := l.Clone()
	return LinkRecord{
		ID:         c.ID,
		Source:     c.Source,
		Target:     c.Target,
		LoadStatus: c.LoadStatus,
	}
}

// Link converts the record into a live link with the given id
func (r LinkRecord) Link(id int) *NetLink {
	l := NewNetLink(id, r.Source, r.Target)
	for k, v := range r.LoadStatus {
		l.LoadStatus[k] = v
	}
	return l
}
