package interaction

import "netlayout/internal/domain"

// EventType identifies an input event
type EventType string

const (
	EventDragStart      EventType = "dragStart"
	EventDragMove       EventType = "dragMove"
	EventDragEnd        EventType = "dragEnd"
	EventZoom           EventType = "zoom"
	EventZoomBy         EventType = "zoomBy"
	EventSelectNode     EventType = "selectNode"
	EventSelectLink     EventType = "selectLink"
	EventClearSelection EventType = "clearSelection"
	EventDeleteSelected EventType = "deleteSelected"
	EventResize         EventType = "resize"
	EventDropAt         EventType = "dropAt"
	EventShowClouds     EventType = "setShowClouds"
	EventSave           EventType = "save"
)

// Event is a discrete input from the UI. Only the fields relevant to Type are read.
type Event struct {
	Type      EventType             `json:"type" validate:"required,oneof=dragStart dragMove dragEnd zoom zoomBy selectNode selectLink clearSelection deleteSelected resize dropAt setShowClouds save"`
	ID        int                   `json:"id,omitempty"`
	Pointer   *domain.Point         `json:"pointer,omitempty" validate:"required_if=Type dragMove,required_if=Type dropAt"`
	Transform *domain.ViewTransform `json:"transform,omitempty" validate:"required_if=Type zoom"`
	Factor    float64               `json:"factor,omitempty" validate:"required_if=Type zoomBy,gte=0"`
	Width     float64               `json:"width,omitempty" validate:"gte=0"`
	Height    float64               `json:"height,omitempty" validate:"gte=0"`
	Show      bool                  `json:"show,omitempty"`
}

func DragStart(id int) Event {
	return Event{Type: EventDragStart, ID: id}
}

func DragMove(id int, pointer domain.Point) Event {
	return Event{Type: EventDragMove, ID: id, Pointer: &pointer}
}

func DragEnd(id int) Event {
	return Event{Type: EventDragEnd, ID: id}
}

func Zoom(t domain.ViewTransform) Event {
	return Event{Type: EventZoom, Transform: &t}
}

func ZoomBy(factor float64) Event {
	return Event{Type: EventZoomBy, Factor: factor}
}

func SelectNode(id int) Event {
	return Event{Type: EventSelectNode, ID: id}
}

func SelectLink(id int) Event {
	return Event{Type: EventSelectLink, ID: id}
}

func ClearSelection() Event {
	return Event{Type: EventClearSelection}
}

func DeleteSelected() Event {
	return Event{Type: EventDeleteSelected}
}

func Resize(width, height float64) Event {
	return Event{Type: EventResize, Width: width, Height: height}
}

func DropAt(pointer domain.Point) Event {
	return Event{Type: EventDropAt, Pointer: &pointer}
}

func ShowClouds(show bool) Event {
	return Event{Type: EventShowClouds, Show: show}
}

func Save() Event {
	return Event{Type: EventSave}
}
