package catalog

// Event names published by the Service.
const (
	EventScanStart     = "catalog.scan.start"
	EventModelAccepted = "catalog.model.accepted"
	EventModelSkipped  = "catalog.model.skipped"
	EventScanEnd       = "catalog.scan.end"
)

// Event represents a catalog scan event.
// Minimal and stable: name + scan/model IDs and optional fields via key/values.
type Event struct {
	Name    string
	ScanID  string
	ModelID string
	Fields  map[string]any
}

// EventPublisher receives events from the Service. Implementations should be
// lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
