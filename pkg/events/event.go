package events

import "time"

// Event is a domain fact published on the bus under events.<EventType>.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
	// DedupKey identifies the fact itself; the same order settling twice
	// yields the same key. Empty disables broker-side deduplication.
	DedupKey() string
}

// Record is the plain Event implementation used by the order constructors.
type Record struct {
	Type       string
	Key        string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (r Record) EventType() string               { return r.Type }
func (r Record) Payload() map[string]interface{} { return r.Data }
func (r Record) Timestamp() time.Time            { return r.OccurredAt }
func (r Record) DedupKey() string                { return r.Key }
