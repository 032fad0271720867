package catalog

import "github.com/cockroachdb/errors"

// ErrUnknownEvent is returned by Reserve for an out-of-range id (Release
// ignores such an id and returns nothing); the dispatcher never surfaces this to a client as anything but
// BAD_REQUEST (spec.md §4.4), it exists so catalog itself never panics on
// a malformed request.
var ErrUnknownEvent = errors.New("unknown event id")

// ErrInsufficientTickets is returned by Reserve when fewer tickets are
// available than requested.
var ErrInsufficientTickets = errors.New("insufficient tickets available")

// Catalog is the ordered, load-time-fixed list of events exposed to the
// dispatcher.
type Catalog struct {
	events []Event
}

// New wraps an already-built, load-ordered event slice.
func New(events []Event) *Catalog {
	return &Catalog{events: events}
}

// Enumerate returns the events in load order. The returned slice is the
// catalog's own storage, not a copy: callers must not mutate it, and its
// AvailableTickets values change with later Reserve/Release calls.
func (c *Catalog) Enumerate() []Event {
	return c.events
}

// Exists reports whether eventID names a loaded event.
func (c *Catalog) Exists(eventID uint32) bool {
	return eventID < uint32(len(c.events))
}

// Available returns the live ticket count for eventID.
func (c *Catalog) Available(eventID uint32) (uint16, bool) {
	if !c.Exists(eventID) {
		return 0, false
	}
	return c.events[eventID].AvailableTickets, true
}

// Reserve decrements eventID's available count by n. The caller must have
// already checked n <= Available(eventID); Reserve still refuses to drive
// the counter negative.
func (c *Catalog) Reserve(eventID uint32, n uint16) error {
	if !c.Exists(eventID) {
		return ErrUnknownEvent
	}
	ev := &c.events[eventID]
	if n > ev.AvailableTickets {
		return ErrInsufficientTickets
	}
	ev.AvailableTickets -= n
	return nil
}

// Release returns n tickets to eventID's pool unconditionally. Only the
// expiry sweep calls this.
func (c *Catalog) Release(eventID uint32, n uint16) {
	if !c.Exists(eventID) {
		return
	}
	c.events[eventID].AvailableTickets += n
}
