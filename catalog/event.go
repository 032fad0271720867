// Package catalog holds the immutable-after-load list of events and
// their mutable available-ticket counters (spec.md §3, §4.2).
package catalog

// Event is immutable after load except for AvailableTickets.
type Event struct {
	// ID is the 0-based index assigned at load order.
	ID uint32
	// Description is raw wire bytes, 1..=255 long, never null-terminated.
	Description []byte
	// AvailableTickets is the live counter; InitialTickets never changes
	// and exists only to express the invariant
	// 0 <= AvailableTickets <= InitialTickets.
	AvailableTickets uint16
	InitialTickets   uint16
}
