// Package reservation implements the append-only reservation store
// described in spec.md §4.3: reservations are created in id order,
// looked up by binary search, swept for expiry on every request, and
// periodically compacted under the same capacity discipline as the
// growable array it replaces.
package reservation

// Reservation is one outstanding or settled ticket hold.
type Reservation struct {
	ID             uint32
	EventID        uint32
	TicketCount    uint16
	Cookie         [48]byte
	ExpirationTime int64

	// FirstTicketID is nil until the reservation is redeemed via
	// GET_TICKETS, at which point it holds the first of the
	// TicketCount consecutive ids allocated to it. A redeemed
	// reservation never expires (spec.md §4.3).
	FirstTicketID *uint64
}

// Redeemed reports whether tickets have already been issued for r.
func (r *Reservation) Redeemed() bool {
	return r.FirstTicketID != nil
}

// Expired reports whether r's hold has lapsed as of now, given it has
// not been redeemed.
func (r *Reservation) Expired(now int64) bool {
	return !r.Redeemed() && r.ExpirationTime <= now
}
