package wire

import "ticketserver/convert"

// EventField is the wire-level projection of a catalog entry; it
// deliberately does not import the catalog package so the codec stays
// a pure function of bytes in, bytes out.
type EventField struct {
	EventID          uint32
	AvailableTickets uint16
	Description      []byte
}

// EncodeEvents builds an EVENTS datagram body (spec.md §4.1) from an
// ordered list of fields. Order is the caller's responsibility: it
// reuses catalog.Enumerate's order unchanged.
func EncodeEvents(events []EventField) ([]byte, error) {
	size := 1
	for _, e := range events {
		size += 4 + 2 + 1 + len(e.Description)
	}
	if size > MaxDatagramSize {
		return nil, ErrTooLarge
	}

	buf := make([]byte, 0, size)
	buf = append(buf, OpEvents)
	for _, e := range events {
		buf = append(buf, convert.Uint32ToBytes(e.EventID)...)
		buf = append(buf, convert.Uint16ToBytes(e.AvailableTickets)...)
		buf = append(buf, convert.Uint8ToBytes(uint8(len(e.Description)))...)
		buf = append(buf, e.Description...)
	}
	return buf, nil
}

// ReservationField is the wire-level projection of a freshly created
// reservation.
type ReservationField struct {
	ReservationID  uint32
	EventID        uint32
	TicketCount    uint16
	Cookie         [CookieSize]byte
	ExpirationTime uint64
}

// EncodeReservation builds a RESERVATION datagram body.
func EncodeReservation(r ReservationField) []byte {
	buf := make([]byte, 0, 1+4+4+2+CookieSize+8)
	buf = append(buf, OpReservation)
	buf = append(buf, convert.Uint32ToBytes(r.ReservationID)...)
	buf = append(buf, convert.Uint32ToBytes(r.EventID)...)
	buf = append(buf, convert.Uint16ToBytes(r.TicketCount)...)
	buf = append(buf, r.Cookie[:]...)
	buf = append(buf, convert.Uint64ToBytes(r.ExpirationTime)...)
	return buf
}

// EncodeTickets builds a TICKETS datagram body: the reservation id, the
// u16 ticketCount, then the given 7-byte ticket identifiers in order.
func EncodeTickets(reservationID uint32, ticketCount uint16, ticketIDs [][TicketIDSize]byte) ([]byte, error) {
	size := 1 + 4 + 2 + len(ticketIDs)*TicketIDSize
	if size > MaxDatagramSize {
		return nil, ErrTooLarge
	}

	buf := make([]byte, 0, size)
	buf = append(buf, OpTickets)
	buf = append(buf, convert.Uint32ToBytes(reservationID)...)
	buf = append(buf, convert.Uint16ToBytes(ticketCount)...)
	for _, id := range ticketIDs {
		buf = append(buf, id[:]...)
	}
	return buf, nil
}

// EncodeBadRequest builds a BAD_REQUEST datagram body echoing the id the
// failing request carried: the event id for GET_RESERVATION, the
// reservation id for GET_TICKETS.
func EncodeBadRequest(reservationID uint32) []byte {
	buf := make([]byte, 0, 1+4)
	buf = append(buf, OpBadRequest)
	buf = append(buf, convert.Uint32ToBytes(reservationID)...)
	return buf
}
