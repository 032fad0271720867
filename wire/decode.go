package wire

import "ticketserver/convert"

// DecodeGetReservation parses a GET_RESERVATION body (everything after
// the opcode byte): a u32 event id and a u16 ticket count.
func DecodeGetReservation(body []byte) (eventID uint32, ticketCount uint16, err error) {
	eventID, err = convert.Uint32FromBytes(body)
	if err != nil {
		return 0, 0, err
	}
	ticketCount, err = convert.Uint16FromBytes(body[4:])
	if err != nil {
		return 0, 0, err
	}
	return eventID, ticketCount, nil
}

// DecodeGetTickets parses a GET_TICKETS body: a u32 reservation id and
// its 48-byte cookie.
func DecodeGetTickets(body []byte) (reservationID uint32, cookie [CookieSize]byte, err error) {
	reservationID, err = convert.Uint32FromBytes(body)
	if err != nil {
		return 0, cookie, err
	}
	if len(body) < 4+CookieSize {
		return 0, cookie, ErrShortMessage
	}
	copy(cookie[:], body[4:4+CookieSize])
	return reservationID, cookie, nil
}

// DecodeEvents parses an EVENTS datagram body back into its fields.
// Used by tests exercising the encode/decode round trip; the server
// itself only ever encodes this variant.
func DecodeEvents(body []byte) ([]EventField, error) {
	var events []EventField
	for len(body) > 0 {
		eventID, err := convert.Uint32FromBytes(body)
		if err != nil {
			return nil, err
		}
		avail, err := convert.Uint16FromBytes(body[4:])
		if err != nil {
			return nil, err
		}
		descLen, err := convert.Uint8FromBytes(body[6:])
		if err != nil {
			return nil, err
		}
		if len(body) < 7+int(descLen) {
			return nil, ErrShortMessage
		}
		desc := make([]byte, descLen)
		copy(desc, body[7:7+int(descLen)])
		events = append(events, EventField{EventID: eventID, AvailableTickets: avail, Description: desc})
		body = body[7+int(descLen):]
	}
	return events, nil
}

// DecodeReservation parses a RESERVATION datagram body.
func DecodeReservation(body []byte) (ReservationField, error) {
	var r ReservationField
	if len(body) < 4+4+2+CookieSize+8 {
		return r, ErrShortMessage
	}
	eventIDOffset := 4
	ticketCountOffset := eventIDOffset + 4
	cookieOffset := ticketCountOffset + 2
	expirationOffset := cookieOffset + CookieSize

	reservationID, err := convert.Uint32FromBytes(body)
	if err != nil {
		return r, err
	}
	eventID, err := convert.Uint32FromBytes(body[eventIDOffset:])
	if err != nil {
		return r, err
	}
	ticketCount, err := convert.Uint16FromBytes(body[ticketCountOffset:])
	if err != nil {
		return r, err
	}
	expiration, err := convert.Uint64FromBytes(body[expirationOffset:])
	if err != nil {
		return r, err
	}

	r.ReservationID = reservationID
	r.EventID = eventID
	r.TicketCount = ticketCount
	copy(r.Cookie[:], body[cookieOffset:cookieOffset+CookieSize])
	r.ExpirationTime = expiration
	return r, nil
}

// DecodeTickets parses a TICKETS datagram body.
func DecodeTickets(body []byte) (reservationID uint32, ticketIDs [][TicketIDSize]byte, err error) {
	reservationID, err = convert.Uint32FromBytes(body)
	if err != nil {
		return 0, nil, err
	}
	ticketCount, err := convert.Uint16FromBytes(body[4:])
	if err != nil {
		return 0, nil, err
	}
	rest := body[6:]
	if len(rest) != int(ticketCount)*TicketIDSize {
		return 0, nil, ErrShortMessage
	}
	ticketIDs = make([][TicketIDSize]byte, ticketCount)
	for i := range ticketIDs {
		copy(ticketIDs[i][:], rest[i*TicketIDSize:(i+1)*TicketIDSize])
	}
	return reservationID, ticketIDs, nil
}

// DecodeBadRequest parses a BAD_REQUEST datagram body.
func DecodeBadRequest(body []byte) (reservationID uint32, err error) {
	return convert.Uint32FromBytes(body)
}
