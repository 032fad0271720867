// Package wire implements the exact on-the-wire framing for the ticket
// protocol (spec.md §4.1): six fixed-layout message variants, all
// multi-byte integers big-endian, no padding, nothing ever memcpy'd from
// a native struct.
package wire

import "github.com/cockroachdb/errors"

// Opcodes, spec.md §4.1.
const (
	OpGetEvents      byte = 1
	OpEvents         byte = 2
	OpGetReservation byte = 3
	OpReservation    byte = 4
	OpGetTickets     byte = 5
	OpTickets        byte = 6
	OpBadRequest     byte = 255
)

// Exact total datagram sizes for the three fixed-length requests.
const (
	LenGetEvents      = 1
	LenGetReservation = 7
	LenGetTickets     = 53
)

// CookieSize and MaxDatagramSize are fixed protocol constants.
const (
	CookieSize      = 48
	TicketIDSize    = 7
	MaxDatagramSize = 65507
)

// ErrTooLarge is returned by an encoder when the requested response
// would exceed MaxDatagramSize. The loader and the dispatcher's
// pre-checks (spec.md §4.2, §4.4) are meant to make this unreachable in
// practice; the encoder still refuses rather than silently truncating.
var ErrTooLarge = errors.New("encoded response would exceed the maximum datagram size")

// ErrShortMessage is returned by a decoder given fewer bytes than the
// variant requires.
var ErrShortMessage = errors.New("message too short for this variant")

// ClassifyRequest reports whether a datagram of length size with the
// given opcode byte is one of the three fixed-length request variants
// at exactly that variant's length. The
// dispatcher silently drops anything this does not recognize exactly
// (spec.md §4.1: "unknown opcodes or mismatched lengths are silently
// ignored").
func ClassifyRequest(opcode byte, size int) (valid bool) {
	switch opcode {
	case OpGetEvents:
		return size == LenGetEvents
	case OpGetReservation:
		return size == LenGetReservation
	case OpGetTickets:
		return size == LenGetTickets
	default:
		return false
	}
}
