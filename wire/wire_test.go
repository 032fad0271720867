package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRequest(t *testing.T) {
	cases := []struct {
		opcode byte
		size   int
		want   bool
	}{
		{OpGetEvents, 1, true},
		{OpGetEvents, 2, false},
		{OpGetReservation, 7, true},
		{OpGetReservation, 6, false},
		{OpGetTickets, 53, true},
		{OpGetTickets, 52, false},
		{OpEvents, 1, false},
		{OpBadRequest, 5, false},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, ClassifyRequest(c.opcode, c.size), "ClassifyRequest(%d, %d)", c.opcode, c.size)
	}
}

func TestGetReservationRoundTrip(t *testing.T) {
	buf := make([]byte, 0, LenGetReservation)
	buf = append(buf, OpGetReservation)
	buf = append(buf, 0, 0, 0, 7)
	buf = append(buf, 0, 3)

	eventID, ticketCount, err := DecodeGetReservation(buf[1:])
	require.NoError(t, err)
	assert.Equal(t, uint32(7), eventID)
	assert.Equal(t, uint16(3), ticketCount)
}

func TestGetTicketsRoundTrip(t *testing.T) {
	buf := make([]byte, 0, LenGetTickets)
	buf = append(buf, OpGetTickets)
	buf = append(buf, 0, 0, 0, 42)
	var cookie [CookieSize]byte
	for i := range cookie {
		cookie[i] = byte(33 + i%94)
	}
	buf = append(buf, cookie[:]...)

	reservationID, gotCookie, err := DecodeGetTickets(buf[1:])
	require.NoError(t, err)
	assert.Equal(t, uint32(42), reservationID)
	assert.Equal(t, cookie, gotCookie)
}

func TestEventsRoundTrip(t *testing.T) {
	want := []EventField{
		{EventID: 0, AvailableTickets: 2, Description: []byte("Concert")},
		{EventID: 1, AvailableTickets: 0, Description: []byte("Movie")},
	}
	encoded, err := EncodeEvents(want)
	require.NoError(t, err)
	assert.Equal(t, OpEvents, encoded[0])

	got, err := DecodeEvents(encoded[1:])
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].EventID, got[i].EventID)
		assert.Equal(t, want[i].AvailableTickets, got[i].AvailableTickets)
		assert.Equal(t, want[i].Description, got[i].Description)
	}
}

func TestReservationRoundTrip(t *testing.T) {
	var cookie [CookieSize]byte
	copy(cookie[:], "1000000")
	want := ReservationField{
		ReservationID:  1000000,
		EventID:        4,
		TicketCount:    5,
		Cookie:         cookie,
		ExpirationTime: 1735689600,
	}
	encoded := EncodeReservation(want)
	assert.Equal(t, OpReservation, encoded[0])

	got, err := DecodeReservation(encoded[1:])
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTicketsRoundTrip(t *testing.T) {
	ids := [][TicketIDSize]byte{}
	for i := 0; i < 3; i++ {
		var id [TicketIDSize]byte
		id[0] = byte('A' + i)
		ids = append(ids, id)
	}
	encoded, err := EncodeTickets(55, uint16(len(ids)), ids)
	require.NoError(t, err)
	assert.Equal(t, OpTickets, encoded[0])

	reservationID, gotIDs, err := DecodeTickets(encoded[1:])
	require.NoError(t, err)
	assert.Equal(t, uint32(55), reservationID)
	assert.Equal(t, ids, gotIDs)
}

func TestBadRequestRoundTrip(t *testing.T) {
	encoded := EncodeBadRequest(9001)
	assert.Equal(t, OpBadRequest, encoded[0])

	got, err := DecodeBadRequest(encoded[1:])
	require.NoError(t, err)
	assert.Equal(t, uint32(9001), got)
}

func TestEncodeTicketsRefusesOversize(t *testing.T) {
	ids := make([][TicketIDSize]byte, MaxDatagramSize)
	_, err := EncodeTickets(1, uint16(len(ids)), ids)
	assert.Error(t, err)
}
