package server

import (
	"net"
	"testing"
	"time"

	mrand "math/rand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketserver/catalog"
	"ticketserver/cookie"
	"ticketserver/metrics"
	"ticketserver/reservation"
	"ticketserver/ticket"
	"ticketserver/wire"
)

func newTestDispatcher(t *testing.T, clock int64) (*Dispatcher, *net.UDPConn) {
	t.Helper()

	cat := catalog.New([]catalog.Event{
		{ID: 0, Description: []byte("Concert"), AvailableTickets: 2, InitialTickets: 2},
	})
	cookies := cookie.NewGenerator(mrand.New(mrand.NewSource(2137)))
	store := reservation.New(5, cat, cookies)
	issuer := ticket.NewIssuer()
	m, _ := metrics.New()

	serverConn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 0})
	require.NoError(t, err)
	t.Cleanup(func() { serverConn.Close() })

	now := clock
	d := New(serverConn, cat, store, issuer, m, func() int64 { return now })
	return d, serverConn
}

func roundTrip(t *testing.T, conn *net.UDPConn, d *Dispatcher, req []byte) []byte {
	t.Helper()
	client, err := net.DialUDP("udp4", nil, conn.LocalAddr().(*net.UDPAddr))
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Write(req)
	require.NoError(t, err)

	buf := make([]byte, wire.MaxDatagramSize)
	n, addr, err := conn.ReadFromUDP(buf)
	require.NoError(t, err)
	d.handleDatagram(buf[:n], addr)

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err = client.Read(buf)
	require.NoError(t, err)
	out := make([]byte, n)
	copy(out, buf[:n])
	return out
}

func TestGetEventsReplyEchoesCatalog(t *testing.T) {
	d, conn := newTestDispatcher(t, 0)
	resp := roundTrip(t, conn, d, []byte{wire.OpGetEvents})
	require.Equal(t, wire.OpEvents, resp[0])

	events, err := wire.DecodeEvents(resp[1:])
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Concert", string(events[0].Description))
}

func TestReservationThenTicketsFlow(t *testing.T) {
	d, conn := newTestDispatcher(t, 1000)

	req := make([]byte, wire.LenGetReservation)
	req[0] = wire.OpGetReservation
	copy(req[1:5], []byte{0, 0, 0, 0})
	copy(req[5:7], []byte{0, 2})

	resp := roundTrip(t, conn, d, req)
	require.Equal(t, wire.OpReservation, resp[0])

	r, err := wire.DecodeReservation(resp[1:])
	require.NoError(t, err)
	assert.Equal(t, reservation.FirstReservationID, r.ReservationID)

	ticketsReq := make([]byte, wire.LenGetTickets)
	ticketsReq[0] = wire.OpGetTickets
	copy(ticketsReq[1:5], resp[1:5])
	copy(ticketsReq[5:], r.Cookie[:])

	ticketsResp := roundTrip(t, conn, d, ticketsReq)
	require.Equal(t, wire.OpTickets, ticketsResp[0])

	gotID, ids, err := wire.DecodeTickets(ticketsResp[1:])
	require.NoError(t, err)
	assert.Equal(t, r.ReservationID, gotID)
	assert.Len(t, ids, 2)

	// Redemption idempotence: a second GET_TICKETS yields byte-identical output.
	again := roundTrip(t, conn, d, ticketsReq)
	assert.Equal(t, ticketsResp, again)
}

func TestReservationForUnknownEventIsBadRequest(t *testing.T) {
	d, conn := newTestDispatcher(t, 0)

	req := make([]byte, wire.LenGetReservation)
	req[0] = wire.OpGetReservation
	copy(req[1:5], []byte{0, 0, 0, 9})
	copy(req[5:7], []byte{0, 1})

	resp := roundTrip(t, conn, d, req)
	assert.Equal(t, wire.OpBadRequest, resp[0])
}

func TestUnknownOpcodeIsSilentlyDropped(t *testing.T) {
	d, conn := newTestDispatcher(t, 0)
	client, err := net.DialUDP("udp4", nil, conn.LocalAddr().(*net.UDPAddr))
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Write([]byte{200})
	require.NoError(t, err)

	buf := make([]byte, wire.MaxDatagramSize)
	n, addr, err := conn.ReadFromUDP(buf)
	require.NoError(t, err)
	d.handleDatagram(buf[:n], addr)

	client.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, err = client.Read(buf)
	assert.Error(t, err, "expected no reply for an unrecognized opcode")
}
