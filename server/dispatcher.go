// Package server implements the single-threaded request dispatcher
// from spec.md §4.4: receive, sweep, classify, handle, reply. Nothing
// in this package suspends mid-handler; the only blocking call is the
// read at the top of Run's loop.
package server

import (
	"context"
	goerrors "errors"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ticketserver/catalog"
	"ticketserver/metrics"
	"ticketserver/reservation"
	"ticketserver/retry"
	"ticketserver/ticket"
	"ticketserver/wire"
)

var logger = logrus.WithFields(logrus.Fields{"component": "server"})

// Dispatcher owns the exclusive mutable state spec.md §5 describes:
// the event catalog, the reservation store, and the ticket counter.
// It is not safe for concurrent use, by design.
type Dispatcher struct {
	conn    *net.UDPConn
	catalog *catalog.Catalog
	store   *reservation.Store
	issuer  *ticket.Issuer
	metrics *metrics.Collector
	now     func() int64
	sender  *retry.SendWrapper

	lastCompactionCount int
}

// New builds a dispatcher around already-constructed collaborators.
// now defaults to wall-clock seconds if nil; tests supply a fixed
// clock to make sweep/expiry behavior deterministic.
func New(conn *net.UDPConn, cat *catalog.Catalog, store *reservation.Store, issuer *ticket.Issuer, m *metrics.Collector, now func() int64) *Dispatcher {
	if now == nil {
		now = func() int64 { return time.Now().Unix() }
	}
	return &Dispatcher{
		conn:    conn,
		catalog: cat,
		store:   store,
		issuer:  issuer,
		metrics: m,
		now:     now,
		sender:  retry.NewSendWrapper(context.Background(), 10*time.Millisecond, 3),
	}
}

// Run reads datagrams until conn is closed (the sole mechanism for
// unblocking recv, per spec.md §5 and SPEC_FULL.md §2.6).
func (d *Dispatcher) Run() error {
	buf := make([]byte, wire.MaxDatagramSize)
	for {
		n, addr, err := d.conn.ReadFromUDP(buf)
		if err != nil {
			if isClosedConnError(err) {
				return nil
			}
			return err
		}
		d.handleDatagram(buf[:n], addr)
	}
}

func (d *Dispatcher) handleDatagram(buf []byte, addr *net.UDPAddr) {
	correlationID := uuid.New().String()
	log := logger.WithField("correlation_id", correlationID)

	now := d.now()
	d.sweep(now, log)

	if len(buf) < 1 {
		log.Debug("dropping zero-length datagram")
		return
	}

	opcode := buf[0]
	switch {
	case opcode == wire.OpGetEvents && wire.ClassifyRequest(opcode, len(buf)):
		d.replyEvents(addr, log)
	case opcode == wire.OpGetReservation && wire.ClassifyRequest(opcode, len(buf)):
		eventID, ticketCount, err := wire.DecodeGetReservation(buf[1:])
		if err != nil {
			log.WithError(err).Debug("dropping malformed GET_RESERVATION")
			return
		}
		d.processReservation(addr, eventID, ticketCount, now, log)
	case opcode == wire.OpGetTickets && wire.ClassifyRequest(opcode, len(buf)):
		reservationID, cookie, err := wire.DecodeGetTickets(buf[1:])
		if err != nil {
			log.WithError(err).Debug("dropping malformed GET_TICKETS")
			return
		}
		d.processTickets(addr, reservationID, cookie, now, log)
	default:
		log.WithField("opcode", opcode).Debug("dropping unrecognized datagram")
	}
}

func (d *Dispatcher) sweep(now int64, log *logrus.Entry) {
	before := d.store.Len()
	d.store.Sweep(now)
	if d.metrics != nil {
		d.metrics.StoreSize.Set(float64(d.store.Len()))
		if d.store.Len() < before {
			d.metrics.ReservationsExpired.Add(float64(before - d.store.Len()))
		}
		if n := d.store.CompactionCount(); n > d.lastCompactionCount {
			d.metrics.Compactions.Add(float64(n - d.lastCompactionCount))
			d.lastCompactionCount = n
		}
	}
	log.Trace("sweep complete")
}

func (d *Dispatcher) replyEvents(addr *net.UDPAddr, log *logrus.Entry) {
	events := d.catalog.Enumerate()
	fields := make([]wire.EventField, len(events))
	for i, e := range events {
		fields[i] = wire.EventField{EventID: e.ID, AvailableTickets: e.AvailableTickets, Description: e.Description}
	}
	body, err := wire.EncodeEvents(fields)
	if err != nil {
		// The loader already guarantees this is representable; a
		// failure here means the catalog was mutated in a way the
		// loader did not anticipate.
		log.WithError(err).Error("failed to encode EVENTS despite loader guarantee")
		return
	}
	d.send(addr, body, log)
	if d.metrics != nil {
		d.metrics.EventsEnumerated.Inc()
	}
}

func (d *Dispatcher) processReservation(addr *net.UDPAddr, eventID uint32, ticketCount uint16, now int64, log *logrus.Entry) {
	if (int(ticketCount)+1)*wire.TicketIDSize > wire.MaxDatagramSize {
		d.badRequest(addr, eventID, metrics.ReasonOversizeResponse, log)
		return
	}
	if !d.catalog.Exists(eventID) {
		d.badRequest(addr, eventID, metrics.ReasonUnknownEvent, log)
		return
	}
	if ticketCount == 0 {
		d.badRequest(addr, eventID, metrics.ReasonZeroTickets, log)
		return
	}
	avail, _ := d.catalog.Available(eventID)
	if avail < ticketCount {
		d.badRequest(addr, eventID, metrics.ReasonInsufficientTickets, log)
		return
	}

	if err := d.catalog.Reserve(eventID, ticketCount); err != nil {
		d.badRequest(addr, eventID, metrics.ReasonInsufficientTickets, log)
		return
	}
	r := d.store.Create(eventID, ticketCount, now)

	body := wire.EncodeReservation(wire.ReservationField{
		ReservationID:  r.ID,
		EventID:        r.EventID,
		TicketCount:    r.TicketCount,
		Cookie:         r.Cookie,
		ExpirationTime: uint64(r.ExpirationTime),
	})
	d.send(addr, body, log)
	if d.metrics != nil {
		d.metrics.ReservationsCreated.Inc()
	}
}

func (d *Dispatcher) processTickets(addr *net.UDPAddr, reservationID uint32, cookie [wire.CookieSize]byte, now int64, log *logrus.Entry) {
	r := d.store.Find(reservationID, cookie)
	if r == nil || (!r.Redeemed() && r.ExpirationTime < now) {
		d.badRequest(addr, reservationID, metrics.ReasonUnknownOrExpired, log)
		return
	}

	if !r.Redeemed() {
		first := d.issuer.Allocate(r.TicketCount)
		r.FirstTicketID = &first
		if d.metrics != nil {
			d.metrics.ReservationsRedeemed.Inc()
		}
	}

	ids := make([][ticket.IDSize]byte, r.TicketCount)
	for i := range ids {
		ids[i] = ticket.Encode(*r.FirstTicketID + uint64(i))
	}
	body, err := wire.EncodeTickets(r.ID, r.TicketCount, ids)
	if err != nil {
		log.WithError(err).Error("failed to encode TICKETS despite pre-check")
		return
	}
	d.send(addr, body, log)
}

func (d *Dispatcher) badRequest(addr *net.UDPAddr, echoedID uint32, reason metrics.BadRequestReason, log *logrus.Entry) {
	d.send(addr, wire.EncodeBadRequest(echoedID), log)
	if d.metrics != nil {
		d.metrics.BadRequest(reason)
	}
}

func (d *Dispatcher) send(addr *net.UDPAddr, body []byte, log *logrus.Entry) {
	err := d.sender.Do(func() error {
		_, err := d.conn.WriteToUDP(body, addr)
		return err
	})
	if err != nil {
		log.WithError(err).Warn("dropping reply after exhausting send retries")
	}
}

func isClosedConnError(err error) bool {
	return goerrors.Is(err, net.ErrClosed)
}
