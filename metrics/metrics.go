// Package metrics exposes a read-only Prometheus side channel for the
// server (SPEC_FULL.md §2.5). It never participates in the protocol
// state machine; every counter here is incremented by the dispatcher
// as a side effect, not a dependency.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles every counter and gauge the dispatcher reports to.
type Collector struct {
	EventsEnumerated     prometheus.Counter
	ReservationsCreated  prometheus.Counter
	ReservationsRedeemed prometheus.Counter
	ReservationsExpired  prometheus.Counter
	Compactions          prometheus.Counter
	BadRequestsByReason  *prometheus.CounterVec
	StoreSize            prometheus.Gauge
}

// BadRequestReason labels the bad-request counter.
type BadRequestReason string

const (
	ReasonUnknownEvent        BadRequestReason = "unknown_event"
	ReasonZeroTickets         BadRequestReason = "zero_tickets"
	ReasonInsufficientTickets BadRequestReason = "insufficient_tickets"
	ReasonOversizeResponse    BadRequestReason = "oversize_response"
	ReasonUnknownOrExpired    BadRequestReason = "unknown_or_expired_reservation"
)

// New registers every metric against a fresh registry so a server
// instance's metrics never collide with another's in the same process
// (useful for tests that spin up more than one server).
func New() (*Collector, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		EventsEnumerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "ticketserver_events_enumerated_total",
			Help: "Number of EVENTS responses sent.",
		}),
		ReservationsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "ticketserver_reservations_created_total",
			Help: "Number of reservations created.",
		}),
		ReservationsRedeemed: factory.NewCounter(prometheus.CounterOpts{
			Name: "ticketserver_reservations_redeemed_total",
			Help: "Number of reservations redeemed via GET_TICKETS.",
		}),
		ReservationsExpired: factory.NewCounter(prometheus.CounterOpts{
			Name: "ticketserver_reservations_expired_total",
			Help: "Number of reservations expired by the sweep.",
		}),
		Compactions: factory.NewCounter(prometheus.CounterOpts{
			Name: "ticketserver_compactions_total",
			Help: "Number of reservation store compactions run.",
		}),
		BadRequestsByReason: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ticketserver_bad_requests_total",
			Help: "Number of BAD_REQUEST replies, labeled by reason.",
		}, []string{"reason"}),
		StoreSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "ticketserver_store_size",
			Help: "Current number of reservations retained in the store.",
		}),
	}, reg
}

// BadRequest increments the counter for a given failure reason.
func (c *Collector) BadRequest(reason BadRequestReason) {
	c.BadRequestsByReason.WithLabelValues(string(reason)).Inc()
}

// Server is the optional HTTP listener exposing the registry.
type Server struct {
	httpServer *http.Server
	done       chan struct{}
}

// NewServer builds (but does not start) a metrics HTTP server bound to
// addr, serving reg on /metrics.
func NewServer(addr string, reg *prometheus.Registry) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return &Server{
		httpServer: &http.Server{Addr: addr, Handler: mux},
		done:       make(chan struct{}),
	}
}

// Done returns a channel closed once the server has fully stopped,
// suitable for fanning into the process-wide shutdown signal.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Run starts serving until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	defer close(s.done)

	errc := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
			return
		}
		errc <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return errors.Errorf("shut down metrics server: %w", err)
		}
		return nil
	case err := <-errc:
		return err
	}
}
