package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBadRequestIncrementsLabeledCounter(t *testing.T) {
	c, _ := New()
	c.BadRequest(ReasonUnknownEvent)
	c.BadRequest(ReasonUnknownEvent)
	c.BadRequest(ReasonZeroTickets)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.BadRequestsByReason.WithLabelValues(string(ReasonUnknownEvent))))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.BadRequestsByReason.WithLabelValues(string(ReasonZeroTickets))))
}

func TestCountersStartAtZero(t *testing.T) {
	c, _ := New()
	assert.Equal(t, float64(0), testutil.ToFloat64(c.ReservationsCreated))
	c.ReservationsCreated.Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(c.ReservationsCreated))
}
