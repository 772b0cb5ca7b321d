package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorders(t *testing.T) {
	m := NewWithRegisterer("inspections", prometheus.NewRegistry())

	m.RecordBookingOutcome("slot", "admitted")
	m.RecordBookingOutcome("slot", "admitted")
	m.RecordBookingOutcome("slot", "slot_full")
	m.RecordNotification("email", "sent")
	m.SetNotificationQueueDepth(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingOutcomes.WithLabelValues("slot", "admitted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingOutcomes.WithLabelValues("slot", "slot_full")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationResults.WithLabelValues("email", "sent")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.NotificationQueueDepth))
}

func TestNewWithRegisterer_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewWithRegisterer("a", prometheus.NewRegistry())
		NewWithRegisterer("a", prometheus.NewRegistry())
	})
}
