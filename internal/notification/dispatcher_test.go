package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luklinx/carsabeg-sub000/internal/domain"
	"github.com/luklinx/carsabeg-sub000/internal/integrations/listingservice"
	"github.com/luklinx/carsabeg-sub000/pkg/logger"
	"github.com/luklinx/carsabeg-sub000/pkg/metrics"
)

type fakeChannel struct {
	name string
	err  error

	mu   sync.Mutex
	sent []*Notification

	started chan struct{}
	release chan struct{}
}

func (c *fakeChannel) Name() string { return c.name }

func (c *fakeChannel) Send(ctx context.Context, n *Notification) error {
	if c.started != nil {
		c.started <- struct{}{}
	}
	if c.release != nil {
		<-c.release
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, n)
	return c.err
}

func (c *fakeChannel) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

type fakeCars struct {
	car *listingservice.Car
	err error
}

func (f fakeCars) GetCarWithGracefulDegradation(context.Context, int64) (*listingservice.Car, error) {
	return f.car, f.err
}

func booking() *domain.Booking {
	carID := int64(42)
	return &domain.Booking{
		ID:            uuid.New(),
		CarID:         &carID,
		Requester:     domain.Requester{Name: "Ada", Phone: "+2348000000000"},
		ScheduledTime: time.Date(2026, 11, 2, 10, 0, 0, 0, time.UTC),
		Status:        domain.StatusPending,
	}
}

func newMetrics() *metrics.Metrics {
	return metrics.NewWithRegisterer("test", prometheus.NewRegistry())
}

func TestNotify_IndependentChannels(t *testing.T) {
	m := newMetrics()
	ok := &fakeChannel{name: "email"}
	broken := &fakeChannel{name: "sms", err: errors.New("gateway down")}
	off := &fakeChannel{name: "events", err: ErrNotConfigured}

	d := NewDispatcher(Config{}, []Channel{ok, broken, off}, fakeCars{car: &listingservice.Car{ID: 42, Make: "Toyota", Model: "Camry"}}, m, logger.NewNop())
	report := d.Notify(context.Background(), booking())

	require.Len(t, report.Results, 3)
	status, _ := report.Status("email")
	assert.Equal(t, StatusSent, status)
	status, _ = report.Status("sms")
	assert.Equal(t, StatusFailed, status)
	status, _ = report.Status("events")
	assert.Equal(t, StatusNotConfigured, status)

	require.Equal(t, 1, ok.count())
	assert.Equal(t, "Toyota Camry", ok.sent[0].CarTitle())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationResults.WithLabelValues("sms", "failed")))
}

func TestNotify_CarUnavailable(t *testing.T) {
	ch := &fakeChannel{name: "email"}
	d := NewDispatcher(Config{}, []Channel{ch}, fakeCars{err: listingservice.ErrServiceDegraded}, newMetrics(), logger.NewNop())

	report := d.Notify(context.Background(), booking())

	status, _ := report.Status("email")
	assert.Equal(t, StatusSent, status)
	assert.Nil(t, ch.sent[0].Car)
	assert.Equal(t, "the vehicle", ch.sent[0].CarTitle())
}

func TestEnqueue_Disabled(t *testing.T) {
	d := NewDispatcher(Config{Workers: 0}, []Channel{&fakeChannel{name: "email"}}, nil, newMetrics(), logger.NewNop())

	assert.Equal(t, EnqueueDisabled, d.Enqueue(booking()))
	assert.NoError(t, d.Close(context.Background()))
}

func TestEnqueue_ProcessedByWorkers(t *testing.T) {
	ch := &fakeChannel{name: "email"}
	d := NewDispatcher(Config{Workers: 2, QueueSize: 10}, []Channel{ch}, nil, newMetrics(), logger.NewNop())

	for i := 0; i < 5; i++ {
		assert.Equal(t, EnqueueQueued, d.Enqueue(booking()))
	}

	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, 5, ch.count(), "close drains the queue")
}

func TestEnqueue_DropsWhenFull(t *testing.T) {
	ch := &fakeChannel{name: "email", started: make(chan struct{}, 3), release: make(chan struct{})}
	d := NewDispatcher(Config{Workers: 1, QueueSize: 1}, []Channel{ch}, nil, newMetrics(), logger.NewNop())

	require.Equal(t, EnqueueQueued, d.Enqueue(booking()))
	<-ch.started // воркер занят первым уведомлением

	assert.Equal(t, EnqueueQueued, d.Enqueue(booking()))
	assert.Equal(t, EnqueueDropped, d.Enqueue(booking()))

	close(ch.release)
	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, 2, ch.count())
}

func TestEnqueue_AfterClose(t *testing.T) {
	d := NewDispatcher(Config{Workers: 1, QueueSize: 1}, []Channel{&fakeChannel{name: "email"}}, nil, newMetrics(), logger.NewNop())
	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, EnqueueDropped, d.Enqueue(booking()))
	assert.NoError(t, d.Close(context.Background()))
}

func TestClose_ContextExpires(t *testing.T) {
	ch := &fakeChannel{name: "email", started: make(chan struct{}, 1), release: make(chan struct{})}
	d := NewDispatcher(Config{Workers: 1, QueueSize: 1}, []Channel{ch}, nil, newMetrics(), logger.NewNop())
	d.Enqueue(booking())
	<-ch.started
	defer close(ch.release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)
}
