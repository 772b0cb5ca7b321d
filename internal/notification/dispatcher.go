package notification

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/luklinx/carsabeg-sub000/internal/domain"
)

// Config параметры диспетчера
type Config struct {
	Workers   int           // 0 - уведомления выключены
	QueueSize int           // Емкость очереди
	Timeout   time.Duration // Таймаут отправки одного уведомления по всем каналам
}

// Dispatcher асинхронно рассылает уведомления о бронированиях.
// Бронирование не зависит от результата рассылки: очередь ограничена и при
// переполнении уведомление отбрасывается
type Dispatcher struct {
	cfg      Config
	channels []Channel
	cars     CarProvider
	metrics  Metrics
	logger   Logger

	queue chan *domain.Booking
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool

	// onReport вызывается после обработки каждого уведомления (для тестов)
	onReport func(*Report)
}

// NewDispatcher создает диспетчер и запускает воркеры
func NewDispatcher(cfg Config, channels []Channel, cars CarProvider, metrics Metrics, logger Logger) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	d := &Dispatcher{
		cfg:      cfg,
		channels: channels,
		cars:     cars,
		metrics:  metrics,
		logger:   logger,
	}

	if !d.enabled() {
		logger.Info("Notification dispatcher disabled")
		return d
	}

	d.queue = make(chan *domain.Booking, cfg.QueueSize)
	for i := 0; i < cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	logger.Info("Notification dispatcher started: workers=%d queue=%d channels=%d",
		cfg.Workers, cfg.QueueSize, len(channels))
	return d
}

func (d *Dispatcher) enabled() bool {
	return d.cfg.Workers > 0 && len(d.channels) > 0
}

// Enqueue ставит уведомление в очередь без блокировки
func (d *Dispatcher) Enqueue(b *domain.Booking) EnqueueStatus {
	if !d.enabled() {
		return EnqueueDisabled
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("Enqueue: dispatcher closed, notification for booking id=%s dropped", b.ID)
		return EnqueueDropped
	}

	select {
	case d.queue <- b:
		d.metrics.SetNotificationQueueDepth(len(d.queue))
		return EnqueueQueued
	default:
		d.logger.Warn("Enqueue: queue is full, notification for booking id=%s dropped", b.ID)
		return EnqueueDropped
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for b := range d.queue {
		d.metrics.SetNotificationQueueDepth(len(d.queue))

		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.Timeout)
		report := d.Notify(ctx, b)
		cancel()

		if d.onReport != nil {
			d.onReport(report)
		}
	}
}

// Notify синхронно отправляет уведомление по всем каналам. Результаты каналов
// независимы: ошибка одного не влияет на остальные
func (d *Dispatcher) Notify(ctx context.Context, b *domain.Booking) *Report {
	n := &Notification{Booking: b}

	if b.CarID != nil && d.cars != nil {
		car, err := d.cars.GetCarWithGracefulDegradation(ctx, *b.CarID)
		if err != nil {
			d.logger.Warn("Notify: car id=%d details unavailable: %v", *b.CarID, err)
		}
		n.Car = car
	}

	report := &Report{BookingID: b.ID.String(), Results: make([]Result, 0, len(d.channels))}

	for _, ch := range d.channels {
		res := Result{Channel: ch.Name(), Status: StatusSent}

		err := ch.Send(ctx, n)
		switch {
		case err == nil:
			d.logger.Info("Notify: booking id=%s sent via %s", b.ID, ch.Name())
		case errors.Is(err, ErrNotConfigured):
			res.Status = StatusNotConfigured
		case errors.Is(err, ErrNoRecipient):
			res.Status = StatusSkipped
		default:
			res.Status = StatusFailed
			res.Err = err
			d.logger.Error("Notify: booking id=%s via %s failed: %v", b.ID, ch.Name(), err)
		}

		d.metrics.RecordNotification(res.Channel, string(res.Status))
		report.Results = append(report.Results, res)
	}

	return report
}

// Close прекращает прием уведомлений и дожидается обработки очереди или отмены ctx
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	if d.queue != nil {
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("Notification dispatcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
