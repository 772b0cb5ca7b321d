package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Config параметры публикации событий
type Config struct {
	Enabled      bool
	Brokers      []string
	Topic        string
	BatchTimeout time.Duration
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// messageWriter подмножество kafka.Writer, используемое публикатором
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher публикует события бронирований в Kafka, ключ сообщения - ID бронирования
type Publisher struct {
	writer messageWriter
	topic  string
	logger Logger

	mu     sync.RWMutex
	closed bool
}

// NewPublisher создает публикатор. При выключенной конфигурации возвращает
// публикатор, который на каждое событие отвечает ErrNotConfigured
func NewPublisher(cfg Config, logger Logger) *Publisher {
	if !cfg.Enabled || len(cfg.Brokers) == 0 || cfg.Topic == "" {
		return &Publisher{logger: logger}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: cfg.BatchTimeout,
		Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger:  kafka.LoggerFunc(logger.Error),
	}

	logger.Info("Kafka publisher configured: brokers=%v topic=%s", cfg.Brokers, cfg.Topic)
	return &Publisher{writer: writer, topic: cfg.Topic, logger: logger}
}

func newPublisherWithWriter(w messageWriter, topic string, logger Logger) *Publisher {
	return &Publisher{writer: w, topic: topic, logger: logger}
}

// Configured возвращает true, если сообщения действительно уходят в брокер
func (p *Publisher) Configured() bool {
	return p.writer != nil
}

// PublishBookingCreated публикует событие о новом бронировании
func (p *Publisher) PublishBookingCreated(ctx context.Context, ev *BookingCreated) error {
	if p.writer == nil {
		return ErrNotConfigured
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	msg := kafka.Message{
		Key:   []byte(ev.BookingID),
		Value: value,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(ev.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: topic=%s booking=%s: %v", ErrPublish, p.topic, ev.BookingID, err)
	}

	return nil
}

// Close сбрасывает буфер и закрывает соединения с брокером
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.writer == nil {
		p.closed = true
		return nil
	}
	p.closed = true

	return p.writer.Close()
}
