package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/luklinx/carsabeg-sub000/internal/domain"
	"github.com/luklinx/carsabeg-sub000/internal/infra/events"
	"github.com/luklinx/carsabeg-sub000/internal/integrations/emailservice"
	"github.com/luklinx/carsabeg-sub000/internal/integrations/smsgateway"
)

const (
	ChannelEmail  = "email"
	ChannelSMS    = "sms"
	ChannelEvents = "events"
)

// EmailSender клиент email-провайдера
type EmailSender interface {
	Send(ctx context.Context, to, subject, text string) (string, error)
}

// SMSSender клиент SMS-шлюза
type SMSSender interface {
	Send(ctx context.Context, to, text string) (string, error)
}

// EventPublisher публикатор событий бронирований
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, ev *events.BookingCreated) error
}

// EmailChannel письмо покупателю и продавцу (если известен email продавца)
type EmailChannel struct {
	sender EmailSender
}

func NewEmailChannel(sender EmailSender) *EmailChannel {
	return &EmailChannel{sender: sender}
}

func (c *EmailChannel) Name() string { return ChannelEmail }

func (c *EmailChannel) Send(ctx context.Context, n *Notification) error {
	var recipients []string
	if e := n.Booking.Requester.Email; e != nil && *e != "" {
		recipients = append(recipients, *e)
	}
	if n.Car != nil && n.Car.SellerEmail != nil && *n.Car.SellerEmail != "" {
		recipients = append(recipients, *n.Car.SellerEmail)
	}
	if len(recipients) == 0 {
		return ErrNoRecipient
	}

	subject := fmt.Sprintf("Inspection booked: %s", n.CarTitle())
	text := bookingText(n)

	var failed []error
	for _, to := range recipients {
		if _, err := c.sender.Send(ctx, to, subject, text); err != nil {
			if errors.Is(err, emailservice.ErrNotConfigured) {
				return ErrNotConfigured
			}
			failed = append(failed, err)
		}
	}

	return errors.Join(failed...)
}

// SMSChannel SMS покупателю
type SMSChannel struct {
	sender SMSSender
}

func NewSMSChannel(sender SMSSender) *SMSChannel {
	return &SMSChannel{sender: sender}
}

func (c *SMSChannel) Name() string { return ChannelSMS }

func (c *SMSChannel) Send(ctx context.Context, n *Notification) error {
	phone := n.Booking.Requester.Phone
	if phone == "" {
		return ErrNoRecipient
	}

	text := fmt.Sprintf("Your inspection of %s is booked for %s.",
		n.CarTitle(), n.Booking.ScheduledTime.Format(time.RFC1123))

	if _, err := c.sender.Send(ctx, phone, text); err != nil {
		if errors.Is(err, smsgateway.ErrNotConfigured) {
			return ErrNotConfigured
		}
		return err
	}
	return nil
}

// EventsChannel событие booking.created в брокер
type EventsChannel struct {
	publisher EventPublisher
	now       func() time.Time
}

func NewEventsChannel(publisher EventPublisher) *EventsChannel {
	return &EventsChannel{publisher: publisher, now: time.Now}
}

func (c *EventsChannel) Name() string { return ChannelEvents }

func (c *EventsChannel) Send(ctx context.Context, n *Notification) error {
	ev := events.NewBookingCreated(n.Booking, c.now())
	if n.Car != nil {
		title := n.Car.Title()
		ev.CarTitle = &title
		if n.Car.SellerID != "" {
			ev.SellerID = &n.Car.SellerID
		}
	}

	if err := c.publisher.PublishBookingCreated(ctx, ev); err != nil {
		if errors.Is(err, events.ErrNotConfigured) {
			return ErrNotConfigured
		}
		return err
	}
	return nil
}

func bookingText(n *Notification) string {
	b := n.Booking
	kind := "at the requested time"
	if b.Kind() == domain.KindSlot {
		kind = "in a scheduled inspection slot"
	}

	text := fmt.Sprintf("An inspection of %s has been booked %s.\nWhen: %s\nName: %s\nPhone: %s\nReference: %s",
		n.CarTitle(), kind, b.ScheduledTime.Format(time.RFC1123), b.Requester.Name, b.Requester.Phone, b.ID)
	if b.Requester.Message != nil && *b.Requester.Message != "" {
		text += "\nMessage: " + *b.Requester.Message
	}
	return text
}
