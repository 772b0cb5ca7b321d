package notification

import (
	"github.com/luklinx/carsabeg-sub000/internal/domain"
	"github.com/luklinx/carsabeg-sub000/internal/integrations/listingservice"
)

// EnqueueStatus результат постановки уведомления в очередь
type EnqueueStatus string

const (
	EnqueueQueued   EnqueueStatus = "queued"
	EnqueueDropped  EnqueueStatus = "dropped"  // Очередь переполнена или диспетчер остановлен
	EnqueueDisabled EnqueueStatus = "disabled" // Уведомления выключены конфигурацией
)

// ChannelStatus результат доставки по одному каналу
type ChannelStatus string

const (
	StatusSent          ChannelStatus = "sent"
	StatusFailed        ChannelStatus = "failed"
	StatusNotConfigured ChannelStatus = "not_configured"
	StatusSkipped       ChannelStatus = "skipped"
)

// Notification данные для отправки уведомления о бронировании.
// Car может быть nil, если ListingService недоступен
type Notification struct {
	Booking *domain.Booking
	Car     *listingservice.Car
}

// CarTitle название автомобиля или нейтральная подпись
func (n *Notification) CarTitle() string {
	if n.Car != nil {
		return n.Car.Title()
	}
	return "the vehicle"
}

// Result результат доставки по каналу
type Result struct {
	Channel string
	Status  ChannelStatus
	Err     error
}

// Report результаты по всем каналам одного уведомления
type Report struct {
	BookingID string
	Results   []Result
}

// Status возвращает статус канала по имени
func (r *Report) Status(channel string) (ChannelStatus, bool) {
	for _, res := range r.Results {
		if res.Channel == channel {
			return res.Status, true
		}
	}
	return "", false
}
