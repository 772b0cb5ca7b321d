package notification

import (
	"context"

	"github.com/luklinx/carsabeg-sub000/internal/integrations/listingservice"
)

// Channel канал доставки уведомления
type Channel interface {
	Name() string
	Send(ctx context.Context, n *Notification) error
}

// CarProvider источник данных объявления. Ошибка не прерывает отправку уведомления
type CarProvider interface {
	GetCarWithGracefulDegradation(ctx context.Context, carID int64) (*listingservice.Car, error)
}

// Metrics счетчики результатов каналов
type Metrics interface {
	RecordNotification(channel, status string)
	SetNotificationQueueDepth(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
