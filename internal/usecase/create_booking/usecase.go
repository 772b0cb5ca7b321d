package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/luklinx/carsabeg-sub000/internal/domain"
	listingClient "github.com/luklinx/carsabeg-sub000/internal/integrations/listingservice"
)

// UseCase use case для создания бронирования осмотра
type UseCase struct {
	bookingRepo   BookingRepository
	slotRepo      SlotRepository
	listingClient ListingServiceClient
	txManager     TransactionManager
	notifier      Notifier
	metrics       Metrics
	timeProvider  TimeProvider
	logger        Logger

	// rejectPast запрещает бронировать начавшиеся слоты и ad-hoc время в прошлом
	rejectPast bool
}

// Option настройка use case
type Option func(*UseCase)

// WithPastRejection включает отказ для слотов, которые уже начались (ErrSlotStarted),
// и для ad-hoc времени не позже текущего момента (ErrInvalidInput). По умолчанию выключено
func WithPastRejection() Option {
	return func(uc *UseCase) {
		uc.rejectPast = true
	}
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	listingClient ListingServiceClient,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
	opts ...Option,
) *UseCase {
	uc := &UseCase{
		bookingRepo:   bookingRepo,
		slotRepo:      slotRepo,
		listingClient: listingClient,
		txManager:     txManager,
		notifier:      notifier,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute выполняет use case создания бронирования.
// Уведомление ставится в очередь после коммита и на результат бронирования не влияет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	requester, err := validateRequester(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.RecordBookingOutcome("unknown", outcomeRejected)
		return nil, err
	}

	target, err := resolveTarget(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.metrics.RecordBookingOutcome("unknown", outcomeRejected)
		return nil, err
	}

	// 2. Бронирование
	var booking *domain.Booking
	switch t := target.(type) {
	case domain.SlotTarget:
		uc.logger.Info("CreateBooking: slot=%s car=%v", t.SlotID, deref(t.CarID))
		booking, err = uc.reserveInSlot(ctx, t, requester)
	case domain.AdHocTarget:
		uc.logger.Info("CreateBooking: ad-hoc car=%d at=%s", t.CarID, t.ScheduledTime.Format(domain.TimeFormat))
		booking, err = uc.reserveAdHoc(ctx, t, requester)
	default:
		err = fmt.Errorf("%w: unsupported booking target %T", ErrInternal, target)
	}

	uc.metrics.RecordBookingOutcome(string(target.Kind()), outcomeOf(err))
	if err != nil {
		return nil, err
	}

	// 3. Уведомление
	status := uc.notifier.Enqueue(booking)

	uc.logger.Info("CreateBooking: booking id=%s created (%s), notification %s", booking.ID, booking.Kind(), status)
	return &Response{Booking: booking, Notification: status}, nil
}

// ensureCarExists проверяет автомобиль в ListingService. Вызывается вне транзакции
func (uc *UseCase) ensureCarExists(ctx context.Context, carID int64) error {
	if _, err := uc.listingClient.GetCar(ctx, carID); err != nil {
		if errors.Is(err, listingClient.ErrCarNotFound) {
			uc.logger.Warn("CreateBooking: car id=%d not found", carID)
			return ErrCarNotFound
		}
		uc.logger.Error("CreateBooking: failed to get car id=%d: %v", carID, err)
		return fmt.Errorf("%w: failed to get car: %v", ErrInternal, err)
	}
	return nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeAdmitted
	case errors.Is(err, ErrSlotFull):
		return outcomeSlotFull
	case errors.Is(err, ErrDuplicateBooking):
		return outcomeDuplicate
	case errors.Is(err, ErrBusy):
		return outcomeBusy
	case errors.Is(err, ErrSlotNotFound), errors.Is(err, ErrCarNotFound):
		return outcomeNotFound
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrSlotStarted):
		return outcomeRejected
	default:
		return outcomeError
	}
}

func deref(v *int64) interface{} {
	if v == nil {
		return "none"
	}
	return *v
}
