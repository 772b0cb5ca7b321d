package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/luklinx/carsabeg-sub000/internal/domain"
	slotRepo "github.com/luklinx/carsabeg-sub000/internal/infra/storage/slot"
	listingClient "github.com/luklinx/carsabeg-sub000/internal/integrations/listingservice"
	"github.com/luklinx/carsabeg-sub000/internal/service/slots/models"
	"github.com/luklinx/carsabeg-sub000/pkg/pgerr"
)

// Service сервис управления слотами осмотра (Slot Store)
type Service struct {
	slotRepo      SlotRepository
	bookingRepo   BookingRepository
	availability  AvailabilityService
	listingClient ListingServiceClient
	txManager     TransactionManager
	logger        Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	availability AvailabilityService,
	listingClient ListingServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:      slotRepo,
		bookingRepo:   bookingRepo,
		availability:  availability,
		listingClient: listingClient,
		txManager:     txManager,
		logger:        logger,
	}
}

// Create создает слот. Доступно только администратору
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	if !req.IsAdmin {
		s.logger.Warn("Create: non-admin attempted to create slot")
		return nil, ErrAccessDenied
	}

	slot, err := buildSlot(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if slot.CarID != nil {
		if _, err := s.listingClient.GetCar(ctx, *slot.CarID); err != nil {
			if errors.Is(err, listingClient.ErrCarNotFound) {
				s.logger.Warn("Create: car id=%d not found", *slot.CarID)
				return nil, ErrCarNotFound
			}
			s.logger.Error("Create: failed to get car id=%d: %v", *slot.CarID, err)
			return nil, fmt.Errorf("%w: Create - failed to get car: %v", ErrInternal, err)
		}
	}

	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: slot id=%s created [%s, %s) capacity=%d",
		created.ID, created.StartAt.Format(domain.TimeFormat), created.EndAt.Format(domain.TimeFormat), created.Capacity)

	return models.FromDomainSlot(&domain.SlotAvailability{Slot: *created}), nil
}

// GetByID получает слот с актуальной доступностью
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.SlotResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetByID: slot id=%s not found", id)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	annotated, err := s.availability.AnnotateOne(ctx, slot)
	if err != nil {
		s.logger.Error("GetByID: failed to annotate slot id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - availability error: %v", ErrInternal, err)
	}

	return models.FromDomainSlot(annotated), nil
}

// List получает слоты с доступностью, посчитанной одним агрегирующим запросом
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	filter := domain.SlotFilter{
		CarID:          req.CarID,
		IncludeGeneric: req.IncludeGeneric,
		From:           req.From,
		To:             req.To,
	}

	list, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	annotated, err := s.availability.Annotate(ctx, list)
	if err != nil {
		s.logger.Error("List: failed to annotate %d slots: %v", len(list), err)
		return nil, fmt.Errorf("%w: List - availability error: %v", ErrInternal, err)
	}

	if req.OnlyAvailable {
		filtered := annotated[:0]
		for _, slot := range annotated {
			if slot.Available() {
				filtered = append(filtered, slot)
			}
		}
		annotated = filtered
	}

	s.logger.Info("List: fetched %d slots", len(annotated))
	return models.FromDomainSlotList(annotated), nil
}

// Delete удаляет слот. Слот с активными бронированиями удалить нельзя:
// сначала нужно отменить бронирования (CancelAllForSlot).
// Проверка и удаление выполняются под блокировкой строки слота, чтобы
// параллельное бронирование не проскочило между ними
func (s *Service) Delete(ctx context.Context, id uuid.UUID, isAdmin bool) error {
	if !isAdmin {
		s.logger.Warn("Delete: non-admin attempted to delete slot id=%s", id)
		return ErrAccessDenied
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.slotRepo.GetByIDForUpdate(txCtx, id); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return err
		}

		active, err := s.bookingRepo.CountActiveBySlotID(txCtx, id)
		if err != nil {
			return err
		}
		if active > 0 {
			s.logger.Warn("Delete: slot id=%s has %d active bookings", id, active)
			return fmt.Errorf("%w: %d active", ErrSlotHasActiveBookings, active)
		}

		if err := s.slotRepo.SoftDelete(txCtx, id); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return err
		}
		return nil
	})

	switch {
	case err == nil:
		s.logger.Info("Delete: slot id=%s deleted", id)
		return nil
	case errors.Is(err, ErrSlotNotFound):
		s.logger.Warn("Delete: slot id=%s not found", id)
		return err
	case errors.Is(err, ErrSlotHasActiveBookings):
		return err
	case pgerr.IsContention(err):
		s.logger.Warn("Delete: slot id=%s is locked: %v", id, err)
		return fmt.Errorf("%w: %v", ErrBusy, err)
	default:
		s.logger.Error("Delete: failed to delete slot id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - %v", ErrInternal, err)
	}
}

// buildSlot валидирует запрос и собирает domain модель
func buildSlot(req *models.CreateSlotRequest) (*domain.Slot, error) {
	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return nil, fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}

	startAt := domain.NormalizeInstant(req.StartAt)
	endAt := domain.NormalizeInstant(req.EndAt)

	if !startAt.Before(endAt) {
		return nil, fmt.Errorf("%w: startAt must be before endAt", ErrInvalidInput)
	}

	capacity := domain.DefaultSlotCapacity
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	if capacity < domain.MinSlotCapacity {
		return nil, fmt.Errorf("%w: capacity must be at least %d", ErrInvalidInput, domain.MinSlotCapacity)
	}

	if req.CarID != nil && *req.CarID <= 0 {
		return nil, fmt.Errorf("%w: carId must be positive", ErrInvalidInput)
	}

	return &domain.Slot{
		ID:       uuid.New(),
		CarID:    req.CarID,
		StartAt:  startAt,
		EndAt:    endAt,
		Capacity: capacity,
	}, nil
}
