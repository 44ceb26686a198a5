package reserve_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	catalogClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// UseCase use case резервирования слота.
// Проверки доступности до транзакции — оптимистичные; авторитетная
// проверка повторяется внутри сериализуемой транзакции перед записью.
type UseCase struct {
	bookingRepo   BookingRepository
	catalogClient CatalogClient
	slotCache     SlotCache
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogClient CatalogClient,
	slotCache SlotCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		slotCache:     slotCache,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case резервирования слота
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveBooking: customer=%d, shop=%d, service=%d, specialist=%d, start=%s",
		req.CustomerID, req.ShopID, req.ServiceID, req.SpecialistID, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()
	if err := validateNotInPast(req.StartTime, now); err != nil {
		uc.logger.Warn("ReserveBooking: start time %s is in the past", req.StartTime.Format(time.RFC3339))
		return nil, err
	}

	// 3. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.ShopID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("ReserveBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		if errors.Is(err, catalogClient.ErrShopNotFound) {
			uc.logger.Warn("ReserveBooking: shop id=%d not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("ReserveBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Получаем мастера и проверяем квалификацию
	specialist, err := uc.catalogClient.GetSpecialist(ctx, req.ShopID, req.SpecialistID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrSpecialistNotFound) {
			uc.logger.Warn("ReserveBooking: specialist id=%d not found in shop id=%d", req.SpecialistID, req.ShopID)
			return nil, ErrSpecialistNotFound
		}
		uc.logger.Error("ReserveBooking: failed to get specialist id=%d: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: failed to get specialist: %v", ErrInternal, err)
	}

	if !specialist.Active || !service.IsSpecialistQualified(req.SpecialistID) {
		uc.logger.Warn("ReserveBooking: specialist id=%d inactive or not qualified for service id=%d",
			req.SpecialistID, req.ServiceID)
		return nil, ErrSpecialistNotQualified
	}

	// 5. Вычисляем промежутки записи: слот без буферов и полный отпечаток
	endTime := req.StartTime.Add(time.Duration(service.DurationMinutes) * time.Minute)
	buffered := domain.TimeInterval{
		Start: req.StartTime.Add(-time.Duration(service.BufferBeforeMinutes) * time.Minute),
		End:   endTime.Add(time.Duration(service.BufferAfterMinutes) * time.Minute),
	}
	bookingDate := dateOf(req.StartTime)

	// 6. Проверяем, что рабочие окна мастера покрывают буферизованный промежуток
	if err := validateSpecialistWindow(specialist, bookingDate, buffered); err != nil {
		uc.logger.Warn("ReserveBooking: specialist id=%d is not working at %s",
			req.SpecialistID, req.StartTime.Format(time.RFC3339))
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 7. Выполняем проверку и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Повторно читаем активные бронирования мастера на дату
		filter := domain.SpecialistBookingsFilter{
			ShopID:       req.ShopID,
			SpecialistID: &req.SpecialistID,
			StartDate:    &bookingDate,
			EndDate:      &bookingDate,
			ActiveOnly:   true,
		}

		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("ReserveBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 7.2. Буферизованный отпечаток не должен пересекать ни одно бронирование
		for _, b := range bookings {
			if !b.IsActive() {
				continue
			}
			if buffered.Overlaps(b.Interval()) {
				uc.logger.Warn("ReserveBooking: slot taken by booking id=%d", b.ID)
				return ErrSlotNotAvailable
			}
		}

		// 7.3. Создаем бронирование с денормализацией данных услуги
		booking := &domain.Booking{
			ShopID:          req.ShopID,
			ServiceID:       req.ServiceID,
			SpecialistID:    req.SpecialistID,
			CustomerID:      req.CustomerID,
			BookingDate:     bookingDate,
			StartTime:       req.StartTime,
			EndTime:         endTime,
			Status:          domain.StatusConfirmed,
			ServiceName:     service.Name,
			DurationMinutes: service.DurationMinutes,
			BufferBefore:    service.BufferBeforeMinutes,
			BufferAfter:     service.BufferAfterMinutes,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("ReserveBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 8. Инвалидируем кеш слотов магазина на эту дату; сбой не фатален
	prefix := get_available_slots.CacheKeyPrefix(req.ShopID, bookingDate)
	if cerr := uc.slotCache.DeleteByPrefix(ctx, prefix); cerr != nil {
		uc.logger.Warn("ReserveBooking: cache invalidation failed for prefix %s: %v", prefix, cerr)
	}

	uc.logger.Info("ReserveBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		ShopID:          result.ShopID,
		ServiceID:       result.ServiceID,
		SpecialistID:    result.SpecialistID,
		CustomerID:      result.CustomerID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		BufferBefore:    result.BufferBefore,
		BufferAfter:     result.BufferAfter,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// dateOf отбрасывает время, оставляя календарную дату
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
