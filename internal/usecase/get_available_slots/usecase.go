package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	catalogClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
)

// UseCase use case для расчёта доступных слотов записи
type UseCase struct {
	bookingRepo   BookingRepository
	catalogClient CatalogClient
	slotCache     SlotCache
	cacheTTL      time.Duration
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogClient CatalogClient,
	slotCache SlotCache,
	cacheTTL time.Duration,
	logger Logger,
) *UseCase {
	if cacheTTL <= 0 {
		cacheTTL = time.Duration(domain.DefaultCacheTTLMinutes) * time.Minute
	}
	return &UseCase{
		bookingRepo:   bookingRepo,
		catalogClient: catalogClient,
		slotCache:     slotCache,
		cacheTTL:      cacheTTL,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: shop=%d, service=%d, date=%s",
		req.ShopID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу и разрешаем параметры слотов
	service, err := uc.catalogClient.GetService(ctx, req.ShopID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found in shop id=%d", req.ServiceID, req.ShopID)
			return nil, ErrServiceNotFound
		}
		if errors.Is(err, catalogClient.ErrShopNotFound) {
			uc.logger.Warn("GetAvailableSlots: shop id=%d not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	duration, granularity := resolveSlotParams(service, req)

	// 3. Пробуем кеш: ключ включает все параметры, влияющие на результат
	key := CacheKey(req.ShopID, req.Date, req.ServiceID, req.SpecialistID, duration, granularity)
	if cached, ok, cerr := uc.slotCache.GetSlots(ctx, key); cerr != nil {
		uc.logger.Warn("GetAvailableSlots: cache get failed: %v", cerr)
	} else if ok {
		uc.logger.Info("GetAvailableSlots: cache hit, key=%s, slots=%d", key, len(cached))
		return uc.buildResponse(req, duration, cached, true), nil
	}

	// 4. Получаем магазин и его рабочие окна на дату
	shop, err := uc.catalogClient.GetShop(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrShopNotFound) {
			uc.logger.Warn("GetAvailableSlots: shop id=%d not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	shopWindows := shop.WorkingHours.WindowsForDate(req.Date)
	if len(shopWindows) == 0 {
		uc.logger.Info("GetAvailableSlots: shop id=%d is closed on %s", req.ShopID, req.Date.Format(domain.DateFormat))
		return uc.buildResponse(req, duration, []domain.TimeInterval{}, false), nil
	}

	// 5. Окна услуги: явное расписание пересекаем с магазином,
	// отсутствие расписания наследует часы магазина
	baseWindows := shopWindows
	if service.Availability != nil {
		baseWindows = domain.IntersectIntervals(shopWindows, service.Availability.WindowsForDate(req.Date))
		if len(baseWindows) == 0 {
			uc.logger.Info("GetAvailableSlots: service id=%d has no availability on %s",
				req.ServiceID, req.Date.Format(domain.DateFormat))
			return uc.buildResponse(req, duration, []domain.TimeInterval{}, false), nil
		}
	}

	// 6. Получаем мастеров магазина
	specialists, err := uc.catalogClient.GetSpecialists(ctx, req.ShopID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get specialists for shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get specialists: %v", ErrInternal, err)
	}

	// 7. Генерируем слоты: для одного мастера либо объединение по всем
	// квалифицированным
	var slots []domain.TimeInterval
	if req.SpecialistID != nil {
		slots, err = uc.specialistSlots(ctx, req, service, baseWindows, specialists, *req.SpecialistID, duration, granularity)
	} else {
		slots, err = uc.mergedSlots(ctx, req, service, baseWindows, specialists, duration, granularity)
	}
	if err != nil {
		return nil, err
	}

	// 8. Кладем результат в кеш; сбой кеша не фатален
	if cerr := uc.slotCache.SetSlots(ctx, key, slots, uc.cacheTTL); cerr != nil {
		uc.logger.Warn("GetAvailableSlots: cache set failed: %v", cerr)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for shop=%d, service=%d, date=%s",
		len(slots), req.ShopID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return uc.buildResponse(req, duration, slots, false), nil
}

// IsSlotAvailable проверяет, что слот с заданным началом всё ещё доступен.
// Начала сравниваются с допуском slotMatchTolerance.
func (uc *UseCase) IsSlotAvailable(ctx context.Context, req *Request, slotStart time.Time) (bool, error) {
	resp, err := uc.Execute(ctx, req)
	if err != nil {
		return false, err
	}

	for _, slot := range resp.Slots {
		diff := slot.Start.Sub(slotStart)
		if diff < 0 {
			diff = -diff
		}
		if diff <= slotMatchTolerance {
			return true, nil
		}
	}
	return false, nil
}

// EarliestSlot линейно сканирует дни начиная со startDate и возвращает
// первый доступный слот. Отсутствие слотов в горизонте — не ошибка.
func (uc *UseCase) EarliestSlot(ctx context.Context, req *EarliestRequest) (*EarliestResponse, error) {
	uc.logger.Info("EarliestSlot: shop=%d, service=%d, from=%s, days=%d",
		req.ShopID, req.ServiceID, req.StartDate.Format(domain.DateFormat), req.DaysToCheck)

	if err := validateEarliestRequest(req); err != nil {
		uc.logger.Warn("EarliestSlot: validation failed: %v", err)
		return nil, err
	}

	for day := 0; day < req.DaysToCheck; day++ {
		date := req.StartDate.AddDate(0, 0, day)

		dayReq := &Request{
			ShopID:       req.ShopID,
			ServiceID:    req.ServiceID,
			Date:         date,
			SpecialistID: req.SpecialistID,
		}

		resp, err := uc.Execute(ctx, dayReq)
		if err != nil {
			return nil, err
		}

		if len(resp.Slots) > 0 {
			slot := resp.Slots[0]
			uc.logger.Info("EarliestSlot: found slot %s on %s",
				slot.Start.Format(time.RFC3339), date.Format(domain.DateFormat))
			return &EarliestResponse{
				Found:        true,
				Date:         date,
				Slot:         &slot,
				SpecialistID: req.SpecialistID,
			}, nil
		}
	}

	uc.logger.Info("EarliestSlot: no slots within %d days for shop=%d, service=%d",
		req.DaysToCheck, req.ShopID, req.ServiceID)
	return &EarliestResponse{Found: false}, nil
}

// specialistSlots строит слоты одного мастера
func (uc *UseCase) specialistSlots(
	ctx context.Context,
	req *Request,
	service *catalogClient.Service,
	baseWindows []domain.TimeInterval,
	specialists []*catalogClient.Specialist,
	specialistID int64,
	duration, granularity int,
) ([]domain.TimeInterval, error) {
	var specialist *catalogClient.Specialist
	for _, sp := range specialists {
		if sp.ID == specialistID {
			specialist = sp
			break
		}
	}
	if specialist == nil {
		uc.logger.Warn("GetAvailableSlots: specialist id=%d not found in shop id=%d", specialistID, req.ShopID)
		return nil, ErrSpecialistNotFound
	}

	if !specialist.Active || !service.IsSpecialistQualified(specialistID) {
		uc.logger.Info("GetAvailableSlots: specialist id=%d inactive or not qualified for service id=%d",
			specialistID, req.ServiceID)
		return []domain.TimeInterval{}, nil
	}

	return uc.slotsForSpecialist(ctx, req, specialist, baseWindows, service, duration, granularity)
}

// mergedSlots строит объединение слотов всех квалифицированных мастеров
func (uc *UseCase) mergedSlots(
	ctx context.Context,
	req *Request,
	service *catalogClient.Service,
	baseWindows []domain.TimeInterval,
	specialists []*catalogClient.Specialist,
	duration, granularity int,
) ([]domain.TimeInterval, error) {
	sets := make([][]domain.TimeInterval, 0, len(specialists))

	for _, sp := range specialists {
		if !sp.Active || !service.IsSpecialistQualified(sp.ID) {
			continue
		}

		slots, err := uc.slotsForSpecialist(ctx, req, sp, baseWindows, service, duration, granularity)
		if err != nil {
			return nil, err
		}
		sets = append(sets, slots)
	}

	return domain.MergeDedupSlots(sets...), nil
}

// slotsForSpecialist пересекает базовые окна с окнами мастера и
// генерирует слоты с учётом его активных бронирований
func (uc *UseCase) slotsForSpecialist(
	ctx context.Context,
	req *Request,
	specialist *catalogClient.Specialist,
	baseWindows []domain.TimeInterval,
	service *catalogClient.Service,
	duration, granularity int,
) ([]domain.TimeInterval, error) {
	windows := domain.IntersectIntervals(baseWindows, specialist.WorkingHours.WindowsForDate(req.Date))
	if len(windows) == 0 {
		return []domain.TimeInterval{}, nil
	}

	filter := domain.SpecialistBookingsFilter{
		ShopID:       req.ShopID,
		SpecialistID: &specialist.ID,
		StartDate:    &req.Date,
		EndDate:      &req.Date,
		ActiveOnly:   true,
	}

	bookings, err := uc.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for specialist id=%d: %v", specialist.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	slots, err := generateSlots(
		windows,
		duration,
		service.BufferBeforeMinutes,
		service.BufferAfterMinutes,
		granularity,
		activeBookingIntervals(bookings),
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots for specialist id=%d: %v", specialist.ID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	return slots, nil
}

// resolveSlotParams разрешает длительность и шаг с учётом переопределений
func resolveSlotParams(service *catalogClient.Service, req *Request) (duration, granularity int) {
	duration = service.DurationMinutes
	if req.DurationOverride != nil {
		duration = *req.DurationOverride
	}

	granularity = service.SlotGranularityMinutes
	if granularity <= 0 {
		granularity = domain.DefaultSlotGranularityMinutes
	}
	if req.GranularityOverride != nil {
		granularity = *req.GranularityOverride
	}
	return duration, granularity
}

func (uc *UseCase) buildResponse(req *Request, duration int, slots []domain.TimeInterval, fromCache bool) *Response {
	return &Response{
		ShopID:          req.ShopID,
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		SpecialistID:    req.SpecialistID,
		DurationMinutes: duration,
		Slots:           slots,
		FromCache:       fromCache,
	}
}
