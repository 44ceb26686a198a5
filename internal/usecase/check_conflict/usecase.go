package check_conflict

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// dateOf отбрасывает время, оставляя календарную дату
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// UseCase use case проверки конфликтов бронирований.
// Проверка — оптимистичная: атомарность даёт только резервирование
// на транзакционной границе хранилища.
type UseCase struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute проверяет пересечение кандидата с активными бронированиями мастера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckConflict: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверка пересечения
	resp, err := uc.check(ctx, req)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CheckConflict: shop=%d, specialist=%d, conflict=%v",
		req.ShopID, req.SpecialistID, resp.HasConflict)
	return resp, nil
}

// ExecuteBatch проверяет несколько кандидатов за один вызов.
// Результаты идут в порядке входных элементов.
func (uc *UseCase) ExecuteBatch(ctx context.Context, req *BatchRequest) (*BatchResponse, error) {
	// 1. Валидация всего пакета до выполнения
	if err := validateBatchRequest(req); err != nil {
		uc.logger.Warn("CheckConflict: batch validation failed: %v", err)
		return nil, err
	}

	// 2. Последовательная проверка каждого кандидата
	results := make([]Response, 0, len(req.Items))
	for _, item := range req.Items {
		single := Request{
			ShopID:           req.ShopID,
			SpecialistID:     item.SpecialistID,
			Start:            item.Start,
			End:              item.End,
			ExcludeBookingID: item.ExcludeBookingID,
		}

		resp, err := uc.check(ctx, &single)
		if err != nil {
			return nil, err
		}
		results = append(results, *resp)
	}

	uc.logger.Info("CheckConflict: batch shop=%d, items=%d", req.ShopID, len(req.Items))
	return &BatchResponse{Results: results}, nil
}

// check выполняет полуоткрытую проверку пересечения:
// booking.start < end && booking.end > start
func (uc *UseCase) check(ctx context.Context, req *Request) (*Response, error) {
	startDate := dateOf(req.Start)
	endDate := dateOf(req.End)

	filter := domain.SpecialistBookingsFilter{
		ShopID:       req.ShopID,
		SpecialistID: &req.SpecialistID,
		StartDate:    &startDate,
		EndDate:      &endDate,
		ActiveOnly:   true,
		ExcludeID:    req.ExcludeBookingID,
	}

	bookings, err := uc.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("CheckConflict: failed to get bookings for specialist id=%d: %v", req.SpecialistID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	candidate := domain.TimeInterval{Start: req.Start, End: req.End}

	var conflicting []int64
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if candidate.Overlaps(b.Interval()) {
			conflicting = append(conflicting, b.ID)
		}
	}

	return &Response{
		HasConflict:           len(conflicting) > 0,
		ConflictingBookingIDs: conflicting,
	}, nil
}
