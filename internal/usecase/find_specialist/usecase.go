package find_specialist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	catalogClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
)

// UseCase use case подбора оптимального мастера на слот
type UseCase struct {
	bookingRepo    BookingRepository
	preferenceRepo PreferenceRepository
	catalogClient  CatalogClient
	scorer         Scorer
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	preferenceRepo PreferenceRepository,
	catalogClient CatalogClient,
	scorer Scorer,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		preferenceRepo: preferenceRepo,
		catalogClient:  catalogClient,
		scorer:         scorer,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case подбора мастера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindSpecialist: shop=%d, service=%d, start=%s",
		req.ShopID, req.ServiceID, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindSpecialist: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.ShopID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("FindSpecialist: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		if errors.Is(err, catalogClient.ErrShopNotFound) {
			uc.logger.Warn("FindSpecialist: shop id=%d not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("FindSpecialist: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Буферизованный отпечаток запрошенного слота
	endTime := req.StartTime.Add(time.Duration(service.DurationMinutes) * time.Minute)
	buffered := domain.TimeInterval{
		Start: req.StartTime.Add(-time.Duration(service.BufferBeforeMinutes) * time.Minute),
		End:   endTime.Add(time.Duration(service.BufferAfterMinutes) * time.Minute),
	}

	// 4. Получаем мастеров магазина
	specialists, err := uc.catalogClient.GetSpecialists(ctx, req.ShopID)
	if err != nil {
		uc.logger.Error("FindSpecialist: failed to get specialists for shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get specialists: %v", ErrInternal, err)
	}

	// 5. Фильтр пригодности
	eligible, err := uc.eligibleSpecialists(ctx, req, service, specialists, buffered)
	if err != nil {
		uc.logger.Error("FindSpecialist: eligibility check failed: %v", err)
		return nil, err
	}

	if len(eligible) == 0 {
		uc.logger.Info("FindSpecialist: no eligible specialists for shop=%d, service=%d, start=%s",
			req.ShopID, req.ServiceID, req.StartTime.Format(time.RFC3339))
		return nil, ErrNoSpecialistAvailable
	}

	// 6. Собираем агрегаты и оцениваем кандидатов
	now := uc.timeProvider.Now()
	inputs, err := uc.buildScoringInputs(ctx, req, service, eligible, now)
	if err != nil {
		uc.logger.Error("FindSpecialist: failed to build scoring inputs: %v", err)
		return nil, err
	}

	results := uc.scorer.Score(candidatesOf(eligible), inputs)

	// 7. Формируем топ-3 с компонентами оценки
	names := make(map[int64]string, len(eligible))
	for _, sp := range eligible {
		names[sp.ID] = sp.Name
	}

	ranked := make([]RankedSpecialist, 0, rankedListSize)
	for _, r := range results {
		if len(ranked) == rankedListSize {
			break
		}
		ranked = append(ranked, RankedSpecialist{
			SpecialistID: r.SpecialistID,
			Name:         names[r.SpecialistID],
			Score:        r.Total,
			SubScores:    r.SubScores,
		})
	}

	uc.logger.Info("FindSpecialist: best specialist id=%d score=%.3f out of %d eligible",
		ranked[0].SpecialistID, ranked[0].Score, len(eligible))

	return &Response{
		Best:   ranked[0],
		Ranked: ranked,
	}, nil
}
