package build_roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	rosterRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/roster"
	catalogClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
)

// максимальная длина горизонта построения, дней
const maxHorizonDays = 31

// UseCase use case построения расписания смен. Конвейер одного запуска:
// прогноз -> покрытие -> жадное назначение -> проход предпочтений ->
// баланс -> валидация -> метрики -> рекомендации. Построение — чистая
// функция входов и параметров; побочный эффект один: запись готового
// расписания через single-writer границу хранилища.
type UseCase struct {
	bookingRepo   BookingRepository
	rosterRepo    RosterRepository
	catalogClient CatalogClient
	txManager     TransactionManager
	params        Params
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	rosterRepo RosterRepository,
	catalogClient CatalogClient,
	txManager TransactionManager,
	params Params,
	logger Logger,
) (*UseCase, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &UseCase{
		bookingRepo:   bookingRepo,
		rosterRepo:    rosterRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		params:        params,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}, nil
}

// Execute выполняет use case построения расписания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BuildRoster: shop=%d, start=%s, days=%d, dryRun=%v",
		req.ShopID, req.StartDate.Format(domain.DateFormat), req.Days, req.DryRun)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BuildRoster: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем магазин и мастеров
	shop, err := uc.catalogClient.GetShop(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrShopNotFound) {
			uc.logger.Warn("BuildRoster: shop id=%d not found", req.ShopID)
			return nil, ErrShopNotFound
		}
		uc.logger.Error("BuildRoster: failed to get shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get shop: %v", ErrInternal, err)
	}

	specialists, err := uc.catalogClient.GetSpecialists(ctx, req.ShopID)
	if err != nil {
		uc.logger.Error("BuildRoster: failed to get specialists for shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get specialists: %v", ErrInternal, err)
	}

	// 3. Снимок истории для прогноза спроса
	historyStart := req.StartDate.AddDate(0, 0, -uc.params.HistoricalWeeks*7)
	filter := domain.SpecialistBookingsFilter{
		ShopID:    req.ShopID,
		StartDate: &historyStart,
		EndDate:   &req.StartDate,
	}

	history, err := uc.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("BuildRoster: failed to get booking history: %v", err)
		return nil, fmt.Errorf("%w: failed to get booking history: %v", ErrInternal, err)
	}

	// 4. Строим расписание
	resp, schedule := uc.buildSchedule(req, shop, specialists, history)
	if resp == nil {
		return nil, ErrNoStaff
	}

	// 5. Записываем расписание; single-writer гарантирует хранилище
	if !req.DryRun {
		var rosterID int64
		err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			id, err := uc.rosterRepo.Save(txCtx, req.ShopID, req.StartDate, req.Days, schedule)
			if err != nil {
				return err
			}
			rosterID = id
			return nil
		})
		if err != nil {
			if errors.Is(err, rosterRepo.ErrRosterExists) {
				uc.logger.Warn("BuildRoster: roster for shop=%d start=%s already exists",
					req.ShopID, req.StartDate.Format(domain.DateFormat))
				return nil, ErrRosterAlreadyExists
			}
			uc.logger.Error("BuildRoster: failed to save roster: %v", err)
			return nil, fmt.Errorf("%w: failed to save roster: %v", ErrInternal, err)
		}
		resp.RosterID = rosterID
	}

	uc.logger.Info("BuildRoster: shop=%d, assignments=%d, coverage=%.1f%%, warnings=%d",
		req.ShopID, len(schedule), resp.Stats.CoveragePct, len(resp.Warnings))

	return resp, nil
}

// buildSchedule прогоняет чистый конвейер построения; nil — нет мастеров
func (uc *UseCase) buildSchedule(
	req *Request,
	shop *catalogClient.Shop,
	specialists []*catalogClient.Specialist,
	history []*domain.Booking,
) (*Response, []domain.ShiftAssignment) {
	loc := req.StartDate.Location()

	horizon := make([]domain.DateKey, 0, req.Days)
	for day := 0; day < req.Days; day++ {
		horizon = append(horizon, domain.NewDateKey(req.StartDate.AddDate(0, 0, day)))
	}

	st := newRosterState(uc.params, horizon, specialists, horizonWeeks(req.Days))
	if len(st.staff) == 0 {
		return nil, nil
	}

	st.openHours = shopOpenHours(shop, horizon, loc)
	st.demand = buildForecast(history, horizon, uc.params.HistoricalWeeks)
	coverage := buildCoverage(st)

	initialAssignment(st)

	warnings := preferencePass(st)
	warnings = append(warnings, balancePass(st)...)
	warnings = append(warnings, validateSchedule(st)...)
	warnings = append(warnings, unknownSpecialistWarnings(history, st)...)

	stats := buildStats(st)
	suggestions := buildSuggestions(st, stats)
	schedule := st.schedule()

	forecast := make(map[string]map[int]float64, len(horizon))
	for _, date := range horizon {
		forecast[date.String()] = st.demand[date]
	}

	return &Response{
		Schedule:       schedule,
		DemandForecast: forecast,
		Coverage:       coverage,
		Stats:          stats,
		Warnings:       warnings,
		Suggestions:    suggestions,
	}, schedule
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ShopID <= 0 {
		return fmt.Errorf("%w: shopID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.Days < 1 || req.Days > maxHorizonDays {
		return fmt.Errorf("%w: days must be in range [1, %d]", ErrInvalidInput, maxHorizonDays)
	}

	return nil
}
