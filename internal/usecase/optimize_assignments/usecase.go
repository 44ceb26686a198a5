package optimize_assignments

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SchedulingService/internal/service/scoring"
	"github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// UseCase use case жадной однопроходной перебалансировки назначений.
// Бронирования обходятся по возрастанию начала; выполненные
// переназначения не пересматриваются, даже если более позднее
// бронирование дало бы лучший глобальный расклад. Это осознанный
// размен глобальной оптимальности на предсказуемую задержку.
type UseCase struct {
	bookingRepo    BookingRepository
	preferenceRepo PreferenceRepository
	catalogClient  CatalogClient
	scorer         Scorer
	slotCache      SlotCache
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	preferenceRepo PreferenceRepository,
	catalogClient CatalogClient,
	scorer Scorer,
	slotCache SlotCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		preferenceRepo: preferenceRepo,
		catalogClient:  catalogClient,
		scorer:         scorer,
		slotCache:      slotCache,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// dayState рабочее состояние прохода: текущие назначения дня в памяти.
// Переназначения сразу отражаются здесь, чтобы последующие проверки
// конфликтов видели актуальную картину.
type dayState struct {
	bookings []*domain.Booking
	counts   map[int64]int
}

func (s *dayState) reassign(b *domain.Booking, toSpecialist int64) {
	s.counts[b.SpecialistID]--
	s.counts[toSpecialist]++
	b.SpecialistID = toSpecialist
}

// hasConflict проверяет пересечение промежутка с назначениями мастера,
// исключая само переназначаемое бронирование
func (s *dayState) hasConflict(specialistID int64, span domain.TimeInterval, excludeID int64) bool {
	for _, b := range s.bookings {
		if b.SpecialistID != specialistID || b.ID == excludeID {
			continue
		}
		if !b.IsActive() {
			continue
		}
		if span.Overlaps(b.Interval()) {
			return true
		}
	}
	return false
}

// Execute выполняет use case перебалансировки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("OptimizeAssignments: shop=%d, date=%s, rebalanceExisting=%v",
		req.ShopID, req.Date.Format(domain.DateFormat), req.RebalanceExisting)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("OptimizeAssignments: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем все активные бронирования дня одним запросом
	filter := domain.SpecialistBookingsFilter{
		ShopID:     req.ShopID,
		StartDate:  &req.Date,
		EndDate:    &req.Date,
		ActiveOnly: true,
	}

	bookings, err := uc.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("OptimizeAssignments: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 3. Получаем мастеров магазина
	specialists, err := uc.catalogClient.GetSpecialistsWithGracefulDegradation(ctx, req.ShopID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceDegraded) {
			uc.logger.Warn("OptimizeAssignments: catalog degraded for shop id=%d, rebalance skipped: %v", req.ShopID, err)
			return nil, fmt.Errorf("%w: %v", ErrCatalogDegraded, err)
		}
		uc.logger.Error("OptimizeAssignments: failed to get specialists for shop id=%d: %v", req.ShopID, err)
		return nil, fmt.Errorf("%w: failed to get specialists: %v", ErrInternal, err)
	}

	state := &dayState{bookings: bookings, counts: make(map[int64]int)}
	for _, sp := range specialists {
		state.counts[sp.ID] = 0
	}
	for _, b := range bookings {
		state.counts[b.SpecialistID]++
	}

	// 4. Обходим переназначаемые бронирования по возрастанию начала
	targets := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.CanBeReassigned(req.RebalanceExisting) {
			targets = append(targets, b)
		}
	}
	sort.Slice(targets, func(i, j int) bool {
		if !targets[i].StartTime.Equal(targets[j].StartTime) {
			return targets[i].StartTime.Before(targets[j].StartTime)
		}
		return targets[i].ID < targets[j].ID
	})

	resp := &Response{
		WorkloadDistribution: state.counts,
		Reassignments:        []Reassignment{},
	}

	services := make(map[int64]*catalogservice.Service)

	for _, b := range targets {
		best, err := uc.bestSpecialistFor(ctx, req, b, specialists, services, state)
		if err != nil {
			return nil, err
		}
		if best == 0 || best == b.SpecialistID {
			continue
		}

		if err := uc.bookingRepo.UpdateSpecialist(ctx, b.ID, best); err != nil {
			uc.logger.Error("OptimizeAssignments: failed to reassign booking id=%d: %v", b.ID, err)
			return nil, fmt.Errorf("%w: failed to reassign booking: %v", ErrInternal, err)
		}

		uc.logger.Info("OptimizeAssignments: booking id=%d reassigned %d -> %d", b.ID, b.SpecialistID, best)
		resp.Reassignments = append(resp.Reassignments, Reassignment{
			BookingID:        b.ID,
			FromSpecialistID: b.SpecialistID,
			ToSpecialistID:   best,
		})
		state.reassign(b, best)
		resp.UpdatedCount++
	}

	// 5. Инвалидируем кеш слотов, если расклад изменился; сбой не фатален
	if resp.UpdatedCount > 0 {
		prefix := get_available_slots.CacheKeyPrefix(req.ShopID, req.Date)
		if cerr := uc.slotCache.DeleteByPrefix(ctx, prefix); cerr != nil {
			uc.logger.Warn("OptimizeAssignments: cache invalidation failed for prefix %s: %v", prefix, cerr)
		}
	}

	uc.logger.Info("OptimizeAssignments: shop=%d, date=%s, updated=%d of %d considered",
		req.ShopID, req.Date.Format(domain.DateFormat), resp.UpdatedCount, len(targets))

	return resp, nil
}

// bestSpecialistFor оценивает кандидатов на бронирование и возвращает
// ID лучшего, либо 0, когда пригодных кандидатов нет
func (uc *UseCase) bestSpecialistFor(
	ctx context.Context,
	req *Request,
	b *domain.Booking,
	specialists []*catalogservice.Specialist,
	services map[int64]*catalogservice.Service,
	state *dayState,
) (int64, error) {
	service, err := uc.serviceFor(ctx, req.ShopID, b.ServiceID, services)
	if err != nil {
		return 0, err
	}
	if service == nil {
		// услуга удалена из каталога: бронирование пропускаем
		uc.logger.Warn("OptimizeAssignments: service id=%d of booking id=%d not found in catalog", b.ServiceID, b.ID)
		return 0, nil
	}

	buffered := b.BufferedInterval()

	eligible := make([]*catalogservice.Specialist, 0, len(specialists))
	for _, sp := range specialists {
		if !sp.Active || !service.IsSpecialistQualified(sp.ID) {
			continue
		}
		if !windowCovers(sp, req.Date, buffered) {
			continue
		}
		if state.hasConflict(sp.ID, buffered, b.ID) {
			continue
		}
		eligible = append(eligible, sp)
	}

	if len(eligible) == 0 {
		return 0, nil
	}

	inputs, err := uc.buildScoringInputs(ctx, b, service, eligible, state)
	if err != nil {
		return 0, err
	}

	results := uc.scorer.Score(candidatesOf(eligible), inputs)
	return results[0].SpecialistID, nil
}

// serviceFor читает услугу из каталога с мемоизацией на проход.
// Отсутствие услуги кешируется как nil
func (uc *UseCase) serviceFor(ctx context.Context, shopID, serviceID int64, cache map[int64]*catalogservice.Service) (*catalogservice.Service, error) {
	if svc, ok := cache[serviceID]; ok {
		return svc, nil
	}

	svc, err := uc.catalogClient.GetService(ctx, shopID, serviceID)
	if err != nil {
		if errors.Is(err, catalogservice.ErrServiceNotFound) {
			cache[serviceID] = nil
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	cache[serviceID] = svc
	return svc, nil
}

// buildScoringInputs собирает агрегаты скоринга для одного бронирования.
// Дневная загрузка берётся из рабочего состояния прохода, чтобы уже
// выполненные переназначения влияли на последующие решения.
func (uc *UseCase) buildScoringInputs(
	ctx context.Context,
	b *domain.Booking,
	service *catalogservice.Service,
	eligible []*catalogservice.Specialist,
	state *dayState,
) (scoring.Inputs, error) {
	ids := make([]int64, 0, len(eligible))
	for _, sp := range eligible {
		ids = append(ids, sp.ID)
	}

	now := uc.timeProvider.Now()

	prefs, err := uc.preferenceRepo.GetByCustomerAndSpecialists(ctx, b.CustomerID, ids)
	if err != nil {
		return scoring.Inputs{}, fmt.Errorf("%w: failed to get preferences: %v", ErrInternal, err)
	}

	waits, err := uc.bookingRepo.GetWaitTimeAverages(ctx, b.ServiceID, ids, now.AddDate(0, 0, -domain.WaitTimeWindowDays))
	if err != nil {
		return scoring.Inputs{}, fmt.Errorf("%w: failed to get wait time averages: %v", ErrInternal, err)
	}

	perfRows, err := uc.bookingRepo.GetPerformanceStats(ctx, ids, now.AddDate(0, 0, -domain.PerformanceWindowDays))
	if err != nil {
		return scoring.Inputs{}, fmt.Errorf("%w: failed to get performance stats: %v", ErrInternal, err)
	}

	performance := make(map[int64]scoring.PerformanceInput, len(perfRows))
	for id, row := range perfRows {
		performance[id] = scoring.PerformanceInput{
			AvgRating:          row.AvgRating,
			AvgExpectedMinutes: row.AvgExpectedMinutes,
			AvgActualMinutes:   row.AvgActualMinutes,
			Samples:            row.Samples,
		}
	}

	counts := make(map[int64]int, len(ids))
	for _, id := range ids {
		counts[id] = state.counts[id]
	}

	return scoring.Inputs{
		RequiredSkillIDs: service.RequiredSkillIDs,
		BookingCounts:    counts,
		Preferences:      prefs,
		WaitAverages:     waits,
		Performance:      performance,
	}, nil
}

// windowCovers проверяет, что одно из окон мастера целиком содержит промежуток
func windowCovers(sp *catalogservice.Specialist, date time.Time, span domain.TimeInterval) bool {
	for _, window := range sp.WorkingHours.WindowsForDate(date) {
		if window.Contains(span) {
			return true
		}
	}
	return false
}

// candidatesOf конвертирует мастеров каталога в кандидатов скоринга
func candidatesOf(eligible []*catalogservice.Specialist) []scoring.Candidate {
	candidates := make([]scoring.Candidate, 0, len(eligible))
	for _, sp := range eligible {
		skills := make(map[int64]int, len(sp.Skills))
		for _, s := range sp.Skills {
			skills[s.SkillID] = s.Proficiency
		}
		candidates = append(candidates, scoring.Candidate{
			SpecialistID: sp.ID,
			Skills:       skills,
		})
	}
	return candidates
}
