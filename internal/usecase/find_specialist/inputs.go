package find_specialist

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-SchedulingService/internal/service/scoring"
)

// buildScoringInputs собирает request-scoped агрегаты для скоринга:
// дневную загрузку, предпочтения клиента, средние ожидания за 30 дней
// и производительность за 90 дней.
func (uc *UseCase) buildScoringInputs(
	ctx context.Context,
	req *Request,
	service *catalogservice.Service,
	eligible []*catalogservice.Specialist,
	now time.Time,
) (scoring.Inputs, error) {
	ids := make([]int64, 0, len(eligible))
	for _, sp := range eligible {
		ids = append(ids, sp.ID)
	}

	date := dateOf(req.StartTime)

	counts, err := uc.bookingRepo.GetDayBookingCounts(ctx, req.ShopID, date)
	if err != nil {
		return scoring.Inputs{}, fmt.Errorf("%w: failed to get day booking counts: %v", ErrInternal, err)
	}

	prefs := map[int64]domain.CustomerPreference{}
	if req.CustomerID != nil {
		prefs, err = uc.preferenceRepo.GetByCustomerAndSpecialists(ctx, *req.CustomerID, ids)
		if err != nil {
			return scoring.Inputs{}, fmt.Errorf("%w: failed to get preferences: %v", ErrInternal, err)
		}
	}

	waitSince := now.AddDate(0, 0, -domain.WaitTimeWindowDays)
	waits, err := uc.bookingRepo.GetWaitTimeAverages(ctx, req.ServiceID, ids, waitSince)
	if err != nil {
		return scoring.Inputs{}, fmt.Errorf("%w: failed to get wait time averages: %v", ErrInternal, err)
	}

	perfSince := now.AddDate(0, 0, -domain.PerformanceWindowDays)
	perfRows, err := uc.bookingRepo.GetPerformanceStats(ctx, ids, perfSince)
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

	// Явные требования к навыкам имеют приоритет над описанием услуги
	requiredSkills := req.RequiredSkillIDs
	if len(requiredSkills) == 0 {
		requiredSkills = service.RequiredSkillIDs
	}

	return scoring.Inputs{
		RequiredSkillIDs: requiredSkills,
		BookingCounts:    counts,
		Preferences:      prefs,
		WaitAverages:     waits,
		Performance:      performance,
	}, nil
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
