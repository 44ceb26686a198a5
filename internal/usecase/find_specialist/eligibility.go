package find_specialist

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
)

// eligibleSpecialists фильтрует мастеров по четырём условиям:
// активен и оказывает услугу, рабочее окно покрывает буферизованный
// промежуток, нет пересекающегося активного бронирования, владеет
// всеми явно затребованными навыками.
func (uc *UseCase) eligibleSpecialists(
	ctx context.Context,
	req *Request,
	service *catalogservice.Service,
	specialists []*catalogservice.Specialist,
	buffered domain.TimeInterval,
) ([]*catalogservice.Specialist, error) {
	date := dateOf(req.StartTime)

	eligible := make([]*catalogservice.Specialist, 0, len(specialists))
	for _, sp := range specialists {
		if !sp.Active || !service.IsSpecialistQualified(sp.ID) {
			continue
		}

		if len(req.RequiredSkillIDs) > 0 && !sp.HasAllSkills(req.RequiredSkillIDs) {
			continue
		}

		if !windowCovers(sp, date, buffered) {
			continue
		}

		busy, err := uc.hasConflict(ctx, req.ShopID, sp.ID, date, buffered)
		if err != nil {
			return nil, err
		}
		if busy {
			continue
		}

		eligible = append(eligible, sp)
	}

	return eligible, nil
}

// windowCovers проверяет, что одно из окон мастера целиком содержит промежуток
func windowCovers(sp *catalogservice.Specialist, date time.Time, buffered domain.TimeInterval) bool {
	for _, window := range sp.WorkingHours.WindowsForDate(date) {
		if window.Contains(buffered) {
			return true
		}
	}
	return false
}

// hasConflict проверяет пересечение промежутка с активными бронированиями мастера
func (uc *UseCase) hasConflict(ctx context.Context, shopID, specialistID int64, date time.Time, buffered domain.TimeInterval) (bool, error) {
	filter := domain.SpecialistBookingsFilter{
		ShopID:       shopID,
		SpecialistID: &specialistID,
		StartDate:    &date,
		EndDate:      &date,
		ActiveOnly:   true,
	}

	bookings, err := uc.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if buffered.Overlaps(b.Interval()) {
			return true, nil
		}
	}
	return false, nil
}

// dateOf отбрасывает время, оставляя календарную дату
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
