package reserve_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ShopID <= 0 {
		return fmt.Errorf("%w: shopID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.SpecialistID <= 0 {
		return fmt.Errorf("%w: specialistID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	return nil
}

// validateNotInPast проверяет, что начало записи не в прошлом
func validateNotInPast(startTime, now time.Time) error {
	if startTime.Before(now) {
		return ErrInvalidDate
	}
	return nil
}

// validateSpecialistWindow проверяет, что рабочие окна мастера на дату
// целиком покрывают буферизованный промежуток
func validateSpecialistWindow(specialist *catalogservice.Specialist, date time.Time, buffered domain.TimeInterval) error {
	for _, window := range specialist.WorkingHours.WindowsForDate(date) {
		if window.Contains(buffered) {
			return nil
		}
	}
	return ErrSpecialistNotWorking
}
