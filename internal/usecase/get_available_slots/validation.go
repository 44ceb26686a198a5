package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ShopID <= 0 {
		return fmt.Errorf("%w: shopID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.SpecialistID != nil && *req.SpecialistID <= 0 {
		return fmt.Errorf("%w: specialistID must be positive", ErrInvalidInput)
	}

	if req.DurationOverride != nil {
		if err := validateDuration(*req.DurationOverride); err != nil {
			return err
		}
	}

	if req.GranularityOverride != nil {
		if err := validateGranularity(*req.GranularityOverride); err != nil {
			return err
		}
	}

	return nil
}

// validateEarliestRequest валидирует запрос поиска ближайшего слота
func validateEarliestRequest(req *EarliestRequest) error {
	if req.ShopID <= 0 {
		return fmt.Errorf("%w: shopID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.DaysToCheck <= 0 || req.DaysToCheck > maxDaysToCheck {
		return fmt.Errorf("%w: daysToCheck must be in range [1, %d]", ErrInvalidInput, maxDaysToCheck)
	}

	if req.SpecialistID != nil && *req.SpecialistID <= 0 {
		return fmt.Errorf("%w: specialistID must be positive", ErrInvalidInput)
	}

	return nil
}

// validateDuration проверяет длительность услуги в допустимых пределах
func validateDuration(minutes int) error {
	if minutes < domain.MinServiceDurationMinutes || minutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: duration must be in range [%d, %d] minutes",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	return nil
}

// validateGranularity проверяет шаг генерации слотов
func validateGranularity(minutes int) error {
	if minutes < domain.MinGranularityMinutes || minutes > domain.MaxGranularityMinutes {
		return fmt.Errorf("%w: granularity must be in range [%d, %d] minutes",
			ErrInvalidInput, domain.MinGranularityMinutes, domain.MaxGranularityMinutes)
	}
	return nil
}
