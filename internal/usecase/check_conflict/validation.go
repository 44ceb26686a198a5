package check_conflict

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ShopID <= 0 {
		return fmt.Errorf("%w: shopID must be positive", ErrInvalidInput)
	}

	if req.SpecialistID <= 0 {
		return fmt.Errorf("%w: specialistID must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	if !req.Start.Before(req.End) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}

	if req.ExcludeBookingID != nil && *req.ExcludeBookingID <= 0 {
		return fmt.Errorf("%w: excludeBookingID must be positive", ErrInvalidInput)
	}

	return nil
}

// validateBatchRequest валидирует пакетный запрос целиком до выполнения
func validateBatchRequest(req *BatchRequest) error {
	if req.ShopID <= 0 {
		return fmt.Errorf("%w: shopID must be positive", ErrInvalidInput)
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("%w: items must not be empty", ErrInvalidInput)
	}

	if len(req.Items) > maxBatchSize {
		return fmt.Errorf("%w: batch size exceeds %d", ErrInvalidInput, maxBatchSize)
	}

	for i, item := range req.Items {
		single := Request{
			ShopID:           req.ShopID,
			SpecialistID:     item.SpecialistID,
			Start:            item.Start,
			End:              item.End,
			ExcludeBookingID: item.ExcludeBookingID,
		}
		if err := validateRequest(&single); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}

	return nil
}
