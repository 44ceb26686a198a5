package get_available_slots

import "errors"

var (
	// ErrShopNotFound возвращается, когда магазин не найден
	ErrShopNotFound = errors.New("shop not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrSpecialistNotFound возвращается, когда запрошенный мастер не найден в магазине
	ErrSpecialistNotFound = errors.New("specialist not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	// Отличает нарушение контракта вызова от пустого доменного результата
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
