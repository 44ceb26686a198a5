package find_specialist

import "errors"

var (
	// ErrShopNotFound возвращается, когда магазин не найден
	ErrShopNotFound = errors.New("shop not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrNoSpecialistAvailable возвращается, когда подходящих мастеров нет.
	// Нормальный доменный исход, а не сбой: вызывающий пробует другой слот
	ErrNoSpecialistAvailable = errors.New("no specialist available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
