package optimize_assignments

import "errors"

var (
	// ErrShopNotFound возвращается, когда магазин не найден
	ErrShopNotFound = errors.New("shop not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrCatalogDegraded возвращается, когда CatalogService недоступен:
	// перебалансировка без актуального списка мастеров небезопасна
	ErrCatalogDegraded = errors.New("catalog service degraded")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
