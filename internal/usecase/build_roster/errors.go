package build_roster

import "errors"

var (
	// ErrShopNotFound возвращается, когда магазин не найден
	ErrShopNotFound = errors.New("build_roster: shop not found")

	// ErrNoStaff возвращается, когда в магазине нет активных мастеров
	ErrNoStaff = errors.New("build_roster: no active staff")

	// ErrRosterAlreadyExists возвращается, когда расписание на период
	// уже записано другим запуском
	ErrRosterAlreadyExists = errors.New("build_roster: roster already exists for this period")

	// ErrInvalidParams возвращается при некорректных параметрах построения
	ErrInvalidParams = errors.New("build_roster: invalid roster parameters")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("build_roster: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("build_roster: internal error")
)
