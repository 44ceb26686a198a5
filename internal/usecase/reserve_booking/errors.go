package reserve_booking

import "errors"

var (
	// ErrShopNotFound возвращается, когда магазин не найден
	ErrShopNotFound = errors.New("reserve_booking: shop not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("reserve_booking: service not found")

	// ErrSpecialistNotFound возвращается, когда мастер не найден в магазине
	ErrSpecialistNotFound = errors.New("reserve_booking: specialist not found")

	// ErrSpecialistNotQualified возвращается, когда мастер не оказывает услугу
	ErrSpecialistNotQualified = errors.New("reserve_booking: specialist is not qualified for this service")

	// ErrSpecialistNotWorking возвращается, когда рабочие окна мастера
	// не покрывают запрошенный промежуток с буферами
	ErrSpecialistNotWorking = errors.New("reserve_booking: specialist is not working at this time")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("reserve_booking: invalid booking date")

	// ErrSlotNotAvailable возвращается, когда слот занят на момент фиксации.
	// Вызывающий должен выбрать другой слот и повторить
	ErrSlotNotAvailable = errors.New("reserve_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_booking: internal error")
)
