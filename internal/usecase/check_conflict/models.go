package check_conflict

import "time"

// Request модель запроса проверки конфликта для одного кандидата
type Request struct {
	ShopID       int64
	SpecialistID int64
	Start        time.Time
	End          time.Time

	// ExcludeBookingID исключает бронирование из проверки
	// (перенос записи на месте не конфликтует сам с собой)
	ExcludeBookingID *int64
}

// Response модель ответа проверки конфликта
type Response struct {
	HasConflict bool

	// ConflictingBookingIDs идентификаторы пересекающихся активных
	// бронирований, отсортированы по возрастанию начала
	ConflictingBookingIDs []int64
}

// BatchRequest модель пакетной проверки конфликтов
type BatchRequest struct {
	ShopID int64
	Items  []BatchItem
}

// BatchItem один кандидат в пакетной проверке
type BatchItem struct {
	SpecialistID     int64
	Start            time.Time
	End              time.Time
	ExcludeBookingID *int64
}

// BatchResponse результаты пакетной проверки, по одному на кандидата,
// в порядке входных элементов
type BatchResponse struct {
	Results []Response
}

// максимальный размер пакета за один вызов
const maxBatchSize = 100
