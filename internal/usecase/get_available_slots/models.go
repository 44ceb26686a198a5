package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ShopID    int64
	ServiceID int64
	Date      time.Time // дата без времени

	// SpecialistID если задан — слоты только этого мастера;
	// nil — объединение по всем квалифицированным мастерам
	SpecialistID *int64

	// Переопределения параметров услуги (опционально)
	DurationOverride    *int
	GranularityOverride *int
}

// Response модель ответа со списком доступных слотов
// Слоты отсортированы по возрастанию начала, интервалы исключают буферы
type Response struct {
	ShopID          int64
	ServiceID       int64
	Date            time.Time
	SpecialistID    *int64
	DurationMinutes int
	Slots           []domain.TimeInterval
	FromCache       bool
}

// EarliestResponse модель ответа поиска ближайшего доступного слота
// Found=false — валидный результат: в горизонте поиска слотов нет
type EarliestResponse struct {
	Found        bool
	Date         time.Time
	Slot         *domain.TimeInterval
	SpecialistID *int64
}

// EarliestRequest модель запроса на поиск ближайшего доступного слота
type EarliestRequest struct {
	ShopID       int64
	ServiceID    int64
	StartDate    time.Time
	DaysToCheck  int
	SpecialistID *int64
}

// слоты считаются совпадающими при расхождении начала в пределах допуска
// (поглощает округление таймстемпов на стороне вызывающего)
const slotMatchTolerance = time.Minute

// максимальный горизонт линейного поиска ближайшего слота
const maxDaysToCheck = 90
