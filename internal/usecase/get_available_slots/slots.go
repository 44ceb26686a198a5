package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// generateSlots генерирует бронируемые слоты внутри доступных окон.
//
// Для каждого окна курсор стартует с его начала и двигается с шагом granularity.
// Кандидат занимает буферизованный промежуток
// [cursor, cursor + bufferBefore + duration + bufferAfter); если он не
// пересекается ни с одним активным бронированием, эмитится слот записи
// [cursor + bufferBefore, cursor + bufferBefore + duration) — буферы
// резервируются, но клиенту не видны. Курсор двигается независимо от того,
// был ли эмитирован слот: granularity выравнивает начала слотов, а не
// обеспечивает непрерывность.
//
// Окно короче полного промежутка даёт ноль слотов — это не ошибка.
// Пересекающиеся входные окна допустимы: развертка рассуждает локально
// в пределах одного окна.
func generateSlots(
	windows []domain.TimeInterval,
	durationMinutes int,
	bufferBefore int,
	bufferAfter int,
	granularityMinutes int,
	busy []domain.TimeInterval,
) ([]domain.TimeInterval, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %d", durationMinutes)
	}
	if granularityMinutes < domain.MinGranularityMinutes {
		return nil, fmt.Errorf("granularity must be at least %d minute, got %d",
			domain.MinGranularityMinutes, granularityMinutes)
	}
	if bufferBefore < 0 || bufferAfter < 0 {
		return nil, fmt.Errorf("buffers must be non-negative, got before=%d after=%d",
			bufferBefore, bufferAfter)
	}

	duration := time.Duration(durationMinutes) * time.Minute
	before := time.Duration(bufferBefore) * time.Minute
	after := time.Duration(bufferAfter) * time.Minute
	granularity := time.Duration(granularityMinutes) * time.Minute
	totalSpan := before + duration + after

	slots := make([]domain.TimeInterval, 0)

	for _, window := range windows {
		for cursor := window.Start; !cursor.Add(totalSpan).After(window.End); cursor = cursor.Add(granularity) {
			buffered := domain.TimeInterval{Start: cursor, End: cursor.Add(totalSpan)}

			if overlapsAny(buffered, busy) {
				continue
			}

			slots = append(slots, domain.TimeInterval{
				Start: cursor.Add(before),
				End:   cursor.Add(before).Add(duration),
			})
		}
	}

	return slots, nil
}

// overlapsAny проверяет пересечение кандидата с занятыми интервалами
func overlapsAny(candidate domain.TimeInterval, busy []domain.TimeInterval) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}

// activeBookingIntervals собирает интервалы активных бронирований
func activeBookingIntervals(bookings []*domain.Booking) []domain.TimeInterval {
	intervals := make([]domain.TimeInterval, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		intervals = append(intervals, b.Interval())
	}
	return intervals
}
