package build_roster

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// buildForecast усредняет историю бронирований по (день недели, час)
// и проецирует средние на даты горизонта. Час бронирования — час его
// начала; отменённые и неявки в спрос не входят. Дни без истории дают
// нулевой прогноз.
func buildForecast(history []*domain.Booking, horizon []domain.DateKey, weeks int) map[domain.DateKey]map[int]float64 {
	totals := make(map[time.Weekday]map[int]int)
	for _, b := range history {
		if b.Status == domain.StatusCancelled || b.Status == domain.StatusNoShow {
			continue
		}

		wd := b.StartTime.Weekday()
		hour := b.StartTime.Hour()
		if totals[wd] == nil {
			totals[wd] = make(map[int]int)
		}
		totals[wd][hour]++
	}

	demand := make(map[domain.DateKey]map[int]float64, len(horizon))
	for _, date := range horizon {
		demand[date] = make(map[int]float64)
		for hour, total := range totals[date.Weekday()] {
			demand[date][hour] = float64(total) / float64(weeks)
		}
	}
	return demand
}
