package build_roster

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type hourRange struct {
	from, to int // [from, to), целые часы
	delta    int // суммарный дефицит (>0) или избыток (<0) часов
}

// buildSuggestions собирает человекочитаемые рекомендации: сплошные
// диапазоны недоукомплектованных и переукомплектованных часов по дням
// с прикидкой численности (дефицит/4, минимум 1) и мастеров с загрузкой
// ниже порога
func buildSuggestions(st *rosterState, stats Stats) []string {
	var suggestions []string

	for _, date := range st.horizon {
		under := contiguousRanges(st, date, func(required, assigned int) int { return required - assigned })
		for _, r := range under {
			if r.delta < st.params.SuggestionHourThreshold {
				continue
			}
			add := r.delta / st.params.SuggestionHourThreshold
			if add < 1 {
				add = 1
			}
			suggestions = append(suggestions, fmt.Sprintf(
				"add %d staff on %s between %02d:00 and %02d:00 (%d uncovered staff-hours)",
				add, date, r.from, r.to, r.delta))
		}

		over := contiguousRanges(st, date, func(required, assigned int) int { return assigned - required })
		for _, r := range over {
			if r.delta < st.params.SuggestionHourThreshold {
				continue
			}
			remove := r.delta / st.params.SuggestionHourThreshold
			if remove < 1 {
				remove = 1
			}
			suggestions = append(suggestions, fmt.Sprintf(
				"consider removing %d staff on %s between %02d:00 and %02d:00 (%d excess staff-hours)",
				remove, date, r.from, r.to, r.delta))
		}
	}

	for _, u := range stats.StaffUtilization {
		if u.UtilizationPct < st.params.LowUtilizationPct {
			suggestions = append(suggestions, fmt.Sprintf(
				"staff %d is at %.0f%% utilization; consider assigning more hours",
				u.StaffID, u.UtilizationPct))
		}
	}

	return suggestions
}

// contiguousRanges группирует подряд идущие открытые часы с положительным
// значением delta в диапазоны
func contiguousRanges(st *rosterState, date domain.DateKey, delta func(required, assigned int) int) []hourRange {
	var ranges []hourRange
	var current *hourRange

	prevHour := -2
	for _, hour := range st.openHours[date] {
		d := delta(st.requiredAt(date, hour), st.assignedCount(date, hour))
		if d > 0 && hour == prevHour+1 && current != nil {
			current.to = hour + 1
			current.delta += d
		} else if d > 0 {
			ranges = append(ranges, hourRange{from: hour, to: hour + 1, delta: d})
			current = &ranges[len(ranges)-1]
		} else {
			current = nil
		}
		prevHour = hour
	}
	return ranges
}
