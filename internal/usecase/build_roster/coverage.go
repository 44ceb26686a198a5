package build_roster

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
)

// shopOpenHours проецирует недельное расписание магазина на горизонт:
// час входит в день, если его начало лежит внутри рабочего окна
func shopOpenHours(shop *catalogservice.Shop, horizon []domain.DateKey, loc *time.Location) map[domain.DateKey][]int {
	open := make(map[domain.DateKey][]int, len(horizon))
	for _, date := range horizon {
		windows := shop.WorkingHours.WindowsForDate(date.Time(loc))

		seen := make(map[int]bool)
		var hours []int
		for _, w := range windows {
			for h := w.Start.Hour(); h < 24; h++ {
				hourStart := time.Date(w.Start.Year(), w.Start.Month(), w.Start.Day(), h, 0, 0, 0, loc)
				if !hourStart.Before(w.End) {
					break
				}
				if hourStart.Before(w.Start) {
					continue
				}
				if !seen[h] {
					seen[h] = true
					hours = append(hours, h)
				}
			}
		}
		sort.Ints(hours)
		open[date] = hours
	}
	return open
}

// buildCoverage выводит требуемое покрытие по открытым часам:
// required = max(min_staff_coverage, floor(demand / divisor))
func buildCoverage(st *rosterState) []domain.CoverageRequirement {
	var result []domain.CoverageRequirement

	for _, date := range st.horizon {
		st.required[date] = make(map[int]int)
		for _, hour := range st.openHours[date] {
			required := int(st.demand[date][hour] / float64(st.params.DemandDivisor))
			if required < st.params.MinStaffCoverage {
				required = st.params.MinStaffCoverage
			}
			st.required[date][hour] = required
			result = append(result, domain.CoverageRequirement{
				Date:     date,
				Hour:     hour,
				Required: required,
			})
		}
	}
	return result
}
