package build_roster

import "fmt"

// balancePass считает итоговую загрузку мастеров и помечает выбивающихся
// из среднего. Только отчётность: часы здесь не перераспределяются.
func balancePass(st *rosterState) []Warning {
	totals := make(map[int64]int, len(st.staff))
	sum := 0
	for _, m := range st.staff {
		hours := 0
		for _, date := range st.horizon {
			hours += len(st.dayHours(m.id, date))
		}
		totals[m.id] = hours
		sum += hours
	}

	if len(st.staff) == 0 || sum == 0 {
		return nil
	}
	avg := float64(sum) / float64(len(st.staff))

	var warnings []Warning
	for _, m := range st.staff {
		pct := float64(totals[m.id]) / avg * 100
		staffID := m.id

		switch {
		case pct > st.params.OverUtilizationPct:
			warnings = append(warnings, Warning{
				Type:    WarnOverUtilized,
				StaffID: &staffID,
				Message: fmt.Sprintf("staff %d carries %.0f%% of the average load", m.id, pct),
			})
		case pct < st.params.UnderUtilizationPct:
			warnings = append(warnings, Warning{
				Type:    WarnUnderUtilized,
				StaffID: &staffID,
				Message: fmt.Sprintf("staff %d carries %.0f%% of the average load", m.id, pct),
			})
		}
	}
	return warnings
}
