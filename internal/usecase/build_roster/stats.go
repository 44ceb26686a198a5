package build_roster

// buildStats считает итоговые метрики: покрытие, пиковое покрытие
// и загрузку мастеров относительно их недельных лимитов
func buildStats(st *rosterState) Stats {
	weeks := horizonWeeks(len(st.horizon))

	totalRequired, covered := 0, 0
	peakRequired, peakCovered := 0, 0

	for _, date := range st.horizon {
		for _, hour := range st.openHours[date] {
			required := st.requiredAt(date, hour)
			assigned := st.assignedCount(date, hour)
			if assigned > required {
				assigned = required
			}

			totalRequired += required
			covered += assigned

			if st.demand[date][hour] > st.params.PeakDemandPerHour {
				peakRequired += required
				peakCovered += assigned
			}
		}
	}

	stats := Stats{
		TotalRequiredHours: totalRequired,
		CoveragePct:        100,
		PeakCoveragePct:    100,
	}
	if totalRequired > 0 {
		stats.CoveragePct = float64(covered) / float64(totalRequired) * 100
	}
	if peakRequired > 0 {
		stats.PeakCoveragePct = float64(peakCovered) / float64(peakRequired) * 100
	}

	totalAssigned := 0
	for _, m := range st.staff {
		hours := 0
		for _, date := range st.horizon {
			hours += len(st.dayHours(m.id, date))
		}
		totalAssigned += hours

		budget := m.maxWeekly * weeks
		pct := 0.0
		if budget > 0 {
			pct = float64(hours) / float64(budget) * 100
		}
		stats.StaffUtilization = append(stats.StaffUtilization, StaffUtilization{
			StaffID:        m.id,
			AssignedHours:  hours,
			MaxWeeklyHours: m.maxWeekly,
			UtilizationPct: pct,
		})
	}
	stats.TotalAssignedHours = totalAssigned
	if len(st.staff) > 0 {
		stats.AvgUtilizationHours = float64(totalAssigned) / float64(len(st.staff))
	}

	return stats
}
