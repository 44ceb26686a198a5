package build_roster

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// validateSchedule проверяет построенное расписание и возвращает
// предупреждения. Дефекты расписания не прерывают запуск: частичный
// результат с объяснением полезнее отказа.
func validateSchedule(st *rosterState) []Warning {
	var warnings []Warning

	// Смены каждого мастера: сплошность и длина
	for _, m := range st.staff {
		for _, date := range st.horizon {
			hours := st.dayHours(m.id, date)
			if len(hours) == 0 {
				continue
			}

			staffID := m.id
			a := domain.ShiftAssignment{StaffID: m.id, Date: date, Hours: hours}

			if !st.params.AllowSplitShifts && !a.IsContiguous() {
				warnings = append(warnings, Warning{
					Type:    WarnSplitShift,
					Date:    date.String(),
					StaffID: &staffID,
					Message: fmt.Sprintf("staff %d has a non-contiguous shift on %s", m.id, date),
				})
			}

			if len(hours) < st.params.MinShiftHours {
				warnings = append(warnings, Warning{
					Type:    WarnShortShift,
					Date:    date.String(),
					StaffID: &staffID,
					Message: fmt.Sprintf("staff %d works %d hours on %s, below the %d-hour minimum", m.id, len(hours), date, st.params.MinShiftHours),
				})
			}
			if len(hours) > st.params.MaxShiftHours {
				warnings = append(warnings, Warning{
					Type:    WarnLongShift,
					Date:    date.String(),
					StaffID: &staffID,
					Message: fmt.Sprintf("staff %d works %d hours on %s, above the %d-hour maximum", m.id, len(hours), date, st.params.MaxShiftHours),
				})
			}
		}
	}

	// Покрытие каждого открытого часа
	for _, date := range st.horizon {
		for _, hour := range st.openHours[date] {
			required := st.requiredAt(date, hour)
			assigned := st.assignedCount(date, hour)
			if assigned < required {
				h := hour
				warnings = append(warnings, Warning{
					Type:    WarnUnderstaffed,
					Date:    date.String(),
					Hour:    &h,
					Message: fmt.Sprintf("%s %02d:00 has %d of %d required staff", date, hour, assigned, required),
				})
			}
		}
	}

	// Суммарная ёмкость против суммарной потребности
	totalRequired := 0
	for _, date := range st.horizon {
		for _, hour := range st.openHours[date] {
			totalRequired += st.requiredAt(date, hour)
		}
	}
	capacity := 0
	for _, m := range st.staff {
		capacity += m.maxWeekly
	}
	capacity *= horizonWeeks(len(st.horizon))

	if totalRequired > capacity {
		warnings = append(warnings, Warning{
			Type:    WarnInsufficientCapacity,
			Message: fmt.Sprintf("required %d staffed hours exceed the %d-hour staff capacity", totalRequired, capacity),
		})
	}

	return warnings
}

// unknownSpecialistWarnings помечает бронирования истории, ссылающиеся
// на отсутствующих в каталоге мастеров. Неконсистентность данных —
// предупреждение, а не отказ.
func unknownSpecialistWarnings(history []*domain.Booking, st *rosterState) []Warning {
	seen := make(map[int64]bool)
	var warnings []Warning

	for _, b := range history {
		if _, ok := st.staffByID[b.SpecialistID]; ok {
			continue
		}
		if seen[b.SpecialistID] {
			continue
		}
		seen[b.SpecialistID] = true

		staffID := b.SpecialistID
		warnings = append(warnings, Warning{
			Type:    WarnUnknownSpecialist,
			StaffID: &staffID,
			Message: fmt.Sprintf("booking history references specialist %d missing from the catalog", b.SpecialistID),
		})
	}
	return warnings
}

// horizonWeeks число недельных бюджетов, укладывающихся в горизонт
func horizonWeeks(days int) int {
	weeks := days / 7
	if days%7 != 0 {
		weeks++
	}
	return weeks
}
