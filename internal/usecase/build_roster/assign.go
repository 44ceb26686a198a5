package build_roster

import (
	"sort"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type coverageSlot struct {
	date     domain.DateKey
	hour     int
	required int
}

// initialAssignment жадно закрывает покрытие: слоты по убыванию
// требуемого числа мастеров (при равенстве — по дате и часу, стабильно);
// на каждый слот берутся мастера с наибольшим остатком недельного
// бюджета, не занятые в этот час, без выходного и с сохранением
// сплошной смены (если раздельные смены запрещены).
func initialAssignment(st *rosterState) {
	var slots []coverageSlot
	for _, date := range st.horizon {
		for _, hour := range st.openHours[date] {
			if st.required[date][hour] > 0 {
				slots = append(slots, coverageSlot{date: date, hour: hour, required: st.required[date][hour]})
			}
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].required != slots[j].required {
			return slots[i].required > slots[j].required
		}
		if slots[i].date != slots[j].date {
			return slots[i].date.Before(slots[j].date)
		}
		return slots[i].hour < slots[j].hour
	})

	for _, slot := range slots {
		for st.assignedCount(slot.date, slot.hour) < slot.required {
			m := pickCandidate(st, slot.date, slot.hour)
			if m == nil {
				break
			}
			st.assignHour(m, slot.date, slot.hour)
		}
	}
}

// pickCandidate выбирает мастера на слот; nil — назначить некого.
// Продление уже идущей смены предпочитается открытию новой: иначе
// частые переключения мастеров дробят день на часовые островки,
// которые затем невозможно законно продлить. Внутри группы — мастер
// с наибольшим остатком бюджета, при равенстве — меньший ID.
func pickCandidate(st *rosterState, date domain.DateKey, hour int) *staffMember {
	var extend, fresh *staffMember
	for _, m := range st.staff {
		if !canTakeHour(st, m, date, hour) {
			continue
		}
		if len(st.dayHours(m.id, date)) > 0 {
			if extend == nil || m.remaining > extend.remaining {
				extend = m
			}
		} else {
			if fresh == nil || m.remaining > fresh.remaining {
				fresh = m
			}
		}
	}
	if extend != nil {
		return extend
	}
	return fresh
}

func canTakeHour(st *rosterState, m *staffMember, date domain.DateKey, hour int) bool {
	if m.remaining <= 0 {
		return false
	}
	if m.daysOff[date.Weekday()] {
		return false
	}
	if st.isAssigned(m.id, date, hour) {
		return false
	}
	if len(st.dayHours(m.id, date)) >= st.params.MaxShiftHours {
		return false
	}
	if !st.params.AllowSplitShifts && !st.keepsContiguous(m.id, date, hour) {
		return false
	}
	return true
}

// preferencePass best-effort сдвигает часы мастеров к заявленным
// предпочтениям: час переносится, только когда исходный слот остаётся
// покрытым, целевой час открыт и свободен, а смена остаётся сплошной.
// Недостижимые предпочтения оставляются как есть с предупреждением —
// сходимость не гарантируется.
func preferencePass(st *rosterState) []Warning {
	var warnings []Warning

	for _, m := range st.staff {
		if len(m.preferredHours) == 0 {
			continue
		}

		unmet := false
		for _, date := range st.horizon {
			for _, hour := range st.dayHours(m.id, date) {
				if m.preferredHours[hour] {
					continue
				}
				if !tryMoveToPreferred(st, m, date, hour) {
					unmet = true
				}
			}
		}

		if unmet {
			staffID := m.id
			warnings = append(warnings, Warning{
				Type:    WarnPreferenceUnmet,
				StaffID: &staffID,
				Message: "could not honor all preferred hours without breaking coverage",
			})
		}
	}
	return warnings
}

// tryMoveToPreferred переносит один час в предпочитаемый, если перенос
// не ломает покрытие и сплошность
func tryMoveToPreferred(st *rosterState, m *staffMember, date domain.DateKey, hour int) bool {
	// перенос допустим, только если слот покрыт с запасом
	if st.assignedCount(date, hour)-1 < st.requiredAt(date, hour) {
		return false
	}

	for _, target := range st.openHours[date] {
		if !m.preferredHours[target] || st.isAssigned(m.id, date, target) {
			continue
		}

		st.unassignHour(m, date, hour)
		if canTakeHour(st, m, date, target) {
			st.assignHour(m, date, target)
			if st.params.AllowSplitShifts || isContiguousDay(st, m.id, date) {
				return true
			}
			st.unassignHour(m, date, target)
		}
		st.assignHour(m, date, hour)
	}
	return false
}

func isContiguousDay(st *rosterState, staffID int64, date domain.DateKey) bool {
	a := domain.ShiftAssignment{StaffID: staffID, Date: date, Hours: st.dayHours(staffID, date)}
	return a.IsContiguous()
}
