package build_roster

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/integrations/catalogservice"
)

// staffMember рабочая копия мастера на время одного запуска
type staffMember struct {
	id             int64
	maxWeekly      int
	remaining      int // остаток недельного бюджета на горизонт
	preferredHours map[int]bool
	daysOff        map[time.Weekday]bool
}

// rosterState состояние одного запуска построения. Запуск — чистая
// функция своих входов: состояние не переживает Execute и не разделяется
// между горутинами.
type rosterState struct {
	params  Params
	horizon []domain.DateKey

	openHours map[domain.DateKey][]int
	demand    map[domain.DateKey]map[int]float64
	required  map[domain.DateKey]map[int]int

	// assigned date -> hour -> множество мастеров
	assigned map[domain.DateKey]map[int]map[int64]bool

	staff     []*staffMember
	staffByID map[int64]*staffMember
}

func newRosterState(params Params, horizon []domain.DateKey, specialists []*catalogservice.Specialist, horizonWeeks int) *rosterState {
	st := &rosterState{
		params:    params,
		horizon:   horizon,
		openHours: make(map[domain.DateKey][]int),
		demand:    make(map[domain.DateKey]map[int]float64),
		required:  make(map[domain.DateKey]map[int]int),
		assigned:  make(map[domain.DateKey]map[int]map[int64]bool),
		staffByID: make(map[int64]*staffMember),
	}

	for _, sp := range specialists {
		if !sp.Active {
			continue
		}

		maxWeekly := sp.MaxWeeklyHours
		if maxWeekly <= 0 {
			maxWeekly = params.DefaultMaxWeeklyHours
		}

		m := &staffMember{
			id:             sp.ID,
			maxWeekly:      maxWeekly,
			remaining:      maxWeekly * horizonWeeks,
			preferredHours: make(map[int]bool, len(sp.PreferredHours)),
			daysOff:        make(map[time.Weekday]bool, len(sp.DaysOff)),
		}
		for _, h := range sp.PreferredHours {
			m.preferredHours[h] = true
		}
		for _, d := range sp.DaysOff {
			m.daysOff[d] = true
		}

		st.staff = append(st.staff, m)
		st.staffByID[m.id] = m
	}

	sort.Slice(st.staff, func(i, j int) bool { return st.staff[i].id < st.staff[j].id })
	return st
}

func (st *rosterState) assignHour(m *staffMember, date domain.DateKey, hour int) {
	if st.assigned[date] == nil {
		st.assigned[date] = make(map[int]map[int64]bool)
	}
	if st.assigned[date][hour] == nil {
		st.assigned[date][hour] = make(map[int64]bool)
	}
	st.assigned[date][hour][m.id] = true
	m.remaining--
}

func (st *rosterState) unassignHour(m *staffMember, date domain.DateKey, hour int) {
	if st.assigned[date][hour][m.id] {
		delete(st.assigned[date][hour], m.id)
		m.remaining++
	}
}

func (st *rosterState) isAssigned(staffID int64, date domain.DateKey, hour int) bool {
	return st.assigned[date][hour][staffID]
}

func (st *rosterState) assignedCount(date domain.DateKey, hour int) int {
	return len(st.assigned[date][hour])
}

func (st *rosterState) requiredAt(date domain.DateKey, hour int) int {
	return st.required[date][hour]
}

// dayHours часы мастера на дату, по возрастанию
func (st *rosterState) dayHours(staffID int64, date domain.DateKey) []int {
	var hours []int
	for hour, set := range st.assigned[date] {
		if set[staffID] {
			hours = append(hours, hour)
		}
	}
	sort.Ints(hours)
	return hours
}

// keepsContiguous проверяет, что добавление часа сохраняет смену сплошной
func (st *rosterState) keepsContiguous(staffID int64, date domain.DateKey, hour int) bool {
	hours := st.dayHours(staffID, date)
	if len(hours) == 0 {
		return true
	}
	for _, h := range hours {
		if h == hour-1 || h == hour+1 {
			return true
		}
	}
	return false
}

// schedule собирает итоговые назначения, отсортированные по мастеру и дате
func (st *rosterState) schedule() []domain.ShiftAssignment {
	var result []domain.ShiftAssignment
	for _, m := range st.staff {
		for _, date := range st.horizon {
			hours := st.dayHours(m.id, date)
			if len(hours) == 0 {
				continue
			}
			result = append(result, domain.ShiftAssignment{
				StaffID: m.id,
				Date:    date,
				Hours:   hours,
			})
		}
	}
	return result
}
