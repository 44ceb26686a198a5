package build_roster

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Request модель запроса построения расписания смен
type Request struct {
	ShopID    int64
	StartDate time.Time // первый день горизонта
	Days      int       // длина горизонта в днях

	// DryRun строит расписание без записи в хранилище
	DryRun bool
}

// Warning типы предупреждений валидации и баланса
const (
	WarnSplitShift           = "split_shift"
	WarnShortShift           = "short_shift"
	WarnLongShift            = "long_shift"
	WarnUnderstaffed         = "understaffed"
	WarnInsufficientCapacity = "insufficient_capacity"
	WarnUnknownSpecialist    = "unknown_specialist"
	WarnOverUtilized         = "over_utilized"
	WarnUnderUtilized        = "under_utilized"
	WarnPreferenceUnmet      = "preference_unmet"
)

// Warning предупреждение о дефекте построенного расписания.
// Неконсистентность данных — предупреждение, а не отказ: частичный
// объяснимый результат ценнее прерванного запуска.
type Warning struct {
	Type    string `json:"type"`
	Date    string `json:"date,omitempty"` // YYYY-MM-DD
	Hour    *int   `json:"hour,omitempty"`
	StaffID *int64 `json:"staff_id,omitempty"`
	Message string `json:"message"`
}

// StaffUtilization загрузка одного мастера за горизонт
type StaffUtilization struct {
	StaffID        int64   `json:"staff_id"`
	AssignedHours  int     `json:"assigned_hours"`
	MaxWeeklyHours int     `json:"max_weekly_hours"`
	UtilizationPct float64 `json:"utilization_pct"`
}

// Stats итоговые метрики построенного расписания
type Stats struct {
	TotalRequiredHours  int                `json:"total_required_hours"`
	TotalAssignedHours  int                `json:"total_assigned_hours"`
	CoveragePct         float64            `json:"coverage_pct"`
	PeakCoveragePct     float64            `json:"peak_coverage_pct"`
	StaffUtilization    []StaffUtilization `json:"staff_utilization"`
	AvgUtilizationHours float64            `json:"avg_utilization_hours"`
}

// Response итог одного запуска построения расписания
type Response struct {
	RosterID int64 `json:"roster_id,omitempty"` // 0 при DryRun

	Schedule []domain.ShiftAssignment `json:"schedule"`

	// DemandForecast прогноз спроса: дата (YYYY-MM-DD) -> час -> единицы
	DemandForecast map[string]map[int]float64 `json:"demand_forecast"`

	// Coverage требуемое покрытие по открытым часам горизонта
	Coverage []domain.CoverageRequirement `json:"coverage"`

	Stats       Stats     `json:"stats"`
	Warnings    []Warning `json:"warnings"`
	Suggestions []string  `json:"suggestions"`
}
