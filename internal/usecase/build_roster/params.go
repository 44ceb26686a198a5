package build_roster

import (
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Params параметры построения расписания. Пороговые значения заданы
// конфигурацией, а не зашиты в код: веса и эвристики настраиваются
// на тенанта и проверяются тестами.
type Params struct {
	// HistoricalWeeks сколько недель истории усредняет прогноз.
	// При меньшем фактическом объёме истории качество прогноза деградирует
	HistoricalWeeks int

	// DemandDivisor эвристика "1 мастер на N единиц спроса в час"
	DemandDivisor int

	// MinStaffCoverage нижняя граница требуемого покрытия в открытый час
	MinStaffCoverage int

	MinShiftHours int
	MaxShiftHours int

	// DefaultMaxWeeklyHours недельный лимит мастера, не заявившего свой
	DefaultMaxWeeklyHours int

	AllowSplitShifts bool

	// PeakDemandPerHour часы с прогнозом выше порога считаются пиковыми
	PeakDemandPerHour float64

	// Пороговые доли средней загрузки для флагов баланса, в процентах
	OverUtilizationPct  float64
	UnderUtilizationPct float64

	// LowUtilizationPct порог рекомендации "добавить часов мастеру"
	LowUtilizationPct float64

	// SuggestionHourThreshold суммарный дневной дефицит/избыток часов,
	// начиная с которого формируется рекомендация по численности
	SuggestionHourThreshold int
}

// DefaultParams параметры по умолчанию
func DefaultParams() Params {
	return Params{
		HistoricalWeeks:         domain.DefaultHistoricalWeeks,
		DemandDivisor:           domain.DefaultDemandDivisor,
		MinStaffCoverage:        domain.DefaultMinStaffCoverage,
		MinShiftHours:           domain.DefaultMinShiftHours,
		MaxShiftHours:           domain.DefaultMaxShiftHours,
		DefaultMaxWeeklyHours:   domain.DefaultMaxWeeklyHours,
		AllowSplitShifts:        false,
		PeakDemandPerHour:       domain.DefaultPeakDemandPerHour,
		OverUtilizationPct:      110,
		UnderUtilizationPct:     90,
		LowUtilizationPct:       70,
		SuggestionHourThreshold: 4,
	}
}

// Validate проверяет согласованность параметров
func (p Params) Validate() error {
	if p.HistoricalWeeks < 1 {
		return fmt.Errorf("%w: historical weeks must be at least 1", ErrInvalidParams)
	}
	if p.DemandDivisor < 1 {
		return fmt.Errorf("%w: demand divisor must be at least 1", ErrInvalidParams)
	}
	if p.MinStaffCoverage < 0 {
		return fmt.Errorf("%w: min staff coverage must be non-negative", ErrInvalidParams)
	}
	if p.MinShiftHours < 1 || p.MaxShiftHours < p.MinShiftHours {
		return fmt.Errorf("%w: shift hour bounds must satisfy 1 <= min <= max", ErrInvalidParams)
	}
	if p.DefaultMaxWeeklyHours < p.MinShiftHours {
		return fmt.Errorf("%w: default weekly hours must fit at least one shift", ErrInvalidParams)
	}
	if p.PeakDemandPerHour < 0 {
		return fmt.Errorf("%w: peak demand threshold must be non-negative", ErrInvalidParams)
	}
	if p.OverUtilizationPct <= p.UnderUtilizationPct {
		return fmt.Errorf("%w: over-utilization bound must exceed under-utilization bound", ErrInvalidParams)
	}
	if p.SuggestionHourThreshold < 1 {
		return fmt.Errorf("%w: suggestion threshold must be at least 1", ErrInvalidParams)
	}
	return nil
}
