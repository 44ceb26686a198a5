package build_roster

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	buildRoster "github.com/m04kA/SMC-SchedulingService/internal/usecase/build_roster"
)

// BuildRosterRequest HTTP request model
type BuildRosterRequest struct {
	StartDate string `json:"startDate"` // YYYY-MM-DD
	Days      int    `json:"days"`
	DryRun    bool   `json:"dryRun"`
}

// ShiftAssignment часы одного мастера на одну дату
type ShiftAssignment struct {
	StaffID int64  `json:"staffId"`
	Date    string `json:"date"`
	Hours   []int  `json:"hours"`
}

// CoverageRequirement требуемое покрытие одного открытого часа
type CoverageRequirement struct {
	Date     string `json:"date"`
	Hour     int    `json:"hour"`
	Required int    `json:"required"`
}

// Warning предупреждение о дефекте построенного расписания
type Warning struct {
	Type    string `json:"type"`
	Date    string `json:"date,omitempty"`
	Hour    *int   `json:"hour,omitempty"`
	StaffID *int64 `json:"staffId,omitempty"`
	Message string `json:"message"`
}

// StaffUtilization загрузка одного мастера за горизонт
type StaffUtilization struct {
	StaffID        int64   `json:"staffId"`
	AssignedHours  int     `json:"assignedHours"`
	MaxWeeklyHours int     `json:"maxWeeklyHours"`
	UtilizationPct float64 `json:"utilizationPct"`
}

// Stats итоговые метрики построенного расписания
type Stats struct {
	TotalRequiredHours  int                `json:"totalRequiredHours"`
	TotalAssignedHours  int                `json:"totalAssignedHours"`
	CoveragePct         float64            `json:"coveragePct"`
	PeakCoveragePct     float64            `json:"peakCoveragePct"`
	StaffUtilization    []StaffUtilization `json:"staffUtilization"`
	AvgUtilizationHours float64            `json:"avgUtilizationHours"`
}

// BuildRosterResponse HTTP response model
type BuildRosterResponse struct {
	RosterID       int64                      `json:"rosterId,omitempty"`
	Schedule       []ShiftAssignment          `json:"schedule"`
	DemandForecast map[string]map[int]float64 `json:"demandForecast"`
	Coverage       []CoverageRequirement      `json:"coverage"`
	Stats          Stats                      `json:"stats"`
	Warnings       []Warning                  `json:"warnings"`
	Suggestions    []string                   `json:"suggestions"`
}

// ToUseCaseRequest создает запрос use case
func (r *BuildRosterRequest) ToUseCaseRequest(shopID int64) (*buildRoster.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	return &buildRoster.Request{
		ShopID:    shopID,
		StartDate: startDate,
		Days:      r.Days,
		DryRun:    r.DryRun,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *buildRoster.Response) *BuildRosterResponse {
	schedule := make([]ShiftAssignment, len(resp.Schedule))
	for i, a := range resp.Schedule {
		schedule[i] = ShiftAssignment{
			StaffID: a.StaffID,
			Date:    a.Date.String(),
			Hours:   a.Hours,
		}
	}

	coverage := make([]CoverageRequirement, len(resp.Coverage))
	for i, c := range resp.Coverage {
		coverage[i] = CoverageRequirement{
			Date:     c.Date.String(),
			Hour:     c.Hour,
			Required: c.Required,
		}
	}

	warnings := make([]Warning, len(resp.Warnings))
	for i, w := range resp.Warnings {
		warnings[i] = Warning{
			Type:    w.Type,
			Date:    w.Date,
			Hour:    w.Hour,
			StaffID: w.StaffID,
			Message: w.Message,
		}
	}

	utilization := make([]StaffUtilization, len(resp.Stats.StaffUtilization))
	for i, u := range resp.Stats.StaffUtilization {
		utilization[i] = StaffUtilization{
			StaffID:        u.StaffID,
			AssignedHours:  u.AssignedHours,
			MaxWeeklyHours: u.MaxWeeklyHours,
			UtilizationPct: u.UtilizationPct,
		}
	}

	suggestions := resp.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}

	return &BuildRosterResponse{
		RosterID:       resp.RosterID,
		Schedule:       schedule,
		DemandForecast: resp.DemandForecast,
		Coverage:       coverage,
		Stats: Stats{
			TotalRequiredHours:  resp.Stats.TotalRequiredHours,
			TotalAssignedHours:  resp.Stats.TotalAssignedHours,
			CoveragePct:         resp.Stats.CoveragePct,
			PeakCoveragePct:     resp.Stats.PeakCoveragePct,
			StaffUtilization:    utilization,
			AvgUtilizationHours: resp.Stats.AvgUtilizationHours,
		},
		Warnings:    warnings,
		Suggestions: suggestions,
	}
}
