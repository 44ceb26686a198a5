package catalogservice

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// TimeWindow одно окно работы в течение дня
type TimeWindow struct {
	OpenTime  string `json:"open_time"`  // HH:MM
	CloseTime string `json:"close_time"` // HH:MM
}

// DaySchedule расписание на один день недели
// День может содержать несколько окон (раздельный график)
type DaySchedule struct {
	IsOpen  bool         `json:"is_open"`
	Windows []TimeWindow `json:"windows"`
}

// WeekSchedule расписание на неделю
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// ForWeekday returns the schedule for one day of week.
func (s *WeekSchedule) ForWeekday(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return s.Monday
	case time.Tuesday:
		return s.Tuesday
	case time.Wednesday:
		return s.Wednesday
	case time.Thursday:
		return s.Thursday
	case time.Friday:
		return s.Friday
	case time.Saturday:
		return s.Saturday
	case time.Sunday:
		return s.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// WindowsForDate projects the schedule onto a calendar date as absolute
// intervals. Malformed windows are skipped.
func (s *WeekSchedule) WindowsForDate(date time.Time) []domain.TimeInterval {
	day := s.ForWeekday(date.Weekday())
	if !day.IsOpen {
		return []domain.TimeInterval{}
	}

	result := make([]domain.TimeInterval, 0, len(day.Windows))
	for _, w := range day.Windows {
		open, err := types.NewTimeStringFromString(w.OpenTime)
		if err != nil {
			continue
		}
		closeAt, err := types.NewTimeStringFromString(w.CloseTime)
		if err != nil {
			continue
		}
		ww := domain.WorkingWindow{Weekday: date.Weekday(), Open: open, Close: closeAt}
		if iv, ok := ww.Interval(date); ok {
			result = append(result, iv)
		}
	}
	return result
}

// Shop модель магазина из CatalogService
type Shop struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	WorkingHours WeekSchedule `json:"working_hours"`
}

// Service модель услуги из CatalogService
type Service struct {
	ID                     int64   `json:"id"`
	ShopID                 int64   `json:"shop_id"`
	Name                   string  `json:"name"`
	DurationMinutes        int     `json:"duration_minutes"`
	BufferBeforeMinutes    int     `json:"buffer_before_minutes"`
	BufferAfterMinutes     int     `json:"buffer_after_minutes"`
	SlotGranularityMinutes int     `json:"slot_granularity_minutes"`
	QualifiedSpecialistIDs []int64 `json:"qualified_specialist_ids"`
	RequiredSkillIDs       []int64 `json:"required_skill_ids"`

	// Availability если задано — услуга доступна только в эти окна;
	// nil — услуга наследует часы работы магазина
	Availability *WeekSchedule `json:"availability,omitempty"`
}

// IsSpecialistQualified reports whether the specialist may perform the service.
func (s *Service) IsSpecialistQualified(specialistID int64) bool {
	for _, id := range s.QualifiedSpecialistIDs {
		if id == specialistID {
			return true
		}
	}
	return false
}

// SpecialistSkill навык мастера с уровнем владения
type SpecialistSkill struct {
	SkillID     int64 `json:"skill_id"`
	Proficiency int   `json:"proficiency"` // 1..5
}

// Specialist модель мастера из CatalogService
type Specialist struct {
	ID           int64             `json:"id"`
	ShopID       int64             `json:"shop_id"`
	Name         string            `json:"name"`
	Active       bool              `json:"active"`
	WorkingHours WeekSchedule      `json:"working_hours"`
	Skills       []SpecialistSkill `json:"skills"`

	// Roster preferences, consumed by the shift scheduler.
	MaxWeeklyHours int            `json:"max_weekly_hours"`
	PreferredHours []int          `json:"preferred_hours,omitempty"`
	DaysOff        []time.Weekday `json:"days_off,omitempty"`
}

// Proficiency returns the specialist's level for a skill, or 0 when the
// skill is absent.
func (sp *Specialist) Proficiency(skillID int64) int {
	for _, s := range sp.Skills {
		if s.SkillID == skillID {
			return s.Proficiency
		}
	}
	return 0
}

// HasAllSkills reports whether the specialist holds every required skill.
func (sp *Specialist) HasAllSkills(skillIDs []int64) bool {
	for _, id := range skillIDs {
		if sp.Proficiency(id) == 0 {
			return false
		}
	}
	return true
}

// IsDayOff reports whether the weekday is one of the specialist's declared
// days off.
func (sp *Specialist) IsDayOff(weekday time.Weekday) bool {
	for _, d := range sp.DaysOff {
		if d == weekday {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
