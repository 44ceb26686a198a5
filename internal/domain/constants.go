package domain

// Default configuration values
const (
	DefaultSlotGranularityMinutes = 30
	DefaultBufferMinutes          = 0
	DefaultCacheTTLMinutes        = 15

	DefaultHistoricalWeeks   = 4
	DefaultDemandDivisor     = 3
	DefaultMinStaffCoverage  = 1
	DefaultMinShiftHours     = 4
	DefaultMaxShiftHours     = 8
	DefaultMaxWeeklyHours    = 40
	DefaultPeakDemandPerHour = 3.0
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MinGranularityMinutes     = 1
	MaxGranularityMinutes     = 240
	MaxBufferMinutes          = 120
	MinProficiency            = 1
	MaxProficiency            = 5
	MinPreferenceRating       = 1
	MaxPreferenceRating       = 5

	// Wait times outside this range are treated as data noise by scoring.
	MinTrackedWaitMinutes = 0
	MaxTrackedWaitMinutes = 120

	WaitTimeWindowDays    = 30
	PerformanceWindowDays = 90
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, блокирующих время мастера.
// Используется при проверке конфликтов и генерации слотов.
var ActiveStatuses = []BookingStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusInProgress,
}

// InactiveStatuses список статусов, не влияющих на доступность.
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
