package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusScheduled  BookingStatus = "scheduled"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// Booking represents an appointment held by a specialist for a customer.
// StartTime/EndTime are absolute timestamps; EndTime excludes buffers.
type Booking struct {
	ID           int64
	ShopID       int64
	ServiceID    int64
	SpecialistID int64
	CustomerID   int64
	BookingDate  time.Time
	StartTime    time.Time
	EndTime      time.Time
	Status       BookingStatus

	// Denormalized from the service catalog at reservation time.
	ServiceName     string
	DurationMinutes int
	BufferBefore    int
	BufferAfter     int

	// Filled in by completion flows; consumed by scoring.
	ActualStart *time.Time
	ActualEnd   *time.Time
	Rating      *int // 1..5

	Notes *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking blocks its specialist's time.
// Only scheduled, confirmed and in-progress bookings count for conflicts.
func (b *Booking) IsActive() bool {
	return b.Status == StatusScheduled ||
		b.Status == StatusConfirmed ||
		b.Status == StatusInProgress
}

// CanBeReassigned returns true if a rebalancing run may move the booking
// to another specialist.
func (b *Booking) CanBeReassigned(includeConfirmed bool) bool {
	if b.Status == StatusScheduled {
		return true
	}
	return includeConfirmed && b.Status == StatusConfirmed
}

// Interval returns the booked appointment span, excluding buffers.
func (b *Booking) Interval() TimeInterval {
	return TimeInterval{Start: b.StartTime, End: b.EndTime}
}

// BufferedInterval returns the span the booking blocks on the specialist's
// calendar, with before/after buffers applied.
func (b *Booking) BufferedInterval() TimeInterval {
	return TimeInterval{
		Start: b.StartTime.Add(-time.Duration(b.BufferBefore) * time.Minute),
		End:   b.EndTime.Add(time.Duration(b.BufferAfter) * time.Minute),
	}
}

// WaitMinutes returns the delay between the scheduled and the actual start,
// or false when the booking carries no actual-start data.
func (b *Booking) WaitMinutes() (float64, bool) {
	if b.ActualStart == nil {
		return 0, false
	}
	return b.ActualStart.Sub(b.StartTime).Minutes(), true
}

// SpecialistBookingsFilter фильтр для выборки бронирований по мастеру и периоду
type SpecialistBookingsFilter struct {
	ShopID        int64
	SpecialistID  *int64     // nil — все мастера магазина
	StartDate     *time.Time // начало периода (включительно)
	EndDate       *time.Time // конец периода (включительно)
	Statuses      []BookingStatus
	ActiveOnly    bool
	ExcludeID     *int64 // исключить бронирование (для reschedule-in-place проверок)
}
