package optimize_assignments

import "time"

// Request модель запроса перебалансировки назначений за день
type Request struct {
	ShopID int64
	Date   time.Time

	// RebalanceExisting включает в проход подтверждённые бронирования;
	// иначе переназначаются только запланированные
	RebalanceExisting bool
}

// Reassignment одно переназначение, для отчёта
type Reassignment struct {
	BookingID        int64 `json:"booking_id"`
	FromSpecialistID int64 `json:"from_specialist_id"`
	ToSpecialistID   int64 `json:"to_specialist_id"`
}

// Response итог жадного однопроходного перераспределения
type Response struct {
	UpdatedCount int `json:"updated_count"`

	// WorkloadDistribution активные бронирования на мастера после прохода
	WorkloadDistribution map[int64]int `json:"workload_distribution"`

	Reassignments []Reassignment `json:"reassignments"`
}
