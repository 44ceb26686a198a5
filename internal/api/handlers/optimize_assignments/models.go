package optimize_assignments

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	optimizeAssignments "github.com/m04kA/SMC-SchedulingService/internal/usecase/optimize_assignments"
)

// OptimizeAssignmentsRequest HTTP request model
type OptimizeAssignmentsRequest struct {
	Date              string `json:"date"` // YYYY-MM-DD
	RebalanceExisting bool   `json:"rebalanceExisting"`
}

// Reassignment одно переназначение
type Reassignment struct {
	BookingID        int64 `json:"bookingId"`
	FromSpecialistID int64 `json:"fromSpecialistId"`
	ToSpecialistID   int64 `json:"toSpecialistId"`
}

// OptimizeAssignmentsResponse HTTP response model
type OptimizeAssignmentsResponse struct {
	UpdatedCount         int            `json:"updatedCount"`
	WorkloadDistribution map[int64]int  `json:"workloadDistribution"`
	Reassignments        []Reassignment `json:"reassignments"`
}

// ToUseCaseRequest создает запрос use case
func (r *OptimizeAssignmentsRequest) ToUseCaseRequest(shopID int64) (*optimizeAssignments.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &optimizeAssignments.Request{
		ShopID:            shopID,
		Date:              date,
		RebalanceExisting: r.RebalanceExisting,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *optimizeAssignments.Response) *OptimizeAssignmentsResponse {
	reassignments := make([]Reassignment, len(resp.Reassignments))
	for i, r := range resp.Reassignments {
		reassignments[i] = Reassignment{
			BookingID:        r.BookingID,
			FromSpecialistID: r.FromSpecialistID,
			ToSpecialistID:   r.ToSpecialistID,
		}
	}

	return &OptimizeAssignmentsResponse{
		UpdatedCount:         resp.UpdatedCount,
		WorkloadDistribution: resp.WorkloadDistribution,
		Reassignments:        reassignments,
	}
}
