package reserve_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	reserveBooking "github.com/m04kA/SMC-SchedulingService/internal/usecase/reserve_booking"
)

// ReserveBookingRequest HTTP request model
type ReserveBookingRequest struct {
	ShopID       int64   `json:"shopId"`
	ServiceID    int64   `json:"serviceId"`
	SpecialistID int64   `json:"specialistId"`
	CustomerID   int64   `json:"customerId"`
	StartTime    string  `json:"startTime"` // RFC3339
	Notes        *string `json:"notes,omitempty"`
}

// ReserveBookingResponse HTTP response model
type ReserveBookingResponse struct {
	ID              int64   `json:"id"`
	ShopID          int64   `json:"shopId"`
	ServiceID       int64   `json:"serviceId"`
	SpecialistID    int64   `json:"specialistId"`
	CustomerID      int64   `json:"customerId"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	BufferBefore    int     `json:"bufferBefore"`
	BufferAfter     int     `json:"bufferAfter"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest создает запрос use case
func (r *ReserveBookingRequest) ToUseCaseRequest() (*reserveBooking.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &reserveBooking.Request{
		ShopID:       r.ShopID,
		ServiceID:    r.ServiceID,
		SpecialistID: r.SpecialistID,
		CustomerID:   r.CustomerID,
		StartTime:    startTime,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveBooking.Response) *ReserveBookingResponse {
	return &ReserveBookingResponse{
		ID:              resp.ID,
		ShopID:          resp.ShopID,
		ServiceID:       resp.ServiceID,
		SpecialistID:    resp.SpecialistID,
		CustomerID:      resp.CustomerID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		BufferBefore:    resp.BufferBefore,
		BufferAfter:     resp.BufferAfter,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
