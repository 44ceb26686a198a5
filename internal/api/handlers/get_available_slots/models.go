package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	ShopID          int64           `json:"shopId"`
	ServiceID       int64           `json:"serviceId"`
	SpecialistID    *int64          `json:"specialistId,omitempty"`
	DurationMinutes int             `json:"durationMinutes"`
	FromCache       bool            `json:"fromCache"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot один доступный слот; границы без буферов
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.Start.Format(time.RFC3339),
			EndTime:   slot.End.Format(time.RFC3339),
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ShopID:          resp.ShopID,
		ServiceID:       resp.ServiceID,
		SpecialistID:    resp.SpecialistID,
		DurationMinutes: resp.DurationMinutes,
		FromCache:       resp.FromCache,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(shopID, serviceID int64, dateStr string, specialistID *int64, duration, granularity *int) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ShopID:              shopID,
		ServiceID:           serviceID,
		Date:                date,
		SpecialistID:        specialistID,
		DurationOverride:    duration,
		GranularityOverride: granularity,
	}, nil
}
