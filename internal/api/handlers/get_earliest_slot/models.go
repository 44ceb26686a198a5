package get_earliest_slot

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
)

// горизонт поиска по умолчанию, дней
const defaultDaysToCheck = 14

// EarliestSlotResponse HTTP response model.
// found=false — валидный ответ: в горизонте поиска слотов нет
type EarliestSlotResponse struct {
	Found        bool           `json:"found"`
	Date         string         `json:"date,omitempty"`
	Slot         *AvailableSlot `json:"slot,omitempty"`
	SpecialistID *int64         `json:"specialistId,omitempty"`
}

// AvailableSlot один доступный слот; границы без буферов
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.EarliestResponse) *EarliestSlotResponse {
	out := &EarliestSlotResponse{
		Found:        resp.Found,
		SpecialistID: resp.SpecialistID,
	}
	if resp.Found {
		out.Date = resp.Date.Format(domain.DateFormat)
	}
	if resp.Slot != nil {
		out.Slot = &AvailableSlot{
			StartTime: resp.Slot.Start.Format(time.RFC3339),
			EndTime:   resp.Slot.End.Format(time.RFC3339),
		}
	}
	return out
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(shopID, serviceID int64, startDateStr string, days int, specialistID *int64) (*getAvailableSlots.EarliestRequest, error) {
	startDate, err := time.Parse(domain.DateFormat, startDateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.EarliestRequest{
		ShopID:       shopID,
		ServiceID:    serviceID,
		StartDate:    startDate,
		DaysToCheck:  days,
		SpecialistID: specialistID,
	}, nil
}
