package check_conflict

import (
	"fmt"
	"time"

	checkConflict "github.com/m04kA/SMC-SchedulingService/internal/usecase/check_conflict"
)

// CheckConflictRequest HTTP request model. Либо одиночная проверка
// (specialistId/start/end на верхнем уровне), либо пакетная (items)
type CheckConflictRequest struct {
	ShopID int64 `json:"shopId"`

	SpecialistID     *int64 `json:"specialistId,omitempty"`
	Start            string `json:"start,omitempty"` // RFC3339
	End              string `json:"end,omitempty"`   // RFC3339
	ExcludeBookingID *int64 `json:"excludeBookingId,omitempty"`

	Items []CheckConflictItem `json:"items,omitempty"`
}

// CheckConflictItem один кандидат пакетной проверки
type CheckConflictItem struct {
	SpecialistID     int64  `json:"specialistId"`
	Start            string `json:"start"` // RFC3339
	End              string `json:"end"`   // RFC3339
	ExcludeBookingID *int64 `json:"excludeBookingId,omitempty"`
}

// IsBatch пакетный ли это запрос
func (r *CheckConflictRequest) IsBatch() bool {
	return len(r.Items) > 0
}

// ConflictResult результат проверки одного кандидата
type ConflictResult struct {
	HasConflict           bool    `json:"hasConflict"`
	ConflictingBookingIDs []int64 `json:"conflictingBookingIds"`
}

// BatchConflictResponse результаты пакетной проверки в порядке входа
type BatchConflictResponse struct {
	Results []ConflictResult `json:"results"`
}

// ToUseCaseRequest создает одиночный запрос use case
func (r *CheckConflictRequest) ToUseCaseRequest() (*checkConflict.Request, error) {
	if r.SpecialistID == nil {
		return nil, fmt.Errorf("specialistId is required")
	}
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.RFC3339, r.End)
	if err != nil {
		return nil, err
	}

	return &checkConflict.Request{
		ShopID:           r.ShopID,
		SpecialistID:     *r.SpecialistID,
		Start:            start,
		End:              end,
		ExcludeBookingID: r.ExcludeBookingID,
	}, nil
}

// ToUseCaseBatchRequest создает пакетный запрос use case
func (r *CheckConflictRequest) ToUseCaseBatchRequest() (*checkConflict.BatchRequest, error) {
	items := make([]checkConflict.BatchItem, len(r.Items))
	for i, item := range r.Items {
		start, err := time.Parse(time.RFC3339, item.Start)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		end, err := time.Parse(time.RFC3339, item.End)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items[i] = checkConflict.BatchItem{
			SpecialistID:     item.SpecialistID,
			Start:            start,
			End:              end,
			ExcludeBookingID: item.ExcludeBookingID,
		}
	}

	return &checkConflict.BatchRequest{
		ShopID: r.ShopID,
		Items:  items,
	}, nil
}

// FromUseCaseResponse конвертирует ответ одиночной проверки
func FromUseCaseResponse(resp *checkConflict.Response) ConflictResult {
	ids := resp.ConflictingBookingIDs
	if ids == nil {
		ids = []int64{}
	}
	return ConflictResult{
		HasConflict:           resp.HasConflict,
		ConflictingBookingIDs: ids,
	}
}

// FromUseCaseBatchResponse конвертирует ответ пакетной проверки
func FromUseCaseBatchResponse(resp *checkConflict.BatchResponse) *BatchConflictResponse {
	results := make([]ConflictResult, len(resp.Results))
	for i, r := range resp.Results {
		results[i] = FromUseCaseResponse(&r)
	}
	return &BatchConflictResponse{Results: results}
}
