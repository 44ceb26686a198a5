package find_specialist

import (
	"time"

	findSpecialist "github.com/m04kA/SMC-SchedulingService/internal/usecase/find_specialist"
)

// FindSpecialistRequest HTTP request model
type FindSpecialistRequest struct {
	ServiceID        int64   `json:"serviceId"`
	StartTime        string  `json:"startTime"` // RFC3339
	CustomerID       *int64  `json:"customerId,omitempty"`
	RequiredSkillIDs []int64 `json:"requiredSkillIds,omitempty"`
}

// RankedSpecialist мастер с оценкой и её компонентами
type RankedSpecialist struct {
	SpecialistID int64     `json:"specialistId"`
	Name         string    `json:"name"`
	Score        float64   `json:"score"`
	SubScores    SubScores `json:"subScores"`
}

// SubScores компоненты итоговой оценки, до взвешивания
type SubScores struct {
	Workload    float64 `json:"workload"`
	SkillMatch  float64 `json:"skillMatch"`
	Preference  float64 `json:"preference"`
	WaitTime    float64 `json:"waitTime"`
	Performance float64 `json:"performance"`
}

// FindSpecialistResponse HTTP response model.
// found=false — валидный ответ: подходящих мастеров нет
type FindSpecialistResponse struct {
	Found  bool               `json:"found"`
	Best   *RankedSpecialist  `json:"best,omitempty"`
	Ranked []RankedSpecialist `json:"ranked"`
}

// ToUseCaseRequest создает запрос use case
func (r *FindSpecialistRequest) ToUseCaseRequest(shopID int64) (*findSpecialist.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	return &findSpecialist.Request{
		ShopID:           shopID,
		ServiceID:        r.ServiceID,
		StartTime:        startTime,
		CustomerID:       r.CustomerID,
		RequiredSkillIDs: r.RequiredSkillIDs,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findSpecialist.Response) *FindSpecialistResponse {
	ranked := make([]RankedSpecialist, len(resp.Ranked))
	for i, s := range resp.Ranked {
		ranked[i] = toRanked(s)
	}

	best := toRanked(resp.Best)
	return &FindSpecialistResponse{
		Found:  true,
		Best:   &best,
		Ranked: ranked,
	}
}

// EmptyResponse ответ при отсутствии подходящих мастеров
func EmptyResponse() *FindSpecialistResponse {
	return &FindSpecialistResponse{
		Found:  false,
		Ranked: []RankedSpecialist{},
	}
}

func toRanked(s findSpecialist.RankedSpecialist) RankedSpecialist {
	return RankedSpecialist{
		SpecialistID: s.SpecialistID,
		Name:         s.Name,
		Score:        s.Score,
		SubScores: SubScores{
			Workload:    s.SubScores.Workload,
			SkillMatch:  s.SubScores.SkillMatch,
			Preference:  s.SubScores.Preference,
			WaitTime:    s.SubScores.WaitTime,
			Performance: s.SubScores.Performance,
		},
	}
}
