package scoring

import "github.com/m04kA/SMC-SchedulingService/internal/domain"

// Candidate кандидат на выполнение услуги
type Candidate struct {
	SpecialistID int64
	Skills       map[int64]int // skill_id -> proficiency 1..5
}

// PerformanceInput агрегат истории мастера за трейлинг-окно (90 дней)
type PerformanceInput struct {
	AvgRating          float64 // 0..5
	AvgExpectedMinutes float64
	AvgActualMinutes   float64
	Samples            int
}

// Inputs request-scoped агрегаты, собранные вызывающим usecase из истории.
// Ядро скоринга их не персистит. Отсутствие мастера в любой из карт означает
// отсутствие данных по нему.
type Inputs struct {
	RequiredSkillIDs []int64
	BookingCounts    map[int64]int // активные бронирования на целевую дату
	Preferences      map[int64]domain.CustomerPreference
	WaitAverages     map[int64]float64 // средний сдвиг начала, минуты
	Performance      map[int64]PerformanceInput
}

// SubScores пять независимых компонент оценки, каждая в [0,1]
type SubScores struct {
	Workload    float64 `json:"workload"`
	SkillMatch  float64 `json:"skill_match"`
	Preference  float64 `json:"preference"`
	WaitTime    float64 `json:"wait_time"`
	Performance float64 `json:"performance"`
}

// Result итоговая оценка мастера
type Result struct {
	SpecialistID int64     `json:"specialist_id"`
	SubScores    SubScores `json:"sub_scores"`
	Total        float64   `json:"total"`
}
