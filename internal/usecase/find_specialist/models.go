package find_specialist

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/service/scoring"
)

// Request модель запроса подбора мастера на слот
type Request struct {
	ShopID    int64
	ServiceID int64
	StartTime time.Time // абсолютное время начала записи (без буферов)

	// CustomerID если задан — учитываются предпочтения клиента
	CustomerID *int64

	// RequiredSkillIDs явные требования к навыкам; пустой список —
	// требования берутся из описания услуги
	RequiredSkillIDs []int64
}

// RankedSpecialist мастер с итоговой оценкой и её компонентами
type RankedSpecialist struct {
	SpecialistID int64             `json:"specialist_id"`
	Name         string            `json:"name"`
	Score        float64           `json:"score"`
	SubScores    scoring.SubScores `json:"sub_scores"`
}

// Response лучший мастер плюс до двух запасных с компонентами оценки
type Response struct {
	Best   RankedSpecialist   `json:"best"`
	Ranked []RankedSpecialist `json:"ranked"` // топ-3, по убыванию оценки
}

// размер выдачи ранжированного списка
const rankedListSize = 3
