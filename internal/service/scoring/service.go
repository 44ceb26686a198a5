package scoring

import (
	"sort"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// Efficiency normalization bounds: an appointment finished in 1/1.5 of the
// expected time maps to the top of the scale, one that ran to 1/0.67 of it
// maps to the bottom.
const (
	efficiencyFloor = 0.67
	efficiencyCap   = 1.5
)

// Service вычисляет нормированную оценку [0,1] по каждому мастеру
// как взвешенную сумму пяти независимых компонент.
type Service struct {
	cfg Config
}

// NewService создает скоринг-сервис с провалидированной конфигурацией
func NewService(cfg Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{cfg: cfg}, nil
}

// Score оценивает кандидатов и возвращает результат, отсортированный
// по убыванию итоговой оценки; при равенстве — по возрастанию ID мастера
// (детерминированность выдачи).
func (s *Service) Score(candidates []Candidate, inputs Inputs) []Result {
	if len(candidates) == 0 {
		return []Result{}
	}

	workload := s.workloadScores(candidates, inputs.BookingCounts)
	waitTime := s.waitTimeScores(candidates, inputs.WaitAverages)

	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		sub := SubScores{
			Workload:    workload[c.SpecialistID],
			SkillMatch:  s.skillMatchScore(c, inputs.RequiredSkillIDs),
			Preference:  s.preferenceScore(c.SpecialistID, inputs.Preferences),
			WaitTime:    waitTime[c.SpecialistID],
			Performance: s.performanceScore(c.SpecialistID, inputs.Performance),
		}

		total := s.cfg.WorkloadWeight*sub.Workload +
			s.cfg.SkillWeight*sub.SkillMatch +
			s.cfg.PreferenceWeight*sub.Preference +
			s.cfg.WaitTimeWeight*sub.WaitTime +
			s.cfg.PerformanceWeight*sub.Performance

		results = append(results, Result{
			SpecialistID: c.SpecialistID,
			SubScores:    sub,
			Total:        clamp01(total),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Total != results[j].Total {
			return results[i].Total > results[j].Total
		}
		return results[i].SpecialistID < results[j].SpecialistID
	})

	return results
}

// workloadScores нормирует дневную загрузку min-max с инверсией:
// наименее загруженный мастер получает 1.0. При одинаковой загрузке
// (включая нулевую) все получают 1.0.
func (s *Service) workloadScores(candidates []Candidate, counts map[int64]int) map[int64]float64 {
	minCount, maxCount := 0, 0
	for i, c := range candidates {
		count := counts[c.SpecialistID]
		if i == 0 {
			minCount, maxCount = count, count
			continue
		}
		if count < minCount {
			minCount = count
		}
		if count > maxCount {
			maxCount = count
		}
	}

	scores := make(map[int64]float64, len(candidates))
	for _, c := range candidates {
		if maxCount == minCount {
			scores[c.SpecialistID] = 1.0
			continue
		}
		count := counts[c.SpecialistID]
		scores[c.SpecialistID] = 1.0 - float64(count-minCount)/float64(maxCount-minCount)
	}

	return scores
}

// skillMatchScore: половина веса за долю покрытых навыков, половина за
// уровень владения покрытыми. Без требуемых навыков — 1.0.
func (s *Service) skillMatchScore(c Candidate, requiredSkillIDs []int64) float64 {
	total := len(requiredSkillIDs)
	if total == 0 {
		return 1.0
	}

	covered := 0
	proficiencySum := 0
	for _, skillID := range requiredSkillIDs {
		prof := c.Skills[skillID]
		if prof > 0 {
			covered++
			proficiencySum += prof
		}
	}

	coverage := float64(covered) / float64(total)
	proficiency := float64(proficiencySum) / float64(total*domain.MaxProficiency)

	return clamp01(0.5*coverage + 0.5*proficiency)
}

// preferenceScore: 0.5 по умолчанию; явный рейтинг 1-5 замещает дефолт;
// отметки preferred/disliked сдвигают оценку на +0.2/-0.3.
func (s *Service) preferenceScore(specialistID int64, prefs map[int64]domain.CustomerPreference) float64 {
	pref, ok := prefs[specialistID]
	if !ok {
		return s.cfg.DefaultPreferenceScore
	}

	score := s.cfg.DefaultPreferenceScore
	if pref.Rating != nil {
		score = float64(*pref.Rating) / float64(domain.MaxPreferenceRating)
	}
	if pref.Preferred {
		score += 0.2
	}
	if pref.Disliked {
		score -= 0.3
	}

	return clamp01(score)
}

// waitTimeScores нормирует средние задержки min-max с инверсией.
// Мастера без данных получают NoDataScore; если данных нет ни у кого или
// все средние совпадают — все получают DegenerateWaitScore.
func (s *Service) waitTimeScores(candidates []Candidate, averages map[int64]float64) map[int64]float64 {
	var minAvg, maxAvg float64
	withData := 0
	for _, c := range candidates {
		avg, ok := averages[c.SpecialistID]
		if !ok {
			continue
		}
		if withData == 0 {
			minAvg, maxAvg = avg, avg
		} else {
			if avg < minAvg {
				minAvg = avg
			}
			if avg > maxAvg {
				maxAvg = avg
			}
		}
		withData++
	}

	scores := make(map[int64]float64, len(candidates))

	if withData == 0 || minAvg == maxAvg {
		for _, c := range candidates {
			scores[c.SpecialistID] = s.cfg.DegenerateWaitScore
		}
		return scores
	}

	for _, c := range candidates {
		avg, ok := averages[c.SpecialistID]
		if !ok {
			scores[c.SpecialistID] = s.cfg.NoDataScore
			continue
		}
		scores[c.SpecialistID] = 1.0 - (avg-minAvg)/(maxAvg-minAvg)
	}

	return scores
}

// performanceScore: половина веса за средний рейтинг, половина за
// эффективность (ожидаемая/фактическая длительность, cap 1.5),
// нормированную в [0, 0.5]. Без данных — NoDataScore.
func (s *Service) performanceScore(specialistID int64, performance map[int64]PerformanceInput) float64 {
	perf, ok := performance[specialistID]
	if !ok || perf.Samples == 0 || perf.AvgActualMinutes <= 0 {
		return s.cfg.NoDataScore
	}

	ratingPart := 0.5 * (perf.AvgRating / float64(domain.MaxPreferenceRating))

	efficiency := perf.AvgExpectedMinutes / perf.AvgActualMinutes
	if efficiency > efficiencyCap {
		efficiency = efficiencyCap
	}

	efficiencyPart := 0.5 * clamp01((efficiency-efficiencyFloor)/(efficiencyCap-efficiencyFloor))

	return clamp01(ratingPart + efficiencyPart)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
