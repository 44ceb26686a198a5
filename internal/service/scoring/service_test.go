package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/ptr"
)

func newService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(DefaultConfig())
	require.NoError(t, err)
	return svc
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.WorkloadWeight = 0.5
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	negative := DefaultConfig()
	negative.SkillWeight = -0.25
	assert.ErrorIs(t, negative.Validate(), ErrInvalidConfig)
}

func TestScore_AllSubScoresWithinUnitInterval(t *testing.T) {
	svc := newService(t)

	candidates := []Candidate{
		{SpecialistID: 1, Skills: map[int64]int{10: 5, 20: 3}},
		{SpecialistID: 2, Skills: map[int64]int{10: 1}},
		{SpecialistID: 3, Skills: nil},
	}
	inputs := Inputs{
		RequiredSkillIDs: []int64{10, 20},
		BookingCounts:    map[int64]int{1: 7, 2: 0, 3: 3},
		Preferences: map[int64]domain.CustomerPreference{
			1: {SpecialistID: 1, Rating: ptr.Ptr(5), Preferred: true},
			3: {SpecialistID: 3, Rating: ptr.Ptr(2), Disliked: true},
		},
		WaitAverages: map[int64]float64{1: 4.5, 2: 18.0},
		Performance: map[int64]PerformanceInput{
			1: {AvgRating: 4.8, AvgExpectedMinutes: 60, AvgActualMinutes: 45, Samples: 12},
			2: {AvgRating: 3.0, AvgExpectedMinutes: 60, AvgActualMinutes: 95, Samples: 4},
		},
	}

	results := svc.Score(candidates, inputs)
	require.Len(t, results, 3)

	for _, r := range results {
		for name, v := range map[string]float64{
			"workload":    r.SubScores.Workload,
			"skill":       r.SubScores.SkillMatch,
			"preference":  r.SubScores.Preference,
			"wait":        r.SubScores.WaitTime,
			"performance": r.SubScores.Performance,
			"total":       r.Total,
		} {
			assert.GreaterOrEqual(t, v, 0.0, "%s for specialist %d", name, r.SpecialistID)
			assert.LessOrEqual(t, v, 1.0, "%s for specialist %d", name, r.SpecialistID)
		}
	}
}

func TestScore_EqualWorkloadScoresOne(t *testing.T) {
	svc := newService(t)

	candidates := []Candidate{{SpecialistID: 1}, {SpecialistID: 2}, {SpecialistID: 3}}

	// All-zero counts.
	results := svc.Score(candidates, Inputs{})
	for _, r := range results {
		assert.Equal(t, 1.0, r.SubScores.Workload)
	}

	// Equal non-zero counts.
	results = svc.Score(candidates, Inputs{BookingCounts: map[int64]int{1: 4, 2: 4, 3: 4}})
	for _, r := range results {
		assert.Equal(t, 1.0, r.SubScores.Workload)
	}
}

func TestScore_WorkloadExtremes(t *testing.T) {
	svc := newService(t)

	candidates := []Candidate{{SpecialistID: 1}, {SpecialistID: 2}}
	inputs := Inputs{BookingCounts: map[int64]int{2: 6}} // specialist 1 has none

	results := svc.Score(candidates, inputs)
	require.Len(t, results, 2)

	byID := map[int64]Result{}
	for _, r := range results {
		byID[r.SpecialistID] = r
	}

	assert.Equal(t, 1.0, byID[1].SubScores.Workload)
	assert.Equal(t, 0.0, byID[2].SubScores.Workload)

	// With every other dimension at its default, the idle specialist wins by
	// at least the full workload weight.
	assert.Equal(t, int64(1), results[0].SpecialistID)
	assert.GreaterOrEqual(t, byID[1].Total-byID[2].Total, 0.30-1e-9)
}

func TestScore_SkillMatch(t *testing.T) {
	svc := newService(t)

	// No required skills: always 1.0.
	results := svc.Score([]Candidate{{SpecialistID: 1}}, Inputs{})
	assert.Equal(t, 1.0, results[0].SubScores.SkillMatch)

	// Full coverage at max proficiency: 1.0.
	full := svc.skillMatchScore(Candidate{Skills: map[int64]int{10: 5, 20: 5}}, []int64{10, 20})
	assert.InDelta(t, 1.0, full, 1e-9)

	// Half coverage at proficiency 5: 0.5*0.5 + 0.5*(5/10) = 0.5.
	half := svc.skillMatchScore(Candidate{Skills: map[int64]int{10: 5}}, []int64{10, 20})
	assert.InDelta(t, 0.5, half, 1e-9)

	// No coverage: 0.
	none := svc.skillMatchScore(Candidate{}, []int64{10})
	assert.Equal(t, 0.0, none)
}

func TestScore_Preference(t *testing.T) {
	svc := newService(t)

	assert.Equal(t, 0.5, svc.preferenceScore(1, nil))

	prefs := map[int64]domain.CustomerPreference{
		1: {SpecialistID: 1, Rating: ptr.Ptr(5)},
		2: {SpecialistID: 2, Rating: ptr.Ptr(5), Preferred: true}, // clamped at 1.0
		3: {SpecialistID: 3, Rating: ptr.Ptr(1), Disliked: true},  // 0.2 - 0.3 clamped at 0
		4: {SpecialistID: 4, Preferred: true},                     // 0.5 + 0.2
	}

	assert.InDelta(t, 1.0, svc.preferenceScore(1, prefs), 1e-9)
	assert.InDelta(t, 1.0, svc.preferenceScore(2, prefs), 1e-9)
	assert.InDelta(t, 0.0, svc.preferenceScore(3, prefs), 1e-9)
	assert.InDelta(t, 0.7, svc.preferenceScore(4, prefs), 1e-9)
}

func TestScore_WaitTimeDegenerateCases(t *testing.T) {
	svc := newService(t)
	candidates := []Candidate{{SpecialistID: 1}, {SpecialistID: 2}}

	// Nobody has data.
	scores := svc.waitTimeScores(candidates, nil)
	assert.Equal(t, 0.7, scores[1])
	assert.Equal(t, 0.7, scores[2])

	// Identical averages.
	scores = svc.waitTimeScores(candidates, map[int64]float64{1: 12, 2: 12})
	assert.Equal(t, 0.7, scores[1])
	assert.Equal(t, 0.7, scores[2])

	// Spread averages plus one candidate without data.
	three := []Candidate{{SpecialistID: 1}, {SpecialistID: 2}, {SpecialistID: 3}}
	scores = svc.waitTimeScores(three, map[int64]float64{1: 5, 2: 25})
	assert.Equal(t, 1.0, scores[1])
	assert.Equal(t, 0.0, scores[2])
	assert.Equal(t, 0.6, scores[3])
}

func TestScore_Performance(t *testing.T) {
	svc := newService(t)

	// No data defaults.
	assert.Equal(t, 0.6, svc.performanceScore(1, nil))
	assert.Equal(t, 0.6, svc.performanceScore(1, map[int64]PerformanceInput{1: {Samples: 0}}))

	// Perfect rating, fast worker: rating part 0.5, efficiency capped at 1.5.
	top := svc.performanceScore(1, map[int64]PerformanceInput{
		1: {AvgRating: 5, AvgExpectedMinutes: 90, AvgActualMinutes: 45, Samples: 10},
	})
	assert.InDelta(t, 1.0, top, 1e-9)

	// Slow worker: efficiency below floor contributes nothing.
	slow := svc.performanceScore(1, map[int64]PerformanceInput{
		1: {AvgRating: 5, AvgExpectedMinutes: 30, AvgActualMinutes: 90, Samples: 10},
	})
	assert.InDelta(t, 0.5, slow, 1e-9)
}

func TestScore_DeterministicTieBreak(t *testing.T) {
	svc := newService(t)

	candidates := []Candidate{{SpecialistID: 9}, {SpecialistID: 2}, {SpecialistID: 5}}
	results := svc.Score(candidates, Inputs{})

	require.Len(t, results, 3)
	assert.Equal(t, int64(2), results[0].SpecialistID)
	assert.Equal(t, int64(5), results[1].SpecialistID)
	assert.Equal(t, int64(9), results[2].SpecialistID)
}
