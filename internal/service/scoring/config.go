package scoring

import (
	"fmt"
	"math"
)

// Config задает веса и пороги скоринга мастеров.
// Передаётся из конфигурации сервиса — веса настраиваются per-tenant,
// а не зашиваются в код.
type Config struct {
	WorkloadWeight    float64
	SkillWeight       float64
	PreferenceWeight  float64
	WaitTimeWeight    float64
	PerformanceWeight float64

	// Defaults applied when a candidate carries no history.
	DefaultPreferenceScore float64
	NoDataScore            float64
	DegenerateWaitScore    float64
}

const weightSumTolerance = 1e-6

// DefaultConfig возвращает веса по умолчанию
func DefaultConfig() Config {
	return Config{
		WorkloadWeight:    0.30,
		SkillWeight:       0.25,
		PreferenceWeight:  0.20,
		WaitTimeWeight:    0.15,
		PerformanceWeight: 0.10,

		DefaultPreferenceScore: 0.5,
		NoDataScore:            0.6,
		DegenerateWaitScore:    0.7,
	}
}

// Validate проверяет, что веса неотрицательны и в сумме дают 1.0
func (c Config) Validate() error {
	weights := []float64{
		c.WorkloadWeight,
		c.SkillWeight,
		c.PreferenceWeight,
		c.WaitTimeWeight,
		c.PerformanceWeight,
	}

	sum := 0.0
	for _, w := range weights {
		if w < 0 {
			return fmt.Errorf("%w: negative weight %f", ErrInvalidConfig, w)
		}
		sum += w
	}

	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: weights must sum to 1.0, got %f", ErrInvalidConfig, sum)
	}

	for _, d := range []float64{c.DefaultPreferenceScore, c.NoDataScore, c.DegenerateWaitScore} {
		if d < 0 || d > 1 {
			return fmt.Errorf("%w: default score %f outside [0,1]", ErrInvalidConfig, d)
		}
	}

	return nil
}
