package spaced_repetition

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeNextState(t *testing.T) {
	tests := []struct {
		name         string
		quality      QualityResponse
		easeFactor   float64
		interval     int
		repetitions  int
		wantInterval int
		wantEase     float64
	}{
		{"first success", QualityPerfect, 2.5, 1, 0, 1, 2.6},
		{"second success", QualityPerfect, 2.5, 1, 1, 3, 2.6},
		{"third success grows by ease", QualityPerfect, 2.5, 6, 3, 16, 2.6},
		{"hesitation keeps ease", QualityCorrectHesitation, 2.0, 10, 2, 20, 2.0},
		{"difficult success lowers ease", QualityCorrectDifficult, 2.5, 10, 4, 24, 2.36},
		{"familiar failure resets interval", QualityIncorrectFamiliar, 2.5, 30, 6, 1, 2.18},
		{"incorrect resets interval", QualityIncorrect, 2.5, 30, 6, 1, 1.96},
		{"blackout resets interval", QualityBlackout, 2.5, 30, 6, 1, 1.7},
		{"ease floor on blackout", QualityBlackout, 1.3, 5, 2, 1, 1.3},
		{"ease floor on difficult success", QualityCorrectDifficult, 1.35, 4, 3, 5, 1.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeNextState(tt.quality, tt.easeFactor, tt.interval, tt.repetitions)
			assert.Equal(t, tt.wantInterval, got.IntervalDays)
			assert.InDelta(t, tt.wantEase, got.EaseFactor, 1e-9)
		})
	}
}

func TestComputeNextState_EaseFloor(t *testing.T) {
	eases := []float64{1.3, 1.31, 1.5, 2.0, 2.5, 3.4}
	for q := QualityBlackout; q <= QualityPerfect; q++ {
		for _, ef := range eases {
			for reps := 0; reps < 4; reps++ {
				got := ComputeNextState(q, ef, 7, reps)
				assert.GreaterOrEqual(t, got.EaseFactor, MinEaseFactor, "q=%d ef=%v reps=%d", q, ef, reps)
				assert.GreaterOrEqual(t, got.IntervalDays, MinIntervalDays, "q=%d ef=%v reps=%d", q, ef, reps)
			}
		}
	}
}

func TestComputeNextState_FailureAlwaysResets(t *testing.T) {
	for q := QualityBlackout; q < QualityCorrectDifficult; q++ {
		for _, interval := range []int{1, 3, 12, 180} {
			for _, ef := range []float64{1.3, 2.5, 3.1} {
				got := ComputeNextState(q, ef, interval, 7)
				assert.Equal(t, 1, got.IntervalDays, "q=%d interval=%d ef=%v", q, interval, ef)
			}
		}
	}
}

func TestComputeNextState_GeometricGrowth(t *testing.T) {
	got := ComputeNextState(QualityCorrectHesitation, 2.0, 10, 2)
	assert.Equal(t, int(math.Round(10*got.EaseFactor)), got.IntervalDays)
}

func TestComputeNextState_Deterministic(t *testing.T) {
	a := ComputeNextState(QualityCorrectDifficult, 2.2, 9, 5)
	b := ComputeNextState(QualityCorrectDifficult, 2.2, 9, 5)
	assert.Equal(t, a, b)
}

func TestValidateQuality(t *testing.T) {
	for q := QualityBlackout; q <= QualityPerfect; q++ {
		assert.NoError(t, ValidateQuality(q))
	}

	for _, q := range []QualityResponse{-1, 6, 42} {
		err := ValidateQuality(q)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInput))

		var inputErr *InvalidInputError
		require.True(t, errors.As(err, &inputErr))
		assert.Equal(t, "quality", inputErr.Field)
	}
}

func TestValidateState(t *testing.T) {
	assert.NoError(t, ValidateState(1.3, 1))
	assert.NoError(t, ValidateState(2.5, 40))

	tests := []struct {
		ease     float64
		interval int
		field    string
	}{
		{1.29, 1, "ease_factor"},
		{0, 1, "ease_factor"},
		{math.NaN(), 1, "ease_factor"},
		{2.5, 0, "interval_days"},
		{2.5, -3, "interval_days"},
	}
	for _, tt := range tests {
		err := ValidateState(tt.ease, tt.interval)
		var inputErr *InvalidInputError
		require.True(t, errors.As(err, &inputErr), "ease=%v interval=%d", tt.ease, tt.interval)
		assert.Equal(t, tt.field, inputErr.Field)
	}
}

func TestQualityResponse_Passed(t *testing.T) {
	assert.False(t, QualityIncorrectFamiliar.Passed())
	assert.True(t, QualityCorrectDifficult.Passed())
	assert.True(t, QualityPerfect.Passed())
}
