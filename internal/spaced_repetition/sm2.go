package spaced_repetition

import (
	"math"
)

const (
	// MinEaseFactor is the floor applied after every ease factor update
	MinEaseFactor = 1.3
	// DefaultEaseFactor is the ease of an item that has never been reviewed
	DefaultEaseFactor = 2.5
	// MinIntervalDays is the shortest spacing between two reviews
	MinIntervalDays = 1
	// SecondSuccessIntervalDays is used after the second successful recall in a row
	SecondSuccessIntervalDays = 3
)

// QualityResponse represents the quality of response in SM-2
type QualityResponse int

const (
	// Complete blackout, unable to recall
	QualityBlackout QualityResponse = 0
	// Incorrect response but remembered upon seeing the correct answer
	QualityIncorrect QualityResponse = 1
	// Incorrect response but the correct answer felt familiar
	QualityIncorrectFamiliar QualityResponse = 2
	// Correct response but required significant effort
	QualityCorrectDifficult QualityResponse = 3
	// Correct response after some hesitation
	QualityCorrectHesitation QualityResponse = 4
	// Perfect response with no hesitation
	QualityPerfect QualityResponse = 5
)

// Passed reports whether the rating counts as a successful recall
func (q QualityResponse) Passed() bool {
	return q >= QualityCorrectDifficult
}

// Valid reports whether the rating is within [0, 5]
func (q QualityResponse) Valid() bool {
	return q >= QualityBlackout && q <= QualityPerfect
}

// NextState is the scheduling state produced by a single review
type NextState struct {
	IntervalDays int
	EaseFactor   float64
}

// ComputeNextState applies the simplified SM-2 update.
// quality must be in [0, 5]; callers validate it with ValidateQuality first.
// repetitions is the number of review cycles completed before this one.
func ComputeNextState(quality QualityResponse, currentEaseFactor float64, currentIntervalDays, repetitions int) NextState {
	q := float64(quality)
	newEF := currentEaseFactor + (0.1 - (5.0-q)*(0.08+(5.0-q)*0.02))
	if newEF < MinEaseFactor {
		newEF = MinEaseFactor
	}

	if !quality.Passed() {
		// A failed recall starts the spacing over
		return NextState{IntervalDays: MinIntervalDays, EaseFactor: newEF}
	}

	var nextInterval int
	switch repetitions {
	case 0:
		nextInterval = MinIntervalDays
	case 1:
		nextInterval = SecondSuccessIntervalDays
	default:
		nextInterval = int(math.Round(float64(currentIntervalDays) * newEF))
	}
	if nextInterval < MinIntervalDays {
		nextInterval = MinIntervalDays
	}

	return NextState{IntervalDays: nextInterval, EaseFactor: newEF}
}

// ValidateQuality rejects ratings outside [0, 5]
func ValidateQuality(quality QualityResponse) error {
	if !quality.Valid() {
		return &InvalidInputError{Field: "quality", Value: int(quality)}
	}
	return nil
}

// ValidateState rejects a scheduling state that breaks the ease factor or interval invariants
func ValidateState(easeFactor float64, intervalDays int) error {
	if math.IsNaN(easeFactor) || easeFactor < MinEaseFactor {
		return &InvalidInputError{Field: "ease_factor", Value: easeFactor}
	}
	if intervalDays < MinIntervalDays {
		return &InvalidInputError{Field: "interval_days", Value: intervalDays}
	}
	return nil
}
