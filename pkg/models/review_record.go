package models

import "time"

// RecordKey identifies one review record: a learner's item within a level and lesson type
type RecordKey struct {
	UserID     string `json:"user_id" db:"user_id"`
	Level      string `json:"level" db:"level"`
	LessonType string `json:"lesson_type" db:"lesson_type"`
	ItemID     string `json:"item_id" db:"item_id"` // letter, word or sentence
}

// RecordFields holds the scheduling state that is written on every review
type RecordFields struct {
	IsMemorized    bool       `json:"is_memorized" db:"is_memorized"`
	TimesReviewed  int        `json:"times_reviewed" db:"times_reviewed"`
	LastReviewedAt *time.Time `json:"last_reviewed_at" db:"last_reviewed_at"` // nil if never reviewed
	EaseFactor     float64    `json:"ease_factor" db:"ease_factor"`
	IntervalDays   *int       `json:"interval_days" db:"interval_days"` // nil until the first review
}

// ReviewRecord tracks a learner's spaced repetition state for a single item
type ReviewRecord struct {
	RecordKey
	RecordFields
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Key returns the composite identity of the record
func (r ReviewRecord) Key() RecordKey {
	return r.RecordKey
}
