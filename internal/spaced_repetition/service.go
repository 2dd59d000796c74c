package spaced_repetition

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/example/vocabreview/pkg/models"
)

// RecordStore is the external owner of review records
type RecordStore interface {
	// FetchRecords returns all memorized records of a learner
	FetchRecords(ctx context.Context, userID string) ([]models.ReviewRecord, error)
	// UpsertRecord writes fields under key atomically
	UpsertRecord(ctx context.Context, key models.RecordKey, fields models.RecordFields) error
}

// ReviewOutcome is the result of recording one review
type ReviewOutcome struct {
	Record models.ReviewRecord
	Queues Queues
}

// Service builds review queues from the store and records reviews into it.
// It keeps no state between calls; two reviews of the same item must not run concurrently.
type Service struct {
	store RecordStore
	log   logrus.FieldLogger
}

// NewService creates a review service on top of a record store
func NewService(store RecordStore, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{store: store, log: log}
}

// Queues fetches the learner's records and derives the review queues at now
func (s *Service) Queues(ctx context.Context, userID string, now time.Time) (Queues, error) {
	records, err := s.store.FetchRecords(ctx, userID)
	if err != nil {
		return Queues{}, errors.Wrapf(err, "fetch review records for %s", userID)
	}
	return BuildQueues(memorizedOnly(records), now), nil
}

// DueCount fetches the learner's records and returns how many are due at now
func (s *Service) DueCount(ctx context.Context, userID string, now time.Time) (int, error) {
	q, err := s.Queues(ctx, userID, now)
	if err != nil {
		return 0, err
	}
	return DueCount(q), nil
}

// RecordReview schedules the record from a quality rating, persists it and
// returns the refreshed queues. Nothing is returned for the queues if the write fails.
func (s *Service) RecordReview(ctx context.Context, record models.ReviewRecord, quality QualityResponse, now time.Time) (ReviewOutcome, error) {
	updated, err := ApplyReview(record, quality, now)
	if err != nil {
		return ReviewOutcome{}, err
	}

	logger := s.log.WithFields(logrus.Fields{
		"user_id":     updated.UserID,
		"level":       updated.Level,
		"lesson_type": updated.LessonType,
		"item_id":     updated.ItemID,
	})

	if err := s.store.UpsertRecord(ctx, updated.Key(), updated.RecordFields); err != nil {
		logger.WithError(err).Warn("failed to persist review")
		return ReviewOutcome{}, &PersistenceError{Key: updated.Key(), Err: err}
	}

	logger.WithFields(logrus.Fields{
		"quality":        int(quality),
		"times_reviewed": updated.TimesReviewed,
		"interval_days":  *updated.IntervalDays,
		"ease_factor":    updated.EaseFactor,
	}).Debug("review recorded")

	queues, err := s.Queues(ctx, updated.UserID, now)
	if err != nil {
		return ReviewOutcome{Record: updated}, errors.Wrap(err, "refresh review queues")
	}
	return ReviewOutcome{Record: updated, Queues: queues}, nil
}

// ApplyReview validates the input and returns the record as it looks after the review.
// The input record is not modified.
func ApplyReview(record models.ReviewRecord, quality QualityResponse, now time.Time) (models.ReviewRecord, error) {
	if err := ValidateQuality(quality); err != nil {
		return models.ReviewRecord{}, err
	}

	interval := MinIntervalDays
	if record.IntervalDays != nil {
		interval = *record.IntervalDays
	}
	if err := ValidateState(record.EaseFactor, interval); err != nil {
		return models.ReviewRecord{}, err
	}
	if record.TimesReviewed < 0 {
		return models.ReviewRecord{}, &InvalidInputError{Field: "times_reviewed", Value: record.TimesReviewed}
	}

	repetitions := record.TimesReviewed
	next := ComputeNextState(quality, record.EaseFactor, interval, repetitions)

	reviewedAt := now
	nextInterval := next.IntervalDays

	updated := record
	updated.TimesReviewed = repetitions + 1
	updated.IsMemorized = quality.Passed()
	updated.LastReviewedAt = &reviewedAt
	updated.EaseFactor = next.EaseFactor
	updated.IntervalDays = &nextInterval
	updated.UpdatedAt = now
	return updated, nil
}
