package spaced_repetition

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/example/vocabreview/pkg/models"
)

const (
	// UpcomingLimit caps the forecast shown to the learner
	UpcomingLimit = 10
	// MasteryThreshold is the review count after which an item counts as mastered
	MasteryThreshold = 5
	// ReminderThreshold is the due count that triggers a reminder
	ReminderThreshold = 3
)

// ScheduledItem is a record paired with its derived next review time
type ScheduledItem struct {
	Record       models.ReviewRecord
	NextReviewAt time.Time
}

// Queues are the views derived from one snapshot of a learner's records
type Queues struct {
	Due           []ScheduledItem
	Upcoming      []ScheduledItem
	MasteredCount int
}

// IntervalDays returns the record's interval, falling back to max(1, timesReviewed)
// for records that were never given one
func IntervalDays(r models.ReviewRecord) int {
	if r.IntervalDays != nil && *r.IntervalDays >= MinIntervalDays {
		return *r.IntervalDays
	}
	if r.TimesReviewed > MinIntervalDays {
		return r.TimesReviewed
	}
	return MinIntervalDays
}

// NextReviewAt returns when the record becomes due. Never-reviewed records are due at now.
func NextReviewAt(r models.ReviewRecord, now time.Time) time.Time {
	if r.LastReviewedAt == nil {
		return now
	}
	return r.LastReviewedAt.AddDate(0, 0, IntervalDays(r))
}

// IsDue reports whether the record is at or past its review time
func IsDue(r models.ReviewRecord, now time.Time) bool {
	return !NextReviewAt(r, now).After(now)
}

// IsMastered reports whether the record has been reviewed often enough to count as learned
func IsMastered(r models.ReviewRecord) bool {
	return r.TimesReviewed >= MasteryThreshold
}

// Partition splits records into due and upcoming items. Due items keep input order,
// upcoming items are sorted by next review time and are not truncated.
func Partition(records []models.ReviewRecord, now time.Time) (due, upcoming []ScheduledItem) {
	due = make([]ScheduledItem, 0, len(records))
	upcoming = make([]ScheduledItem, 0)

	for _, r := range records {
		item := ScheduledItem{Record: r, NextReviewAt: NextReviewAt(r, now)}
		if item.NextReviewAt.After(now) {
			upcoming = append(upcoming, item)
		} else {
			due = append(due, item)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].NextReviewAt.Before(upcoming[j].NextReviewAt)
	})
	return due, upcoming
}

// BuildQueues derives due items, the nearest upcoming items and the mastered count.
// records should only contain memorized items.
func BuildQueues(records []models.ReviewRecord, now time.Time) Queues {
	due, upcoming := Partition(records, now)
	if len(upcoming) > UpcomingLimit {
		upcoming = upcoming[:UpcomingLimit]
	}

	return Queues{
		Due:           due,
		Upcoming:      upcoming,
		MasteredCount: lo.CountBy(records, IsMastered),
	}
}

// DueCount returns the number of items due now
func DueCount(q Queues) int {
	return len(q.Due)
}

// NeedsReminder reports whether the due count reached the reminder threshold
func NeedsReminder(q Queues, threshold int) bool {
	if threshold < 1 {
		threshold = 1
	}
	return DueCount(q) >= threshold
}

// memorizedOnly drops records that are not in the schedulable set
func memorizedOnly(records []models.ReviewRecord) []models.ReviewRecord {
	return lo.Filter(records, func(r models.ReviewRecord, _ int) bool {
		return r.IsMemorized
	})
}
