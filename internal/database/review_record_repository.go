package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/example/vocabreview/pkg/models"
)

// ErrRecordNotFound is returned when no row matches the requested key
var ErrRecordNotFound = errors.New("record not found")

// ReviewRecordRepository handles database operations for review records
type ReviewRecordRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewReviewRecordRepository creates a new repository instance
func NewReviewRecordRepository(db *sqlx.DB) *ReviewRecordRepository {
	return &ReviewRecordRepository{db: db, now: time.Now}
}

type recordRow struct {
	models.RecordKey
	models.RecordFields
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const upsertRecordQuery = `
	INSERT INTO review_records (
		user_id, level, lesson_type, item_id,
		is_memorized, times_reviewed, last_reviewed_at, ease_factor, interval_days,
		created_at, updated_at
	) VALUES (
		:user_id, :level, :lesson_type, :item_id,
		:is_memorized, :times_reviewed, :last_reviewed_at, :ease_factor, :interval_days,
		:created_at, :updated_at
	)
	ON CONFLICT (user_id, level, lesson_type, item_id) DO UPDATE SET
		is_memorized = excluded.is_memorized,
		times_reviewed = excluded.times_reviewed,
		last_reviewed_at = excluded.last_reviewed_at,
		ease_factor = excluded.ease_factor,
		interval_days = excluded.interval_days,
		updated_at = excluded.updated_at
`

// FetchRecords returns all memorized records of a user, oldest first
func (r *ReviewRecordRepository) FetchRecords(ctx context.Context, userID string) ([]models.ReviewRecord, error) {
	query := r.db.Rebind(`
		SELECT * FROM review_records
		WHERE user_id = ? AND is_memorized = ?
		ORDER BY created_at ASC, level ASC, lesson_type ASC, item_id ASC
	`)

	records := make([]models.ReviewRecord, 0)
	if err := r.db.SelectContext(ctx, &records, query, userID, true); err != nil {
		return nil, errors.Wrap(err, "failed to fetch review records")
	}
	return records, nil
}

// GetRecord returns a single record by key, memorized or not
func (r *ReviewRecordRepository) GetRecord(ctx context.Context, key models.RecordKey) (*models.ReviewRecord, error) {
	query := r.db.Rebind(`
		SELECT * FROM review_records
		WHERE user_id = ? AND level = ? AND lesson_type = ? AND item_id = ?
	`)

	var record models.ReviewRecord
	err := r.db.GetContext(ctx, &record, query, key.UserID, key.Level, key.LessonType, key.ItemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get review record")
	}
	return &record, nil
}

// UpsertRecord creates or replaces the scheduling fields of a record in one statement
func (r *ReviewRecordRepository) UpsertRecord(ctx context.Context, key models.RecordKey, fields models.RecordFields) error {
	now := r.now().UTC()
	fields.LastReviewedAt = utc(fields.LastReviewedAt)

	row := recordRow{RecordKey: key, RecordFields: fields, CreatedAt: now, UpdatedAt: now}
	if _, err := r.db.NamedExecContext(ctx, upsertRecordQuery, row); err != nil {
		return errors.Wrap(err, "failed to upsert review record")
	}
	return nil
}

// MarkMemorized adds an item to the learner's schedulable set. A new record starts
// unreviewed with the default ease; an existing record keeps its scheduling state.
// It reports whether a new record was created.
func (r *ReviewRecordRepository) MarkMemorized(ctx context.Context, key models.RecordKey, now time.Time) (bool, error) {
	now = now.UTC()

	insert := r.db.Rebind(`
		INSERT INTO review_records (
			user_id, level, lesson_type, item_id, is_memorized, times_reviewed, ease_factor,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, 0, 2.5, ?, ?)
		ON CONFLICT (user_id, level, lesson_type, item_id) DO NOTHING
	`)
	result, err := r.db.ExecContext(ctx, insert, key.UserID, key.Level, key.LessonType, key.ItemID, true, now, now)
	if err != nil {
		return false, errors.Wrap(err, "failed to create review record")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed to get rows affected")
	}
	if rows > 0 {
		return true, nil
	}

	update := r.db.Rebind(`
		UPDATE review_records SET is_memorized = ?, updated_at = ?
		WHERE user_id = ? AND level = ? AND lesson_type = ? AND item_id = ?
	`)
	if _, err := r.db.ExecContext(ctx, update, true, now, key.UserID, key.Level, key.LessonType, key.ItemID); err != nil {
		return false, errors.Wrap(err, "failed to mark review record memorized")
	}
	return false, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
