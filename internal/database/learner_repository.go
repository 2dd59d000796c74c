package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/example/vocabreview/pkg/models"
)

// LearnerRepository handles database operations for learners
type LearnerRepository struct {
	db *sqlx.DB
}

// NewLearnerRepository creates a new repository instance
func NewLearnerRepository(db *sqlx.DB) *LearnerRepository {
	return &LearnerRepository{db: db}
}

// Save creates the learner or updates their reminder settings
func (r *LearnerRepository) Save(ctx context.Context, learner *models.Learner) error {
	now := time.Now().UTC()
	query := r.db.Rebind(`
		INSERT INTO learners (user_id, telegram_chat_id, reminders_enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			telegram_chat_id = excluded.telegram_chat_id,
			reminders_enabled = excluded.reminders_enabled,
			updated_at = excluded.updated_at
	`)
	_, err := r.db.ExecContext(ctx, query,
		learner.UserID,
		learner.TelegramChatID,
		learner.RemindersEnabled,
		now,
		now,
	)
	if err != nil {
		return errors.Wrap(err, "failed to save learner")
	}
	learner.UpdatedAt = now
	return nil
}

// GetByID returns a learner by user id
func (r *LearnerRepository) GetByID(ctx context.Context, userID string) (*models.Learner, error) {
	var learner models.Learner
	err := r.db.GetContext(ctx, &learner, r.db.Rebind("SELECT * FROM learners WHERE user_id = ?"), userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get learner")
	}
	return &learner, nil
}

// ListReminderLearners returns learners who want due-item reminders
func (r *LearnerRepository) ListReminderLearners(ctx context.Context) ([]models.Learner, error) {
	learners := make([]models.Learner, 0)
	query := r.db.Rebind("SELECT * FROM learners WHERE reminders_enabled = ? ORDER BY user_id")
	if err := r.db.SelectContext(ctx, &learners, query, true); err != nil {
		return nil, errors.Wrap(err, "failed to list learners for reminders")
	}
	return learners, nil
}
