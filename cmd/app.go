package cmd

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/example/vocabreview/internal/config"
	"github.com/example/vocabreview/internal/database"
	"github.com/example/vocabreview/internal/logger"
	"github.com/example/vocabreview/internal/spaced_repetition"
	"github.com/example/vocabreview/pkg/models"
)

// app wires the components every command needs
type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	db       *sqlx.DB
	records  *database.ReviewRecordRepository
	learners *database.LearnerRepository
	reviews  *spaced_repetition.Service
}

func newApp(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.NewWithOutput(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := database.Connect(cfg.DatabaseConnection())
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	records := database.NewReviewRecordRepository(db)
	return &app{
		cfg:      cfg,
		log:      log,
		db:       db,
		records:  records,
		learners: database.NewLearnerRepository(db),
		reviews:  spaced_repetition.NewService(records, log),
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.log.WithError(err).Warn("failed to close database")
	}
}

// addKeyFlags registers the flags that identify a review record
func addKeyFlags(cmd *cobra.Command) {
	cmd.Flags().String("user", "", "learner id")
	cmd.Flags().String("level", "", "lesson level")
	cmd.Flags().String("lesson-type", "", "lesson type (letters, words, sentences)")
	cmd.Flags().String("item", "", "item id")
	for _, name := range []string{"user", "level", "lesson-type", "item"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

func keyFromFlags(cmd *cobra.Command) models.RecordKey {
	user, _ := cmd.Flags().GetString("user")
	level, _ := cmd.Flags().GetString("level")
	lessonType, _ := cmd.Flags().GetString("lesson-type")
	item, _ := cmd.Flags().GetString("item")
	return models.RecordKey{UserID: user, Level: level, LessonType: lessonType, ItemID: item}
}

// nowFromFlags reads --now as RFC3339, defaulting to the current time
func nowFromFlags(cmd *cobra.Command) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("now")
	if raw == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now: %w", err)
	}
	return t, nil
}
