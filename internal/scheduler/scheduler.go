package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/example/vocabreview/internal/spaced_repetition"
	"github.com/example/vocabreview/pkg/models"
)

// Default notification settings
const (
	DefaultCheckInterval         = time.Hour
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22
)

// Notifier sends a due-items reminder to a learner
type Notifier interface {
	SendReminder(ctx context.Context, learner models.Learner, dueCount int) error
}

// LearnerSource lists the learners who want reminders
type LearnerSource interface {
	ListReminderLearners(ctx context.Context) ([]models.Learner, error)
}

// DueCounter reports how many items a learner has due at a point in time
type DueCounter interface {
	DueCount(ctx context.Context, userID string, now time.Time) (int, error)
}

// Config controls when and how often reminders go out
type Config struct {
	Interval  time.Duration
	Threshold int
	StartHour int
	EndHour   int
	Location  *time.Location
}

// DefaultConfig returns the default reminder configuration
func DefaultConfig() Config {
	return Config{
		Interval:  DefaultCheckInterval,
		Threshold: spaced_repetition.ReminderThreshold,
		StartHour: DefaultNotificationStartHour,
		EndHour:   DefaultNotificationEndHour,
		Location:  time.UTC,
	}
}

// Scheduler periodically polls due counts and sends reminders
type Scheduler struct {
	scheduler *gocron.Scheduler
	learners  LearnerSource
	due       DueCounter
	notifier  Notifier
	cfg       Config
	log       logrus.FieldLogger
	now       func() time.Time
}

// New creates a new scheduler instance
func New(cfg Config, learners LearnerSource, due DueCounter, notifier Notifier, log logrus.FieldLogger) *Scheduler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultCheckInterval
	}
	if cfg.Threshold < 1 {
		cfg.Threshold = spaced_repetition.ReminderThreshold
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(cfg.Location),
		learners:  learners,
		due:       due,
		notifier:  notifier,
		cfg:       cfg,
		log:       log.WithField("component", "scheduler"),
		now:       time.Now,
	}
}

// Start begins running the reminder check in the background
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.cfg.Interval).Do(s.checkAndSendReminders)
	if err != nil {
		return errors.Wrap(err, "failed to schedule reminder check")
	}

	s.scheduler.StartAsync()
	s.log.WithField("interval", s.cfg.Interval).Info("reminder scheduler started")
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.log.Info("reminder scheduler stopped")
}

func (s *Scheduler) checkAndSendReminders() {
	if _, err := s.CheckReminders(context.Background()); err != nil {
		s.log.WithError(err).Error("reminder check failed")
	}
}

// InNotificationHours reports whether t falls inside the configured sending window
func (s *Scheduler) InNotificationHours(t time.Time) bool {
	hour := t.In(s.cfg.Location).Hour()
	if s.cfg.StartHour <= s.cfg.EndHour {
		return hour >= s.cfg.StartHour && hour <= s.cfg.EndHour
	}
	// window wraps past midnight
	return hour >= s.cfg.StartHour || hour <= s.cfg.EndHour
}

// CheckReminders sends a reminder to every learner whose due count reached the
// threshold. Failures for one learner are logged and do not stop the others.
// It returns the number of reminders sent.
func (s *Scheduler) CheckReminders(ctx context.Context) (int, error) {
	now := s.now()
	if !s.InNotificationHours(now) {
		s.log.WithFields(logrus.Fields{
			"hour":  now.In(s.cfg.Location).Hour(),
			"start": s.cfg.StartHour,
			"end":   s.cfg.EndHour,
		}).Debug("outside notification hours, skipping reminders")
		return 0, nil
	}

	learners, err := s.learners.ListReminderLearners(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get learners for notification")
	}

	sent := 0
	for _, learner := range learners {
		ok, err := s.remind(ctx, learner, now)
		if err != nil {
			s.log.WithError(err).WithField("user_id", learner.UserID).Warn("failed to remind learner")
			continue
		}
		if ok {
			sent++
		}
	}
	return sent, nil
}

// RunManualCheck checks a single learner right away, ignoring notification hours
func (s *Scheduler) RunManualCheck(ctx context.Context, learner models.Learner) (bool, error) {
	return s.remind(ctx, learner, s.now())
}

func (s *Scheduler) remind(ctx context.Context, learner models.Learner, now time.Time) (bool, error) {
	count, err := s.due.DueCount(ctx, learner.UserID, now)
	if err != nil {
		return false, errors.Wrap(err, "failed to count due items")
	}
	if count < s.cfg.Threshold {
		return false, nil
	}

	if err := s.notifier.SendReminder(ctx, learner, count); err != nil {
		return false, errors.Wrap(err, "failed to send reminder")
	}
	s.log.WithFields(logrus.Fields{"user_id": learner.UserID, "due": count}).Info("reminder sent")
	return true, nil
}
