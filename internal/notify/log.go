package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/example/vocabreview/pkg/models"
)

// LogNotifier writes reminders to the log. Used when no bot token is configured.
type LogNotifier struct {
	log logrus.FieldLogger
}

func NewLogNotifier(log logrus.FieldLogger) *LogNotifier {
	return &LogNotifier{log: log.WithField("component", "notifier")}
}

func (n *LogNotifier) SendReminder(_ context.Context, learner models.Learner, dueCount int) error {
	n.log.WithFields(logrus.Fields{
		"user_id": learner.UserID,
		"due":     dueCount,
	}).Info(ReminderText(dueCount))
	return nil
}
