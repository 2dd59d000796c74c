package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/example/vocabreview/pkg/models"
)

// ErrNoChat is returned for learners without a linked Telegram chat
var ErrNoChat = errors.New("learner has no telegram chat")

// TelegramNotifier delivers reminders as Telegram messages
type TelegramNotifier struct {
	api *tgbotapi.BotAPI
	log logrus.FieldLogger
}

// NewTelegramNotifier authorizes the bot token against the Telegram API
func NewTelegramNotifier(token string, log logrus.FieldLogger) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create telegram bot")
	}
	return newTelegramNotifier(api, log), nil
}

func newTelegramNotifier(api *tgbotapi.BotAPI, log logrus.FieldLogger) *TelegramNotifier {
	log = log.WithField("component", "telegram")
	log.WithField("bot", api.Self.UserName).Info("telegram notifier authorized")
	return &TelegramNotifier{api: api, log: log}
}

// SendReminder implements the scheduler.Notifier interface
func (n *TelegramNotifier) SendReminder(ctx context.Context, learner models.Learner, dueCount int) error {
	if learner.TelegramChatID == 0 {
		return ErrNoChat
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(learner.TelegramChatID, ReminderText(dueCount))
	if _, err := n.api.Send(msg); err != nil {
		return errors.Wrapf(err, "failed to send reminder to chat %d", learner.TelegramChatID)
	}
	return nil
}

// ReminderText builds the reminder message for a due count
func ReminderText(dueCount int) string {
	noun := "items"
	if dueCount == 1 {
		noun = "item"
	}
	return fmt.Sprintf("You have %d %s due for review. Open a review session to keep your streak going!", dueCount, noun)
}
