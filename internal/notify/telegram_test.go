package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vocabreview/pkg/models"
)

type sentMessage struct {
	chatID string
	text   string
}

func newFakeTelegram(t *testing.T) (*httptest.Server, *[]sentMessage) {
	t.Helper()
	var mu sync.Mutex
	sent := make([]sentMessage, 0)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			io.WriteString(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Review","username":"review_bot"}}`)
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			require.NoError(t, r.ParseForm())
			mu.Lock()
			sent = append(sent, sentMessage{chatID: r.PostForm.Get("chat_id"), text: r.PostForm.Get("text")})
			mu.Unlock()
			io.WriteString(w, `{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`)
		default:
			io.WriteString(w, `{"ok":false,"error_code":404,"description":"Not Found"}`)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &sent
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestTelegramNotifier_SendReminder(t *testing.T) {
	srv, sent := newFakeTelegram(t)
	api, err := tgbotapi.NewBotAPIWithClient("test-token", srv.URL+"/bot%s/%s", srv.Client())
	require.NoError(t, err)

	n := newTelegramNotifier(api, quietLogger())
	err = n.SendReminder(context.Background(), models.Learner{UserID: "u1", TelegramChatID: 42}, 5)
	require.NoError(t, err)

	require.Len(t, *sent, 1)
	assert.Equal(t, "42", (*sent)[0].chatID)
	assert.Equal(t, ReminderText(5), (*sent)[0].text)
}

func TestTelegramNotifier_NoChat(t *testing.T) {
	srv, sent := newFakeTelegram(t)
	api, err := tgbotapi.NewBotAPIWithClient("test-token", srv.URL+"/bot%s/%s", srv.Client())
	require.NoError(t, err)

	n := newTelegramNotifier(api, quietLogger())
	err = n.SendReminder(context.Background(), models.Learner{UserID: "u1"}, 5)
	assert.ErrorIs(t, err, ErrNoChat)
	assert.Empty(t, *sent)
}

func TestReminderText(t *testing.T) {
	assert.Contains(t, ReminderText(1), "1 item due")
	assert.Contains(t, ReminderText(3), "3 items due")
}

func TestLogNotifier(t *testing.T) {
	n := NewLogNotifier(quietLogger())
	assert.NoError(t, n.SendReminder(context.Background(), models.Learner{UserID: "u1"}, 4))
}
