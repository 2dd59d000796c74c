package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func setupWorkspace(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("DATABASE_DRIVER", "sqlite3")
	t.Setenv("DATABASE_DSN", filepath.Join(dir, "data", "review.db"))
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
}

func TestCLI_MemorizeQueueReview(t *testing.T) {
	setupWorkspace(t)
	key := []string{"--user", "u1", "--level", "1", "--lesson-type", "letters", "--item", "alif"}

	out, err := run(t, append([]string{"memorize", "--now", "2025-03-10T09:00:00Z"}, key...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "memorized alif")

	out, err = run(t, "queue", "--user", "u1", "--now", "2025-03-10T10:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "due: 1")
	assert.Contains(t, out, "1/letters/alif")

	out, err = run(t, append([]string{"review", "--quality", "5", "--now", "2025-03-10T10:00:00Z"}, key...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "times=1 interval=1d ease=2.60 memorized=true next=2025-03-11")
	assert.Contains(t, out, "due: 0")
	assert.Contains(t, out, "upcoming: 1")

	out, err = run(t, "queue", "--user", "u1", "--now", "2025-03-11T10:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "due: 1")
}

func TestCLI_ReviewRejectsBadQuality(t *testing.T) {
	setupWorkspace(t)
	_, err := run(t, "review", "--quality", "7", "--user", "u1", "--level", "1", "--lesson-type", "letters", "--item", "alif")
	assert.Error(t, err)
}

func TestCLI_ReviewUnknownItem(t *testing.T) {
	setupWorkspace(t)
	_, err := run(t, "review", "--quality", "4", "--user", "u1", "--level", "1", "--lesson-type", "letters", "--item", "zay")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not memorized")
}

func TestCLI_ServeOnceWithLogNotifier(t *testing.T) {
	setupWorkspace(t)
	t.Setenv("REMINDER_START_HOUR", "0")
	t.Setenv("REMINDER_END_HOUR", "23")

	_, err := run(t, "learner", "--user", "u1", "--chat-id", "42")
	require.NoError(t, err)
	for _, item := range []string{"a", "b", "c"} {
		_, err := run(t, "memorize", "--user", "u1", "--level", "1", "--lesson-type", "words", "--item", item)
		require.NoError(t, err)
	}

	out, err := run(t, "serve", "--once")
	require.NoError(t, err)
	assert.Contains(t, out, "reminders sent: 1")
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
