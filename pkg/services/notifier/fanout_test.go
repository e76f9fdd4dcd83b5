package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fin-tools/tier-sentinel/pkg/services/config"
)

type capturingServer struct {
	*httptest.Server
	mu     sync.Mutex
	bodies []map[string]string
}

func newCapturingServer(t *testing.T) *capturingServer {
	cs := &capturingServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var body map[string]string
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		cs.mu.Lock()
		cs.bodies = append(cs.bodies, body)
		cs.mu.Unlock()
	}))
	t.Cleanup(cs.Close)
	return cs
}

func (cs *capturingServer) received() []map[string]string {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return append([]map[string]string(nil), cs.bodies...)
}

func TestFanout_Deliver(t *testing.T) {
	ctx := context.Background()
	client := &http.Client{Timeout: 5 * time.Second}

	t.Run("envelope field depends on target kind", func(t *testing.T) {
		discord := newCapturingServer(t)
		slack := newCapturingServer(t)
		fanout := NewFanout(
			NewDiscordTarget(discord.URL, client),
			NewSlackTarget(slack.URL, client),
		)

		result := fanout.Deliver(ctx, []string{"hello"})

		assert.Equal(t, 2, result.Attempted)
		assert.Equal(t, 0, result.Failed)
		assert.Equal(t, []map[string]string{{"content": "hello"}}, discord.received())
		assert.Equal(t, []map[string]string{{"text": "hello"}}, slack.received())
	})

	t.Run("one dead endpoint blocks neither the other endpoint nor other records", func(t *testing.T) {
		slack := newCapturingServer(t)
		// Closed immediately so every post to it fails at the transport level.
		dead := httptest.NewServer(http.NotFoundHandler())
		dead.Close()

		fanout := NewFanout(
			NewDiscordTarget(dead.URL, client),
			NewSlackTarget(slack.URL, client),
		)

		result := fanout.Deliver(ctx, []string{"first", "second"})

		assert.Equal(t, 4, result.Attempted)
		assert.Equal(t, 2, result.Failed)
		assert.True(t, result.OK)
		assert.ElementsMatch(t, []map[string]string{{"text": "first"}, {"text": "second"}}, slack.received())
	})

	t.Run("no configured endpoint exits without attempting", func(t *testing.T) {
		fanout := NewFanout()

		result := fanout.Deliver(ctx, []string{"hello"})

		assert.True(t, result.OK)
		assert.Equal(t, 0, result.Attempted)
		assert.False(t, fanout.Enabled())
	})
}

func TestTargetsFromSettings(t *testing.T) {
	client := &http.Client{}

	t.Run("unset URLs disable endpoints", func(t *testing.T) {
		targets := TargetsFromSettings(config.Settings{}, client)
		assert.Empty(t, targets)
	})

	t.Run("each configured URL yields one target", func(t *testing.T) {
		targets := TargetsFromSettings(config.Settings{
			DiscordWebhookURL: "https://discord.example/hook",
			SlackWebhookURL:   "https://slack.example/hook",
		}, client)
		assert.Len(t, targets, 2)
	})
}
