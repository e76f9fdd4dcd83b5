package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/fin-tools/tier-sentinel/pkg/models/domain"
	"github.com/fin-tools/tier-sentinel/pkg/services/config"
)

// Target is one configured delivery endpoint.
type Target interface {
	Kind() domain.TargetKind
	Deliver(ctx context.Context, message string) error
}

// webhookTarget posts the message as a single flat JSON field; the field
// name is the only thing the chat services disagree on.
type webhookTarget struct {
	kind   domain.TargetKind
	url    string
	field  string
	client *http.Client
}

func NewDiscordTarget(url string, client *http.Client) Target {
	return &webhookTarget{kind: domain.TargetDiscord, url: url, field: "content", client: client}
}

func NewSlackTarget(url string, client *http.Client) Target {
	return &webhookTarget{kind: domain.TargetSlack, url: url, field: "text", client: client}
}

// TargetsFromSettings builds the enabled targets. An unset URL means that
// endpoint is disabled, not an error.
func TargetsFromSettings(settings config.Settings, client *http.Client) []Target {
	var targets []Target
	if settings.DiscordWebhookURL != "" {
		targets = append(targets, NewDiscordTarget(settings.DiscordWebhookURL, client))
	}
	if settings.SlackWebhookURL != "" {
		targets = append(targets, NewSlackTarget(settings.SlackWebhookURL, client))
	}
	return targets
}

func (t *webhookTarget) Kind() domain.TargetKind {
	return t.kind
}

// Deliver posts once, fire-and-forget. The response body is discarded; only
// a transport-level failure counts as an error.
func (t *webhookTarget) Deliver(ctx context.Context, message string) error {
	payload, err := json.Marshal(map[string]string{t.field: message})
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", t.kind, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", t.kind, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post to %s webhook: %w", t.kind, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}
