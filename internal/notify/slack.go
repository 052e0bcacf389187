package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"perfledger/internal/ledger"

	"github.com/slack-go/slack"
)

// SlackNotifier sends notifications to Slack via a Webhook.
type SlackNotifier struct {
	WebhookURL string
	Client     *http.Client
}

// NewSlackNotifier creates a new SlackNotifier.
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{
		WebhookURL: webhookURL,
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Notify sends a message to the configured Slack webhook.
func (s *SlackNotifier) Notify(ctx context.Context, message string) error {
	if s.WebhookURL == "" {
		return fmt.Errorf("slack webhook URL is not configured")
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	msg := &slack.WebhookMessage{Text: message}
	if err := slack.PostWebhookCustomHTTPContext(ctx, s.WebhookURL, client, msg); err != nil {
		return fmt.Errorf("failed to send slack notification: %w", err)
	}
	return nil
}

// NotifyRegressions posts one message listing every slower benchmark.
// Nothing is sent when regressions is empty.
func (s *SlackNotifier) NotifyRegressions(ctx context.Context, key ledger.VersionKey, regressions []ledger.Comparison) error {
	if len(regressions) == 0 {
		return nil
	}
	return s.Notify(ctx, FormatRegressions(key, regressions))
}

// FormatRegressions renders the Slack message body.
func FormatRegressions(key ledger.VersionKey, regressions []ledger.Comparison) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, ":warning: %d benchmark regression(s) in %s\n", len(regressions), key)
	for _, c := range regressions {
		fmt.Fprintf(&sb, "• *%s*: %s (%+.2f%%)\n", c.Benchmark, c.Sentence(), c.DeltaPct)
	}
	return strings.TrimRight(sb.String(), "\n")
}
