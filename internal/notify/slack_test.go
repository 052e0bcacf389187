package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"perfledger/internal/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlackNotifier_Notify(t *testing.T) {
	receivedMessage := ""
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var payload map[string]any
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &payload)
		receivedMessage, _ = payload["text"].(string)

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewSlackNotifier(server.URL)
	err := notifier.Notify(context.Background(), "quick got slower")
	require.NoError(t, err)
	assert.Equal(t, "quick got slower", receivedMessage)
}

func TestSlackNotifier_Notify_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := NewSlackNotifier(server.URL).Notify(context.Background(), "x")
	assert.Error(t, err)
}

func TestSlackNotifier_NoURL(t *testing.T) {
	err := NewSlackNotifier("").Notify(context.Background(), "x")
	assert.ErrorContains(t, err, "not configured")
}

func TestNotifyRegressions(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewSlackNotifier(server.URL)
	require.NoError(t, n.NotifyRegressions(context.Background(), "1.0.1", nil))
	assert.Zero(t, calls)

	l := ledger.Ledger{
		"1.0.0": {"Sort": {"quick": 1}},
		"1.0.1": {"Sort": {"quick": 2}},
	}
	regs := ledger.Regressions(ledger.Compare(l, "1.0.1"))
	require.NoError(t, n.NotifyRegressions(context.Background(), "1.0.1", regs))
	assert.Equal(t, 1, calls)
}

func TestFormatRegressions(t *testing.T) {
	regs := []ledger.Comparison{{
		Benchmark: "Sort",
		Fastest:   ledger.Fastest{Scenario: "quick", Duration: 2},
		Reference: &ledger.Reference{Version: "1.0.0", Scenario: "quick", Duration: 1},
		Verdict:   ledger.Slower,
		DeltaPct:  100,
	}}
	msg := FormatRegressions("1.0.1", regs)
	assert.Equal(t, ":warning: 1 benchmark regression(s) in v1.0.1\n"+
		"• *Sort*: quick is slower than quick of v1.0.0: 2.0000 ms vs 1.0000 ms (+100.00%)", msg)
}

var _ Notifier = (*SlackNotifier)(nil)
