package notify

import (
	"context"

	"perfledger/internal/ledger"
)

// Notifier announces regressions found by a run.
type Notifier interface {
	NotifyRegressions(ctx context.Context, key ledger.VersionKey, regressions []ledger.Comparison) error
}
