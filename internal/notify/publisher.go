// Package notify publishes tab balance snapshots for the reminder subsystem.
package notify

import (
	"context"
	"log/slog"
)

// BalancePublisher hands balance snapshots to whatever delivers reminders.
type BalancePublisher interface {
	PublishBalances(ctx context.Context, msg *BalanceSnapshotMessage) error
	Close() error
}

// LogPublisher is used when no broker is configured. It only logs.
type LogPublisher struct{}

var _ BalancePublisher = LogPublisher{}

// PublishBalances implements BalancePublisher.
func (LogPublisher) PublishBalances(ctx context.Context, msg *BalanceSnapshotMessage) error {
	slog.DebugContext(ctx, "Balance snapshot not published (no broker)",
		"tab_id", msg.TabID,
		"outstanding", len(msg.Balances),
	)
	return nil
}

// Close implements BalancePublisher.
func (LogPublisher) Close() error { return nil }
