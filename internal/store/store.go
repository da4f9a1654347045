// Package store defines the persistence contracts consumed by the fraud
// engine and their in-memory, Postgres, and MongoDB implementations.
package store

import (
	"context"

	"github.com/Nithin-250/RMAN5/internal/models"
)

// TransactionStore is the time-ordered log of evaluated transactions.
type TransactionStore interface {
	// Append durably records an evaluated transaction. Duplicate
	// transaction IDs are accepted; no uniqueness is enforced.
	Append(ctx context.Context, tx *models.StoredTransaction) error

	// ListByCardType returns every stored transaction for the card type,
	// ordered by timestamp ascending. The transaction currently being
	// evaluated is never included because it is appended only after
	// detection completes.
	ListByCardType(ctx context.Context, cardType string) ([]models.StoredTransaction, error)

	// ListAll returns every stored transaction for reporting.
	ListAll(ctx context.Context) ([]models.StoredTransaction, error)
}

// BlacklistStore is the persisted set of blacklisted account identifiers.
type BlacklistStore interface {
	// IsBlacklisted reports whether an entry exists for (type, value).
	IsBlacklisted(ctx context.Context, entryType, value string) (bool, error)

	// AddIfAbsent inserts the entry only if no entry exists for its
	// (type, value) pair, atomically per value; otherwise it is a no-op
	// and the existing entry's reasons are kept.
	AddIfAbsent(ctx context.Context, entry *models.BlacklistEntry) error

	// ListAll returns a snapshot of all entries.
	ListAll(ctx context.Context) ([]models.BlacklistEntry, error)
}

// SeedBlacklist inserts the predefined account blacklist. AddIfAbsent makes
// the seeding idempotent across restarts.
func SeedBlacklist(ctx context.Context, s BlacklistStore, accounts []string) error {
	for _, acc := range accounts {
		entry := models.NewBlacklistEntry(acc, []string{models.PredefinedReason})
		if err := s.AddIfAbsent(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}
