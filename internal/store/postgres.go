package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/Nithin-250/RMAN5/internal/models"
)

// PostgresTransactionStore persists transactions in the transactions table.
type PostgresTransactionStore struct {
	db *sql.DB
}

// NewPostgresTransactionStore creates a transaction store over an open
// database handle. Schema management lives in migrations, not here.
func NewPostgresTransactionStore(db *sql.DB) *PostgresTransactionStore {
	return &PostgresTransactionStore{db: db}
}

// Append inserts the transaction. transaction_id carries no uniqueness
// constraint, so resubmissions are stored as separate rows.
func (s *PostgresTransactionStore) Append(ctx context.Context, tx *models.StoredTransaction) error {
	query := `
		INSERT INTO transactions
			(id, transaction_id, ts, amount, location, card_type, currency,
			 recipient_account, sender_account, client_ip, is_fraud, fraud_reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(ctx, query,
		tx.ID,
		tx.TransactionID,
		tx.Timestamp,
		tx.Amount,
		tx.Location,
		tx.CardType,
		tx.Currency,
		tx.RecipientAccount,
		tx.SenderAccount,
		tx.ClientIP,
		tx.IsFraud,
		pq.Array(tx.FraudReason),
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListByCardType returns the card's transactions ordered by timestamp ascending.
func (s *PostgresTransactionStore) ListByCardType(ctx context.Context, cardType string) ([]models.StoredTransaction, error) {
	query := selectTransactions + ` WHERE card_type = $1 ORDER BY ts ASC`
	rows, err := s.db.QueryContext(ctx, query, cardType)
	if err != nil {
		return nil, fmt.Errorf("query transactions by card type: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// ListAll returns every stored transaction ordered by timestamp ascending.
func (s *PostgresTransactionStore) ListAll(ctx context.Context) ([]models.StoredTransaction, error) {
	rows, err := s.db.QueryContext(ctx, selectTransactions+` ORDER BY ts ASC`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

const selectTransactions = `
	SELECT id, transaction_id, ts, amount, location, card_type, currency,
	       recipient_account, sender_account, client_ip, is_fraud, fraud_reason
	FROM transactions`

func scanTransactions(rows *sql.Rows) ([]models.StoredTransaction, error) {
	var result []models.StoredTransaction
	for rows.Next() {
		var tx models.StoredTransaction
		if err := rows.Scan(
			&tx.ID,
			&tx.TransactionID,
			&tx.Timestamp,
			&tx.Amount,
			&tx.Location,
			&tx.CardType,
			&tx.Currency,
			&tx.RecipientAccount,
			&tx.SenderAccount,
			&tx.ClientIP,
			&tx.IsFraud,
			pq.Array(&tx.FraudReason),
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		result = append(result, tx)
	}
	return result, rows.Err()
}

// PostgresBlacklistStore persists blacklist entries in the blacklist table.
type PostgresBlacklistStore struct {
	db *sql.DB
}

// NewPostgresBlacklistStore creates a blacklist store over an open handle.
func NewPostgresBlacklistStore(db *sql.DB) *PostgresBlacklistStore {
	return &PostgresBlacklistStore{db: db}
}

// IsBlacklisted reports whether an entry exists for (type, value).
func (s *PostgresBlacklistStore) IsBlacklisted(ctx context.Context, entryType, value string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM blacklist WHERE type = $1 AND value = $2)`,
		entryType, value,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query blacklist: %w", err)
	}
	return exists, nil
}

// AddIfAbsent inserts the entry unless one exists for its (type, value).
// The unique index on (type, value) plus ON CONFLICT DO NOTHING keeps the
// at-most-one-entry invariant under concurrent inserts.
func (s *PostgresBlacklistStore) AddIfAbsent(ctx context.Context, entry *models.BlacklistEntry) error {
	query := `
		INSERT INTO blacklist (id, type, value, reason, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (type, value) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		entry.ID,
		entry.Type,
		entry.Value,
		pq.Array(entry.Reason),
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert blacklist entry: %w", err)
	}
	return nil
}

// ListAll returns all entries in insertion order.
func (s *PostgresBlacklistStore) ListAll(ctx context.Context) ([]models.BlacklistEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, value, reason, created_at FROM blacklist ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query blacklist entries: %w", err)
	}
	defer rows.Close()

	var result []models.BlacklistEntry
	for rows.Next() {
		var e models.BlacklistEntry
		if err := rows.Scan(&e.ID, &e.Type, &e.Value, pq.Array(&e.Reason), &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan blacklist entry: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
