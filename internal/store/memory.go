package store

import (
	"context"
	"sort"
	"sync"

	"github.com/Nithin-250/RMAN5/internal/models"
)

// MemoryTransactionStore is a thread-safe in-memory transaction log. It backs
// tests and local runs without a configured database.
type MemoryTransactionStore struct {
	mu  sync.RWMutex
	txs []models.StoredTransaction
}

// NewMemoryTransactionStore creates an empty in-memory transaction store.
func NewMemoryTransactionStore() *MemoryTransactionStore {
	return &MemoryTransactionStore{}
}

// Append records the transaction. Duplicate transaction IDs are accepted.
func (s *MemoryTransactionStore) Append(_ context.Context, tx *models.StoredTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append(s.txs, *tx)
	return nil
}

// ListByCardType returns the card's transactions ordered by timestamp ascending.
func (s *MemoryTransactionStore) ListByCardType(_ context.Context, cardType string) ([]models.StoredTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.StoredTransaction
	for _, tx := range s.txs {
		if tx.CardType == cardType {
			result = append(result, tx)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})
	return result, nil
}

// ListAll returns every stored transaction in insertion order.
func (s *MemoryTransactionStore) ListAll(_ context.Context) ([]models.StoredTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.StoredTransaction, len(s.txs))
	copy(result, s.txs)
	return result, nil
}

// MemoryBlacklistStore is a thread-safe in-memory blacklist.
type MemoryBlacklistStore struct {
	mu      sync.RWMutex
	entries map[string]models.BlacklistEntry // key: type + "\x00" + value
	order   []string
}

// NewMemoryBlacklistStore creates an empty in-memory blacklist store.
func NewMemoryBlacklistStore() *MemoryBlacklistStore {
	return &MemoryBlacklistStore{entries: make(map[string]models.BlacklistEntry)}
}

func blacklistKey(entryType, value string) string {
	return entryType + "\x00" + value
}

// IsBlacklisted reports whether an entry exists for (type, value).
func (s *MemoryBlacklistStore) IsBlacklisted(_ context.Context, entryType, value string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[blacklistKey(entryType, value)]
	return ok, nil
}

// AddIfAbsent inserts the entry unless one already exists for its value.
// The map mutation happens under the write lock, so concurrent callers for
// the same value still produce exactly one entry.
func (s *MemoryBlacklistStore) AddIfAbsent(_ context.Context, entry *models.BlacklistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := blacklistKey(entry.Type, entry.Value)
	if _, exists := s.entries[key]; exists {
		return nil
	}
	s.entries[key] = *entry
	s.order = append(s.order, key)
	return nil
}

// ListAll returns all entries in insertion order.
func (s *MemoryBlacklistStore) ListAll(_ context.Context) ([]models.BlacklistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.BlacklistEntry, 0, len(s.order))
	for _, key := range s.order {
		result = append(result, s.entries[key])
	}
	return result, nil
}
