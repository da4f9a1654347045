package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nithin-250/RMAN5/internal/models"
)

func storedTx(id, cardType string, ts time.Time, amount float64) *models.StoredTransaction {
	return &models.StoredTransaction{
		ID:            fmt.Sprintf("rec-%s", id),
		TransactionID: id,
		Timestamp:     ts,
		Amount:        amount,
		Location:      "Chennai",
		CardType:      cardType,
		Currency:      "INR",
		FraudReason:   []string{},
	}
}

func TestMemoryTransactionStore_ListByCardType_Ordering(t *testing.T) {
	s := NewMemoryTransactionStore()
	ctx := context.Background()
	base := time.Date(2025, 8, 7, 12, 0, 0, 0, time.UTC)

	// Append out of chronological order.
	require.NoError(t, s.Append(ctx, storedTx("t2", "visa", base.Add(2*time.Hour), 20)))
	require.NoError(t, s.Append(ctx, storedTx("t1", "visa", base.Add(1*time.Hour), 10)))
	require.NoError(t, s.Append(ctx, storedTx("t3", "mastercard", base.Add(3*time.Hour), 30)))

	txs, err := s.ListByCardType(ctx, "visa")
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "t1", txs[0].TransactionID)
	assert.Equal(t, "t2", txs[1].TransactionID)
}

func TestMemoryTransactionStore_DuplicateIDsAccepted(t *testing.T) {
	s := NewMemoryTransactionStore()
	ctx := context.Background()
	ts := time.Now()

	require.NoError(t, s.Append(ctx, storedTx("dup", "visa", ts, 10)))
	require.NoError(t, s.Append(ctx, storedTx("dup", "visa", ts.Add(time.Minute), 20)))

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMemoryBlacklistStore_AddIfAbsent_FirstReasonWins(t *testing.T) {
	s := NewMemoryBlacklistStore()
	ctx := context.Background()

	first := models.NewBlacklistEntry("12345", []string{"Geo Drift Detected"})
	second := models.NewBlacklistEntry("12345", []string{"Abnormal Amount (Behavioral)"})

	require.NoError(t, s.AddIfAbsent(ctx, first))
	require.NoError(t, s.AddIfAbsent(ctx, second))

	entries, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"Geo Drift Detected"}, entries[0].Reason)

	blocked, err := s.IsBlacklisted(ctx, models.EntryTypeAccount, "12345")
	require.NoError(t, err)
	assert.True(t, blocked)
}

func TestMemoryBlacklistStore_AddIfAbsent_Concurrent(t *testing.T) {
	s := NewMemoryBlacklistStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			entry := models.NewBlacklistEntry("race-account", []string{fmt.Sprintf("reason-%d", n)})
			_ = s.AddIfAbsent(ctx, entry)
		}(i)
	}
	wg.Wait()

	entries, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "concurrent inserts for one value must collapse to a single entry")
}

func TestSeedBlacklist_Idempotent(t *testing.T) {
	s := NewMemoryBlacklistStore()
	ctx := context.Background()
	accounts := []string{"9876543210", "1111222233"}

	require.NoError(t, SeedBlacklist(ctx, s, accounts))
	require.NoError(t, SeedBlacklist(ctx, s, accounts))

	entries, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, models.EntryTypeAccount, e.Type)
		assert.Equal(t, []string{models.PredefinedReason}, e.Reason)
	}
}

func TestLocationTracker(t *testing.T) {
	tracker := NewLocationTracker()

	_, ok := tracker.Get("visa")
	assert.False(t, ok, "no location before first write")

	tracker.Set("visa", "Chennai")
	loc, ok := tracker.Get("visa")
	require.True(t, ok)
	assert.Equal(t, "Chennai", loc)

	tracker.Set("visa", "Bangalore")
	loc, _ = tracker.Get("visa")
	assert.Equal(t, "Bangalore", loc)
}

func TestIPSet(t *testing.T) {
	set := NewIPSet([]string{"203.0.113.5", "198.51.100.10"})

	assert.True(t, set.Contains("203.0.113.5"))
	assert.False(t, set.Contains("192.0.2.1"))
}
