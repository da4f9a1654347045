package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Nithin-250/RMAN5/internal/detector"
	"github.com/Nithin-250/RMAN5/internal/geo"
	"github.com/Nithin-250/RMAN5/internal/metrics"
	"github.com/Nithin-250/RMAN5/internal/models"
	"github.com/Nithin-250/RMAN5/internal/store"
)

const cleanIP = "192.0.2.77"

type engineFixture struct {
	engine       *FraudEngine
	transactions *store.MemoryTransactionStore
	blacklist    *store.MemoryBlacklistStore
	locations    *store.LocationTracker
}

func newFixture(t *testing.T) *engineFixture {
	t.Helper()

	transactions := store.NewMemoryTransactionStore()
	blacklist := store.NewMemoryBlacklistStore()
	locations := store.NewLocationTracker()

	engine := NewFraudEngine(Deps{
		Transactions: transactions,
		Blacklist:    blacklist,
		BlockedIPs:   store.NewIPSet([]string{"203.0.113.5", "198.51.100.10", "45.33.32.156"}),
		Locations:    locations,
		Anomaly:      detector.NewAnomalyDetector(5, 2.5),
		GeoDrift:     detector.NewGeoDriftDetector(geo.DefaultDirectory(), 500),
		Collector:    metrics.NewCollector(),
		Logger:       zap.NewNop(),
	})

	return &engineFixture{
		engine:       engine,
		transactions: transactions,
		blacklist:    blacklist,
		locations:    locations,
	}
}

// cleanTxn returns a transaction that fires no checks: daytime, known
// location, unremarkable amount, unlisted accounts.
func cleanTxn(id string) *models.Transaction {
	return &models.Transaction{
		TransactionID:          id,
		Timestamp:              "2025-08-07 14:30:00",
		Amount:                 100,
		Location:               "Chennai",
		CardType:               "visa",
		Currency:               "INR",
		RecipientAccountNumber: "5555666677",
		SenderAccountNumber:    "8888999900",
	}
}

func TestEvaluate_CleanTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.engine.Evaluate(ctx, cleanTxn("clean-1"), cleanIP)
	require.NoError(t, err)
	assert.False(t, result.Fraud)
	assert.Empty(t, result.Reasons)

	history, err := f.transactions.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.False(t, history[0].IsFraud)
	assert.Equal(t, cleanIP, history[0].ClientIP)
	assert.Equal(t, []string{}, history[0].FraudReason)
}

func TestEvaluate_BlacklistedIP_EndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	txn := cleanTxn("ip-1")
	result, err := f.engine.Evaluate(ctx, txn, "203.0.113.5")
	require.NoError(t, err)

	assert.True(t, result.Fraud)
	assert.Equal(t, []string{"Blacklisted IP Address: 203.0.113.5"}, result.Reasons)

	// Both accounts get blacklisted with the full reason list.
	for _, account := range []string{txn.RecipientAccountNumber, txn.SenderAccountNumber} {
		blocked, err := f.blacklist.IsBlacklisted(ctx, models.EntryTypeAccount, account)
		require.NoError(t, err)
		assert.True(t, blocked, "account %s should be blacklisted", account)
	}
	entries, err := f.blacklist.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, []string{"Blacklisted IP Address: 203.0.113.5"}, e.Reason)
	}
}

func TestEvaluate_BlacklistedAccounts_ReasonOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, store.SeedBlacklist(ctx, f.blacklist, []string{"9876543210", "1111222233"}))

	txn := cleanTxn("order-1")
	txn.RecipientAccountNumber = "9876543210"
	txn.SenderAccountNumber = "1111222233"
	txn.Timestamp = "2025-08-07 02:15:00" // odd hours too

	result, err := f.engine.Evaluate(ctx, txn, "203.0.113.5")
	require.NoError(t, err)
	assert.True(t, result.Fraud)
	assert.Equal(t, []string{
		"Blacklisted IP Address: 203.0.113.5",
		"Blacklisted Recipient Account: 9876543210",
		"Blacklisted Sender Account: 1111222233",
		"Transaction During Odd Hours (12 AM - 4 AM)",
	}, result.Reasons)
}

func TestEvaluate_OddHourBoundaries(t *testing.T) {
	tests := []struct {
		timestamp string
		want      bool
	}{
		{"2025-08-07 00:00:00", true},
		{"2025-08-07 02:00:00", true},
		{"2025-08-07 03:59:59", true},
		{"2025-08-07 04:00:00", false},
		{"2025-08-07 23:00:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.timestamp, func(t *testing.T) {
			f := newFixture(t)
			txn := cleanTxn("hour-1")
			txn.Timestamp = tt.timestamp

			result, err := f.engine.Evaluate(context.Background(), txn, cleanIP)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Fraud)
			if tt.want {
				assert.Contains(t, result.Reasons, "Transaction During Odd Hours (12 AM - 4 AM)")
			}
		})
	}
}

func TestEvaluate_MalformedTimestamp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	txn := cleanTxn("bad-ts-1")
	txn.Timestamp = "07/08/2025 14:30"

	_, err := f.engine.Evaluate(ctx, txn, cleanIP)
	require.ErrorIs(t, err, ErrInvalidTimestamp)

	// Validation failures must leave no side effects behind.
	history, err := f.transactions.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
	_, ok := f.locations.Get(txn.CardType)
	assert.False(t, ok)
}

func TestEvaluate_AmountAnomaly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Build varied history: amounts 10, 20, 10, 20, 10.
	for i, amount := range []float64{10, 20, 10, 20, 10} {
		txn := cleanTxn(fmt.Sprintf("hist-%d", i))
		txn.Amount = amount
		txn.Timestamp = fmt.Sprintf("2025-08-07 10:0%d:00", i)
		result, err := f.engine.Evaluate(ctx, txn, cleanIP)
		require.NoError(t, err)
		require.False(t, result.Fraud, "history transaction %d should be clean", i)
	}

	outlier := cleanTxn("outlier-1")
	outlier.Amount = 200
	result, err := f.engine.Evaluate(ctx, outlier, cleanIP)
	require.NoError(t, err)
	assert.True(t, result.Fraud)
	assert.Equal(t, []string{"Abnormal Amount (Behavioral)"}, result.Reasons)
}

func TestEvaluate_ZeroVarianceHistoryNeverFlags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		txn := cleanTxn(fmt.Sprintf("flat-%d", i))
		txn.Amount = 10
		txn.Timestamp = fmt.Sprintf("2025-08-07 10:0%d:00", i)
		_, err := f.engine.Evaluate(ctx, txn, cleanIP)
		require.NoError(t, err)
	}

	spike := cleanTxn("flat-spike")
	spike.Amount = 100
	result, err := f.engine.Evaluate(ctx, spike, cleanIP)
	require.NoError(t, err)
	assert.False(t, result.Fraud, "zero-variance window defines the z-score as 0")
}

func TestEvaluate_DetectorNeverSeesItself(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// With an empty store, even a huge first amount has no history to be
	// compared against because the append happens after detection.
	txn := cleanTxn("first-huge")
	txn.Amount = 1000000
	result, err := f.engine.Evaluate(ctx, txn, cleanIP)
	require.NoError(t, err)
	assert.False(t, result.Fraud)
}

func TestEvaluate_GeoDrift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Establish Chennai as the accepted baseline.
	_, err := f.engine.Evaluate(ctx, cleanTxn("geo-base"), cleanIP)
	require.NoError(t, err)

	drifted := cleanTxn("geo-drift")
	drifted.Location = "Delhi"
	result, err := f.engine.Evaluate(ctx, drifted, cleanIP)
	require.NoError(t, err)
	assert.True(t, result.Fraud)
	assert.Equal(t, []string{"Geo Drift Detected"}, result.Reasons)

	// The fraudulent location must not replace the baseline.
	loc, ok := f.locations.Get("visa")
	require.True(t, ok)
	assert.Equal(t, "Chennai", loc)
}

func TestEvaluate_NearbyLocationDoesNotDrift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.Evaluate(ctx, cleanTxn("near-base"), cleanIP)
	require.NoError(t, err)

	nearby := cleanTxn("near-move")
	nearby.Location = "Bangalore"
	result, err := f.engine.Evaluate(ctx, nearby, cleanIP)
	require.NoError(t, err)
	assert.False(t, result.Fraud)

	// A clean verdict moves the baseline forward.
	loc, _ := f.locations.Get("visa")
	assert.Equal(t, "Bangalore", loc)
}

func TestEvaluate_UnknownLocationPassesThrough(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.engine.Evaluate(ctx, cleanTxn("unk-base"), cleanIP)
	require.NoError(t, err)

	unknown := cleanTxn("unk-move")
	unknown.Location = "Atlantis"
	result, err := f.engine.Evaluate(ctx, unknown, cleanIP)
	require.NoError(t, err)
	assert.False(t, result.Fraud, "unknown locations cannot be geo-checked")
}

func TestEvaluate_FraudulentTransactionStillRecorded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	txn := cleanTxn("recorded-1")
	txn.Timestamp = "2025-08-07 01:00:00"
	result, err := f.engine.Evaluate(ctx, txn, cleanIP)
	require.NoError(t, err)
	require.True(t, result.Fraud)

	history, err := f.transactions.ListByCardType(ctx, "visa")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].IsFraud)
	assert.Equal(t, result.Reasons, history[0].FraudReason)
}

func TestEvaluate_DuplicateBlacklistKeepsFirstReason(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := cleanTxn("dup-bl-1")
	first.Timestamp = "2025-08-07 01:00:00"
	_, err := f.engine.Evaluate(ctx, first, cleanIP)
	require.NoError(t, err)

	// Same accounts flagged again through a different rule.
	second := cleanTxn("dup-bl-2")
	result, err := f.engine.Evaluate(ctx, second, "203.0.113.5")
	require.NoError(t, err)
	require.True(t, result.Fraud)

	entries, err := f.blacklist.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, []string{"Transaction During Odd Hours (12 AM - 4 AM)"}, e.Reason,
			"later fraud reasons must not overwrite the first entry")
	}
}
