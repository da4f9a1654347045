// Package service contains the fraud evaluation engine.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Nithin-250/RMAN5/internal/detector"
	"github.com/Nithin-250/RMAN5/internal/metrics"
	"github.com/Nithin-250/RMAN5/internal/models"
	"github.com/Nithin-250/RMAN5/internal/store"
)

// ErrInvalidTimestamp is returned when a transaction timestamp does not match
// the accepted wall-clock format. The handler maps it to a 400.
var ErrInvalidTimestamp = errors.New("invalid transaction timestamp")

// Rule identifiers used for metrics labels.
const (
	ruleBlacklistedIP        = "blacklisted_ip"
	ruleBlacklistedRecipient = "blacklisted_recipient"
	ruleBlacklistedSender    = "blacklisted_sender"
	ruleOddHours             = "odd_hours"
	ruleAmountAnomaly        = "amount_anomaly"
	ruleGeoDrift             = "geo_drift"
)

// oddHourEnd bounds the suspicious early-morning window [0, 4).
const oddHourEnd = 4

// FraudEngine runs every detector against one transaction, aggregates the
// fired reasons into a verdict, and drives the resulting side effects.
type FraudEngine struct {
	transactions store.TransactionStore
	blacklist    store.BlacklistStore
	blockedIPs   store.IPSet
	locations    *store.LocationTracker
	anomaly      *detector.AnomalyDetector
	geoDrift     *detector.GeoDriftDetector
	collector    *metrics.Collector
	logger       *zap.Logger
}

// Deps bundles the engine's collaborators.
type Deps struct {
	Transactions store.TransactionStore
	Blacklist    store.BlacklistStore
	BlockedIPs   store.IPSet
	Locations    *store.LocationTracker
	Anomaly      *detector.AnomalyDetector
	GeoDrift     *detector.GeoDriftDetector
	Collector    *metrics.Collector
	Logger       *zap.Logger
}

// NewFraudEngine creates an engine over the given collaborators.
func NewFraudEngine(deps Deps) *FraudEngine {
	return &FraudEngine{
		transactions: deps.Transactions,
		blacklist:    deps.Blacklist,
		blockedIPs:   deps.BlockedIPs,
		locations:    deps.Locations,
		anomaly:      deps.Anomaly,
		geoDrift:     deps.GeoDrift,
		collector:    deps.Collector,
		logger:       deps.Logger,
	}
}

// Evaluate runs the full detection pass for one transaction.
//
// Every check runs regardless of prior findings; the verdict is the OR of
// all fired checks and the reason list preserves check order. Side effects
// happen only after the verdict: the last-known location is updated on a
// clean verdict, the transaction is always appended to history, and on fraud
// both accounts are blacklisted with the full reason list.
func (e *FraudEngine) Evaluate(ctx context.Context, txn *models.Transaction, clientIP string) (*models.CheckResult, error) {
	when, err := time.ParseInLocation(models.TimestampLayout, txn.Timestamp, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimestamp, txn.Timestamp)
	}

	reasons := []string{}
	isFraud := false
	flag := func(rule, reason string) {
		reasons = append(reasons, reason)
		isFraud = true
		e.collector.RecordSignal(rule)
	}

	if e.blockedIPs.Contains(clientIP) {
		flag(ruleBlacklistedIP, fmt.Sprintf("Blacklisted IP Address: %s", clientIP))
	}

	recipientBlocked, err := e.blacklist.IsBlacklisted(ctx, models.EntryTypeAccount, txn.RecipientAccountNumber)
	if err != nil {
		return nil, fmt.Errorf("check recipient account: %w", err)
	}
	if recipientBlocked {
		flag(ruleBlacklistedRecipient, fmt.Sprintf("Blacklisted Recipient Account: %s", txn.RecipientAccountNumber))
	}

	senderBlocked, err := e.blacklist.IsBlacklisted(ctx, models.EntryTypeAccount, txn.SenderAccountNumber)
	if err != nil {
		return nil, fmt.Errorf("check sender account: %w", err)
	}
	if senderBlocked {
		flag(ruleBlacklistedSender, fmt.Sprintf("Blacklisted Sender Account: %s", txn.SenderAccountNumber))
	}

	if when.Hour() < oddHourEnd {
		flag(ruleOddHours, "Transaction During Odd Hours (12 AM - 4 AM)")
	}

	history, err := e.transactions.ListByCardType(ctx, txn.CardType)
	if err != nil {
		return nil, fmt.Errorf("load card history: %w", err)
	}
	amounts := make([]float64, len(history))
	for i, past := range history {
		amounts[i] = past.Amount
	}
	if e.anomaly.Detect(amounts, txn.Amount) {
		flag(ruleAmountAnomaly, "Abnormal Amount (Behavioral)")
	}

	lastLocation, _ := e.locations.Get(txn.CardType)
	if e.geoDrift.Detect(lastLocation, txn.Location) {
		flag(ruleGeoDrift, "Geo Drift Detected")
	}

	// A drifted location must never become the new baseline, so the tracker
	// is only written on a clean verdict.
	if !isFraud {
		e.locations.Set(txn.CardType, txn.Location)
	}

	stored := &models.StoredTransaction{
		ID:               uuid.New().String(),
		TransactionID:    txn.TransactionID,
		Timestamp:        when,
		Amount:           txn.Amount,
		Location:         txn.Location,
		CardType:         txn.CardType,
		Currency:         txn.Currency,
		RecipientAccount: txn.RecipientAccountNumber,
		SenderAccount:    txn.SenderAccountNumber,
		ClientIP:         clientIP,
		IsFraud:          isFraud,
		FraudReason:      reasons,
	}
	if err := e.transactions.Append(ctx, stored); err != nil {
		return nil, fmt.Errorf("append transaction: %w", err)
	}

	if isFraud {
		for _, account := range []string{txn.RecipientAccountNumber, txn.SenderAccountNumber} {
			entry := &models.BlacklistEntry{
				ID:        uuid.New().String(),
				Type:      models.EntryTypeAccount,
				Value:     account,
				Reason:    reasons,
				Timestamp: when,
			}
			if err := e.blacklist.AddIfAbsent(ctx, entry); err != nil {
				return nil, fmt.Errorf("blacklist account %s: %w", account, err)
			}
		}
		e.logger.Info("fraudulent transaction detected",
			zap.String("transaction_id", txn.TransactionID),
			zap.String("card_type", txn.CardType),
			zap.Strings("reasons", reasons))
	}

	return &models.CheckResult{Fraud: isFraud, Reasons: reasons}, nil
}
