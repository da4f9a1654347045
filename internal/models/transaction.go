package models

import "time"

// TimestampLayout is the only accepted format for inbound transaction
// timestamps. Values are civil wall-clock times with no timezone.
const TimestampLayout = "2006-01-02 15:04:05"

// Transaction is the payload submitted for a fraud check. The timestamp is
// kept as a raw string at the boundary; the engine parses and validates it.
type Transaction struct {
	TransactionID          string  `json:"transaction_id" binding:"required"`
	Timestamp              string  `json:"timestamp" binding:"required"`
	Amount                 float64 `json:"amount" binding:"required,gt=0"`
	Location               string  `json:"location" binding:"required"`
	CardType               string  `json:"card_type" binding:"required"`
	Currency               string  `json:"currency" binding:"required"`
	RecipientAccountNumber string  `json:"recipient_account_number" binding:"required"`
	SenderAccountNumber    string  `json:"sender_account_number" binding:"required"`
}

// StoredTransaction is a Transaction enriched with its evaluation result.
// Written exactly once per evaluated transaction, never mutated. The ID is
// an internal record identifier and is stripped from listing responses.
type StoredTransaction struct {
	ID               string    `json:"-" bson:"_id,omitempty"`
	TransactionID    string    `json:"transaction_id" bson:"transaction_id"`
	Timestamp        time.Time `json:"timestamp" bson:"timestamp"`
	Amount           float64   `json:"amount" bson:"amount"`
	Location         string    `json:"location" bson:"location"`
	CardType         string    `json:"card_type" bson:"card_type"`
	Currency         string    `json:"currency" bson:"currency"`
	RecipientAccount string    `json:"recipient_account" bson:"recipient_account"`
	SenderAccount    string    `json:"sender_account" bson:"sender_account"`
	ClientIP         string    `json:"client_ip" bson:"client_ip"`
	IsFraud          bool      `json:"is_fraud" bson:"is_fraud"`
	FraudReason      []string  `json:"fraud_reason" bson:"fraud_reason"`
}

// CheckResult is the outcome of one fraud evaluation.
type CheckResult struct {
	Fraud   bool     `json:"fraud"`
	Reasons []string `json:"reasons"`
}
