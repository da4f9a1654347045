package models

import (
	"time"

	"github.com/google/uuid"
)

// EntryTypeAccount is the only persisted blacklist entry type. Blacklisted
// IPs are a static in-process set, not store entries.
const EntryTypeAccount = "account"

// PredefinedReason marks entries inserted by the startup seed list.
const PredefinedReason = "Predefined blacklist"

// BlacklistEntry is a persisted blacklist record. At most one entry exists
// per distinct value; later insertions for the same value are no-ops, so the
// first recorded reasons win. The ID is internal and stripped from listings.
type BlacklistEntry struct {
	ID        string    `json:"-" bson:"_id,omitempty"`
	Type      string    `json:"type" bson:"type"`
	Value     string    `json:"value" bson:"value"`
	Reason    []string  `json:"reason" bson:"reason"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// NewBlacklistEntry builds an account entry stamped with the current time.
func NewBlacklistEntry(value string, reasons []string) *BlacklistEntry {
	return &BlacklistEntry{
		ID:        uuid.New().String(),
		Type:      EntryTypeAccount,
		Value:     value,
		Reason:    reasons,
		Timestamp: time.Now(),
	}
}
