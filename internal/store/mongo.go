package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Nithin-250/RMAN5/internal/models"
)

// MongoTransactionStore persists transactions in a MongoDB collection.
type MongoTransactionStore struct {
	coll *mongo.Collection
}

// NewMongoTransactionStore creates a transaction store over the collection.
func NewMongoTransactionStore(coll *mongo.Collection) *MongoTransactionStore {
	return &MongoTransactionStore{coll: coll}
}

// Append inserts the transaction document.
func (s *MongoTransactionStore) Append(ctx context.Context, tx *models.StoredTransaction) error {
	if _, err := s.coll.InsertOne(ctx, tx); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// ListByCardType returns the card's transactions sorted by timestamp ascending.
func (s *MongoTransactionStore) ListByCardType(ctx context.Context, cardType string) ([]models.StoredTransaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{"card_type": cardType}, opts)
	if err != nil {
		return nil, fmt.Errorf("find transactions by card type: %w", err)
	}
	var result []models.StoredTransaction
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	return result, nil
}

// ListAll returns every stored transaction sorted by timestamp ascending.
func (s *MongoTransactionStore) ListAll(ctx context.Context) ([]models.StoredTransaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}
	var result []models.StoredTransaction
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	return result, nil
}

// MongoBlacklistStore persists blacklist entries in a MongoDB collection.
type MongoBlacklistStore struct {
	coll *mongo.Collection
}

// NewMongoBlacklistStore creates a blacklist store over the collection and
// ensures the unique (type, value) index that backs AddIfAbsent.
func NewMongoBlacklistStore(ctx context.Context, coll *mongo.Collection) (*MongoBlacklistStore, error) {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "type", Value: 1}, {Key: "value", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := coll.Indexes().CreateOne(ctx, index); err != nil {
		return nil, fmt.Errorf("create blacklist index: %w", err)
	}
	return &MongoBlacklistStore{coll: coll}, nil
}

// IsBlacklisted reports whether an entry exists for (type, value).
func (s *MongoBlacklistStore) IsBlacklisted(ctx context.Context, entryType, value string) (bool, error) {
	err := s.coll.FindOne(ctx, bson.M{"type": entryType, "value": value}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find blacklist entry: %w", err)
	}
	return true, nil
}

// AddIfAbsent upserts with $setOnInsert, so an existing entry for the value
// is left untouched and concurrent inserts collapse to a single document.
func (s *MongoBlacklistStore) AddIfAbsent(ctx context.Context, entry *models.BlacklistEntry) error {
	filter := bson.M{"type": entry.Type, "value": entry.Value}
	update := bson.M{"$setOnInsert": bson.M{
		"_id":       entry.ID,
		"type":      entry.Type,
		"value":     entry.Value,
		"reason":    entry.Reason,
		"timestamp": entry.Timestamp,
	}}
	_, err := s.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert blacklist entry: %w", err)
	}
	return nil
}

// ListAll returns a snapshot of all entries.
func (s *MongoBlacklistStore) ListAll(ctx context.Context) ([]models.BlacklistEntry, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find blacklist entries: %w", err)
	}
	var result []models.BlacklistEntry
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("decode blacklist entries: %w", err)
	}
	return result, nil
}
