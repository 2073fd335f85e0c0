package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes every collection relies on. Called once
// at startup; CreateMany is idempotent for identical definitions.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := NewQuoteRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("quote indexes: %w", err)
	}

	// Unique email backs the duplicate-account check in AuthRepository.Create.
	accountIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection(collectionAccounts).Indexes().CreateMany(ctx, accountIndexes); err != nil {
		return fmt.Errorf("account indexes: %w", err)
	}

	return nil
}
