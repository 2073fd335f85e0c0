package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/importwise/landedcost/internal/core/domain"
	"github.com/importwise/landedcost/internal/core/ports"
)

const collectionQuotes = "quotes"

type QuoteRepository struct {
	col *mongo.Collection
}

func NewQuoteRepository(db *mongo.Database) *QuoteRepository {
	return &QuoteRepository{col: db.Collection(collectionQuotes)}
}

// Create inserts a new quote document.
func (r *QuoteRepository) Create(ctx context.Context, q *domain.Quote) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, q)
	return err
}

// FindByID retrieves a quote by id. When buyerID is non-empty, an additional
// filter by buyer_id is applied, so foreign quotes read as not found.
func (r *QuoteRepository) FindByID(ctx context.Context, id string, buyerID string) (*domain.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if buyerID != "" {
		filter["buyer_id"] = buyerID
	}

	var q domain.Quote
	err := r.col.FindOne(ctx, filter).Decode(&q)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQuoteNotFound
		}
		return nil, err
	}
	return &q, nil
}

// List returns a page of quotes matching filter, newest first, and the total
// count of matches.
func (r *QuoteRepository) List(ctx context.Context, f ports.ListQuotesFilter) ([]*domain.Quote, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.BuyerID != "" {
		filter["buyer_id"] = f.BuyerID
	}
	if f.DestinationCountry != "" {
		filter["destination_country"] = f.DestinationCountry
	}
	if f.ShippingMethod != "" {
		filter["shipping_method"] = f.ShippingMethod
	}
	if f.Search != "" {
		filter["$or"] = bson.A{
			bson.M{"product_name": bson.M{"$regex": f.Search, "$options": "i"}},
			bson.M{"hs_code": bson.M{"$regex": f.Search}},
		}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := int64((f.Page - 1) * f.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(f.Limit)).
		SetProjection(bson.M{"input": 0, "result": 0}) // summaries only

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var quotes []*domain.Quote
	if err := cursor.All(ctx, &quotes); err != nil {
		return nil, 0, err
	}
	return quotes, total, nil
}

// EnsureIndexes creates necessary indexes on the quotes collection.
func (r *QuoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "buyer_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "destination_country", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
