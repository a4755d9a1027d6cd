package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/ports"
)

// quoteDocument is the wire shape of a quote in the quotes collection.
type quoteDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Text      string             `bson:"text"`
	Author    string             `bson:"author"`
	Category  string             `bson:"category"`
	Likes     []string           `bson:"likes"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// QuoteRepository implements ports.QuoteRepository over the quotes collection.
type QuoteRepository struct {
	store *Store
}

// compile-time interface check
var _ ports.QuoteRepository = (*QuoteRepository)(nil)

// NewQuoteRepository creates a quote repository backed by the store.
func NewQuoteRepository(store *Store) *QuoteRepository {
	return &QuoteRepository{store: store}
}

// List returns quotes sorted newest-first, optionally filtered by category.
func (r *QuoteRepository) List(ctx context.Context, category string) ([]domain.Quote, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.store.Quotes().Find(ctx, filter, opts)
	if err != nil {
		return nil, domain.NewStoreError("quotes.find", err)
	}
	defer cursor.Close(ctx)

	var docs []quoteDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domain.NewStoreError("quotes.decode", err)
	}

	quotes := make([]domain.Quote, 0, len(docs))
	for i := range docs {
		quotes = append(quotes, *docs[i].toDomain())
	}

	return quotes, nil
}

// GetByID retrieves a quote by its identifier.
func (r *QuoteRepository) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	oid, err := parseObjectID("id", id)
	if err != nil {
		return nil, err
	}

	var doc quoteDocument

	err = r.store.Quotes().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NewNotFoundError("quote", id)
	}

	if err != nil {
		return nil, domain.NewStoreError("quotes.findOne", err)
	}

	return doc.toDomain(), nil
}

// Create inserts a new quote and returns the store-assigned identifier.
func (r *QuoteRepository) Create(ctx context.Context, quote *domain.Quote) (string, error) {
	doc := quoteDocument{
		Text:      quote.Text,
		Author:    quote.Author,
		Category:  quote.Category,
		Likes:     likesToSlice(quote.Likes),
		CreatedAt: quote.CreatedAt,
	}

	result, err := r.store.Quotes().InsertOne(ctx, doc)
	if err != nil {
		return "", domain.NewStoreError("quotes.insertOne", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", domain.NewStoreError("quotes.insertOne",
			fmt.Errorf("unexpected inserted id type %T", result.InsertedID))
	}

	return oid.Hex(), nil
}

// SetLikes replaces the like set.
func (r *QuoteRepository) SetLikes(ctx context.Context, id string, likes domain.LikeSet) (int64, error) {
	oid, err := parseObjectID("id", id)
	if err != nil {
		return 0, err
	}

	result, err := r.store.Quotes().UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"likes": likesToSlice(likes)}},
	)
	if err != nil {
		return 0, domain.NewStoreError("quotes.updateOne", err)
	}

	return result.MatchedCount, nil
}

// Delete removes a quote by its identifier.
func (r *QuoteRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := parseObjectID("id", id)
	if err != nil {
		return 0, err
	}

	result, err := r.store.Quotes().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, domain.NewStoreError("quotes.deleteOne", err)
	}

	return result.DeletedCount, nil
}

// toDomain converts a stored document to the domain entity.
func (d *quoteDocument) toDomain() *domain.Quote {
	return &domain.Quote{
		ID:        d.ID.Hex(),
		Text:      d.Text,
		Author:    d.Author,
		Category:  d.Category,
		Likes:     domain.LikeSet(d.Likes),
		CreatedAt: d.CreatedAt,
	}
}

// likesToSlice keeps the stored likes field a real array even when empty.
func likesToSlice(likes domain.LikeSet) []string {
	if likes == nil {
		return []string{}
	}

	return []string(likes)
}
