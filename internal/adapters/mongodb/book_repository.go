package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/ports"
)

// bookDocument is the wire shape of a book in the books collection.
// Books are schema-flexible: anything beyond the interpreted fields is
// carried in the inline map.
type bookDocument struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Title   string             `bson:"title,omitempty"`
	Text    string             `bson:"text,omitempty"`
	Ratings []ratingDocument   `bson:"ratings,omitempty"`
	Rating  string             `bson:"rating,omitempty"`
	Extra   map[string]any     `bson:",inline"`
}

// ratingDocument is a single {userId, rating} pair.
type ratingDocument struct {
	UserID string  `bson:"userId"`
	Rating float64 `bson:"rating"`
}

// BookRepository implements ports.BookRepository over the books collection.
type BookRepository struct {
	store *Store
}

// compile-time interface check
var _ ports.BookRepository = (*BookRepository)(nil)

// NewBookRepository creates a book repository backed by the store.
func NewBookRepository(store *Store) *BookRepository {
	return &BookRepository{store: store}
}

// List returns all books.
func (r *BookRepository) List(ctx context.Context) ([]domain.Book, error) {
	cursor, err := r.store.Books().Find(ctx, bson.M{})
	if err != nil {
		return nil, domain.NewStoreError("books.find", err)
	}
	defer cursor.Close(ctx)

	var docs []bookDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domain.NewStoreError("books.decode", err)
	}

	books := make([]domain.Book, 0, len(docs))
	for i := range docs {
		books = append(books, *docs[i].toDomain())
	}

	return books, nil
}

// GetByID retrieves a book by its identifier.
func (r *BookRepository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	oid, err := parseObjectID("id", id)
	if err != nil {
		return nil, err
	}

	var doc bookDocument

	err = r.store.Books().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NewNotFoundError("book", id)
	}

	if err != nil {
		return nil, domain.NewStoreError("books.findOne", err)
	}

	return doc.toDomain(), nil
}

// Create inserts a new book and returns the store-assigned identifier.
func (r *BookRepository) Create(ctx context.Context, book *domain.Book) (string, error) {
	doc := fromDomainBook(book)

	result, err := r.store.Books().InsertOne(ctx, doc)
	if err != nil {
		return "", domain.NewStoreError("books.insertOne", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", domain.NewStoreError("books.insertOne",
			fmt.Errorf("unexpected inserted id type %T", result.InsertedID))
	}

	return oid.Hex(), nil
}

// SetFields applies a partial update of free-form fields.
func (r *BookRepository) SetFields(ctx context.Context, id string, fields map[string]any) (int64, error) {
	oid, err := parseObjectID("id", id)
	if err != nil {
		return 0, err
	}

	result, err := r.store.Books().UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": fields},
	)
	if err != nil {
		return 0, domain.NewStoreError("books.updateOne", err)
	}

	return result.MatchedCount, nil
}

// SetRatings replaces the ratings sequence and the derived average.
// An empty avg unsets the derived field.
func (r *BookRepository) SetRatings(ctx context.Context, id string, ratings domain.Ratings, avg string) (int64, error) {
	oid, err := parseObjectID("id", id)
	if err != nil {
		return 0, err
	}

	docs := make([]ratingDocument, 0, len(ratings))
	for _, entry := range ratings {
		docs = append(docs, ratingDocument{UserID: entry.UserID, Rating: entry.Value})
	}

	update := bson.M{"$set": bson.M{"ratings": docs, "rating": avg}}
	if avg == "" {
		update = bson.M{
			"$set":   bson.M{"ratings": docs},
			"$unset": bson.M{"rating": ""},
		}
	}

	result, err := r.store.Books().UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return 0, domain.NewStoreError("books.updateOne", err)
	}

	return result.MatchedCount, nil
}

// Delete removes a book by its identifier.
func (r *BookRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := parseObjectID("id", id)
	if err != nil {
		return 0, err
	}

	result, err := r.store.Books().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, domain.NewStoreError("books.deleteOne", err)
	}

	return result.DeletedCount, nil
}

// toDomain converts a stored document to the domain entity.
func (d *bookDocument) toDomain() *domain.Book {
	ratings := make(domain.Ratings, 0, len(d.Ratings))
	for _, entry := range d.Ratings {
		ratings = append(ratings, domain.Rating{UserID: entry.UserID, Value: entry.Rating})
	}

	return &domain.Book{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Text:      d.Text,
		Extra:     d.Extra,
		Ratings:   ratings,
		AvgRating: d.Rating,
	}
}

// fromDomainBook converts a domain entity to its wire shape for insertion.
// The zero ObjectID is omitted so the store assigns one.
func fromDomainBook(b *domain.Book) bookDocument {
	docs := make([]ratingDocument, 0, len(b.Ratings))
	for _, entry := range b.Ratings {
		docs = append(docs, ratingDocument{UserID: entry.UserID, Rating: entry.Value})
	}

	return bookDocument{
		Title:   b.Title,
		Text:    b.Text,
		Ratings: docs,
		Rating:  b.AvgRating,
		Extra:   b.Extra,
	}
}
