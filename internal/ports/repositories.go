// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrValidation, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/inkwellapp/inkwell-server/internal/domain"
)

// BookRepository persists books in the document store.
//
// Writes to ratings go through read-modify-write in the application layer:
// the store guarantees per-document atomicity for each call below, but not
// across a Get followed by a Set. Two concurrent rating submissions for the
// same book can lose one update; callers must not assume serializability.
type BookRepository interface {
	// List returns all books.
	List(ctx context.Context) ([]domain.Book, error)

	// GetByID retrieves a book by its identifier.
	// Returns domain.ErrNotFound if the book does not exist and
	// domain.ErrValidation if the identifier is malformed.
	GetByID(ctx context.Context, id string) (*domain.Book, error)

	// Create inserts a new book and returns the store-assigned identifier.
	Create(ctx context.Context, book *domain.Book) (string, error)

	// SetFields applies a partial update of free-form fields.
	// Returns the number of matched documents (0 when the id is unknown).
	SetFields(ctx context.Context, id string, fields map[string]any) (int64, error)

	// SetRatings replaces the ratings sequence and the derived average.
	// An empty avg unsets the derived field.
	// Returns the number of matched documents.
	SetRatings(ctx context.Context, id string, ratings domain.Ratings, avg string) (int64, error)

	// Delete removes a book. Deleting an unknown id is not an error;
	// the returned count is 0 in that case.
	Delete(ctx context.Context, id string) (int64, error)
}

// QuoteRepository persists quotes in the document store.
type QuoteRepository interface {
	// List returns quotes sorted newest-first, optionally filtered by
	// category. An empty category means no filter.
	List(ctx context.Context, category string) ([]domain.Quote, error)

	// GetByID retrieves a quote by its identifier.
	// Returns domain.ErrNotFound if the quote does not exist and
	// domain.ErrValidation if the identifier is malformed.
	GetByID(ctx context.Context, id string) (*domain.Quote, error)

	// Create inserts a new quote and returns the store-assigned identifier.
	// CreatedAt must already be set by the caller.
	Create(ctx context.Context, quote *domain.Quote) (string, error)

	// SetLikes replaces the like set.
	// Returns the number of matched documents.
	SetLikes(ctx context.Context, id string, likes domain.LikeSet) (int64, error)

	// Delete removes a quote. Deleting an unknown id is not an error;
	// the returned count is 0 in that case.
	Delete(ctx context.Context, id string) (int64, error)
}

// Pinger verifies liveness of the underlying store connection.
// The health endpoint surfaces its result instead of failing the process.
type Pinger interface {
	// Ping performs a lightweight administrative round trip to the store.
	Ping(ctx context.Context) error
}
