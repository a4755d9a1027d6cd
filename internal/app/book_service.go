// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
package app

import (
	"context"
	"log/slog"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/ports"
)

// EmptyMeanPolicy controls what the derived rating field holds when the
// ratings sequence is empty. The source systems disagreed, so the choice
// is explicit configuration rather than an implementation accident.
type EmptyMeanPolicy string

const (
	// EmptyMeanUnset leaves the derived rating absent for unrated books.
	EmptyMeanUnset EmptyMeanPolicy = "unset"

	// EmptyMeanZero stores "0.0" for unrated books.
	EmptyMeanZero EmptyMeanPolicy = "zero"
)

// BookService orchestrates book-related use cases.
// It depends on port interfaces, not concrete implementations.
type BookService struct {
	repo      ports.BookRepository
	logger    *slog.Logger
	emptyMean EmptyMeanPolicy
}

// BookServiceConfig contains configuration for the book service.
type BookServiceConfig struct {
	Repo      ports.BookRepository
	Logger    *slog.Logger
	EmptyMean EmptyMeanPolicy
}

// NewBookService creates a new book service with the provided dependencies.
// It panics if the repository is nil: wiring bugs should fail at startup.
func NewBookService(cfg BookServiceConfig) *BookService {
	if cfg.Repo == nil {
		panic("app: BookService requires a repository")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	emptyMean := cfg.EmptyMean
	if emptyMean == "" {
		emptyMean = EmptyMeanUnset
	}

	return &BookService{
		repo:      cfg.Repo,
		logger:    logger,
		emptyMean: emptyMean,
	}
}

// List returns all books.
func (s *BookService) List(ctx context.Context) ([]domain.Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list books",
			slog.Any("error", err),
		)
		return nil, err
	}

	return books, nil
}

// Get retrieves a book by its identifier.
// Returns domain.ErrNotFound when the book does not exist; the HTTP
// adapter decides how to present that (GET renders an empty object).
func (s *BookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !domain.IsNotFound(err) {
			s.logger.ErrorContext(ctx, "failed to fetch book",
				slog.String("book_id", id),
				slog.Any("error", err),
			)
		}
		return nil, err
	}

	return book, nil
}

// Create inserts a new book with caller-supplied fields and returns the
// store-assigned identifier. Book fields are entirely caller-controlled.
func (s *BookService) Create(ctx context.Context, book *domain.Book) (string, error) {
	id, err := s.repo.Create(ctx, book)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create book",
			slog.Any("error", err),
		)
		return "", err
	}

	s.logger.InfoContext(ctx, "created book",
		slog.String("book_id", id),
	)

	return id, nil
}

// SubmitRating records a user's rating for a book and returns the updated
// average formatted to one decimal place.
//
// The overwrite-or-append and mean computation happen in the domain layer;
// the read-modify-write sequence here is not atomic end-to-end, so two
// concurrent submissions for the same book can lose one update.
func (s *BookService) SubmitRating(ctx context.Context, id, userID string, value float64) (string, error) {
	if userID == "" {
		return "", domain.NewValidationError("userId", "is required")
	}

	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	updated, mean := book.Ratings.Apply(userID, value)
	avg := s.averageField(updated, mean)

	matched, err := s.repo.SetRatings(ctx, id, updated, avg)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to persist rating",
			slog.String("book_id", id),
			slog.Any("error", err),
		)
		return "", err
	}

	if matched == 0 {
		// Deleted between the read and the write.
		return "", domain.NewNotFoundError("book", id)
	}

	s.logger.InfoContext(ctx, "recorded rating",
		slog.String("book_id", id),
		slog.Float64("rating", value),
		slog.String("avg_rating", avg),
	)

	return domain.FormatAverage(mean), nil
}

// averageField renders the stored derived field. The empty-sequence case
// follows the configured policy.
func (s *BookService) averageField(ratings domain.Ratings, mean float64) string {
	if len(ratings) == 0 {
		if s.emptyMean == EmptyMeanZero {
			return domain.FormatAverage(0)
		}
		return ""
	}

	return domain.FormatAverage(mean)
}

// UpdateFields applies a partial update of free-form book fields.
// Returns domain.ErrNotFound when the id matches no book.
func (s *BookService) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	matched, err := s.repo.SetFields(ctx, id, fields)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update book",
			slog.String("book_id", id),
			slog.Any("error", err),
		)
		return err
	}

	if matched == 0 {
		return domain.NewNotFoundError("book", id)
	}

	return nil
}

// Delete removes a book. Deleting an unknown id is a no-op reporting zero
// entities affected.
func (s *BookService) Delete(ctx context.Context, id string) (int64, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete book",
			slog.String("book_id", id),
			slog.Any("error", err),
		)
		return 0, err
	}

	s.logger.InfoContext(ctx, "deleted book",
		slog.String("book_id", id),
		slog.Int64("deleted", deleted),
	)

	return deleted, nil
}
