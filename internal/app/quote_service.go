package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/ports"
)

// QuoteService orchestrates quote-related use cases.
type QuoteService struct {
	repo          ports.QuoteRepository
	logger        *slog.Logger
	requireUserID bool
	now           func() time.Time
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Repo   ports.QuoteRepository
	Logger *slog.Logger

	// RequireUserID makes a like toggle without a user id a validation
	// failure. The source systems disagreed; presence checking is the
	// default behavior.
	RequireUserID bool

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// NewQuoteService creates a new quote service with the provided dependencies.
// It panics if the repository is nil: wiring bugs should fail at startup.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Repo == nil {
		panic("app: QuoteService requires a repository")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &QuoteService{
		repo:          cfg.Repo,
		logger:        logger,
		requireUserID: cfg.RequireUserID,
		now:           now,
	}
}

// List returns quotes sorted newest-first, optionally filtered by category.
func (s *QuoteService) List(ctx context.Context, category string) ([]domain.Quote, error) {
	quotes, err := s.repo.List(ctx, category)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list quotes",
			slog.String("category", category),
			slog.Any("error", err),
		)
		return nil, err
	}

	return quotes, nil
}

// Create inserts a new quote. Text, author and category are all required;
// likes start empty and the creation timestamp is server-assigned.
func (s *QuoteService) Create(ctx context.Context, text, author, category string) (string, error) {
	switch {
	case text == "":
		return "", domain.NewValidationError("text", "is required")
	case author == "":
		return "", domain.NewValidationError("author", "is required")
	case category == "":
		return "", domain.NewValidationError("category", "is required")
	}

	quote := &domain.Quote{
		Text:      text,
		Author:    author,
		Category:  category,
		Likes:     domain.LikeSet{},
		CreatedAt: s.now().UTC(),
	}

	id, err := s.repo.Create(ctx, quote)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create quote",
			slog.Any("error", err),
		)
		return "", err
	}

	s.logger.InfoContext(ctx, "created quote",
		slog.String("quote_id", id),
		slog.String("author", author),
		slog.String("category", category),
	)

	return id, nil
}

// ToggleLike flips the user's like on a quote and returns the new like
// count. Returns domain.ErrNotFound for an unknown quote.
//
// Like SubmitRating, the read-modify-write here is not atomic end-to-end:
// concurrent toggles on the same quote can lose an update.
func (s *QuoteService) ToggleLike(ctx context.Context, id, userID string) (int, error) {
	if s.requireUserID && userID == "" {
		return 0, domain.NewValidationError("userId", "is required")
	}

	quote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	updated, liked := quote.Likes.Toggle(userID)

	matched, err := s.repo.SetLikes(ctx, id, updated)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to persist likes",
			slog.String("quote_id", id),
			slog.Any("error", err),
		)
		return 0, err
	}

	if matched == 0 {
		// Deleted between the read and the write.
		return 0, domain.NewNotFoundError("quote", id)
	}

	s.logger.InfoContext(ctx, "toggled like",
		slog.String("quote_id", id),
		slog.Bool("liked", liked),
		slog.Int("likes_count", len(updated)),
	)

	return len(updated), nil
}

// Delete removes a quote. Deleting an unknown id is a no-op reporting zero
// entities affected.
func (s *QuoteService) Delete(ctx context.Context, id string) (int64, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete quote",
			slog.String("quote_id", id),
			slog.Any("error", err),
		)
		return 0, err
	}

	s.logger.InfoContext(ctx, "deleted quote",
		slog.String("quote_id", id),
		slog.Int64("deleted", deleted),
	)

	return deleted, nil
}
