package app

import (
	"context"

	"github.com/inkwellapp/inkwell-server/internal/domain"
)

// fakeBookRepo implements ports.BookRepository with overridable functions.
type fakeBookRepo struct {
	listFn       func(ctx context.Context) ([]domain.Book, error)
	getFn        func(ctx context.Context, id string) (*domain.Book, error)
	createFn     func(ctx context.Context, book *domain.Book) (string, error)
	setFieldsFn  func(ctx context.Context, id string, fields map[string]any) (int64, error)
	setRatingsFn func(ctx context.Context, id string, ratings domain.Ratings, avg string) (int64, error)
	deleteFn     func(ctx context.Context, id string) (int64, error)
}

func (f *fakeBookRepo) List(ctx context.Context) ([]domain.Book, error) {
	return f.listFn(ctx)
}

func (f *fakeBookRepo) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	return f.getFn(ctx, id)
}

func (f *fakeBookRepo) Create(ctx context.Context, book *domain.Book) (string, error) {
	return f.createFn(ctx, book)
}

func (f *fakeBookRepo) SetFields(ctx context.Context, id string, fields map[string]any) (int64, error) {
	return f.setFieldsFn(ctx, id, fields)
}

func (f *fakeBookRepo) SetRatings(ctx context.Context, id string, ratings domain.Ratings, avg string) (int64, error) {
	return f.setRatingsFn(ctx, id, ratings, avg)
}

func (f *fakeBookRepo) Delete(ctx context.Context, id string) (int64, error) {
	return f.deleteFn(ctx, id)
}

// fakeQuoteRepo implements ports.QuoteRepository with overridable functions.
type fakeQuoteRepo struct {
	listFn     func(ctx context.Context, category string) ([]domain.Quote, error)
	getFn      func(ctx context.Context, id string) (*domain.Quote, error)
	createFn   func(ctx context.Context, quote *domain.Quote) (string, error)
	setLikesFn func(ctx context.Context, id string, likes domain.LikeSet) (int64, error)
	deleteFn   func(ctx context.Context, id string) (int64, error)
}

func (f *fakeQuoteRepo) List(ctx context.Context, category string) ([]domain.Quote, error) {
	return f.listFn(ctx, category)
}

func (f *fakeQuoteRepo) GetByID(ctx context.Context, id string) (*domain.Quote, error) {
	return f.getFn(ctx, id)
}

func (f *fakeQuoteRepo) Create(ctx context.Context, quote *domain.Quote) (string, error) {
	return f.createFn(ctx, quote)
}

func (f *fakeQuoteRepo) SetLikes(ctx context.Context, id string, likes domain.LikeSet) (int64, error) {
	return f.setLikesFn(ctx, id, likes)
}

func (f *fakeQuoteRepo) Delete(ctx context.Context, id string) (int64, error) {
	return f.deleteFn(ctx, id)
}
