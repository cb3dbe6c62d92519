package repository

import (
	"context"

	"github.com/Sujith0604/Blog/internal/domain"
)

// PostRepository persists blog posts. Read methods preload the Author
// relation so callers already carry the author's username.
type PostRepository interface {
	// Save inserts the post or, when ID is set, replaces its stored fields.
	Save(ctx context.Context, post *domain.Post) error
	// FindByID returns the post with the given id or ErrPostNotFound.
	FindByID(ctx context.Context, id uint) (*domain.Post, error)
	// FindLatest returns at most limit posts ordered newest-first.
	FindLatest(ctx context.Context, limit int) ([]domain.Post, error)
	// Delete removes the post with the given id; ErrPostNotFound when no row
	// was deleted.
	Delete(ctx context.Context, id uint) error
}
