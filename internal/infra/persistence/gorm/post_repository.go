package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Sujith0604/Blog/internal/domain"
	"github.com/Sujith0604/Blog/internal/repository"
)

// GormPostRepository is the GORM implementation of repository.PostRepository.
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a GormPostRepository.
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	if db == nil {
		panic("database connection cannot be nil for GormPostRepository")
	}
	return &GormPostRepository{db: db}
}

// Save inserts the post or replaces the stored fields of an existing one.
// The update is scoped to the post's primary key; the preloaded Author is
// never written back.
func (r *GormPostRepository) Save(ctx context.Context, post *domain.Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error; err != nil {
		return fmt.Errorf("gorm: save post (id: %d): %w", post.ID, err)
	}
	return nil
}

// FindByID returns the post with its author preloaded.
func (r *GormPostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	var post domain.Post
	err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}
		return nil, fmt.Errorf("gorm: find post by id %d: %w", id, err)
	}
	return &post, nil
}

// FindLatest returns at most limit posts, newest first, authors preloaded.
// Ties on created_at (MySQL datetime has second precision) break on id, so
// the order stays stable for posts created within the same instant.
func (r *GormPostRepository) FindLatest(ctx context.Context, limit int) ([]domain.Post, error) {
	var posts []domain.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find latest posts: %w", err)
	}
	return posts, nil
}

// Delete removes the post by id. A delete that matched no row reports
// repository.ErrPostNotFound so callers can answer 404 instead of 204.
func (r *GormPostRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Post{}, id)
	if result.Error != nil {
		return fmt.Errorf("gorm: delete post %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}
	return nil
}
