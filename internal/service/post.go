package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Sujith0604/Blog/internal/domain"
	"github.com/Sujith0604/Blog/internal/repository"
)

// listLimit caps how many posts a listing returns.
const listLimit = 20

// PostInput carries the writable fields of a post.
type PostInput struct {
	Title   string
	Summary string
	Content string
}

// PostService implements the post CRUD operations, including the authorship
// checks on update and delete.
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService creates a PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	if postRepo == nil {
		panic("PostRepository cannot be nil for PostService")
	}
	return &PostService{postRepo: postRepo}
}

// Create persists a new post owned by authorID. cover is the stored path of
// the uploaded file, empty when none was supplied.
func (s *PostService) Create(ctx context.Context, authorID uint, in PostInput, cover string) (*domain.Post, error) {
	logCtx := logrus.WithFields(logrus.Fields{"author_id": authorID, "title": in.Title})

	if in.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	post := &domain.Post{
		Title:    in.Title,
		Summary:  in.Summary,
		Content:  in.Content,
		Cover:    cover,
		AuthorID: authorID,
	}
	if err := s.postRepo.Save(ctx, post); err != nil {
		logCtx.WithError(err).Error("Database error during post creation")
		return nil, ErrInternalServer
	}

	// Re-read so the response carries the preloaded author.
	created, err := s.postRepo.FindByID(ctx, post.ID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to load created post")
		return nil, ErrInternalServer
	}

	logCtx.WithField("post_id", created.ID).Info("Post created successfully")
	return created, nil
}

// List returns the newest posts, at most 20, with authors populated.
func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.postRepo.FindLatest(ctx, listLimit)
	if err != nil {
		logrus.WithError(err).Error("Database error while listing posts")
		return nil, ErrInternalServer
	}
	return posts, nil
}

// Get returns a single post by id.
func (s *PostService) Get(ctx context.Context, id uint) (*domain.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		logrus.WithError(err).WithField("post_id", id).Error("Database error while fetching post")
		return nil, ErrInternalServer
	}
	return post, nil
}

// Update replaces the writable fields of the post addressed by id, and the
// cover when newCover is non-empty. Only the original author may update;
// everyone else gets ErrNotAuthor and the stored post stays untouched.
func (s *PostService) Update(ctx context.Context, id, userID uint, in PostInput, newCover string) (*domain.Post, error) {
	logCtx := logrus.WithFields(logrus.Fields{"post_id": id, "user_id": userID})

	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		logCtx.WithError(err).Error("Database error while fetching post for update")
		return nil, ErrInternalServer
	}

	if post.AuthorID != userID {
		logCtx.Warn("Update rejected: requester is not the author")
		return nil, ErrNotAuthor
	}

	post.Title = in.Title
	post.Summary = in.Summary
	post.Content = in.Content
	if newCover != "" {
		post.Cover = newCover
	}
	if err := s.postRepo.Save(ctx, post); err != nil {
		logCtx.WithError(err).Error("Database error during post update")
		return nil, ErrInternalServer
	}

	logCtx.Info("Post updated successfully")
	return post, nil
}

// Delete removes the post addressed by id. Authorship is enforced the same
// way as on update.
func (s *PostService) Delete(ctx context.Context, id, userID uint) error {
	logCtx := logrus.WithFields(logrus.Fields{"post_id": id, "user_id": userID})

	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		logCtx.WithError(err).Error("Database error while fetching post for delete")
		return ErrInternalServer
	}

	if post.AuthorID != userID {
		logCtx.Warn("Delete rejected: requester is not the author")
		return ErrNotAuthor
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		logCtx.WithError(err).Error("Database error during post delete")
		return ErrInternalServer
	}

	logCtx.Info("Post deleted successfully")
	return nil
}
