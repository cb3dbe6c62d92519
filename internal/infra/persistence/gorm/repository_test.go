package gormpersistence_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Sujith0604/Blog/internal/domain"
	gormpersistence "github.com/Sujith0604/Blog/internal/infra/persistence/gorm"
	"github.com/Sujith0604/Blog/internal/infra/setup"
	"github.com/Sujith0604/Blog/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, setup.MigrateDB(db))
	return db
}

func TestGormUserRepository_SaveAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := gormpersistence.NewGormUserRepository(db)
	ctx := context.Background()

	user := &domain.User{Username: "alice", Email: "a@x.com", Password: "hash"}
	require.NoError(t, repo.Save(ctx, user))
	assert.NotZero(t, user.ID)

	byEmail, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "alice", byEmail.Username)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)
}

func TestGormUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := gormpersistence.NewGormUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &domain.User{Username: "alice", Email: "a@x.com", Password: "h"}))

	err := repo.Save(ctx, &domain.User{Username: "imposter", Email: "a@x.com", Password: "h"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrDuplicateEntry))
}

func TestGormUserRepository_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := gormpersistence.NewGormUserRepository(db)
	ctx := context.Background()

	_, err := repo.FindByEmail(ctx, "ghost@x.com")
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))

	_, err = repo.FindByID(ctx, 12345)
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))
}

func TestGormPostRepository_FindByID_PreloadsAuthor(t *testing.T) {
	db := newTestDB(t)
	users := gormpersistence.NewGormUserRepository(db)
	posts := gormpersistence.NewGormPostRepository(db)
	ctx := context.Background()

	author := &domain.User{Username: "alice", Email: "a@x.com", Password: "h"}
	require.NoError(t, users.Save(ctx, author))

	post := &domain.Post{Title: "T", Summary: "S", Content: "C", AuthorID: author.ID}
	require.NoError(t, posts.Save(ctx, post))

	got, err := posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, "alice", got.Author.Username)
}

func TestGormPostRepository_FindLatest_OrderAndLimit(t *testing.T) {
	db := newTestDB(t)
	users := gormpersistence.NewGormUserRepository(db)
	posts := gormpersistence.NewGormPostRepository(db)
	ctx := context.Background()

	author := &domain.User{Username: "alice", Email: "a@x.com", Password: "h"}
	require.NoError(t, users.Save(ctx, author))

	// Spread creation times out so the ordering is unambiguous.
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		post := &domain.Post{
			Title:     fmt.Sprintf("post-%d", i),
			AuthorID:  author.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, posts.Save(ctx, post))
	}

	latest, err := posts.FindLatest(ctx, 20)
	require.NoError(t, err)
	require.Len(t, latest, 20)
	assert.Equal(t, "post-24", latest[0].Title)
	assert.Equal(t, "post-5", latest[19].Title)
	for i := 1; i < len(latest); i++ {
		assert.False(t, latest[i].CreatedAt.After(latest[i-1].CreatedAt), "posts must be newest-first")
	}
	assert.Equal(t, "alice", latest[0].Author.Username)
}

func TestGormPostRepository_FindLatest_TiesBreakOnID(t *testing.T) {
	db := newTestDB(t)
	users := gormpersistence.NewGormUserRepository(db)
	posts := gormpersistence.NewGormPostRepository(db)
	ctx := context.Background()

	author := &domain.User{Username: "alice", Email: "a@x.com", Password: "h"}
	require.NoError(t, users.Save(ctx, author))

	// All posts share one creation instant, as they would with a
	// second-precision datetime column.
	when := time.Now().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		post := &domain.Post{
			Title:     fmt.Sprintf("post-%d", i),
			AuthorID:  author.ID,
			CreatedAt: when,
		}
		require.NoError(t, posts.Save(ctx, post))
	}

	latest, err := posts.FindLatest(ctx, 20)
	require.NoError(t, err)
	require.Len(t, latest, 5)
	for i := 1; i < len(latest); i++ {
		assert.Greater(t, latest[i-1].ID, latest[i].ID, "equal timestamps must order by id, newest insert first")
	}
}

func TestGormPostRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	users := gormpersistence.NewGormUserRepository(db)
	posts := gormpersistence.NewGormPostRepository(db)
	ctx := context.Background()

	author := &domain.User{Username: "alice", Email: "a@x.com", Password: "h"}
	require.NoError(t, users.Save(ctx, author))
	post := &domain.Post{Title: "T", AuthorID: author.ID}
	require.NoError(t, posts.Save(ctx, post))

	require.NoError(t, posts.Delete(ctx, post.ID))

	_, err := posts.FindByID(ctx, post.ID)
	assert.True(t, errors.Is(err, repository.ErrPostNotFound))

	err = posts.Delete(ctx, post.ID)
	assert.True(t, errors.Is(err, repository.ErrPostNotFound))
}
