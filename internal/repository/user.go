// Package repository declares the persistence interfaces consumed by the
// service layer, decoupled from any concrete database.
package repository

import (
	"context"

	"github.com/Sujith0604/Blog/internal/domain"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// Save inserts the user (or updates it when ID is already set). Returns
	// ErrDuplicateEntry when the email is already taken.
	Save(ctx context.Context, user *domain.User) error
	// FindByEmail returns the user with the given email or ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns the user with the given id or ErrUserNotFound.
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}
