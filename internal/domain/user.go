// Package domain defines the persisted data structures of the application.
package domain

import "time"

// User is a registered account. Email is the login identifier and must be
// unique; Password holds the bcrypt hash, never the plaintext, and is kept
// out of every JSON response.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(191);not null" json:"username"`
	Email     string    `gorm:"type:varchar(191);uniqueIndex:idx_email;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
