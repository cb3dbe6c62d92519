package domain

import "time"

// Post is a blog entry. Author is a belongs-to relation via AuthorID; reads
// preload it so responses can carry the author's username. Cover is the
// relative path of an uploaded image under the uploads directory, empty when
// no cover was supplied.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(191);not null" json:"title"`
	Summary   string    `gorm:"type:text" json:"summary"`
	Content   string    `gorm:"type:text" json:"content"`
	Cover     string    `gorm:"type:varchar(255)" json:"cover"`
	AuthorID  uint      `gorm:"index:idx_author_id;not null" json:"authorId"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
