package models

import (
	"time"
)

// Like represents a user's like on a post.
// The (UserID, PostID) pair is unique at the storage layer; a concurrent
// duplicate insert surfaces as a unique violation, which callers map to the
// Conflict error kind.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Post Post `gorm:"foreignKey:PostID" json:"-"`
}
