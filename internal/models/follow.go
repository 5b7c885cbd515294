package models

import (
	"time"
)

// Follow represents a directed follow edge from one user to another.
// The (FollowerID, FollowingID) pair is unique at the storage layer and
// FollowerID must never equal FollowingID; the self-follow guard is enforced
// in the service layer before the insert is attempted.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"follower_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`

	Follower  User `gorm:"foreignKey:FollowerID" json:"-"`
	Following User `gorm:"foreignKey:FollowingID" json:"-"`
}
