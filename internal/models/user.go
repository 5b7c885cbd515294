// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// ProfileVisibility controls who can view a user's profile.
type ProfileVisibility string

const (
	// VisibilityPublic makes the profile visible to everyone.
	VisibilityPublic ProfileVisibility = "public"
	// VisibilityPrivate hides the profile from everyone but the owner.
	VisibilityPrivate ProfileVisibility = "private"
	// VisibilityFollowers restricts the profile to accepted followers.
	VisibilityFollowers ProfileVisibility = "followers_only"
)

// MaxBioLength is the maximum profile bio length in characters.
const MaxBioLength = 160

// User represents a registered account. FollowersCount, FollowingCount and
// PostsCount are denormalized aggregates maintained in the same transaction
// as the rows they summarize. Deactivated users keep their row with
// IsActive=false; their content is excluded from feeds and listings.
type User struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	Username          string            `gorm:"uniqueIndex;not null" json:"username"`
	Email             string            `gorm:"uniqueIndex;not null" json:"email"`
	Password          string            `gorm:"not null" json:"-"`
	FirstName         string            `json:"first_name"`
	LastName          string            `json:"last_name"`
	Bio               string            `gorm:"type:varchar(160)" json:"bio"`
	AvatarURL         string            `json:"avatar_url"`
	Website           string            `json:"website"`
	Location          string            `json:"location"`
	ProfileVisibility ProfileVisibility `gorm:"type:varchar(20);default:'public'" json:"profile_visibility"`
	IsActive          bool              `gorm:"default:true;index" json:"is_active"`
	IsAdmin           bool              `gorm:"default:false" json:"is_admin"`
	FollowersCount    int               `gorm:"default:0" json:"followers_count"`
	FollowingCount    int               `gorm:"default:0" json:"following_count"`
	PostsCount        int               `gorm:"default:0" json:"posts_count"`
	LastLoginAt       *time.Time        `json:"last_login_at,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// ValidVisibility reports whether v is one of the known visibility levels.
func ValidVisibility(v ProfileVisibility) bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityFollowers:
		return true
	}
	return false
}

// UserSummary is the minimal author projection embedded in posts, comments
// and notifications.
type UserSummary struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url"`
}

// SearchedUser is the user-search projection: a profile card plus the
// viewer-specific follow annotation.
type SearchedUser struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Bio            string `json:"bio"`
	AvatarURL      string `json:"avatar_url"`
	FollowersCount int    `json:"followers_count"`
	IsFollowing    bool   `json:"is_following"`
}
