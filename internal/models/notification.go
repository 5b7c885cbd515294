package models

import (
	"time"
)

// NotificationType classifies the action that produced a notification.
type NotificationType string

const (
	// NotificationFollow is created when someone follows the recipient.
	NotificationFollow NotificationType = "follow"
	// NotificationLike is created when someone likes the recipient's post.
	NotificationLike NotificationType = "like"
	// NotificationComment is created when someone comments on the recipient's post.
	NotificationComment NotificationType = "comment"
)

// Notification is a persisted fan-out record created as a side effect of
// like/comment/follow mutations. Creation is best-effort: a failed insert is
// logged but never fails the primary request.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	Recipient uint             `gorm:"column:recipient_id;not null;index" json:"recipient_id"`
	SenderID  uint             `gorm:"not null" json:"sender_id"`
	Type      NotificationType `gorm:"column:notification_type;type:varchar(20);not null" json:"notification_type"`
	PostID    *uint            `json:"post_id,omitempty"`
	Message   string           `json:"message"`
	IsRead    bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`

	Sender User  `gorm:"foreignKey:SenderID" json:"-"`
	Post   *Post `gorm:"foreignKey:PostID" json:"-"`
}

// NotificationView is the listing projection of a notification with its
// sender summary and, when present, a minimal post preview.
type NotificationView struct {
	ID        uint             `json:"id"`
	Type      NotificationType `json:"notification_type"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
	Sender    UserSummary      `json:"sender"`
	Post      *PostPreview     `json:"post,omitempty"`
}

// PostPreview is the minimal post projection embedded in notifications.
type PostPreview struct {
	ID       uint   `json:"id"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}
