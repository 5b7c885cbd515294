// Package seed provides helpers to create demo data for development and
// testing. It is never wired into the API server.
package seed

import (
	"fmt"
	"time"

	"socialconnect/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:          fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		Email:             gofakeit.Email(),
		FirstName:         gofakeit.FirstName(),
		LastName:          gofakeit.LastName(),
		Bio:               gofakeit.Sentence(8),
		AvatarURL:         fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		ProfileVisibility: models.VisibilityPublic,
		IsActive:          true,
	}

	// Allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a post struct without persisting it, with a realistic
// created_at spread over the configured window. Useful for batching.
func (f *Factory) BuildPost(author *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Content:  gofakeit.Sentence(gofakeit.Number(5, 30)),
		AuthorID: author.ID,
		Category: randomCategory(),
		IsActive: true,
	}
	if gofakeit.Bool() {
		post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	post.CreatedAt = time.Now().
		Add(-time.Duration(gofakeit.Number(0, maxDays*24)) * time.Hour).
		Add(-time.Duration(gofakeit.Number(0, 59)) * time.Minute)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single insert.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	batchSize := f.opts.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}
	return f.db.CreateInBatches(&posts, batchSize).Error
}

// CreateComment persists a comment on the provided post by the provided user.
func (f *Factory) CreateComment(user *models.User, post *models.Post, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content:  gofakeit.Sentence(gofakeit.Number(3, 15)),
		AuthorID: user.ID,
		PostID:   post.ID,
		IsActive: true,
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from user on post.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	like := &models.Like{
		UserID: user.ID,
		PostID: post.ID,
	}
	return f.db.Create(like).Error
}

// CreateFollow persists a follow edge from follower to followee.
func (f *Factory) CreateFollow(follower, followee *models.User) error {
	follow := &models.Follow{
		FollowerID:  follower.ID,
		FollowingID: followee.ID,
	}
	return f.db.Create(follow).Error
}

// CreateNotification persists a notification of the given type.
func (f *Factory) CreateNotification(recipient, sender *models.User, notifType models.NotificationType, message string, postID *uint) error {
	notification := &models.Notification{
		Recipient: recipient.ID,
		SenderID:  sender.ID,
		Type:      notifType,
		Message:   message,
		PostID:    postID,
		IsRead:    gofakeit.Bool(),
	}
	return f.db.Create(notification).Error
}

var seedCategories = []models.PostCategory{
	models.CategoryGeneral, models.CategoryGeneral, models.CategoryGeneral,
	models.CategoryQuestion, models.CategoryAnnouncement,
}

func randomCategory() models.PostCategory {
	return seedCategories[gofakeit.Number(0, len(seedCategories)-1)]
}
