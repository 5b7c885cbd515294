package seed

import (
	"fmt"
	"log"

	"socialconnect/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	// SkipBcrypt stores plaintext passwords for faster local seeding.
	SkipBcrypt bool
	// BatchSize controls batched post inserts.
	BatchSize int
	// MaxDays is the created_at spread window for generated posts.
	MaxDays int
}

// Seeder populates the database with demo users, posts and engagement data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// ClearAll truncates all seeded tables.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE notifications, likes, comments, follows, posts, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// SeedSocialMesh creates users and a randomized follow graph between them.
// The first user created is an admin account (admin@example.com).
func (s *Seeder) SeedSocialMesh(numUsers int) ([]*models.User, error) {
	users := make([]*models.User, 0, numUsers)

	admin, err := s.factory.CreateUser(func(u *models.User) {
		u.Username = "admin"
		u.Email = "admin@example.com"
		u.IsAdmin = true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}
	users = append(users, admin)

	for i := 1; i < numUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}
	log.Printf("Created %d users", len(users))

	// Each user follows a random subset of the others.
	follows := 0
	for _, follower := range users {
		targets := gofakeit.Number(2, min(10, len(users)-1))
		for j := 0; j < targets; j++ {
			followee := users[gofakeit.Number(0, len(users)-1)]
			if followee.ID == follower.ID {
				continue
			}
			if err := s.factory.CreateFollow(follower, followee); err != nil {
				// duplicate edge, skip
				continue
			}
			follows++
		}
	}
	log.Printf("Created %d follow edges", follows)

	if err := s.syncFollowCounts(); err != nil {
		return nil, fmt.Errorf("failed to sync follow counts: %w", err)
	}
	return users, nil
}

// SeedEngagement creates posts for the given users along with likes, comments
// and the notifications those actions would have produced.
func (s *Seeder) SeedEngagement(users []*models.User, numPosts int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to seed posts for")
	}

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		author := users[gofakeit.Number(0, len(users)-1)]
		posts = append(posts, s.factory.BuildPost(author))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("Created %d posts", len(posts))

	byID := make(map[uint]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	likes, comments := 0, 0
	for _, post := range posts {
		author := byID[post.AuthorID]

		numLikes := gofakeit.Number(0, min(15, len(users)))
		for j := 0; j < numLikes; j++ {
			liker := users[gofakeit.Number(0, len(users)-1)]
			if err := s.factory.CreateLike(liker, post); err != nil {
				continue
			}
			likes++
			if liker.ID != post.AuthorID {
				_ = s.factory.CreateNotification(author, liker, models.NotificationLike,
					fmt.Sprintf("%s liked your post", liker.Username), &post.ID)
			}
		}

		numComments := gofakeit.Number(0, 6)
		for j := 0; j < numComments; j++ {
			commenter := users[gofakeit.Number(0, len(users)-1)]
			if _, err := s.factory.CreateComment(commenter, post); err != nil {
				continue
			}
			comments++
			if commenter.ID != post.AuthorID {
				_ = s.factory.CreateNotification(author, commenter, models.NotificationComment,
					fmt.Sprintf("%s commented on your post", commenter.Username), &post.ID)
			}
		}
	}
	log.Printf("Created %d likes and %d comments", likes, comments)

	if err := s.syncEngagementCounts(); err != nil {
		return nil, fmt.Errorf("failed to sync engagement counts: %w", err)
	}
	return posts, nil
}

// syncFollowCounts recomputes the denormalized follower/following counters
// from the follows table.
func (s *Seeder) syncFollowCounts() error {
	if err := s.db.Exec(`UPDATE users SET followers_count =
		(SELECT COUNT(*) FROM follows WHERE follows.following_id = users.id)`).Error; err != nil {
		return err
	}
	return s.db.Exec(`UPDATE users SET following_count =
		(SELECT COUNT(*) FROM follows WHERE follows.follower_id = users.id)`).Error
}

// syncEngagementCounts recomputes the denormalized like/comment/post counters
// from their source tables.
func (s *Seeder) syncEngagementCounts() error {
	if err := s.db.Exec(`UPDATE posts SET like_count =
		(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id)`).Error; err != nil {
		return err
	}
	if err := s.db.Exec(`UPDATE posts SET comment_count =
		(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.is_active = true)`).Error; err != nil {
		return err
	}
	return s.db.Exec(`UPDATE users SET posts_count =
		(SELECT COUNT(*) FROM posts WHERE posts.author_id = users.id AND posts.is_active = true)`).Error
}
