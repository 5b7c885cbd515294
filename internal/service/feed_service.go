// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"
	"strings"
	"time"

	"socialconnect/internal/config"
	"socialconnect/internal/models"
	"socialconnect/internal/observability"
	"socialconnect/internal/repository"

	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
)

// DefaultFeedLimit is the page size used when a request omits the limit.
const DefaultFeedLimit = 20

// MaxFeedLimit caps the page size a client can request.
const MaxFeedLimit = 100

// RecentCommentsPerPost is how many comment previews each feed post carries.
const RecentCommentsPerPost = 3

// FeedService assembles personalized feed pages: audience resolution, post
// selection and the viewer-specific annotations.
type FeedService struct {
	postRepo    repository.PostRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
	userRepo    repository.UserRepository
	searchScope string
}

// FeedInput is the page request for the feed endpoint. Query switches the
// feed into search mode when non-empty.
type FeedInput struct {
	UserID uint
	Page   int
	Limit  int
	Query  string
}

// NewFeedService returns a new FeedService. searchScope decides whether a
// feed search covers all users or only the viewer's audience.
func NewFeedService(
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	searchScope string,
) *FeedService {
	if searchScope == "" {
		searchScope = config.SearchScopeGlobal
	}
	return &FeedService{
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		userRepo:    userRepo,
		searchScope: searchScope,
	}
}

// GetFeed returns one page of the viewer's feed with pagination metadata.
// Default mode selects posts authored by followed users plus the viewer's
// own; search mode matches post content and author names instead.
func (s *FeedService) GetFeed(ctx context.Context, in FeedInput) ([]models.FeedPost, *models.Pagination, error) {
	start := time.Now()
	page, limit := clampPage(in.Page, in.Limit)
	offset := (page - 1) * limit
	query := strings.TrimSpace(in.Query)

	var (
		posts []models.Post
		total int64
		err   error
		mode  = "following"
	)

	if query != "" {
		mode = "search"
		var authorIDs []uint
		if s.searchScope == config.SearchScopeFollowing {
			authorIDs, err = s.audience(ctx, in.UserID)
			if err != nil {
				return nil, nil, err
			}
		}
		posts, total, err = s.postRepo.SearchFeed(ctx, query, authorIDs, limit, offset)
	} else {
		var audience []uint
		audience, err = s.audience(ctx, in.UserID)
		if err != nil {
			return nil, nil, err
		}
		posts, total, err = s.postRepo.ListByAuthors(ctx, audience, limit, offset)
	}
	if err != nil {
		return nil, nil, err
	}

	feed, err := s.Annotate(ctx, posts, in.UserID)
	if err != nil {
		return nil, nil, err
	}

	observability.ObserveFeedAssembly(mode, start)
	return feed, models.NewPagination(page, limit, total), nil
}

// GetPost returns a single active post with the same annotations a feed
// entry carries.
func (s *FeedService) GetPost(ctx context.Context, postID, viewerID uint) (*models.FeedPost, error) {
	post, err := s.postRepo.GetActiveByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	feed, err := s.Annotate(ctx, []models.Post{*post}, viewerID)
	if err != nil {
		return nil, err
	}
	return &feed[0], nil
}

// UserPosts returns one page of a single author's active posts with feed
// annotations for the viewer.
func (s *FeedService) UserPosts(ctx context.Context, authorID, viewerID uint, page, limit int) ([]models.FeedPost, *models.Pagination, error) {
	page, limit = clampPage(page, limit)
	posts, total, err := s.postRepo.ListByAuthor(ctx, authorID, limit, (page-1)*limit)
	if err != nil {
		return nil, nil, err
	}
	feed, err := s.Annotate(ctx, posts, viewerID)
	if err != nil {
		return nil, nil, err
	}
	return feed, models.NewPagination(page, limit, total), nil
}

// ListPosts returns one page of all active posts, optionally narrowed to a
// category or author, with feed annotations for the viewer.
func (s *FeedService) ListPosts(ctx context.Context, viewerID uint, category models.PostCategory, authorID uint, page, limit int) ([]models.FeedPost, *models.Pagination, error) {
	if category != "" && !models.ValidCategory(category) {
		return nil, nil, models.NewValidationError("Invalid post category")
	}
	page, limit = clampPage(page, limit)

	active := true
	posts, total, err := s.postRepo.ListFiltered(ctx, repository.PostFilter{
		Category: category,
		AuthorID: authorID,
		Active:   &active,
	}, limit, (page-1)*limit)
	if err != nil {
		return nil, nil, err
	}

	feed, err := s.Annotate(ctx, posts, viewerID)
	if err != nil {
		return nil, nil, err
	}
	return feed, models.NewPagination(page, limit, total), nil
}

// audience is the set of author IDs whose posts appear in the viewer's feed:
// every followed user plus the viewer, deduplicated.
func (s *FeedService) audience(ctx context.Context, userID uint) ([]uint, error) {
	following, err := s.followRepo.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	audience := make([]uint, 0, len(following)+1)
	seen := make(map[uint]struct{}, len(following)+1)
	for _, id := range append(following, userID) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		audience = append(audience, id)
	}
	return audience, nil
}

// Annotate turns raw post rows into feed entries: author summaries, the
// viewer's like marks and up to RecentCommentsPerPost comment previews. The
// three lookups are batched and run concurrently.
func (s *FeedService) Annotate(ctx context.Context, posts []models.Post, viewerID uint) ([]models.FeedPost, error) {
	if len(posts) == 0 {
		return []models.FeedPost{}, nil
	}

	postIDs := make([]uint, 0, len(posts))
	authorIDSet := make(map[uint]struct{}, len(posts))
	authorIDs := make([]uint, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		if _, ok := authorIDSet[p.AuthorID]; !ok {
			authorIDSet[p.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, p.AuthorID)
		}
	}

	var (
		likedIDs []uint
		recent   map[uint][]models.CommentPreview
		authors  []models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		likedIDs, err = s.likeRepo.LikedPostIDs(gctx, viewerID, postIDs)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.commentRepo.RecentByPostIDs(gctx, postIDs, RecentCommentsPerPost)
		return err
	})
	g.Go(func() error {
		var err error
		authors, err = s.userRepo.ByIDs(gctx, authorIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	likedSet := make(map[uint]struct{}, len(likedIDs))
	for _, id := range likedIDs {
		likedSet[id] = struct{}{}
	}
	summaries := make(map[uint]models.UserSummary, len(authors))
	for i := range authors {
		var summary models.UserSummary
		if err := copier.Copy(&summary, &authors[i]); err != nil {
			return nil, models.NewInternalError(err)
		}
		summaries[authors[i].ID] = summary
	}

	feed := make([]models.FeedPost, 0, len(posts))
	for _, p := range posts {
		_, liked := likedSet[p.ID]
		previews := recent[p.ID]
		if previews == nil {
			previews = []models.CommentPreview{}
		}
		feed = append(feed, models.FeedPost{
			Post:           p,
			AuthorSummary:  summaries[p.AuthorID],
			IsLiked:        liked,
			RecentComments: previews,
		})
	}
	return feed, nil
}

// clampPage normalizes the page window: page is floored at 1, limit falls
// back to the default and is capped at the maximum.
func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}
	return page, limit
}
