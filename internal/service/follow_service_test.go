package service

import (
	"context"
	"testing"

	"socialconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFollowFixture() (*FollowService, *MockFollowRepository, *MockUserRepository, *MockNotificationRepository) {
	followRepo := new(MockFollowRepository)
	userRepo := new(MockUserRepository)
	notifRepo := new(MockNotificationRepository)
	svc := NewFollowService(followRepo, userRepo, notifRepo)
	return svc, followRepo, userRepo, notifRepo
}

func TestFollowSelfRejected(t *testing.T) {
	svc, followRepo, _, _ := newFollowFixture()

	err := svc.Follow(context.Background(), 1, 1)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, "You cannot follow yourself", appErr.Message)
	followRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestFollowCreatesEdgeAndNotifies(t *testing.T) {
	svc, followRepo, userRepo, notifRepo := newFollowFixture()

	userRepo.On("GetByID", mock.Anything, uint(2)).
		Return(&models.User{ID: 2, Username: "bob", IsActive: true}, nil)
	followRepo.On("Create", mock.Anything, uint(1), uint(2)).Return(nil)
	userRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, Username: "alice", IsActive: true}, nil)
	notifRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.Recipient == 2 && n.SenderID == 1 && n.Type == models.NotificationFollow
	})).Return(nil)

	require.NoError(t, svc.Follow(context.Background(), 1, 2))
	followRepo.AssertExpectations(t)
	notifRepo.AssertExpectations(t)
}

func TestFollowDeactivatedTarget(t *testing.T) {
	svc, followRepo, userRepo, _ := newFollowFixture()

	userRepo.On("GetByID", mock.Anything, uint(2)).
		Return(&models.User{ID: 2, IsActive: false}, nil)

	err := svc.Follow(context.Background(), 1, 2)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	followRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestFollowDuplicateConflicts(t *testing.T) {
	svc, followRepo, userRepo, notifRepo := newFollowFixture()

	userRepo.On("GetByID", mock.Anything, uint(2)).
		Return(&models.User{ID: 2, IsActive: true}, nil)
	followRepo.On("Create", mock.Anything, uint(1), uint(2)).
		Return(models.NewConflictError("Already following"))

	err := svc.Follow(context.Background(), 1, 2)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
	notifRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUnfollowIsIdempotent(t *testing.T) {
	svc, followRepo, _, _ := newFollowFixture()

	followRepo.On("Delete", mock.Anything, uint(1), uint(2)).Return(nil)

	require.NoError(t, svc.Unfollow(context.Background(), 1, 2))
}

func TestUnfollowSelfRejected(t *testing.T) {
	svc, _, _, _ := newFollowFixture()

	err := svc.Unfollow(context.Background(), 3, 3)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestFollowersReturnsSummaries(t *testing.T) {
	svc, followRepo, userRepo, _ := newFollowFixture()

	userRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, IsActive: true}, nil)
	followRepo.On("ListFollowers", mock.Anything, uint(1), 20, 0).
		Return([]models.User{
			{ID: 2, Username: "bob", Password: "hashed-secret"},
			{ID: 3, Username: "carol"},
		}, int64(2), nil)

	followers, pagination, err := svc.Followers(context.Background(), 1, 1, 20)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	assert.Equal(t, "bob", followers[0].Username)
	assert.Equal(t, int64(2), pagination.Total)
}

func TestFollowingUnknownUser(t *testing.T) {
	svc, _, userRepo, _ := newFollowFixture()

	userRepo.On("GetByID", mock.Anything, uint(42)).
		Return(nil, models.NewNotFoundError("User"))

	_, _, err := svc.Following(context.Background(), 42, 1, 20)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
