package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"launchpad/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// projectRepoStub is a stub for repository.ProjectRepository.
type projectRepoStub struct {
	createFn             func(context.Context, *models.Project) error
	getByIDFn            func(context.Context, uint, uint) (*models.Project, error)
	listNewestFn         func(context.Context, int, int) ([]*models.Project, error)
	countLikesFn         func(context.Context, uint) (int64, error)
	getLikedProjectIDsFn func(context.Context, uint, []uint) ([]uint, error)
	likeFn               func(context.Context, uint, uint) error
	unlikeFn             func(context.Context, uint, uint) error
}

func (s *projectRepoStub) Create(ctx context.Context, project *models.Project) error {
	return s.createFn(ctx, project)
}
func (s *projectRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Project, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *projectRepoStub) ListNewest(ctx context.Context, limit, offset int) ([]*models.Project, error) {
	return s.listNewestFn(ctx, limit, offset)
}
func (s *projectRepoStub) CountLikes(ctx context.Context, projectID uint) (int64, error) {
	return s.countLikesFn(ctx, projectID)
}
func (s *projectRepoStub) GetLikedProjectIDs(ctx context.Context, userID uint, projectIDs []uint) ([]uint, error) {
	return s.getLikedProjectIDsFn(ctx, userID, projectIDs)
}
func (s *projectRepoStub) Like(ctx context.Context, userID, projectID uint) error {
	return s.likeFn(ctx, userID, projectID)
}
func (s *projectRepoStub) Unlike(ctx context.Context, userID, projectID uint) error {
	return s.unlikeFn(ctx, userID, projectID)
}

func noopProjectRepo() *projectRepoStub {
	return &projectRepoStub{
		createFn:             func(_ context.Context, _ *models.Project) error { return nil },
		getByIDFn:            func(_ context.Context, _, _ uint) (*models.Project, error) { return &models.Project{}, nil },
		listNewestFn:         func(_ context.Context, _, _ int) ([]*models.Project, error) { return nil, nil },
		countLikesFn:         func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		getLikedProjectIDsFn: func(_ context.Context, _ uint, _ []uint) ([]uint, error) { return nil, nil },
		likeFn:               func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:             func(_ context.Context, _, _ uint) error { return nil },
	}
}

// notificationRepoStub is a stub for repository.NotificationRepository.
type notificationRepoStub struct {
	createFn          func(context.Context, *models.Notification) error
	createBatchFn     func(context.Context, []*models.Notification) error
	listByRecipientFn func(context.Context, uint, int) ([]*models.Notification, error)
	markAllReadFn     func(context.Context, uint) (int64, error)
}

func (s *notificationRepoStub) Create(ctx context.Context, n *models.Notification) error {
	return s.createFn(ctx, n)
}
func (s *notificationRepoStub) CreateBatch(ctx context.Context, ns []*models.Notification) error {
	return s.createBatchFn(ctx, ns)
}
func (s *notificationRepoStub) ListByRecipient(ctx context.Context, userID uint, limit int) ([]*models.Notification, error) {
	return s.listByRecipientFn(ctx, userID, limit)
}
func (s *notificationRepoStub) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.markAllReadFn(ctx, userID)
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		createFn:          func(_ context.Context, _ *models.Notification) error { return nil },
		createBatchFn:     func(_ context.Context, _ []*models.Notification) error { return nil },
		listByRecipientFn: func(_ context.Context, _ uint, _ int) ([]*models.Notification, error) { return nil, nil },
		markAllReadFn:     func(_ context.Context, _ uint) (int64, error) { return 0, nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn  func(context.Context, *models.User) error
	getByIDFn func(context.Context, uint) (*models.User, error)
	listIDsFn func(context.Context, uint) ([]uint, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) ListIDs(ctx context.Context, excludeID uint) ([]uint, error) {
	return s.listIDsFn(ctx, excludeID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:  func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		listIDsFn: func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
	}
}

// publisherStub records published payloads.
type publisherStub struct {
	mu         sync.Mutex
	userMsgs   map[uint][]string
	broadcasts []string
	err        error
}

func newPublisherStub() *publisherStub {
	return &publisherStub{userMsgs: make(map[uint][]string)}
}

func (p *publisherStub) PublishUser(_ context.Context, userID uint, payload string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.userMsgs[userID] = append(p.userMsgs[userID], payload)
	return nil
}

func (p *publisherStub) PublishBroadcast(_ context.Context, payload string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.broadcasts = append(p.broadcasts, payload)
	return nil
}

func (p *publisherStub) userCount(userID uint) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.userMsgs[userID])
}

func (p *publisherStub) broadcastCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.broadcasts)
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertUnauthorizedError asserts that err is an AppError with code UNAUTHORIZED.
func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}
