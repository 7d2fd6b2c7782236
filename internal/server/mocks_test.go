package server

import (
	"context"
	"testing"

	"launchpad/internal/models"
	"launchpad/internal/notifications"
	"launchpad/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockProjectRepository is a mock of the ProjectRepository interface
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *models.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Project, error) {
	args := m.Called(ctx, id, currentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectRepository) ListNewest(ctx context.Context, limit, offset int) ([]*models.Project, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Project), args.Error(1)
}

func (m *MockProjectRepository) CountLikes(ctx context.Context, projectID uint) (int64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) GetLikedProjectIDs(ctx context.Context, userID uint, projectIDs []uint) ([]uint, error) {
	args := m.Called(ctx, userID, projectIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockProjectRepository) Like(ctx context.Context, userID, projectID uint) error {
	args := m.Called(ctx, userID, projectID)
	return args.Error(0)
}

func (m *MockProjectRepository) Unlike(ctx context.Context, userID, projectID uint) error {
	args := m.Called(ctx, userID, projectID)
	return args.Error(0)
}

// MockNotificationRepository is a mock of the NotificationRepository interface
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) CreateBatch(ctx context.Context, batch []*models.Notification) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListByRecipient(ctx context.Context, userID uint, limit int) ([]*models.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ListIDs(ctx context.Context, excludeID uint) ([]uint, error) {
	args := m.Called(ctx, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

// testServer wires a Server around mocked repositories. The notifier runs
// without Redis so publishes are silent no-ops.
func newTestServer(t *testing.T) (*Server, *MockProjectRepository, *MockNotificationRepository, *MockUserRepository) {
	t.Helper()

	projectRepo := new(MockProjectRepository)
	notificationRepo := new(MockNotificationRepository)
	userRepo := new(MockUserRepository)

	notifier := notifications.NewNotifier(nil)
	notificationSvc := service.NewNotificationService(notificationRepo, userRepo, notifier)

	s := &Server{
		projectRepo:      projectRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		notifier:         notifier,
		feedService:      service.NewFeedService(projectRepo),
		notificationSvc:  notificationSvc,
		projectService:   service.NewProjectService(projectRepo, userRepo, notificationSvc, notifier),
	}
	return s, projectRepo, notificationRepo, userRepo
}
