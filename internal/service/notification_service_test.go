package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"launchpad/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_LoadInbox_RendersMessages(t *testing.T) {
	nRepo := noopNotificationRepo()
	nRepo.listByRecipientFn = func(_ context.Context, userID uint, limit int) ([]*models.Notification, error) {
		assert.Equal(t, uint(1), userID)
		assert.Equal(t, 20, limit)
		return []*models.Notification{
			{
				ID:        3,
				Type:      models.NotificationLike,
				Read:      false,
				UserID:    1,
				ProjectID: 9,
				Actor:     models.User{DisplayName: "Riley"},
				Project:   models.Project{ID: 9, Title: "Orbit Tracker"},
				CreatedAt: time.Now(),
			},
			{
				ID:        2,
				Type:      models.NotificationNewProject,
				Read:      true,
				UserID:    1,
				ProjectID: 8,
				Actor:     models.User{Email: "sam@example.com"},
				Project:   models.Project{ID: 8, Title: "Pixel Forge"},
			},
		}, nil
	}

	svc := NewNotificationService(nRepo, noopUserRepo(), newPublisherStub())
	inbox, err := svc.LoadInbox(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, inbox.Entries, 2)
	assert.Equal(t, "Riley liked Orbit Tracker", inbox.Entries[0].Message)
	assert.Equal(t, "sam launched Pixel Forge", inbox.Entries[1].Message)
	assert.Equal(t, 1, inbox.UnreadCount)
}

func TestNotificationService_LoadInbox_PlaceholdersForMissingActorAndProject(t *testing.T) {
	nRepo := noopNotificationRepo()
	nRepo.listByRecipientFn = func(_ context.Context, _ uint, _ int) ([]*models.Notification, error) {
		return []*models.Notification{
			{ID: 1, Type: models.NotificationLike, UserID: 1},
		}, nil
	}

	svc := NewNotificationService(nRepo, noopUserRepo(), newPublisherStub())
	inbox, err := svc.LoadInbox(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, inbox.Entries, 1)
	assert.Equal(t, "Someone liked a project", inbox.Entries[0].Message)
}

func TestNotificationService_OpenInbox_MarksReadAsSideEffect(t *testing.T) {
	nRepo := noopNotificationRepo()
	nRepo.listByRecipientFn = func(_ context.Context, _ uint, _ int) ([]*models.Notification, error) {
		return []*models.Notification{
			{ID: 1, Type: models.NotificationLike, Read: false, UserID: 1},
		}, nil
	}
	var marked int
	nRepo.markAllReadFn = func(_ context.Context, userID uint) (int64, error) {
		assert.Equal(t, uint(1), userID)
		marked++
		return 1, nil
	}

	svc := NewNotificationService(nRepo, noopUserRepo(), newPublisherStub())
	inbox, err := svc.OpenInbox(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, marked)
	// The returned entries keep their load-time read state.
	assert.False(t, inbox.Entries[0].Read)
	assert.Equal(t, 1, inbox.UnreadCount)
}

func TestNotificationService_OpenInbox_MarkFailureStillReturnsInbox(t *testing.T) {
	nRepo := noopNotificationRepo()
	nRepo.markAllReadFn = func(_ context.Context, _ uint) (int64, error) {
		return 0, errors.New("update failed")
	}

	svc := NewNotificationService(nRepo, noopUserRepo(), newPublisherStub())
	inbox, err := svc.OpenInbox(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, inbox)
}

func TestNotificationService_NotifyLike_SkipsSelfLike(t *testing.T) {
	nRepo := noopNotificationRepo()
	nRepo.createFn = func(_ context.Context, _ *models.Notification) error {
		t.Fatal("self-like must not create a notification")
		return nil
	}

	pub := newPublisherStub()
	svc := NewNotificationService(nRepo, noopUserRepo(), pub)

	actor := &models.User{ID: 7}
	project := &models.Project{ID: 1, UserID: 7}
	require.NoError(t, svc.NotifyLike(context.Background(), actor, project))
	assert.Zero(t, pub.userCount(7))
}

func TestNotificationService_NotifyLike_CreatesAndPublishes(t *testing.T) {
	var created *models.Notification
	nRepo := noopNotificationRepo()
	nRepo.createFn = func(_ context.Context, n *models.Notification) error {
		created = n
		return nil
	}

	pub := newPublisherStub()
	svc := NewNotificationService(nRepo, noopUserRepo(), pub)

	actor := &models.User{ID: 7, DisplayName: "Riley"}
	project := &models.Project{ID: 1, UserID: 3, Title: "Orbit Tracker"}
	require.NoError(t, svc.NotifyLike(context.Background(), actor, project))

	require.NotNil(t, created)
	assert.Equal(t, models.NotificationLike, created.Type)
	assert.Equal(t, uint(3), created.UserID)
	assert.Equal(t, uint(7), created.ActorID)
	assert.False(t, created.Read)
	assert.Equal(t, 1, pub.userCount(3))
}

func TestNotificationService_NotifyNewProject_FansOutToOthers(t *testing.T) {
	uRepo := noopUserRepo()
	uRepo.listIDsFn = func(_ context.Context, excludeID uint) ([]uint, error) {
		assert.Equal(t, uint(7), excludeID)
		return []uint{1, 2, 3}, nil
	}

	var batch []*models.Notification
	nRepo := noopNotificationRepo()
	nRepo.createBatchFn = func(_ context.Context, ns []*models.Notification) error {
		batch = ns
		return nil
	}

	pub := newPublisherStub()
	svc := NewNotificationService(nRepo, uRepo, pub)

	actor := &models.User{ID: 7, DisplayName: "Riley"}
	project := &models.Project{ID: 4, UserID: 7, Title: "Orbit Tracker"}
	require.NoError(t, svc.NotifyNewProject(context.Background(), actor, project))

	require.Len(t, batch, 3)
	for _, n := range batch {
		assert.Equal(t, models.NotificationNewProject, n.Type)
		assert.Equal(t, uint(4), n.ProjectID)
		assert.Equal(t, uint(7), n.ActorID)
		assert.False(t, n.Read)
	}
	assert.Equal(t, 1, pub.broadcastCount())
}

func TestNotificationService_MarkAllRead_Idempotent(t *testing.T) {
	calls := 0
	nRepo := noopNotificationRepo()
	nRepo.markAllReadFn = func(_ context.Context, _ uint) (int64, error) {
		calls++
		if calls == 1 {
			return 5, nil
		}
		return 0, nil
	}

	svc := NewNotificationService(nRepo, noopUserRepo(), newPublisherStub())

	first, err := svc.MarkAllRead(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), first)

	second, err := svc.MarkAllRead(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, second)
}
