package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"launchpad/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionWithFeed(repo *projectRepoStub, userID uint) *FeedSession {
	svc := NewFeedService(repo)
	svc.now = fixedNow
	return NewFeedSession(svc, repo, userID, SortNewest, 20)
}

func seededRepo() *projectRepoStub {
	repo := noopProjectRepo()
	repo.listNewestFn = func(_ context.Context, _, _ int) ([]*models.Project, error) {
		return []*models.Project{
			{ID: 1, CreatedAt: fixedNow().Add(-time.Hour)},
			{ID: 2, CreatedAt: fixedNow().Add(-2 * time.Hour)},
		}, nil
	}
	repo.countLikesFn = func(_ context.Context, projectID uint) (int64, error) {
		if projectID == 2 {
			return 3, nil
		}
		return 0, nil
	}
	return repo
}

func TestFeedSession_ToggleLike_PatchesBeforeWriteOutcome(t *testing.T) {
	repo := seededRepo()
	var writes int32
	repo.likeFn = func(_ context.Context, userID, projectID uint) error {
		atomic.AddInt32(&writes, 1)
		assert.Equal(t, uint(5), userID)
		assert.Equal(t, uint(1), projectID)
		return nil
	}

	session := sessionWithFeed(repo, 5)
	session.Refresh(context.Background())

	err := session.ToggleLike(context.Background(), 1, false)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&writes))

	projects := session.Projects()
	require.Len(t, projects, 2)
	assert.True(t, projects[0].HasLiked)
	assert.Equal(t, 1, projects[0].LikeCount)
}

func TestFeedSession_ToggleLike_DoubleInvokeIsIdempotent(t *testing.T) {
	repo := seededRepo()
	var writes int32
	repo.likeFn = func(_ context.Context, _, _ uint) error {
		atomic.AddInt32(&writes, 1)
		return nil
	}

	session := sessionWithFeed(repo, 5)
	session.Refresh(context.Background())

	// Two rapid clicks observing the same stale state.
	require.NoError(t, session.ToggleLike(context.Background(), 1, false))
	require.NoError(t, session.ToggleLike(context.Background(), 1, false))

	projects := session.Projects()
	assert.True(t, projects[0].HasLiked)
	// The count moved once; the duplicate write is absorbed downstream.
	assert.Equal(t, 1, projects[0].LikeCount)
	assert.Equal(t, int32(2), atomic.LoadInt32(&writes))
}

func TestFeedSession_ToggleLike_LikeThenUnlikeNetsZero(t *testing.T) {
	repo := seededRepo()
	session := sessionWithFeed(repo, 5)
	session.Refresh(context.Background())

	require.NoError(t, session.ToggleLike(context.Background(), 2, false))
	require.NoError(t, session.ToggleLike(context.Background(), 2, true))

	projects := session.Projects()
	assert.False(t, projects[1].HasLiked)
	assert.Equal(t, 3, projects[1].LikeCount)
}

func TestFeedSession_ToggleLike_AnonymousIsNoOp(t *testing.T) {
	repo := seededRepo()
	repo.likeFn = func(_ context.Context, _, _ uint) error {
		t.Fatal("anonymous toggle must not write")
		return nil
	}

	session := sessionWithFeed(repo, 0)
	session.Refresh(context.Background())

	assert.NoError(t, session.ToggleLike(context.Background(), 1, false))
	assert.False(t, session.Projects()[0].HasLiked)
}

func TestFeedSession_ToggleLike_FailedWriteKeepsOptimisticState(t *testing.T) {
	repo := seededRepo()
	repo.likeFn = func(_ context.Context, _, _ uint) error {
		return errors.New("connection reset")
	}

	session := sessionWithFeed(repo, 5)
	session.Refresh(context.Background())

	err := session.ToggleLike(context.Background(), 1, false)
	assert.Error(t, err)

	// The local patch stays; the next refresh reconciles.
	projects := session.Projects()
	assert.True(t, projects[0].HasLiked)
	assert.Equal(t, 1, projects[0].LikeCount)
}

func TestFeedSession_RefreshReconcilesWithDatabase(t *testing.T) {
	repo := seededRepo()
	repo.likeFn = func(_ context.Context, _, _ uint) error {
		return errors.New("write lost")
	}

	session := sessionWithFeed(repo, 5)
	session.Refresh(context.Background())
	_ = session.ToggleLike(context.Background(), 1, false)
	require.True(t, session.Projects()[0].HasLiked)

	session.Refresh(context.Background())
	assert.False(t, session.Projects()[0].HasLiked)
	assert.Zero(t, session.Projects()[0].LikeCount)
}
