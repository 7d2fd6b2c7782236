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

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestFeedService_BuildFeed_EnrichesAndRanks(t *testing.T) {
	now := fixedNow()
	repo := noopProjectRepo()
	repo.listNewestFn = func(_ context.Context, limit, _ int) ([]*models.Project, error) {
		assert.Equal(t, 20, limit)
		return []*models.Project{
			{ID: 1, Title: "Quiet Launch", CreatedAt: now.Add(-1 * time.Hour)},
			{ID: 2, Title: "Crowd Favorite", CreatedAt: now.Add(-48 * time.Hour)},
		}, nil
	}
	repo.countLikesFn = func(_ context.Context, projectID uint) (int64, error) {
		if projectID == 2 {
			return 10, nil
		}
		return 0, nil
	}
	repo.getLikedProjectIDsFn = func(_ context.Context, userID uint, projectIDs []uint) ([]uint, error) {
		assert.Equal(t, uint(5), userID)
		assert.ElementsMatch(t, []uint{1, 2}, projectIDs)
		return []uint{2}, nil
	}

	svc := NewFeedService(repo)
	svc.now = fixedNow

	feed := svc.BuildFeed(context.Background(), BuildFeedInput{
		Limit:         20,
		CurrentUserID: 5,
		Strategy:      SortTopVoted,
	})

	require.Len(t, feed, 2)
	assert.Equal(t, uint(2), feed[0].ID)
	assert.Equal(t, 10, feed[0].LikeCount)
	assert.True(t, feed[0].HasLiked)
	assert.Equal(t, uint(1), feed[1].ID)
	assert.Zero(t, feed[1].LikeCount)
	assert.False(t, feed[1].HasLiked)
}

func TestFeedService_BuildFeed_BaseFetchFailureYieldsEmptyFeed(t *testing.T) {
	repo := noopProjectRepo()
	repo.listNewestFn = func(_ context.Context, _, _ int) ([]*models.Project, error) {
		return nil, errors.New("db down")
	}

	svc := NewFeedService(repo)
	feed := svc.BuildFeed(context.Background(), BuildFeedInput{Limit: 20, Strategy: SortNewest})

	assert.NotNil(t, feed)
	assert.Empty(t, feed)
}

func TestFeedService_BuildFeed_PartialEnrichmentFailureDegradesItem(t *testing.T) {
	now := fixedNow()
	repo := noopProjectRepo()
	repo.listNewestFn = func(_ context.Context, _, _ int) ([]*models.Project, error) {
		return []*models.Project{
			{ID: 1, CreatedAt: now.Add(-1 * time.Hour)},
			{ID: 2, CreatedAt: now.Add(-2 * time.Hour)},
		}, nil
	}
	repo.countLikesFn = func(_ context.Context, projectID uint) (int64, error) {
		if projectID == 1 {
			return 0, errors.New("likes table hiccup")
		}
		return 4, nil
	}

	svc := NewFeedService(repo)
	svc.now = fixedNow

	feed := svc.BuildFeed(context.Background(), BuildFeedInput{Limit: 20, Strategy: SortNewest})

	require.Len(t, feed, 2)
	assert.Zero(t, feed[0].LikeCount)
	assert.Equal(t, 4, feed[1].LikeCount)
}

func TestFeedService_BuildFeed_LikedLookupFailureRendersUnliked(t *testing.T) {
	now := fixedNow()
	repo := noopProjectRepo()
	repo.listNewestFn = func(_ context.Context, _, _ int) ([]*models.Project, error) {
		return []*models.Project{
			{ID: 1, CreatedAt: now.Add(-1 * time.Hour)},
			{ID: 2, CreatedAt: now.Add(-2 * time.Hour)},
		}, nil
	}
	repo.countLikesFn = func(_ context.Context, _ uint) (int64, error) {
		return 3, nil
	}
	repo.getLikedProjectIDsFn = func(_ context.Context, _ uint, _ []uint) ([]uint, error) {
		return nil, errors.New("likes table hiccup")
	}

	svc := NewFeedService(repo)
	svc.now = fixedNow

	feed := svc.BuildFeed(context.Background(), BuildFeedInput{
		Limit:         20,
		CurrentUserID: 5,
		Strategy:      SortNewest,
	})

	require.Len(t, feed, 2)
	for _, p := range feed {
		assert.Equal(t, 3, p.LikeCount)
		assert.False(t, p.HasLiked)
	}
}

func TestFeedService_BuildFeed_AnonymousViewerSkipsLikedLookup(t *testing.T) {
	repo := noopProjectRepo()
	repo.listNewestFn = func(_ context.Context, _, _ int) ([]*models.Project, error) {
		return []*models.Project{{ID: 1, CreatedAt: fixedNow()}}, nil
	}
	repo.getLikedProjectIDsFn = func(_ context.Context, _ uint, _ []uint) ([]uint, error) {
		t.Fatal("liked lookup should not run for anonymous viewers")
		return nil, nil
	}

	svc := NewFeedService(repo)
	svc.now = fixedNow

	feed := svc.BuildFeed(context.Background(), BuildFeedInput{Limit: 20, Strategy: SortNewest})
	require.Len(t, feed, 1)
	assert.False(t, feed[0].HasLiked)
}

func TestFeedService_GetProject_NotFound(t *testing.T) {
	repo := noopProjectRepo()
	repo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Project, error) {
		return nil, errors.New("record not found")
	}

	svc := NewFeedService(repo)
	_, err := svc.GetProject(context.Background(), 99, 0)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
