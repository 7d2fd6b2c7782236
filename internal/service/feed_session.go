package service

import (
	"context"
	"log/slog"
	"sync"

	"launchpad/internal/middleware"
	"launchpad/internal/models"
	"launchpad/internal/repository"
)

// FeedSession holds one viewer's materialized feed and applies optimistic
// like toggles against it. The local patch lands before the write is
// attempted and is kept even if the write fails; the next Refresh
// reconciles with the database.
type FeedSession struct {
	mu       sync.Mutex
	feed     *FeedService
	projects []*models.Project

	projectRepo repository.ProjectRepository
	userID      uint
	strategy    SortStrategy
	limit       int
}

func NewFeedSession(feed *FeedService, projectRepo repository.ProjectRepository, userID uint, strategy SortStrategy, limit int) *FeedSession {
	return &FeedSession{
		feed:        feed,
		projectRepo: projectRepo,
		userID:      userID,
		strategy:    strategy,
		limit:       limit,
	}
}

// Refresh rebuilds the session's feed from the database.
func (s *FeedSession) Refresh(ctx context.Context) {
	projects := s.feed.BuildFeed(ctx, BuildFeedInput{
		Limit:         s.limit,
		CurrentUserID: s.userID,
		Strategy:      s.strategy,
	})

	s.mu.Lock()
	s.projects = projects
	s.mu.Unlock()
}

// Projects returns a snapshot of the current feed ordering.
func (s *FeedSession) Projects() []*models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// ToggleLike flips the viewer's like on a project. currentlyLiked is the
// state the caller observed; the intent is its inverse. Anonymous viewers
// are a no-op. The patch is idempotent: if the local item already carries
// the target state (a second click racing the first), nothing changes and
// the duplicate write is absorbed by the unique constraint.
func (s *FeedSession) ToggleLike(ctx context.Context, projectID uint, currentlyLiked bool) error {
	if s.userID == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wantLiked := !currentlyLiked
	if wantLiked {
		middleware.LikeToggles.WithLabelValues("like").Inc()
	} else {
		middleware.LikeToggles.WithLabelValues("unlike").Inc()
	}

	s.patchLocal(projectID, wantLiked)

	var err error
	if wantLiked {
		err = s.projectRepo.Like(ctx, s.userID, projectID)
	} else {
		err = s.projectRepo.Unlike(ctx, s.userID, projectID)
	}
	if err != nil {
		// Keep the optimistic state; the next refresh reconciles.
		middleware.Logger.WarnContext(ctx, "like write failed",
			slog.Uint64("project_id", uint64(projectID)),
			slog.Bool("liked", wantLiked),
			slog.String("error", err.Error()))
	}
	return err
}

func (s *FeedSession) patchLocal(projectID uint, wantLiked bool) {
	for _, p := range s.projects {
		if p.ID != projectID {
			continue
		}
		if p.HasLiked == wantLiked {
			return
		}
		p.HasLiked = wantLiked
		if wantLiked {
			p.LikeCount++
		} else if p.LikeCount > 0 {
			p.LikeCount--
		}
		return
	}
}
