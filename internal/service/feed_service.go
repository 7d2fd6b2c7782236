package service

import (
	"context"
	"log/slog"
	"time"

	"launchpad/internal/middleware"
	"launchpad/internal/models"
	"launchpad/internal/observability"
	"launchpad/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// FeedService aggregates project submissions with their engagement state
// and ranks them for display.
type FeedService struct {
	projectRepo repository.ProjectRepository
	now         func() time.Time
}

type BuildFeedInput struct {
	Limit         int
	Offset        int
	CurrentUserID uint
	Strategy      SortStrategy
}

func NewFeedService(projectRepo repository.ProjectRepository) *FeedService {
	return &FeedService{
		projectRepo: projectRepo,
		now:         time.Now,
	}
}

// BuildFeed fetches the submission page, enriches each item with its like
// count and the viewer's like state, and ranks the result.
//
// Degradation rules: a failed base fetch yields an empty feed, not an error;
// a failed like count zeroes that one item and leaves the rest alone; a
// failed viewer-likes lookup renders the page unliked. The feed is a read
// surface and should render with whatever survived.
func (s *FeedService) BuildFeed(ctx context.Context, in BuildFeedInput) []*models.Project {
	span, ctx := observability.NewSpan(ctx, "feed.build")
	defer span.End()
	span.AddAttributes(
		attribute.String("feed.strategy", string(in.Strategy)),
		attribute.Int("feed.limit", in.Limit),
	)

	middleware.FeedBuilds.WithLabelValues(string(in.Strategy)).Inc()

	projects, err := s.projectRepo.ListNewest(ctx, in.Limit, in.Offset)
	if err != nil {
		span.SetError(err)
		middleware.Logger.ErrorContext(ctx, "feed base fetch failed",
			slog.String("error", err.Error()))
		return []*models.Project{}
	}

	for _, p := range projects {
		s.enrichLikeCount(ctx, p)
	}
	s.markViewerLikes(ctx, projects, in.CurrentUserID)

	Rank(projects, in.Strategy, s.now())
	return projects
}

func (s *FeedService) enrichLikeCount(ctx context.Context, p *models.Project) {
	count, err := s.projectRepo.CountLikes(ctx, p.ID)
	if err != nil {
		middleware.PartialEnrichmentFailures.Inc()
		middleware.Logger.WarnContext(ctx, "like count fetch failed",
			slog.Uint64("project_id", uint64(p.ID)),
			slog.String("error", err.Error()))
		count = 0
	}
	p.LikeCount = int(count)
}

// markViewerLikes resolves the viewer's like state for the whole page in one
// membership query. Anonymous viewers skip the lookup; a failed lookup
// degrades the page to liked=false rather than failing the feed.
func (s *FeedService) markViewerLikes(ctx context.Context, projects []*models.Project, currentUserID uint) {
	if currentUserID == 0 || len(projects) == 0 {
		return
	}

	ids := make([]uint, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}

	likedIDs, err := s.projectRepo.GetLikedProjectIDs(ctx, currentUserID, ids)
	if err != nil {
		middleware.PartialEnrichmentFailures.Inc()
		middleware.Logger.WarnContext(ctx, "liked state fetch failed",
			slog.Uint64("user_id", uint64(currentUserID)),
			slog.String("error", err.Error()))
		return
	}

	liked := make(map[uint]struct{}, len(likedIDs))
	for _, id := range likedIDs {
		liked[id] = struct{}{}
	}
	for _, p := range projects {
		_, p.HasLiked = liked[p.ID]
	}
}

// GetProject returns a single submission with engagement state.
func (s *FeedService) GetProject(ctx context.Context, projectID, currentUserID uint) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID, currentUserID)
	if err != nil {
		return nil, models.NewNotFoundError("Project", projectID)
	}
	return project, nil
}
