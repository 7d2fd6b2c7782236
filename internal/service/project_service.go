package service

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"launchpad/internal/middleware"
	"launchpad/internal/models"
	"launchpad/internal/notifications"
	"launchpad/internal/repository"
)

// ProjectService handles project submission and like toggling.
type ProjectService struct {
	projectRepo      repository.ProjectRepository
	userRepo         repository.UserRepository
	notificationsSvc *NotificationService
	publisher        RealtimePublisher
}

type CreateProjectInput struct {
	UserID       uint
	Title        string
	Description  string
	WebsiteURL   string
	ThumbnailURL string
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	notificationsSvc *NotificationService,
	publisher RealtimePublisher,
) *ProjectService {
	return &ProjectService{
		projectRepo:      projectRepo,
		userRepo:         userRepo,
		notificationsSvc: notificationsSvc,
		publisher:        publisher,
	}
}

func (s *ProjectService) CreateProject(ctx context.Context, in CreateProjectInput) (*models.Project, error) {
	const maxTitleLen = 120
	const maxDescriptionLen = 5000

	if in.UserID == 0 {
		return nil, models.NewUnauthorizedError("Sign in to submit a project")
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 120 characters)")
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if len(description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 5000 characters)")
	}

	website := strings.TrimSpace(in.WebsiteURL)
	if website == "" {
		return nil, models.NewValidationError("Website URL is required")
	}
	if !isValidHTTPURL(website) {
		return nil, models.NewValidationError("Website URL must be a valid http or https URL")
	}
	if in.ThumbnailURL != "" && !strings.HasPrefix(in.ThumbnailURL, "/") && !isValidHTTPURL(in.ThumbnailURL) {
		return nil, models.NewValidationError("Thumbnail URL must be a valid URL or upload path")
	}

	project := &models.Project{
		Title:        title,
		Description:  description,
		WebsiteURL:   website,
		ThumbnailURL: in.ThumbnailURL,
		UserID:       in.UserID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, models.NewInternalError(err)
	}

	// Announcement fan-out is best-effort; the submission already landed.
	actor, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "actor lookup failed for launch fan-out",
			slog.Uint64("user_id", uint64(in.UserID)),
			slog.String("error", err.Error()))
		return project, nil
	}
	project.User = *actor
	if err := s.notificationsSvc.NotifyNewProject(ctx, actor, project); err != nil {
		middleware.Logger.WarnContext(ctx, "launch fan-out failed",
			slog.Uint64("project_id", uint64(project.ID)),
			slog.String("error", err.Error()))
	}

	return project, nil
}

// ToggleLike flips the user's like on a project and returns the new state
// plus the authoritative count. The first like in a direction wins; a
// concurrent duplicate insert is absorbed by the unique constraint.
func (s *ProjectService) ToggleLike(ctx context.Context, userID, projectID uint) (bool, int64, error) {
	if userID == 0 {
		return false, 0, models.NewUnauthorizedError("Sign in to like projects")
	}

	project, err := s.projectRepo.GetByID(ctx, projectID, userID)
	if err != nil {
		return false, 0, models.NewNotFoundError("Project", projectID)
	}

	liked := !project.HasLiked
	if liked {
		middleware.LikeToggles.WithLabelValues("like").Inc()
		err = s.projectRepo.Like(ctx, userID, projectID)
	} else {
		middleware.LikeToggles.WithLabelValues("unlike").Inc()
		err = s.projectRepo.Unlike(ctx, userID, projectID)
	}
	if err != nil {
		return false, 0, models.NewInternalError(err)
	}

	count, err := s.projectRepo.CountLikes(ctx, projectID)
	if err != nil {
		// Fall back to the pre-toggle count adjusted locally.
		count = int64(project.LikeCount)
		if liked {
			count++
		} else if count > 0 {
			count--
		}
	}

	if liked {
		if actor, actorErr := s.userRepo.GetByID(ctx, userID); actorErr == nil {
			if notifyErr := s.notificationsSvc.NotifyLike(ctx, actor, project); notifyErr != nil {
				middleware.Logger.WarnContext(ctx, "like notification failed",
					slog.Uint64("project_id", uint64(projectID)),
					slog.String("error", notifyErr.Error()))
			}
		}
	}

	if err := s.publisher.PublishBroadcast(ctx, notifications.Event{
		Type: notifications.EventProjectLiked,
		Payload: map[string]any{
			"project_id": projectID,
			"like_count": count,
		},
	}.Encode()); err != nil {
		middleware.Logger.WarnContext(ctx, "like broadcast failed",
			slog.String("error", err.Error()))
	}

	return liked, count, nil
}

func isValidHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
