package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"launchpad/internal/middleware"
	"launchpad/internal/models"
	"launchpad/internal/notifications"
	"launchpad/internal/repository"
)

// inboxPageSize caps how many entries an inbox load returns.
const inboxPageSize = 20

// RealtimePublisher pushes encoded events toward connected clients.
// *notifications.Notifier is the production implementation.
type RealtimePublisher interface {
	PublishUser(ctx context.Context, userID uint, payload string) error
	PublishBroadcast(ctx context.Context, payload string) error
}

// NotificationService records social activity and serves the per-user inbox.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	publisher        RealtimePublisher
}

// InboxEntry is one rendered inbox line.
type InboxEntry struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	ProjectID uint      `json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Inbox is the rendered notification page for one user.
type Inbox struct {
	Entries     []InboxEntry `json:"entries"`
	UnreadCount int          `json:"unread_count"`
}

func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	publisher RealtimePublisher,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		publisher:        publisher,
	}
}

// LoadInbox returns the newest page of the user's notifications with display
// messages resolved. Missing actors or projects fall back to placeholders
// instead of dropping the entry.
func (s *NotificationService) LoadInbox(ctx context.Context, userID uint) (*Inbox, error) {
	rows, err := s.notificationRepo.ListByRecipient(ctx, userID, inboxPageSize)
	if err != nil {
		return nil, err
	}

	inbox := &Inbox{Entries: make([]InboxEntry, 0, len(rows))}
	for _, n := range rows {
		entry := InboxEntry{
			ID:        n.ID,
			Type:      n.Type,
			Message:   formatMessage(n),
			Read:      n.Read,
			ProjectID: n.ProjectID,
			CreatedAt: n.CreatedAt,
		}
		if !n.Read {
			inbox.UnreadCount++
		}
		inbox.Entries = append(inbox.Entries, entry)
	}
	return inbox, nil
}

// MarkAllRead flips the user's unread notifications and reports how many
// were flipped. Calling it on an already-read inbox is a no-op.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// OpenInbox loads the inbox and acknowledges it in one step. The returned
// entries keep the read state they had at load time so the client can style
// fresh entries; the database is marked read as a side effect of viewing.
func (s *NotificationService) OpenInbox(ctx context.Context, userID uint) (*Inbox, error) {
	inbox, err := s.LoadInbox(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.MarkAllRead(ctx, userID); err != nil {
		middleware.Logger.WarnContext(ctx, "mark all read failed",
			slog.Uint64("user_id", uint64(userID)),
			slog.String("error", err.Error()))
	}
	return inbox, nil
}

// NotifyLike records a like notification for the project owner and pushes a
// realtime event. Liking your own project produces nothing.
func (s *NotificationService) NotifyLike(ctx context.Context, actor *models.User, project *models.Project) error {
	if actor.ID == project.UserID {
		return nil
	}

	n := &models.Notification{
		Type:      models.NotificationLike,
		UserID:    project.UserID,
		ProjectID: project.ID,
		ActorID:   actor.ID,
		Actor:     *actor,
		Project:   *project,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return err
	}

	s.publishToUser(ctx, project.UserID, notifications.Event{
		Type:    notifications.EventNotificationCreated,
		Payload: entryFromModel(n),
	})
	return nil
}

// NotifyNewProject fans a launch announcement out to every other user.
func (s *NotificationService) NotifyNewProject(ctx context.Context, actor *models.User, project *models.Project) error {
	recipients, err := s.userRepo.ListIDs(ctx, actor.ID)
	if err != nil {
		return err
	}

	batch := make([]*models.Notification, 0, len(recipients))
	for _, id := range recipients {
		batch = append(batch, &models.Notification{
			Type:      models.NotificationNewProject,
			UserID:    id,
			ProjectID: project.ID,
			ActorID:   actor.ID,
		})
	}
	if err := s.notificationRepo.CreateBatch(ctx, batch); err != nil {
		return err
	}

	if err := s.publisher.PublishBroadcast(ctx, notifications.Event{
		Type:    notifications.EventProjectCreated,
		Payload: project,
	}.Encode()); err != nil {
		middleware.Logger.WarnContext(ctx, "broadcast publish failed",
			slog.String("error", err.Error()))
	}
	return nil
}

func (s *NotificationService) publishToUser(ctx context.Context, userID uint, event notifications.Event) {
	if err := s.publisher.PublishUser(ctx, userID, event.Encode()); err != nil {
		middleware.Logger.WarnContext(ctx, "user publish failed",
			slog.Uint64("user_id", uint64(userID)),
			slog.String("error", err.Error()))
	}
}

func entryFromModel(n *models.Notification) InboxEntry {
	return InboxEntry{
		ID:        n.ID,
		Type:      n.Type,
		Message:   formatMessage(n),
		Read:      n.Read,
		ProjectID: n.ProjectID,
		CreatedAt: n.CreatedAt,
	}
}

// formatMessage renders a notification for display. Either side of the
// sentence may be gone by read time (deleted account, removed project), so
// both fall back to placeholders.
func formatMessage(n *models.Notification) string {
	actor := actorName(&n.Actor)
	title := projectTitle(&n.Project)

	switch n.Type {
	case models.NotificationLike:
		return fmt.Sprintf("%s liked %s", actor, title)
	case models.NotificationComment:
		return fmt.Sprintf("%s commented on %s", actor, title)
	case models.NotificationNewProject:
		return fmt.Sprintf("%s launched %s", actor, title)
	default:
		return fmt.Sprintf("%s interacted with %s", actor, title)
	}
}

func actorName(u *models.User) string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return "Someone"
}

func projectTitle(p *models.Project) string {
	if p.Title != "" {
		return p.Title
	}
	return "a project"
}
