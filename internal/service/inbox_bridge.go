package service

import (
	"context"
	"log/slog"
	"sync"

	"launchpad/internal/middleware"
	"launchpad/internal/notifications"
)

// InboxBridge keeps one user's inbox current while they have it open.
// Opening loads the page, acknowledges it, and attaches a live subscription;
// each incoming notice triggers a full reload so the bridge never has to
// merge partial state.
type InboxBridge struct {
	mu       sync.Mutex
	svc      *NotificationService
	notifier *notifications.Notifier
	userID   uint
	inbox    *Inbox
	sub      *notifications.Subscription
	onUpdate func(*Inbox)
}

// NewInboxBridge creates a bridge for one user. onUpdate is invoked with the
// reloaded inbox after every live notice; it may be nil.
func NewInboxBridge(svc *NotificationService, notifier *notifications.Notifier, userID uint, onUpdate func(*Inbox)) *InboxBridge {
	return &InboxBridge{
		svc:      svc,
		notifier: notifier,
		userID:   userID,
		onUpdate: onUpdate,
	}
}

// Open loads and acknowledges the inbox, then starts listening for live
// updates. Reopening replaces the live subscription: at most one is attached
// at a time, so each notice triggers a single reload. It must be paired with
// Close.
func (b *InboxBridge) Open(ctx context.Context) (*Inbox, error) {
	inbox, err := b.svc.OpenInbox(ctx, b.userID)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	if b.sub != nil {
		b.sub.Close()
	}
	b.inbox = inbox
	b.sub = b.notifier.SubscribeUser(ctx, b.userID)
	sub := b.sub
	b.mu.Unlock()

	go b.pump(ctx, sub)

	return inbox, nil
}

// Inbox returns the most recently loaded state.
func (b *InboxBridge) Inbox() *Inbox {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.inbox
}

// Close detaches the live subscription. Safe to call more than once.
func (b *InboxBridge) Close() {
	b.mu.Lock()
	sub := b.sub
	b.mu.Unlock()
	if sub != nil {
		sub.Close()
	}
}

func (b *InboxBridge) pump(ctx context.Context, sub *notifications.Subscription) {
	for range sub.Notices() {
		inbox, err := b.svc.LoadInbox(ctx, b.userID)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "inbox reload failed",
				slog.Uint64("user_id", uint64(b.userID)),
				slog.String("error", err.Error()))
			continue
		}

		b.mu.Lock()
		b.inbox = inbox
		b.mu.Unlock()

		if b.onUpdate != nil {
			b.onUpdate(inbox)
		}
	}
}
