package notifications

import (
	"context"
	"log"
	"runtime/debug"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Subscription is a live feed of notification payloads for one user.
// Close is safe to call more than once; only the first call tears the
// subscription down.
type Subscription struct {
	pubsub  *redis.PubSub
	notices chan string
	once    sync.Once
}

// Notices returns the channel of incoming payloads. The channel closes when
// the subscription is closed or the context given to SubscribeUser ends.
// For a nil-Redis subscription the channel never fires.
func (s *Subscription) Notices() <-chan string {
	return s.notices
}

// Close tears down the subscription exactly once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		if s.pubsub != nil {
			_ = s.pubsub.Close()
		}
	})
}

// SubscribeUser opens a Redis subscription on the user's notification
// channel. Without Redis the returned subscription is inert: Notices never
// fires and Close is a no-op.
func (n *Notifier) SubscribeUser(ctx context.Context, userID uint) *Subscription {
	notices := make(chan string, 16)
	if n.rdb == nil {
		return &Subscription{notices: notices}
	}

	pubsub := n.rdb.Subscribe(ctx, UserChannel(userID))
	sub := &Subscription{pubsub: pubsub, notices: notices}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in SubscribeUser pump: %v\n%s", r, debug.Stack())
			}
			close(notices)
		}()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				sub.Close()
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case notices <- msg.Payload:
				default:
					// Drop under backpressure; the consumer reloads the
					// whole inbox per notice, so a dropped payload only
					// costs coalescing.
				}
			}
		}
	}()

	return sub
}
