// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"encoding/json"
	"log"

	"launchpad/internal/notifications"
	"launchpad/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler handles WebSocket connections for the live feed and inbox.
//
// The client drives the session with JSON commands:
//
//	{"type":"feed.refresh","sort":"trending"}       rebuild and push the feed
//	{"type":"like.toggle","project_id":4,
//	 "currently_liked":false}                       optimistic like flip
//	{"type":"inbox.open"}                           load, ack, and follow the inbox
//
// Server pushes carry the same envelope: feed.snapshot, inbox.snapshot,
// inbox.updated, plus the broadcast events relayed from Redis by the hub.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		ctx := context.Background()

		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			log.Printf("WebSocket: Unauthenticated connection attempt")
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		if s.hub == nil {
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			log.Printf("WebSocket: Failed to register user %d: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		// Each connection carries its own materialized feed so optimistic
		// toggles patch locally before the write lands.
		session := service.NewFeedSession(
			s.feedService, s.projectRepo, userID,
			service.ParseSortStrategy(conn.Query("sort")), 20)

		bridge := service.NewInboxBridge(s.notificationSvc, s.notifier, userID, func(inbox *service.Inbox) {
			pushJSON(client, "inbox.updated", inbox)
		})
		defer bridge.Close()

		client.IncomingHandler = func(c *notifications.Client, message []byte) {
			var cmd struct {
				Type           string `json:"type"`
				Sort           string `json:"sort"`
				ProjectID      uint   `json:"project_id"`
				CurrentlyLiked bool   `json:"currently_liked"`
			}
			if err := json.Unmarshal(message, &cmd); err != nil {
				log.Printf("WebSocket: Invalid message format from user %d", userID)
				return
			}

			switch cmd.Type {
			case "feed.refresh":
				if cmd.Sort != "" {
					session = service.NewFeedSession(
						s.feedService, s.projectRepo, userID,
						service.ParseSortStrategy(cmd.Sort), 20)
				}
				session.Refresh(ctx)
				pushJSON(c, "feed.snapshot", session.Projects())

			case "like.toggle":
				if cmd.ProjectID == 0 {
					return
				}
				if err := session.ToggleLike(ctx, cmd.ProjectID, cmd.CurrentlyLiked); err != nil {
					log.Printf("WebSocket: like toggle failed for user %d: %v", userID, err)
				}
				// Push the patched feed even on failure; the optimistic state
				// is what the viewer should see until the next refresh.
				pushJSON(c, "feed.snapshot", session.Projects())

			case "inbox.open":
				inbox, err := bridge.Open(ctx)
				if err != nil {
					log.Printf("WebSocket: inbox open failed for user %d: %v", userID, err)
					return
				}
				pushJSON(c, "inbox.snapshot", inbox)
			}
		}

		session.Refresh(ctx)
		pushJSON(client, "feed.snapshot", session.Projects())

		go client.WritePump()

		// Read pump runs in the main handler goroutine (blocking)
		client.ReadPump()
	})
}

func pushJSON(c *notifications.Client, eventType string, payload any) {
	data, err := json.Marshal(notifications.Event{Type: eventType, Payload: payload})
	if err != nil {
		log.Printf("WebSocket: marshal %s failed: %v", eventType, err)
		return
	}
	c.TrySend(data)
}
