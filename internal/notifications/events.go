package notifications

import "encoding/json"

// Realtime event types pushed over the websocket bridge.
const (
	EventProjectCreated      = "project.created"
	EventProjectLiked        = "project.liked"
	EventNotificationCreated = "notification.created"
)

// Event is the wire envelope for realtime messages.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Encode marshals the event for publishing. Payloads are built from our own
// models, so a marshal failure is a programming error; it degrades to an
// empty payload rather than dropping the event type.
func (e Event) Encode() string {
	b, err := json.Marshal(e)
	if err != nil {
		b, _ = json.Marshal(Event{Type: e.Type})
	}
	return string(b)
}
