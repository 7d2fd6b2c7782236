package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"launchpad/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetNotifications(t *testing.T) {
	app := fiber.New()
	s, _, notificationRepo, _ := newTestServer(t)
	withUser(app, 3)
	app.Get("/notifications", s.GetNotifications)

	rows := []*models.Notification{
		{
			ID:        1,
			Type:      models.NotificationLike,
			UserID:    3,
			ProjectID: 7,
			ActorID:   5,
			Actor:     models.User{ID: 5, DisplayName: "Riley"},
			Project:   models.Project{ID: 7, Title: "Orbit Tracker"},
		},
	}
	notificationRepo.On("ListByRecipient", mock.Anything, uint(3), 20).Return(rows, nil)

	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Entries []struct {
			Message string `json:"message"`
			Read    bool   `json:"read"`
		} `json:"entries"`
		UnreadCount int `json:"unread_count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	require.Len(t, body.Entries, 1)
	assert.Equal(t, "Riley liked Orbit Tracker", body.Entries[0].Message)
	assert.Equal(t, 1, body.UnreadCount)

	// Without ack the database read state is untouched.
	notificationRepo.AssertNotCalled(t, "MarkAllRead", mock.Anything, mock.Anything)
}

func TestGetNotifications_AckMarksRead(t *testing.T) {
	app := fiber.New()
	s, _, notificationRepo, _ := newTestServer(t)
	withUser(app, 3)
	app.Get("/notifications", s.GetNotifications)

	notificationRepo.On("ListByRecipient", mock.Anything, uint(3), 20).
		Return([]*models.Notification{{ID: 1, Type: models.NotificationLike, UserID: 3}}, nil)
	notificationRepo.On("MarkAllRead", mock.Anything, uint(3)).Return(int64(1), nil)

	req := httptest.NewRequest(http.MethodGet, "/notifications?ack=1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Entries keep their load-time read state even though the DB was acked.
	var body struct {
		UnreadCount int `json:"unread_count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.UnreadCount)

	notificationRepo.AssertCalled(t, "MarkAllRead", mock.Anything, uint(3))
}

func TestMarkNotificationsRead(t *testing.T) {
	app := fiber.New()
	s, _, notificationRepo, _ := newTestServer(t)
	withUser(app, 3)
	app.Post("/notifications/read", s.MarkNotificationsRead)

	notificationRepo.On("MarkAllRead", mock.Anything, uint(3)).Return(int64(4), nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/notifications/read", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]float64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(4), body["marked_read"])
}
