package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
)

type recordingPublisher struct {
	published []*models.Notification
}

func (p *recordingPublisher) PublishNotification(_ context.Context, n *models.Notification) error {
	p.published = append(p.published, n)
	return nil
}

func TestNotifyStoresAndPublishes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "Alice", "alice@example.com", models.UserTypeAspirant)

	live := &recordingPublisher{}
	svc := NewNotificationService(f.notifications, live, f.log)

	err := svc.Notify(ctx, NotificationEvent{UserID: alice.ID, Type: models.NotificationStatusChanged, Message: "hello", Data: map[string]string{"job_id": "j1"}})
	require.NoError(t, err)
	require.NoError(t, svc.Notify(ctx, NotificationEvent{UserID: alice.ID, Type: models.NotificationStatusChanged, Message: "no data"}))

	require.Len(t, live.published, 2)
	var data map[string]string
	require.NoError(t, json.Unmarshal(live.published[0].Data, &data))
	assert.Equal(t, "j1", data["job_id"])

	page, err := svc.List(ctx, alice, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	err = svc.Notify(ctx, NotificationEvent{Type: "x"})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestMarkAsRead(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.register(t, "Alice", "alice@example.com", models.UserTypeAspirant)
	bob := f.register(t, "Bob", "bob@example.com", models.UserTypeAspirant)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.notification.Notify(ctx, NotificationEvent{UserID: alice.ID, Type: models.NotificationNewApplication, Message: "m"}))
	}
	page, err := f.notification.List(ctx, alice, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	id := page.Items[0].ID

	err = f.notification.MarkAsRead(ctx, bob, id)
	ae := appErr(t, err)
	assert.Equal(t, utils.CodeForbidden, ae.Code)
	assert.Equal(t, "Unauthorized", ae.Message)

	err = f.notification.MarkAsRead(ctx, alice, "missing")
	ae = appErr(t, err)
	assert.Equal(t, utils.CodeNotFound, ae.Code)
	assert.Equal(t, "Notification not found", ae.Message)

	require.NoError(t, f.notification.MarkAsRead(ctx, alice, id))
	require.NoError(t, f.notification.MarkAsRead(ctx, alice, id), "marking twice is a no-op")

	n, err := f.notification.MarkAllAsRead(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	n, err = f.notification.MarkAllAsRead(ctx, alice)
	require.NoError(t, err)
	assert.Zero(t, n)

	view, err := f.accounts.Profile(ctx, alice)
	require.NoError(t, err)
	assert.Zero(t, view.UnreadCount)
	assert.Len(t, view.Notifications, 3)
}
