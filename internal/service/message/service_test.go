package message

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gestionpro/erp-backend-go/internal/domain/message"
	"github.com/gestionpro/erp-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessageRepo struct {
	messages map[string]message.Message
	seq      int
}

func (r *fakeMessageRepo) Create(_ context.Context, m message.Message) (message.Message, error) {
	r.seq++
	m.ID = fmt.Sprintf("msg-%d", r.seq)
	m.CreatedAt = time.Now()
	r.messages[m.ID] = m
	return m, nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id string) (message.Message, error) {
	m, ok := r.messages[id]
	if !ok {
		return message.Message{}, message.ErrMessageNotFound
	}
	return m, nil
}

func (r *fakeMessageRepo) ListForUser(_ context.Context, req message.ListMessagesRequest) ([]message.Message, int64, error) {
	var out []message.Message
	for _, m := range r.messages {
		if m.RecipientID != req.UserID {
			continue
		}
		if req.Unread && m.IsRead() {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, id string) error {
	m, ok := r.messages[id]
	if !ok {
		return message.ErrMessageNotFound
	}
	if m.ReadAt == nil {
		now := time.Now()
		m.ReadAt = &now
		r.messages[id] = m
	}
	return nil
}

func (r *fakeMessageRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, m := range r.messages {
		if m.RecipientID == userID && !m.IsRead() {
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) { return u, nil }

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, _ string) (bool, error) { return false, nil }

func (r *fakeUserRepo) Update(_ context.Context, _ user.UpdateUserRequest) error { return nil }

func (r *fakeUserRepo) UpdatePassword(_ context.Context, _, _ string) error { return nil }

func (r *fakeUserRepo) SetActive(_ context.Context, _ string, _ bool) error { return nil }

func (r *fakeUserRepo) List(_ context.Context, _ user.ListUsersRequest) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) GetPermissions(_ context.Context, _ string) ([]user.Permission, error) {
	return nil, nil
}

func (r *fakeUserRepo) ReplacePermissions(_ context.Context, _ string, _ []user.Permission) error {
	return nil
}

// fakeUnreadCache counts hits so tests can tell cache serves from database
// recounts apart.
type fakeUnreadCache struct {
	counts      map[string]int64
	invalidated int
	hits        int
}

func (c *fakeUnreadCache) Get(_ context.Context, userID string) (int64, bool, error) {
	count, ok := c.counts[userID]
	if ok {
		c.hits++
	}
	return count, ok, nil
}

func (c *fakeUnreadCache) Set(_ context.Context, userID string, count int64) error {
	c.counts[userID] = count
	return nil
}

func (c *fakeUnreadCache) Invalidate(_ context.Context, userID string) error {
	c.invalidated++
	delete(c.counts, userID)
	return nil
}

func newTestService(t *testing.T) (message.MessageService, *fakeMessageRepo, *fakeUnreadCache) {
	t.Helper()
	messageRepo := &fakeMessageRepo{messages: make(map[string]message.Message)}
	userRepo := &fakeUserRepo{users: map[string]user.User{
		"alice": {ID: "alice", Email: "alice@gestionpro.fr", Role: user.RoleEmployee, IsActive: true},
		"bob":   {ID: "bob", Email: "bob@gestionpro.fr", Role: user.RoleEmployee, IsActive: true},
	}}
	cache := &fakeUnreadCache{counts: make(map[string]int64)}
	return NewMessageService(messageRepo, userRepo, cache), messageRepo, cache
}

func TestSendRejectsUnknownRecipient(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Send(context.Background(), "alice", message.SendMessageRequest{
		RecipientID: "nobody",
		Subject:     "hello",
		Body:        "anyone there?",
	})
	assert.ErrorIs(t, err, message.ErrRecipientUnknown)
}

func TestSendInvalidatesRecipientUnreadCache(t *testing.T) {
	svc, _, cache := newTestService(t)
	cache.counts["bob"] = 0

	_, err := svc.Send(context.Background(), "alice", message.SendMessageRequest{
		RecipientID: "bob",
		Subject:     "quote Q-2026-0001",
		Body:        "ready for your approval",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, cache.invalidated)
	_, ok := cache.counts["bob"]
	assert.False(t, ok)
}

func TestReadMarksAndIsOwnerOnly(t *testing.T) {
	svc, _, _ := newTestService(t)

	sent, err := svc.Send(context.Background(), "alice", message.SendMessageRequest{
		RecipientID: "bob",
		Subject:     "hello",
		Body:        "ping",
	})
	require.NoError(t, err)

	_, err = svc.Read(context.Background(), "alice", sent.ID)
	assert.ErrorIs(t, err, message.ErrNotRecipient)

	m, err := svc.Read(context.Background(), "bob", sent.ID)
	require.NoError(t, err)
	assert.True(t, m.IsRead())

	// Re-reading does not clear or change the read mark.
	again, err := svc.Read(context.Background(), "bob", sent.ID)
	require.NoError(t, err)
	assert.Equal(t, m.ReadAt, again.ReadAt)
}

func TestUnreadCountServesFromCacheThenRecounts(t *testing.T) {
	svc, _, cache := newTestService(t)

	for i := 0; i < 3; i++ {
		_, err := svc.Send(context.Background(), "alice", message.SendMessageRequest{
			RecipientID: "bob",
			Subject:     fmt.Sprintf("note %d", i),
			Body:        "content",
		})
		require.NoError(t, err)
	}

	// Cold cache: recount and refill.
	count, err := svc.UnreadCount(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// Warm cache: no recount happens, the cached figure is served.
	count, err = svc.UnreadCount(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Equal(t, 1, cache.hits)

	// Reading one message invalidates, the next count reflects it.
	messages, _, err := svc.Inbox(context.Background(), message.ListMessagesRequest{UserID: "bob", Unread: true})
	require.NoError(t, err)
	require.NotEmpty(t, messages)

	_, err = svc.Read(context.Background(), "bob", messages[0].ID)
	require.NoError(t, err)

	count, err = svc.UnreadCount(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
