package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flightdesk/pkg/session"
)

type booking struct {
	Seats    []int `json:"seats"`
	FlightID int   `json:"flight_id"`
}

func TestSession_New(t *testing.T) {
	t.Parallel()

	expiresAt := time.Now().Add(24 * time.Hour)
	sess := session.New("test-id", "test-token", expiresAt)

	assert.Equal(t, "test-id", sess.ID)
	assert.Equal(t, "test-token", sess.Token)
	assert.True(t, sess.IsNew())
	assert.True(t, sess.IsDirty())
	assert.NotNil(t, sess.Values)
	assert.False(t, sess.IsExpired())
}

func TestSession_Values(t *testing.T) {
	t.Parallel()

	sess := session.New("id", "token", time.Now().Add(time.Hour))
	sess.ClearDirty()

	require.NoError(t, sess.Set("booking", booking{FlightID: 7, Seats: []int{1, 2}}))
	assert.True(t, sess.IsDirty())
	assert.True(t, sess.Has("booking"))

	var got booking
	require.NoError(t, sess.Get("booking", &got))
	assert.Equal(t, booking{FlightID: 7, Seats: []int{1, 2}}, got)

	var token string
	assert.ErrorIs(t, sess.Get("missing", &token), session.ErrNotFound)
	assert.ErrorIs(t, sess.Get("booking", &token), session.ErrDecode)

	assert.ErrorIs(t, sess.Set("bad", func() {}), session.ErrEncode)
}

func TestSession_Delete(t *testing.T) {
	t.Parallel()

	sess := session.New("id", "token", time.Now().Add(time.Hour))
	require.NoError(t, sess.Set("key", "value"))
	sess.ClearDirty()

	sess.Delete("missing")
	assert.False(t, sess.IsDirty(), "deleting an absent key keeps the session clean")

	sess.Delete("key")
	assert.True(t, sess.IsDirty())
	assert.False(t, sess.Has("key"))
}

func TestSession_Clone(t *testing.T) {
	t.Parallel()

	sess := session.New("id", "token", time.Now().Add(time.Hour))
	require.NoError(t, sess.Set("a", 1))

	cp := sess.Clone()
	require.NoError(t, cp.Set("a", 2))

	var v int
	require.NoError(t, sess.Get("a", &v))
	assert.Equal(t, 1, v)
}

func TestSession_Expired(t *testing.T) {
	t.Parallel()

	sess := session.New("id", "token", time.Now().Add(-time.Second))
	assert.True(t, sess.IsExpired())
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore()

	sess := session.New("id", "tok", time.Now().Add(time.Hour))
	require.NoError(t, sess.Set("token", "jwt"))
	require.NoError(t, store.Create(ctx, sess))

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, got.IsDirty())
	assert.False(t, got.IsNew())

	var token string
	require.NoError(t, got.Get("token", &token))
	assert.Equal(t, "jwt", token)

	require.NoError(t, got.Set("token", "other"))
	again, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	require.NoError(t, again.Get("token", &token))
	assert.Equal(t, "jwt", token, "store returns copies")

	require.NoError(t, store.Update(ctx, got))
	again, err = store.Get(ctx, "tok")
	require.NoError(t, err)
	require.NoError(t, again.Get("token", &token))
	assert.Equal(t, "other", token)

	assert.ErrorIs(t, store.Update(ctx, session.New("x", "unknown", time.Now().Add(time.Hour))), session.ErrNotFound)

	require.NoError(t, store.Delete(ctx, "tok"))
	_, err = store.Get(ctx, "tok")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestMemoryStore_Expired(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore()

	require.NoError(t, store.Create(ctx, session.New("id", "tok", time.Now().Add(-time.Minute))))
	_, err := store.Get(ctx, "tok")
	assert.ErrorIs(t, err, session.ErrExpired)
	assert.Equal(t, 0, store.Len())
}
