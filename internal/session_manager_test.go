package internal_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flightdesk/internal"
	"github.com/dmitrymomot/flightdesk/pkg/session"
)

func requestWithCookie(name, value string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: name, Value: value})
	return r
}

func TestSessionManager_Lifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore()
	sm := internal.NewSessionManager(store, internal.WithSessionCookieName("sid"), internal.WithSessionSecure(true))

	sess, err := sm.Create(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.NotEmpty(t, sess.Token)
	assert.False(t, sess.IsDirty())

	loaded, err := sm.Load(ctx, requestWithCookie("sid", sess.Token))
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, sess.ID, loaded.ID)

	require.NoError(t, loaded.Set("k", "v"))
	require.NoError(t, sm.Save(ctx, loaded))
	assert.False(t, loaded.IsDirty())

	oldToken := loaded.Token
	require.NoError(t, sm.Rotate(ctx, loaded))
	assert.NotEqual(t, oldToken, loaded.Token)

	gone, err := sm.Load(ctx, requestWithCookie("sid", oldToken))
	require.NoError(t, err)
	assert.Nil(t, gone, "old token must not resolve after rotation")

	rotated, err := sm.Load(ctx, requestWithCookie("sid", loaded.Token))
	require.NoError(t, err)
	require.NotNil(t, rotated)
	var v string
	require.NoError(t, rotated.Get("k", &v))
	assert.Equal(t, "v", v)

	require.NoError(t, sm.Destroy(ctx, rotated))
	assert.Zero(t, store.Len())
}

func TestSessionManager_Load(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := session.NewMemoryStore()
	sm := internal.NewSessionManager(store)

	t.Run("no cookie", func(t *testing.T) {
		t.Parallel()

		sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Nil(t, sess)
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()

		sess, err := sm.Load(ctx, requestWithCookie("__sid", "nope"))
		require.NoError(t, err)
		assert.Nil(t, sess)
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()

		expired := session.New("id", "expired-token", time.Now().Add(-time.Minute))
		require.NoError(t, store.Create(ctx, expired))

		sess, err := sm.Load(ctx, requestWithCookie("__sid", "expired-token"))
		require.NoError(t, err)
		assert.Nil(t, sess)
	})
}

func TestSessionManager_Cookies(t *testing.T) {
	t.Parallel()

	sm := internal.NewSessionManager(session.NewMemoryStore(),
		internal.WithSessionMaxAge(time.Hour),
		internal.WithSessionDomain("example.com"),
		internal.WithSessionSameSite(http.SameSiteStrictMode),
	)
	sess, err := sm.Create(context.Background())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	sm.SetCookie(rec, sess)
	sm.ClearCookie(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, sess.Token, cookies[0].Value)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.Equal(t, "example.com", cookies[0].Domain)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
	assert.Equal(t, -1, cookies[1].MaxAge)
}
