//go:build integration

package session_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flightdesk/pkg/redis"
	"github.com/dmitrymomot/flightdesk/pkg/session"
)

func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/0"
	}

	ctx := context.Background()
	client, err := redis.Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store := session.NewRedisStore(client, "test:session:")

	sess := session.New("id", "tok-"+time.Now().Format("150405.000"), time.Now().Add(time.Minute))
	require.NoError(t, sess.Set("token", "jwt"))
	require.NoError(t, store.Create(ctx, sess))
	t.Cleanup(func() { _ = store.Delete(ctx, sess.Token) })

	got, err := store.Get(ctx, sess.Token)
	require.NoError(t, err)
	var token string
	require.NoError(t, got.Get("token", &token))
	assert.Equal(t, "jwt", token)

	require.NoError(t, store.Delete(ctx, sess.Token))
	_, err = store.Get(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrNotFound)
}
