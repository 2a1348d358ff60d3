package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/autoresum/autoresum-web/pkg/cache"
	"github.com/autoresum/autoresum-web/pkg/session"
)

func newStore(t *testing.T) *session.CacheStore {
	t.Helper()
	c := cache.NewMemory(cache.WithCleanupInterval[*session.Session](0))
	t.Cleanup(func() { _ = c.Close() })
	return session.NewCacheStore(c)
}

func TestSession(t *testing.T) {
	t.Parallel()

	t.Run("new session is anonymous", func(t *testing.T) {
		t.Parallel()
		s := session.New("tok", time.Hour)
		require.NotEmpty(t, s.ID)
		require.False(t, s.IsAuthenticated())
		require.False(t, s.IsExpired())
		require.Greater(t, s.TTL(), 59*time.Minute)
	})

	t.Run("authenticated with user id", func(t *testing.T) {
		t.Parallel()
		s := session.New("tok", time.Hour)
		uid := "user-1"
		s.UserID = &uid
		require.True(t, s.IsAuthenticated())

		empty := ""
		s.UserID = &empty
		require.False(t, s.IsAuthenticated())
	})

	t.Run("ValueOr falls back on missing or mistyped values", func(t *testing.T) {
		t.Parallel()
		s := session.New("tok", time.Hour)
		s.Values["plan"] = "pro"
		s.Values["count"] = 3

		require.Equal(t, "pro", session.ValueOr(s, "plan", "free"))
		require.Equal(t, "free", session.ValueOr(s, "missing", "free"))
		require.Equal(t, "x", session.ValueOr(s, "count", "x"))
		require.Equal(t, 1, session.ValueOr[int](nil, "count", 1))
	})
}

func TestCacheStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("round trip by token", func(t *testing.T) {
		t.Parallel()
		store := newStore(t)
		s := session.New("tok-1", time.Hour)
		require.NoError(t, store.Create(ctx, s))

		got, err := store.Get(ctx, "tok-1")
		require.NoError(t, err)
		require.Equal(t, s.ID, got.ID)

		require.NoError(t, store.Delete(ctx, "tok-1"))
		_, err = store.Get(ctx, "tok-1")
		require.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()
		_, err := newStore(t).Get(ctx, "nope")
		require.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()
		store := newStore(t)
		_, err := store.Get(ctx, "")
		require.ErrorIs(t, err, session.ErrInvalidToken)
		require.ErrorIs(t, store.Create(ctx, session.New("", time.Hour)), session.ErrInvalidToken)
		require.ErrorIs(t, store.Delete(ctx, ""), session.ErrInvalidToken)
	})

	t.Run("expired session is rejected", func(t *testing.T) {
		t.Parallel()
		store := newStore(t)
		require.ErrorIs(t, store.Create(ctx, session.New("old", -time.Second)), session.ErrExpired)
	})
}
