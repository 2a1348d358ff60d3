package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOpen_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want error
	}{
		{name: "empty url", url: "", want: ErrEmptyConnectionURL},
		{name: "http scheme", url: "http://localhost:6379", want: ErrFailedToParseURL},
		{name: "no scheme", url: "localhost:6379", want: ErrFailedToParseURL},
		{name: "invalid port", url: "redis://localhost:notaport", want: ErrFailedToParseURL},
		{name: "invalid database", url: "redis://localhost:6379/notanumber", want: ErrFailedToParseURL},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			client, err := Open(context.Background(), Config{URL: tc.url})
			require.ErrorIs(t, err, tc.want)
			require.Nil(t, client)
		})
	}
}

func TestParse_AppliesPoolSettings(t *testing.T) {
	t.Parallel()

	opts, err := parse(Config{
		URL:          "rediss://:secret@cache.internal:6380/2",
		PoolSize:     32,
		MinIdleConns: 4,
		DialTimeout:  time.Second,
	})
	require.NoError(t, err)
	require.Equal(t, "cache.internal:6380", opts.Addr)
	require.Equal(t, 2, opts.DB)
	require.Equal(t, "secret", opts.Password)
	require.NotNil(t, opts.TLSConfig)
	require.Equal(t, 32, opts.PoolSize)
	require.Equal(t, 4, opts.MinIdleConns)
	require.Equal(t, time.Second, opts.DialTimeout)
}

func TestHealthcheck_NilClient(t *testing.T) {
	t.Parallel()
	require.ErrorIs(t, Healthcheck(nil)(context.Background()), ErrHealthcheckFailed)
}

type closer struct {
	closed bool
	err    error
}

func (c *closer) Close() error {
	c.closed = true
	return c.err
}

func TestShutdown(t *testing.T) {
	t.Parallel()

	boom := errors.New("close error")
	c := &closer{err: boom}
	require.ErrorIs(t, Shutdown(c)(context.Background()), boom)
	require.True(t, c.closed)
}

func TestWait(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	require.ErrorIs(t, wait(ctx, 10*time.Second), context.Canceled)
	require.Less(t, time.Since(start), time.Second)

	require.NoError(t, wait(context.Background(), 5*time.Millisecond))
}
