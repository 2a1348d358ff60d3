package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResponseWriter(t *testing.T) {
	t.Parallel()

	t.Run("first status wins", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		rw := NewResponseWriter(rec)

		rw.WriteHeader(http.StatusNotFound)
		rw.WriteHeader(http.StatusOK)

		require.Equal(t, http.StatusNotFound, rw.Status())
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.True(t, rw.Written())
	})

	t.Run("write implies 200 and counts bytes", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		rw := NewResponseWriter(rec)
		require.False(t, rw.Written())

		n, err := rw.Write([]byte("hello"))
		require.NoError(t, err)
		require.Equal(t, 5, n)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, int64(5), rw.Size())
	})

	t.Run("wrapping twice shares state", func(t *testing.T) {
		t.Parallel()
		rw := NewResponseWriter(httptest.NewRecorder())
		require.Same(t, rw, NewResponseWriter(rw))
	})

	t.Run("supports response controller flush", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		rw := NewResponseWriter(rec)
		require.NoError(t, http.NewResponseController(rw).Flush())
		require.True(t, rec.Flushed)
	})
}
