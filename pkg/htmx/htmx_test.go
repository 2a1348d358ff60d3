package htmx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/autoresum/autoresum-web/pkg/htmx"
)

func TestRedirect(t *testing.T) {
	t.Parallel()

	t.Run("regular request gets a 3xx", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		rec := httptest.NewRecorder()

		htmx.Redirect(rec, req, "/login", http.StatusFound)

		require.Equal(t, http.StatusFound, rec.Code)
		require.Equal(t, "/login", rec.Header().Get("Location"))
		require.Empty(t, rec.Header().Get(htmx.HeaderHXRedirect))
	})

	t.Run("htmx request gets HX-Redirect with 200", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set(htmx.HeaderHXRequest, "true")
		rec := httptest.NewRecorder()

		htmx.Redirect(rec, req, "/login", http.StatusFound)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "/login", rec.Header().Get(htmx.HeaderHXRedirect))
	})
}
