package client_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/fivetwenty-io/canvas-client/internal/client"
	"github.com/fivetwenty-io/canvas-client/pkg/canvas"
)

// pagedHandler serves pages of a JSON array at path, linking each page to
// the following one through the Link header like Canvas does.
func pagedHandler(t *testing.T, path string, pages [][]interface{}, inspect func(r *http.Request)) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			http.NotFound(w, r)

			return
		}

		if inspect != nil {
			inspect(r)
		}

		page := 1
		if raw := r.URL.Query().Get("page"); raw != "" {
			_, _ = fmt.Sscanf(raw, "%d", &page)
		}

		if page < 1 || page > len(pages) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("[]"))

			return
		}

		if page < len(pages) {
			next := fmt.Sprintf("http://%s%s?page=%d&per_page=%s", r.Host, path, page+1, r.URL.Query().Get("per_page"))
			w.Header().Set("Link", fmt.Sprintf(`<%s>; rel="next"`, next))
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(pages[page-1])
	}
}

// errorHandler answers every request with status and a Canvas error body.
func errorHandler(status int, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = fmt.Fprintf(w, `{"errors":[{"message":%q}]}`, message)
	}
}

// invalidTokenHandler answers like Canvas does for a bad token: 401 with a
// Bearer challenge.
func invalidTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("WWW-Authenticate", `Bearer realm="canvas-lms"`)
		errorHandler(http.StatusUnauthorized, "Invalid access token.")(w, r)
	}
}

// newTestClient starts server with handler and returns a client for it.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(&canvas.Config{BaseURL: server.URL, AccessToken: "test-token"})
	require.NoError(t, err)

	return client
}

func strPtr(value string) *string {
	return &value
}
