package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/fivetwenty-io/canvas-client/internal/client"
	"github.com/fivetwenty-io/canvas-client/pkg/canvas"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires base URL", func(t *testing.T) {
		t.Parallel()

		client, err := New(&canvas.Config{AccessToken: "token"})
		require.ErrorIs(t, err, canvas.ErrBaseURLRequired)
		assert.Nil(t, client)
	})

	t.Run("wires resource clients without network I/O", func(t *testing.T) {
		t.Parallel()

		client, err := New(&canvas.Config{BaseURL: "https://school.instructure.com/", AccessToken: "token"})
		require.NoError(t, err)
		assert.Equal(t, "https://school.instructure.com", client.BaseURL())
		assert.NotNil(t, client.Users())
		assert.NotNil(t, client.Courses())
		assert.NotNil(t, client.Assignments())
	})

	t.Run("reads the token file per request", func(t *testing.T) {
		t.Parallel()

		tokenFile := filepath.Join(t.TempDir(), ".canvastoken")
		require.NoError(t, os.WriteFile(tokenFile, []byte("first\n"), 0o600))

		var (
			mu   sync.Mutex
			seen []string
		)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			seen = append(seen, r.Header.Get("Authorization"))
			mu.Unlock()

			_, _ = w.Write([]byte(`{"id": 1, "name": "Ada"}`))
		}))
		defer server.Close()

		client, err := New(&canvas.Config{BaseURL: server.URL, TokenFile: tokenFile})
		require.NoError(t, err)

		_, err = client.Users().Current(context.Background())
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(tokenFile, []byte("second\n"), 0o600))

		_, err = client.Users().Current(context.Background())
		require.NoError(t, err)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{"Bearer first", "Bearer second"}, seen)
	})

	t.Run("missing token file fails before the request", func(t *testing.T) {
		t.Parallel()

		client, err := New(&canvas.Config{
			BaseURL:   "https://school.instructure.com",
			TokenFile: filepath.Join(t.TempDir(), "absent"),
		})
		require.NoError(t, err)

		_, err = client.Users().Current(context.Background())
		require.ErrorIs(t, err, canvas.ErrCredentialNotFound)
	})
}
