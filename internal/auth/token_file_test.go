package auth_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/canvas-client/internal/auth"
	"github.com/fivetwenty-io/canvas-client/pkg/canvas"
)

func writeTokenFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".canvastoken")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
		err      error
	}{
		{name: "trailing newline", content: "abc123\n", expected: "abc123"},
		{name: "surrounding whitespace", content: "  \t1~tok en \r\n", expected: "1~tok en"},
		{name: "whitespace only", content: " \n\t\n", err: canvas.ErrCredentialEmpty},
		{name: "empty file", content: "", err: canvas.ErrCredentialEmpty},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeTokenFile(t, tt.content)

			token, err := auth.LoadToken(path)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				assert.Contains(t, err.Error(), path)
				assert.Empty(t, token)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, token)
		})
	}
}

func TestLoadToken_Missing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", ".canvastoken")

	_, err := auth.LoadToken(path)
	require.ErrorIs(t, err, canvas.ErrCredentialNotFound)
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), ".canvastoken")
}

func TestLoadToken_ReadsEveryCall(t *testing.T) {
	t.Parallel()

	path := writeTokenFile(t, "first")

	token, err := auth.LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "first", token)

	require.NoError(t, os.WriteFile(path, []byte("second"), 0o600))

	token, err = auth.LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "second", token)
}

//nolint:paralleltest // t.Setenv cannot be used with t.Parallel
func TestLoadToken_DefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	expected := filepath.Join(home, ".canvas", ".canvastoken")

	path, err := auth.DefaultTokenPath()
	require.NoError(t, err)
	assert.Equal(t, expected, path)

	_, err = auth.LoadToken("")
	require.ErrorIs(t, err, canvas.ErrCredentialNotFound)
	assert.Contains(t, err.Error(), expected)

	require.NoError(t, os.MkdirAll(filepath.Dir(expected), 0o700))
	require.NoError(t, os.WriteFile(expected, []byte("from-home\n"), 0o600))

	token, err := auth.LoadToken("")
	require.NoError(t, err)
	assert.Equal(t, "from-home", token)
}

func TestTokenManagers(t *testing.T) {
	t.Parallel()

	t.Run("static", func(t *testing.T) {
		t.Parallel()

		token, err := auth.NewStaticTokenManager("abc").GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "abc", token)
	})

	t.Run("file", func(t *testing.T) {
		t.Parallel()

		manager := auth.NewFileTokenManager(writeTokenFile(t, "from-file\n"))

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "from-file", token)
	})

	t.Run("file missing", func(t *testing.T) {
		t.Parallel()

		manager := auth.NewFileTokenManager(filepath.Join(t.TempDir(), "absent"))

		_, err := manager.GetToken(context.Background())
		require.ErrorIs(t, err, canvas.ErrCredentialNotFound)
	})
}
