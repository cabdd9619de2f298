package commands

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/canvas-client/pkg/canvas"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// resetViper isolates a test from the global viper state and the user's home.
func resetViper(t *testing.T) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	SetDefaults()
	ConfigureLogging(io.Discard, false)

	t.Cleanup(func() {
		viper.Reset()
		ConfigureLogging(os.Stderr, false)
	})
}

// countingFactory replaces newClient with a factory that records calls and fails.
func countingFactory(t *testing.T) *int {
	t.Helper()

	calls := 0
	previous := newClient
	newClient = func() (canvas.Client, error) {
		calls++

		return nil, canvas.ErrNetwork
	}

	t.Cleanup(func() {
		newClient = previous
	})

	return &calls
}

// fakeCanvas serves a small Canvas instance with two courses.
func fakeCanvas(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/users/self", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.Header().Set("WWW-Authenticate", `Bearer realm="canvas-lms"`)
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errors":[{"message":"Invalid access token."}]}`))

			return
		}

		_, _ = w.Write([]byte(`{"id": 42, "name": "Ada Lovelace", "login_id": "al1"}`))
	})
	mux.HandleFunc("/api/v1/courses", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "Intro to X", "course_code": "DSAN6725", "workflow_state": "available"},
			{"id": 2, "name": "Data Y", "course_code": "DSAN6000"}
		]`))
	})
	mux.HandleFunc("/api/v1/courses/1/users", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": 10, "name": "Grace Hopper"}]`))
	})
	mux.HandleFunc("/api/v1/courses/1/assignments", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id": 100, "name": "Homework 1", "due_at": "2026-09-15T03:59:59Z", "points_possible": 10},
			{"id": 101, "name": "Participation"}
		]`))
	})
	mux.HandleFunc("/api/v1/courses/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 1, "name": "Intro to X", "course_code": "DSAN6725"}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

// writeToken writes a token file and returns its path.
func writeToken(t *testing.T, token string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".canvastoken")
	require.NoError(t, os.WriteFile(path, []byte(token+"\n"), 0o600))

	return path
}

// execute runs the root command with args against server and returns stdout and stderr.
func execute(t *testing.T, server *httptest.Server, args ...string) (string, string, error) {
	t.Helper()

	root := NewRootCommand("1.2.3", "abc", "today")

	var stdout, stderr bytes.Buffer

	root.SetOut(&stdout)
	root.SetErr(&stderr)

	fullArgs := []string{"--token-file", writeToken(t, "test-token")}
	if server != nil {
		fullArgs = append(fullArgs, "--base-url", server.URL)
	}

	root.SetArgs(append(fullArgs, args...))

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}
