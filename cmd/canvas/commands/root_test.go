package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/canvas-client/pkg/canvas"
)

func TestNewRootCommand(t *testing.T) {
	resetViper(t)

	cmd := NewRootCommand("1.2.3", "abc", "today")
	assert.Equal(t, "canvas", cmd.Use)
	assert.Equal(t, "Canvas LMS API CLI", cmd.Short)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)

	for _, name := range []string{"version", "config", "user", "courses", "find-course", "students", "assignments", "demo", "discover"} {
		assert.NotNil(t, findSubcommand(cmd, name), "subcommand %s should exist", name)
	}

	for _, flagName := range []string{"config", "base-url", "token-file", "output", "debug"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flagName), "persistent flag %s should exist", flagName)
	}

	for _, flagName := range []string{"action", "course-id", "course-name"} {
		assert.NotNil(t, cmd.Flags().Lookup(flagName), "flag %s should exist", flagName)
	}

	outputFlag := cmd.PersistentFlags().Lookup("output")
	assert.Equal(t, "o", outputFlag.Shorthand)
	assert.Equal(t, "json", outputFlag.DefValue)
}

func TestCoursesCommand(t *testing.T) {
	cmd := NewCoursesCommand()
	assert.Equal(t, "courses", cmd.Use)
	assert.Equal(t, []string{"course"}, cmd.Aliases)
	assert.NotNil(t, cmd.Flags().Lookup("limit"))

	get := findSubcommand(cmd, "get")
	require.NotNil(t, get)
	assert.Equal(t, "get COURSE_ID", get.Use)
	assert.NotNil(t, get.Args)
}

func TestStudentsAndAssignmentsCommands(t *testing.T) {
	students := NewStudentsCommand()
	assert.NotNil(t, students.Flags().Lookup("course-id"))
	assert.NotNil(t, students.Flags().Lookup("course-name"))

	assignments := NewAssignmentsCommand()
	assert.NotNil(t, assignments.Flags().Lookup("course-id"))
	assert.NotNil(t, assignments.Flags().Lookup("limit"))
	assert.Nil(t, assignments.Flags().Lookup("course-name"))
}

func TestRootCommand_NoAction(t *testing.T) {
	resetViper(t)
	calls := countingFactory(t)

	stdout, _, err := execute(t, nil)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Usage:")
	assert.Equal(t, 0, *calls)
}

func TestRootCommand_UnknownAction(t *testing.T) {
	resetViper(t)

	_, _, err := execute(t, nil, "--action", "grades")
	require.ErrorIs(t, err, canvas.ErrUnknownAction)
}

func TestVersionCommand(t *testing.T) {
	resetViper(t)

	stdout, _, err := execute(t, nil, "version")
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, map[string]string{"version": "1.2.3", "commit": "abc", "built": "today"}, info)
}

func TestConfigShowCommand(t *testing.T) {
	resetViper(t)
	t.Setenv("CANVAS_RETRY_MAX", "2")

	stdout, _, err := execute(t, nil, "config", "show", "--base-url", "https://x.instructure.com")
	require.NoError(t, err)

	var config Config
	require.NoError(t, json.Unmarshal([]byte(stdout), &config))
	assert.Equal(t, "https://x.instructure.com", config.BaseURL)
	assert.True(t, config.TokenPresent)
	assert.Equal(t, 2, config.RetryMax)
	assert.Len(t, config.Candidates, 3)
}

func TestReportError(t *testing.T) {
	respErr := &canvas.ResponseError{StatusCode: 404, Errors: []canvas.APIError{{Message: "The specified resource does not exist."}}}
	err := fmt.Errorf("failed to list students: %w", fmt.Errorf("course 9: %w", respErr))

	t.Run("plain", func(t *testing.T) {
		var buf bytes.Buffer

		ReportError(&buf, err, false)
		assert.Equal(t, "Error: "+err.Error()+"\n", buf.String())
	})

	t.Run("debug prints the chain", func(t *testing.T) {
		var buf bytes.Buffer

		ReportError(&buf, err, true)
		assert.Contains(t, buf.String(), "*canvas.ResponseError")
		assert.Contains(t, buf.String(), "status: 404")
	})

	t.Run("debug with joined causes", func(t *testing.T) {
		var buf bytes.Buffer

		ReportError(&buf, errors.Join(canvas.ErrNetwork, canvas.ErrAuthentication), true)
		assert.Contains(t, buf.String(), canvas.ErrNetwork.Error())
		assert.Contains(t, buf.String(), canvas.ErrAuthentication.Error())
	})
}
