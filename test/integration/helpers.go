//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	BaseURL    string
	TokenFile  string
	CourseName string
	CanvasPath string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	courseName := os.Getenv("CANVAS_TEST_COURSE")
	if courseName == "" {
		courseName = "6725"
	}

	return &TestConfig{
		BaseURL:    os.Getenv("CANVAS_BASE_URL"),
		TokenFile:  os.Getenv("CANVAS_TOKEN_FILE"),
		CourseName: courseName,
		CanvasPath: getCanvasPath(),
		Verbose:    os.Getenv("CANVAS_VERBOSE") == "true",
	}
}

// getCanvasPath determines the path to the canvas binary
func getCanvasPath() string {
	if path := os.Getenv("CANVAS_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../canvas",
		"./canvas",
		"../canvas",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "canvas"
}

// SkipIfMissingConfig skips the test unless a live Canvas instance is configured
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.BaseURL == "" || config.TokenFile == "" {
		t.Skip("CANVAS_BASE_URL or CANVAS_TOKEN_FILE not set, skipping integration test")
	}

	if _, err := os.Stat(config.CanvasPath); os.IsNotExist(err) {
		t.Skipf("canvas binary not found at %s, skipping integration test", config.CanvasPath)
	}
}

// CommandRunner runs the canvas binary against the configured instance
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a canvas command with the instance flags prepended
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	args = append([]string{
		"--base-url", runner.config.BaseURL,
		"--token-file", runner.config.TokenFile,
	}, args...)

	cmd := exec.Command(runner.config.CanvasPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.CanvasPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// ExitCode returns the process exit status carried by err, 0 for nil
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return -1
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	if !json.Valid([]byte(strings.TrimSpace(output))) {
		t.Errorf("Output is not valid JSON: %s", output)
	}
}

// AssertYAMLOutput verifies command output is valid YAML
func AssertYAMLOutput(t *testing.T, output string) {
	t.Helper()

	var doc interface{}
	if err := yaml.Unmarshal([]byte(output), &doc); err != nil {
		t.Errorf("Output is not valid YAML: %v\n%s", err, output)
	}
}
