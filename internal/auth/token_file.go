package auth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/canvas-client/internal/constants"
	"github.com/fivetwenty-io/canvas-client/pkg/canvas"
)

// ConfigDir returns the per-user directory holding the CLI config and token file.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName), nil
}

// DefaultTokenPath returns the token file location used when none is given.
func DefaultTokenPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, constants.TokenFileName), nil
}

// LoadToken reads the bearer token from path, or from DefaultTokenPath when
// path is empty. The file is read on every call.
func LoadToken(path string) (string, error) {
	if path == "" {
		defaultPath, err := DefaultTokenPath()
		if err != nil {
			return "", err
		}

		path = defaultPath
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is user supplied on purpose
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: token file not found at %s, create %s with your Canvas API token",
			canvas.ErrCredentialNotFound, path, constants.TokenFileName)
	}

	if err != nil {
		return "", fmt.Errorf("reading token file %s: %w", path, err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("%w: token file at %s is empty", canvas.ErrCredentialEmpty, path)
	}

	return token, nil
}
