package auth

import "context"

// TokenManager supplies the bearer token attached to every request.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
}

// StaticTokenManager provides an already-loaded token.
type StaticTokenManager struct {
	token string
}

// NewStaticTokenManager creates a token manager for a fixed token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken returns the static token.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, nil
}

// FileTokenManager reads the token file on every call.
type FileTokenManager struct {
	path string
}

// NewFileTokenManager creates a token manager backed by a token file. An
// empty path means DefaultTokenPath.
func NewFileTokenManager(path string) *FileTokenManager {
	return &FileTokenManager{path: path}
}

// GetToken loads the token from disk.
func (m *FileTokenManager) GetToken(ctx context.Context) (string, error) {
	return LoadToken(m.path)
}
