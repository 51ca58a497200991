// Package auth persists the backend auth token, the only durable
// client-side artifact. The token lives in a JSON file under the user
// config dir and is read once at startup to attempt session resolution.
package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// credentials is the disk format.
type credentials struct {
	Version     int       `json:"version"`
	AccessToken string    `json:"access_token"`
	SavedAt     time.Time `json:"saved_at"`
}

// TokenStore reads and writes the persisted token.
type TokenStore struct {
	filePath string
	mu       sync.Mutex
}

// NewTokenStore creates a store rooted at dir. The file is created lazily
// on the first Save.
func NewTokenStore(dir string) *TokenStore {
	return &TokenStore{
		filePath: filepath.Join(dir, "credentials.json"),
	}
}

// Load returns the persisted token, or "" when none is stored.
func (s *TokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", err
	}
	return creds.AccessToken, nil
}

// Save persists the token, replacing any previous one. Tokens are secrets,
// so the file is written owner-readable only.
func (s *TokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(credentials{
		Version:     1,
		AccessToken: token,
		SavedAt:     time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Clear removes the persisted token. Missing file is not an error, so
// logout stays idempotent.
func (s *TokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.filePath)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
