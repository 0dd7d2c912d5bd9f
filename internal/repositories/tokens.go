package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/spotifeel/internal/models"
	"github.com/desertthunder/spotifeel/internal/shared"
)

// TokenStore persists one [models.TokenRecord] JSON file per Spotify user id.
type TokenStore struct {
	dir string
}

// NewTokenStore creates a new [TokenStore] rooted at the given directory.
//
// The directory is created lazily on the first Save.
func NewTokenStore(dir string) *TokenStore {
	return &TokenStore{dir: dir}
}

// SanitizeID neutralizes path separator characters in a user id so it is safe
// to use as a file name. The id originates from an upstream-controlled field
// and, via the session cookie, from client-controlled input.
//
// Ids differing only by separator-vs-underscore collide after sanitization;
// that limitation is accepted.
func SanitizeID(id string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", "..", "_")
	return replacer.Replace(id)
}

func (s *TokenStore) path(userID string) string {
	return filepath.Join(s.dir, SanitizeID(userID)+".json")
}

// Save writes the token record for the given user id, overwriting any
// previous record. The write goes to a temp file first and is renamed into
// place so readers never see a partial record.
func (s *TokenStore) Save(userID string, record *models.TokenRecord) error {
	if !record.Valid() {
		return fmt.Errorf("%w: record has no access token", shared.ErrInvalidInput)
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token record: %w", err)
	}

	target := s.path(userID)
	tmp, err := os.CreateTemp(s.dir, "token-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write token record: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to store token record: %w", err)
	}

	return nil
}

// Load reads the stored token record for the given user id.
//
// Absence is signaled with [shared.ErrTokenNotFound], not treated as a
// failure.
func (s *TokenStore) Load(userID string) (*models.TokenRecord, error) {
	data, err := os.ReadFile(s.path(userID))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", shared.ErrTokenNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token record: %w", err)
	}

	var record models.TokenRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode token record: %w", err)
	}

	return &record, nil
}

// Delete removes the stored record for the given user id, reporting whether
// one existed. Deleting an absent record is not an error.
func (s *TokenStore) Delete(userID string) (bool, error) {
	err := os.Remove(s.path(userID))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete token record: %w", err)
	}
	return true, nil
}
