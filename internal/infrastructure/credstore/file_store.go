package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/you/estately/domain"
)

const credentialsFileName = "credentials.json"

type credentials struct {
	JWTToken string `json:"jwtToken"`
}

// FileStore implements domain.CredentialStore on a single JSON file,
// the durable analogue of the browser's localStorage entry.
type FileStore struct {
	path string
}

// NewFileStore creates a credential store at the given path. An empty path
// resolves to ~/.estately/credentials.json.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("find home directory: %w", err)
		}
		path = filepath.Join(home, ".estately", credentialsFileName)
	}
	return &FileStore{path: path}, nil
}

// Load implements domain.CredentialStore. A missing file yields an empty
// token and no error.
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read credentials: %w", err)
	}

	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return "", fmt.Errorf("parse credentials: %w", err)
	}
	return creds.JWTToken, nil
}

// Save implements domain.CredentialStore.
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create credentials directory: %w", err)
	}

	data, err := json.MarshalIndent(credentials{JWTToken: token}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Clear implements domain.CredentialStore. Clearing an absent file succeeds.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.CredentialStore = (*FileStore)(nil)
