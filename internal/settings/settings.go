// Package settings persists the store connection for the desktop client:
// the url in a small yaml file, the credential in the OS keyring.
package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/zalando/go-keyring"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/vecdesk/internal/connection"
)

// Default locations.
const (
	DefaultService  = "vecdesk"
	credentialKey   = "credential"
	defaultFileName = "settings.yaml"
)

// fileModel is the on-disk shape; the credential never touches the file.
type fileModel struct {
	URL string `yaml:"url"`
}

// FileStore implements the settings collaborator on top of a yaml file and
// the OS keyring (Keychain, secret-service, Credential Manager).
type FileStore struct {
	path    string
	service string
	logger  *zap.Logger
	mu      sync.Mutex
}

// NewFileStore creates a FileStore. Empty path resolves to
// $XDG_CONFIG_HOME/vecdesk/settings.yaml, empty service to DefaultService.
func NewFileStore(path, service string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(dir, DefaultService, defaultFileName)
	}
	if service == "" {
		service = DefaultService
	}
	return &FileStore{path: path, service: service, logger: logger}, nil
}

// Path returns the settings file location.
func (s *FileStore) Path() string { return s.path }

// GetSettings loads the url and credential. A missing file or keyring entry
// yields empty values, not an error. An unreadable keyring is logged and
// treated as no credential so a store without auth stays reachable.
func (s *FileStore) GetSettings(_ context.Context) (connection.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.readFile()
	if err != nil {
		return connection.Settings{}, err
	}

	cred, err := s.readCredential()
	if err != nil {
		s.logger.Warn("Credential unavailable, continuing without it",
			zap.String("service", s.service),
			zap.Error(err),
		)
		cred = ""
	}

	return connection.Settings{URL: m.URL, Credential: cred}, nil
}

// SaveSettings replaces both values. The keyring is written first and the
// file second; if the file write fails the previous credential is put back,
// so a failed save leaves the stored pair as it was. An empty credential
// removes the keyring entry.
func (s *FileStore) SaveSettings(_ context.Context, st connection.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(fileModel{URL: st.URL})
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	prev, err := s.readCredential()
	if err != nil {
		return fmt.Errorf("read credential: %w", err)
	}

	if err := s.writeCredential(st.Credential); err != nil {
		return err
	}
	if err := s.writeFile(data); err != nil {
		if rerr := s.writeCredential(prev); rerr != nil {
			s.logger.Error("Restore credential after failed save",
				zap.String("service", s.service),
				zap.Error(rerr),
			)
		}
		return err
	}
	return nil
}

func (s *FileStore) readFile() (fileModel, error) {
	var m fileModel
	data, err := os.ReadFile(filepath.Clean(s.path))
	switch {
	case errors.Is(err, os.ErrNotExist):
		return m, nil
	case err != nil:
		return m, fmt.Errorf("read settings %s: %w", s.path, err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parse settings %s: %w", s.path, err)
	}
	return m, nil
}

func (s *FileStore) writeFile(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write settings %s: %w", s.path, err)
	}
	return nil
}

// readCredential returns "" when no entry exists.
func (s *FileStore) readCredential() (string, error) {
	cred, err := keyring.Get(s.service, credentialKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return cred, err
}

func (s *FileStore) writeCredential(cred string) error {
	if cred == "" {
		if err := keyring.Delete(s.service, credentialKey); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("delete credential: %w", err)
		}
		return nil
	}
	if err := keyring.Set(s.service, credentialKey, cred); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	return nil
}

// Memory is an in-process settings collaborator.
type Memory struct {
	mu       sync.RWMutex
	settings connection.Settings
}

// NewMemory creates a Memory store seeded with st.
func NewMemory(st connection.Settings) *Memory {
	return &Memory{settings: st}
}

// GetSettings returns the stored pair.
func (m *Memory) GetSettings(_ context.Context) (connection.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings, nil
}

// SaveSettings replaces the stored pair.
func (m *Memory) SaveSettings(_ context.Context, st connection.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = st
	return nil
}
