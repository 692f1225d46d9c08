package vecdesk

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vecdesk/internal/connection"
	"github.com/kailas-cloud/vecdesk/internal/settings"
)

// SettingsStore is the settings collaborator: it persists the connection
// and hands it back on every operation.
type SettingsStore interface {
	GetSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, s Settings) error
}

// internalStore is what both internal settings implementations provide.
type internalStore interface {
	GetSettings(ctx context.Context) (connection.Settings, error)
	SaveSettings(ctx context.Context, s connection.Settings) error
}

// FileSettings keeps the url in a yaml file and the credential in the OS
// keyring. Empty path and service use the per-user defaults. logger, when
// not nil, receives keyring failures that GetSettings tolerates.
func FileSettings(path, service string, logger *zap.Logger) (SettingsStore, error) {
	fs, err := settings.NewFileStore(path, service, logger)
	if err != nil {
		return nil, fmt.Errorf("vecdesk: %w", err)
	}
	return &settingsAdapter{inner: fs}, nil
}

// MemorySettings keeps the connection in memory only.
func MemorySettings(initial Settings) SettingsStore {
	return &settingsAdapter{inner: settings.NewMemory(toInternalSettings(initial))}
}

// settingsAdapter exposes an internal settings implementation publicly.
type settingsAdapter struct {
	inner internalStore
}

func (a *settingsAdapter) GetSettings(ctx context.Context) (Settings, error) {
	st, err := a.inner.GetSettings(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("get settings: %w", err)
	}
	return Settings{URL: st.URL, Credential: st.Credential}, nil
}

func (a *settingsAdapter) SaveSettings(ctx context.Context, s Settings) error {
	if err := a.inner.SaveSettings(ctx, toInternalSettings(s)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// sourceAdapter feeds a public SettingsStore to the connection state.
type sourceAdapter struct {
	store SettingsStore
}

func (a sourceAdapter) GetSettings(ctx context.Context) (connection.Settings, error) {
	st, err := a.store.GetSettings(ctx)
	if err != nil {
		return connection.Settings{}, err
	}
	return toInternalSettings(st), nil
}

func toInternalSettings(s Settings) connection.Settings {
	return connection.Settings{URL: s.URL, Credential: s.Credential}
}
