package config

import (
	"github.com/rs/zerolog"

	"github.com/jxo-me/dyndns/pkg/watcher"
)

// Notification defines the method to call whenever the config file changes
// on disk. The running config stays immutable for the process lifetime; the
// notification exists so the daemon can tell the operator a restart is due.
type Notification interface {
	ConfigDidUpdate(Config)
}

// FileManager watches the config file and re-reads it on change.
type FileManager struct {
	watcher    watcher.IFileWatcher
	notifier   Notification
	configPath string
	log        *zerolog.Logger

	// ReadConfig can be swapped out in tests.
	ReadConfig func(configPath string, log *zerolog.Logger) (Config, error)
}

// NewFileManager creates a FileManager watching configPath.
func NewFileManager(w watcher.IFileWatcher, configPath string, log *zerolog.Logger) (*FileManager, error) {
	m := &FileManager{
		watcher:    w,
		configPath: configPath,
		log:        log,
		ReadConfig: readConfigFromPath,
	}
	if err := m.watcher.Add(configPath); err != nil {
		return nil, err
	}
	return m, nil
}

// Start notifies the current config once and then blocks dispatching file
// change notifications until Shutdown is called.
func (m *FileManager) Start(notifier Notification) error {
	m.notifier = notifier

	cfg, err := m.GetConfig()
	if err != nil {
		return err
	}
	notifier.ConfigDidUpdate(cfg)

	m.watcher.Start(m)
	return nil
}

// GetConfig reads the watched config file.
func (m *FileManager) GetConfig() (Config, error) {
	return m.ReadConfig(m.configPath, m.log)
}

// Shutdown stops the FileManager.
func (m *FileManager) Shutdown() {
	m.watcher.Shutdown()
}

// WatcherItemDidChange is called by the file watcher when the config file
// changes. A file that no longer parses is reported and otherwise ignored.
func (m *FileManager) WatcherItemDidChange(path string) {
	m.log.Debug().Str("path", path).Msg("config file changed on disk")
	cfg, err := m.GetConfig()
	if err != nil {
		m.log.Error().Err(err).Msg("failed to read new config")
		return
	}
	m.notifier.ConfigDidUpdate(cfg)
}

func readConfigFromPath(configPath string, _ *zerolog.Logger) (Config, error) {
	cfg, err := Load(configPath)
	if err != nil {
		return Config{}, err
	}
	return *cfg, nil
}
