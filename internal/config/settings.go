package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/wave-app/wave/internal/mode"
)

// Settings holds all user-configurable application settings organized
// by category, plus the persisted mode preference.
type Settings struct {
	General    GeneralSettings    `json:"general"`
	Classifier ClassifierSettings `json:"classifier"`
	Preference mode.Preference    `json:"preference"`
}

// GeneralSettings contains application behavior settings.
type GeneralSettings struct {
	ListenPort        int  `json:"listen_port"` // 0 means auto-discover
	ClipboardJournal  bool `json:"clipboard_journal"`
	LogRetentionCount int  `json:"log_retention_count"`
}

// ClassifierSettings configures the optional remote analyzer. An
// empty URL keeps classification fully offline.
type ClassifierSettings struct {
	RemoteURL     string        `json:"remote_url"`
	RemoteToken   string        `json:"remote_token"`
	RemoteTimeout time.Duration `json:"remote_timeout"`
}

// DefaultSettings returns a new Settings instance with sensible defaults.
func DefaultSettings() *Settings {
	return &Settings{
		General: GeneralSettings{
			ListenPort:        0,
			ClipboardJournal:  true,
			LogRetentionCount: 5,
		},
		Classifier: ClassifierSettings{
			RemoteTimeout: 10 * time.Second,
		},
		Preference: mode.DefaultPreference(),
	}
}

// GetSettingsPath returns the path to the settings JSON file.
func GetSettingsPath() string {
	return filepath.Join(GetWaveDir(), "settings.json")
}

// LoadSettings loads settings from disk. Returns defaults if the file
// doesn't exist.
func LoadSettings() (*Settings, error) {
	return loadSettingsFrom(GetSettingsPath())
}

func loadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings() // Start with defaults to fill any missing fields
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SaveSettings saves settings to disk atomically.
func SaveSettings(s *Settings) error {
	return saveSettingsTo(GetSettingsPath(), s)
}

func saveSettingsTo(path string, s *Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	// Atomic write: write to temp file, then rename
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tempPath, path)
}

// PreferenceFile persists the mode preference inside the settings
// file. It implements the theme controller's PreferenceStore.
type PreferenceFile struct {
	// Path overrides the default settings location (used by tests).
	Path string
}

func (p PreferenceFile) path() string {
	if p.Path != "" {
		return p.Path
	}
	return GetSettingsPath()
}

func (p PreferenceFile) LoadPreference() (mode.Preference, error) {
	s, err := loadSettingsFrom(p.path())
	if err != nil {
		return mode.Preference{}, err
	}
	// A missing or hand-edited mode must not leak out of the
	// persistence boundary.
	m, err := mode.Parse(string(s.Preference.Mode))
	if err != nil {
		return mode.DefaultPreference(), nil
	}
	s.Preference.Mode = m
	return s.Preference, nil
}

func (p PreferenceFile) SavePreference(pref mode.Preference) error {
	s, err := loadSettingsFrom(p.path())
	if err != nil {
		s = DefaultSettings()
	}
	s.Preference = pref
	return saveSettingsTo(p.path(), s)
}
