package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// GetWaveDir returns the per-user application directory.
func GetWaveDir() string {
	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		return filepath.Join(appData, "wave")
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "wave")
	default: // Linux
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			home, _ := os.UserHomeDir()
			configHome = filepath.Join(home, ".config")
		}
		return filepath.Join(configHome, "wave")
	}
}

// GetDataDir returns the directory holding the habit database.
func GetDataDir() string {
	return filepath.Join(GetWaveDir(), "data")
}

// GetLogsDir returns the directory for debug logs.
func GetLogsDir() string {
	return filepath.Join(GetWaveDir(), "logs")
}

// GetDBPath returns the habit database file path.
func GetDBPath() string {
	return filepath.Join(GetDataDir(), "wave.db")
}

// EnsureDirs creates all required directories.
func EnsureDirs() error {
	dirs := []string{GetWaveDir(), GetDataDir(), GetLogsDir()}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return nil
}
